// handlers/leaderboard.go
package handlers

import (
	"uplife/database"
	"uplife/models"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	Avatar        string `json:"avatar"`
	Level         int    `json:"level"`
	TotalXP       int    `json:"total_xp"`
	CurrentStreak int    `json:"current_streak"`
	StarBalance   int    `json:"star_balance"`
}

// GetLeaderboard returns the global leaderboard
// GET /api/leaderboard?category=level&limit=100&offset=0
func GetLeaderboard(c *fiber.Ctx) error {
	category := c.Query("category", "level")
	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 100 {
		limit = 100
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	var orderBy string
	switch category {
	case "xp":
		orderBy = "ul.total_xp DESC"
	case "streak":
		orderBy = "us.current_streak_days DESC, ul.total_xp DESC"
	case "stars":
		orderBy = "us.balance DESC, ul.total_xp DESC"
	default:
		category = "level"
		orderBy = "ul.current_level DESC, ul.total_xp DESC"
	}

	db := database.GetDB()
	var entries []LeaderboardEntry

	err := db.Raw(`
		SELECT
			u.id AS user_id,
			u.username,
			u.avatar,
			COALESCE(ul.current_level, 1) AS level,
			COALESCE(ul.total_xp, 0) AS total_xp,
			COALESCE(us.current_streak_days, 0) AS current_streak,
			COALESCE(us.balance, 0) AS star_balance
		FROM users u
		LEFT JOIN user_levels ul ON ul.user_id = u.id
		LEFT JOIN user_stars us ON us.user_id = u.id
		WHERE u.is_guest = false AND u.is_banned = false
		ORDER BY `+orderBy+`
		LIMIT ? OFFSET ?
	`, limit, offset).Scan(&entries).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	var total int64
	db.Model(&models.User{}).Where("is_guest = ? AND is_banned = ?", false, false).Count(&total)

	return c.JSON(fiber.Map{
		"success":  true,
		"entries":  entries,
		"category": category,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}
