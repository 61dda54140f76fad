// handlers/users.go
package handlers

import (
	"strings"

	"uplife/database"
	"uplife/middleware"
	"uplife/models"
	"uplife/services"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentUser returns the authenticated user's own record
func GetCurrentUser(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "user": userInfo(user)})
}

// GetUserProfile returns a public profile with progression summary
func GetUserProfile(c *fiber.Ctx) error {
	profileID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, profileID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	info, err := services.GetProgressionService().Progression(user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch progression"})
	}

	earned, err := services.GetAchievementService().Earned(user.ID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"avatar":       user.Avatar,
			"bio":          user.Bio,
		},
		"level":        info.Level,
		"title":        info.Title,
		"total_xp":     info.TotalXP,
		"achievements": earned,
	})
}

// SearchUsers finds users by username prefix
// GET /api/users/search?q=ali&limit=20
func SearchUsers(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		return c.Status(400).JSON(fiber.Map{"error": "Query must be at least 2 characters"})
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 50 {
		limit = 20
	}

	db := database.GetDB()
	var users []models.User
	err := db.Where("is_guest = ? AND is_banned = ? AND username ILIKE ?", false, false, escapeLikePattern(query)+"%").
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Search failed"})
	}

	results := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		results = append(results, fiber.Map{
			"id":           user.ID,
			"username":     user.Username,
			"display_name": user.DisplayName,
			"avatar":       user.Avatar,
		})
	}

	return c.JSON(fiber.Map{"success": true, "users": results, "total": len(results)})
}

// escapeLikePattern neutralizes LIKE metacharacters in user input so a
// query like "%%" cannot match every username.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
