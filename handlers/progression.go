// handlers/progression.go
package handlers

import (
	"log"

	"uplife/middleware"
	"uplife/services"

	"github.com/gofiber/fiber/v2"
)

type AwardXPRequest struct {
	UserID uint   `json:"user_id"`
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// GetProgression returns the user's level, XP progress and counters
func GetProgression(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	info, err := services.GetProgressionService().Progression(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch progression"})
	}

	balance, err := services.GetStarService().Balance(userID)
	if err != nil {
		log.Printf("Star balance read failed for user %d: %v", userID, err)
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"level":            info.Level,
		"title":            info.Title,
		"total_xp":         info.TotalXP,
		"xp_into_level":    info.XPIntoLevel,
		"xp_for_next":      info.XPForNext,
		"progress_percent": info.ProgressPercent,
		"tasks_completed":  info.TasksCompleted,
		"habits_completed": info.HabitsCompleted,
		"stars_earned":     info.StarsEarned,
		"star_balance":     balance,
	})
}

// AwardXP grants an arbitrary XP amount to a user (admin only)
func AwardXP(c *fiber.Ctx) error {
	var req AwardXPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "XP amount must be positive"})
	}
	if req.UserID == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "user_id is required"})
	}

	grant, err := services.GetProgressionService().GrantXP(req.UserID, req.Amount, services.XPSource(req.Reason))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to award XP"})
	}

	if grant.LeveledUp {
		services.GetHub().LeveledUp(req.UserID, grant.NewLevel, services.LevelTitle(grant.NewLevel))
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"xp_awarded": grant.Amount,
		"total_xp":   grant.TotalXP,
		"new_level":  grant.NewLevel,
		"leveled_up": grant.LeveledUp,
		"reason":     req.Reason,
	})
}

// GetStarTransactions lists the user's recent star ledger entries
func GetStarTransactions(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	limit := c.QueryInt("limit", 50)
	txs, err := services.GetStarService().Transactions(userID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}

	balance, err := services.GetStarService().Balance(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch balance"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"balance":      balance,
		"transactions": txs,
	})
}
