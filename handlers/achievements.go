// handlers/achievements.go
package handlers

import (
	"uplife/middleware"
	"uplife/services"

	"github.com/gofiber/fiber/v2"
)

// GetAchievements returns the full catalog partitioned into earned and
// available entries for the current user, grouped by category label.
func GetAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	svc := services.GetAchievementService()

	earned, err := svc.Earned(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	available, err := svc.Available(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	categories := make(map[string]string)
	for _, def := range svc.Catalog() {
		categories[def.Category] = services.CategoryLabel(def.Category)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"earned":     earned,
		"available":  available,
		"categories": categories,
		"total":      len(svc.Catalog()),
		"unlocked":   len(earned),
	})
}

// CheckAchievements runs an evaluation pass for the current user and
// returns anything newly awarded.
func CheckAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	awarded, err := services.GetAchievementService().CheckAndAward(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check achievements"})
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"new_achievements": awarded,
		"awarded":          len(awarded),
	})
}
