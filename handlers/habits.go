// handlers/habits.go
package handlers

import (
	"errors"
	"log"
	"time"

	"uplife/database"
	"uplife/middleware"
	"uplife/models"
	"uplife/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateHabitRequest struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// CreateHabit adds a new habit for the current user
func CreateHabit(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Title is required"})
	}

	habit := models.Habit{
		UserID:   userID,
		Title:    req.Title,
		Icon:     req.Icon,
		IsActive: true,
	}

	db := database.GetDB()
	if err := db.Create(&habit).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create habit"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "habit": habit})
}

// GetHabits lists the current user's habits with today's check-in state
func GetHabits(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var habits []models.Habit
	if err := db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&habits).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch habits"})
	}

	today := time.Now().UTC().Format("2006-01-02")
	var doneToday []uint
	db.Model(&models.HabitCompletion{}).
		Where("user_id = ? AND day = ?", userID, today).
		Pluck("habit_id", &doneToday)

	doneSet := make(map[uint]bool, len(doneToday))
	for _, id := range doneToday {
		doneSet[id] = true
	}

	entries := make([]fiber.Map, 0, len(habits))
	for _, habit := range habits {
		entries = append(entries, fiber.Map{
			"habit":      habit,
			"done_today": doneSet[habit.ID],
		})
	}

	return c.JSON(fiber.Map{"success": true, "habits": entries, "total": len(entries)})
}

// CheckInHabit records today's check-in for a habit and applies
// gamification rewards. The unique (habit_id, day) index makes the
// check-in idempotent per day.
func CheckInHabit(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	habitID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid habit id"})
	}

	db := database.GetDB()
	var habit models.Habit
	if err := db.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Habit not found"})
	}

	completion := models.HabitCompletion{
		HabitID: habit.ID,
		UserID:  userID,
		Day:     time.Now().UTC().Format("2006-01-02"),
	}
	if err := db.Create(&completion).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.JSON(fiber.Map{"success": true, "habit": habit, "already_done": true})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record check-in"})
	}

	if _, err := services.GetProgressionService().IncrementHabitCount(userID); err != nil {
		log.Printf("Habit counter increment failed for user %d: %v", userID, err)
	}

	response := applyCompletionRewards(userID, services.XPSourceHabit)
	response["success"] = true
	response["habit"] = habit

	return c.JSON(response)
}

// DeleteHabit deactivates a habit, keeping its completion history
func DeleteHabit(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	habitID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid habit id"})
	}

	db := database.GetDB()
	res := db.Model(&models.Habit{}).
		Where("id = ? AND user_id = ?", habitID, userID).
		UpdateColumn("is_active", false)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete habit"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "Habit not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
