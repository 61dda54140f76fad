// handlers/admin/users.go - Admin user management
package admin

import (
	"uplife/database"
	"uplife/models"
	"uplife/services"

	"github.com/gofiber/fiber/v2"
)

// GetUsers lists users with pagination
// GET /api/admin/users?limit=50&offset=0
func GetUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	db := database.GetDB()
	var users []models.User
	if err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	for i := range users {
		users[i].Password = ""
	}

	var total int64
	db.Model(&models.User{}).Count(&total)

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

// BanUser toggles a user's banned flag
// POST /api/admin/users/:id/ban  {"banned": true}
func BanUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	var req struct {
		Banned bool `json:"banned"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	db := database.GetDB()
	res := db.Model(&models.User{}).Where("id = ?", userID).UpdateColumn("is_banned", req.Banned)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update user"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"success": true, "banned": req.Banned})
}

// DeleteUser removes a user account along with all dependent rows,
// including likes and follows that would otherwise keep counting
// toward other users' social statistics.
func DeleteUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user id"})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	if err := services.DeleteUsers(db, []uint{user.ID}); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete user"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// GetAnalytics returns platform-wide totals
func GetAnalytics(c *fiber.Ctx) error {
	db := database.GetDB()

	var totalUsers, guestUsers, tasksCompleted, achievementsAwarded, starsGranted int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_guest = ?", true).Count(&guestUsers)
	db.Model(&models.Task{}).Where("completed = ?", true).Count(&tasksCompleted)
	db.Model(&models.UserAchievement{}).Count(&achievementsAwarded)
	db.Model(&models.StarTransaction{}).Count(&starsGranted)

	return c.JSON(fiber.Map{
		"success":              true,
		"total_users":          totalUsers,
		"guest_users":          guestUsers,
		"tasks_completed":      tasksCompleted,
		"achievements_awarded": achievementsAwarded,
		"star_transactions":    starsGranted,
	})
}
