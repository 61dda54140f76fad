// handlers/referral.go
package handlers

import (
	"uplife/database"
	"uplife/middleware"
	"uplife/models"
	"uplife/services"

	"github.com/gofiber/fiber/v2"
)

// GetReferralInfo returns the user's referral code and invite stats
func GetReferralInfo(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	var invited, paying int64
	db.Model(&models.Referral{}).Where("referrer_id = ?", userID).Count(&invited)
	db.Model(&models.Referral{}).Where("referrer_id = ? AND is_paying = ?", userID, true).Count(&paying)

	return c.JSON(fiber.Map{
		"success":       true,
		"referral_code": user.ReferralCode,
		"invited":       invited,
		"paying":        paying,
	})
}

// EstimateEarnings previews potential affiliate earnings
// GET /api/referral/earnings?referrals=25&paying_percent=60&period=month
func EstimateEarnings(c *fiber.Ctx) error {
	referrals := c.QueryInt("referrals", 0)
	payingPercent := c.QueryInt("paying_percent", 0)
	period := services.EarningsPeriod(c.Query("period", string(services.PeriodMonth)))

	switch period {
	case services.PeriodMonth, services.PeriodQuarter, services.PeriodYear:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "period must be month, quarter or year"})
	}

	result := services.EstimateEarnings(referrals, payingPercent, period)

	return c.JSON(fiber.Map{
		"success":  true,
		"period":   period,
		"estimate": result,
	})
}

// GetReferrals lists the users invited by the current user
func GetReferrals(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	var referrals []models.Referral
	if err := db.Where("referrer_id = ?", userID).
		Order("created_at DESC").
		Find(&referrals).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch referrals"})
	}

	return c.JSON(fiber.Map{"success": true, "referrals": referrals, "total": len(referrals)})
}
