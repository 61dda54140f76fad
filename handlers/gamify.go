// handlers/gamify.go - Shared gamification side effects for completions
package handlers

import (
	"log"

	"uplife/services"

	"github.com/gofiber/fiber/v2"
)

// applyCompletionRewards runs the gamification pipeline after a task or
// habit completion: XP grant, daily streak upkeep with milestone
// bonuses, and an achievement pass. Every step is best-effort; the
// completing action already succeeded and is never rolled back here.
func applyCompletionRewards(userID uint, source services.XPSource) fiber.Map {
	progression := services.GetProgressionService()
	stars := services.GetStarService()
	achievements := services.GetAchievementService()
	hub := services.GetHub()

	result := fiber.Map{}

	grant, err := progression.GrantXPFor(userID, source)
	if err != nil {
		log.Printf("XP grant (%s) failed for user %d: %v", source, userID, err)
	} else {
		result["xp_earned"] = grant.Amount
		result["total_xp"] = grant.TotalXP
		result["new_level"] = grant.NewLevel
		result["leveled_up"] = grant.LeveledUp
		if grant.LeveledUp {
			hub.LeveledUp(userID, grant.NewLevel, services.LevelTitle(grant.NewLevel))
		}
	}

	streak, bumped, err := stars.BumpDailyStreak(userID)
	if err != nil {
		log.Printf("Streak update failed for user %d: %v", userID, err)
	} else {
		result["current_streak"] = streak
		if bumped {
			if bonus, ok := services.StreakBonusSource(streak); ok {
				if grant, err := progression.GrantXPFor(userID, bonus); err != nil {
					log.Printf("Streak bonus XP failed for user %d: %v", userID, err)
				} else {
					result["streak_bonus_xp"] = grant.Amount
					if grant.LeveledUp {
						result["new_level"] = grant.NewLevel
						result["leveled_up"] = true
						hub.LeveledUp(userID, grant.NewLevel, services.LevelTitle(grant.NewLevel))
					}
				}
			}
		}
	}

	awarded, err := achievements.CheckAndAward(userID)
	if err != nil {
		log.Printf("Achievement check failed for user %d: %v", userID, err)
	} else if len(awarded) > 0 {
		result["new_achievements"] = awarded
	}

	return result
}
