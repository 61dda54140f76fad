// services/gamification.go - Service wiring
package services

import (
	"uplife/database"
)

var (
	progressionService *ProgressionService
	achievementService *AchievementService
	starService        *StarService
	notificationHub    *Hub
)

// InitGamification wires the gamification services against the shared
// database connection. The achievement catalog is loaded once here and
// never mutated afterwards.
func InitGamification() {
	db := database.GetDB()

	notificationHub = NewHub()
	starService = NewStarService(db)
	progressionService = NewProgressionService(NewGormProgressionStore(db))
	achievementService = NewAchievementService(
		DefaultCatalog(),
		NewGormStatSource(db),
		NewGormAwardStore(db),
		starService,
		notificationHub,
	)
}

// GetProgressionService returns the progression service.
func GetProgressionService() *ProgressionService {
	return progressionService
}

// GetAchievementService returns the achievement service.
func GetAchievementService() *AchievementService {
	return achievementService
}

// GetStarService returns the star ledger service.
func GetStarService() *StarService {
	return starService
}

// GetHub returns the notification hub.
func GetHub() *Hub {
	return notificationHub
}
