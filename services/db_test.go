package services

import (
	"testing"

	"uplife/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Habit{},
		&models.HabitCompletion{},
		&models.UserLevel{},
		&models.UserStars{},
		&models.StarTransaction{},
		&models.UserAchievement{},
		&models.Post{},
		&models.PostReaction{},
		&models.Subscription{},
		&models.Referral{},
	))
	return db
}
