// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"uplife/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates indexes not expressed through struct tags
func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Task / habit indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_user_completed ON tasks(user_id, completed)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_habit_completions_user ON habit_completions(user_id, day)")

	// Progression / leaderboard indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_levels_level ON user_levels(current_level DESC, total_xp DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_star_transactions_user ON star_transactions(user_id, created_at DESC)")

	// Award records: the unique (user_id, achievement_key) pair is the
	// idempotency guarantee for achievement awards.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_achievement_key ON user_achievements(user_id, achievement_key)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_earned ON user_achievements(user_id, earned_at DESC)")

	// Social indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_user ON posts(user_id, created_at DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_subscriptions_following ON subscriptions(following_id)")
}
