// models/progression.go - XP/level state and the star currency ledger
package models

import "time"

// UserLevel holds a user's progression counters. TotalXP is the single
// source of truth for the level; CurrentLevel is derived and stored for
// cheap leaderboard sorting.
type UserLevel struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalXP         int       `gorm:"default:0" json:"total_xp"`
	CurrentLevel    int       `gorm:"default:1" json:"current_level"`
	TasksCompleted  int       `gorm:"default:0" json:"tasks_completed"`
	HabitsCompleted int       `gorm:"default:0" json:"habits_completed"`
	StarsEarned     int       `gorm:"default:0" json:"stars_earned"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserStars holds the star balance and the daily completion streak.
// The streak counter is bumped at most once per day and resets after a
// missed day.
type UserStars struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Balance           int        `gorm:"default:0" json:"balance"`
	CurrentStreakDays int        `gorm:"default:0" json:"current_streak_days"`
	BestStreakDays    int        `gorm:"default:0" json:"best_streak_days"`
	LastActivityDate  *time.Time `json:"last_activity_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// StarTransaction is an append-only record of every star grant or spend.
type StarTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Amount      int       `gorm:"not null" json:"amount"`
	Type        string    `gorm:"not null;size:30" json:"type"` // achievement, streak_bonus, referral, admin
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (UserLevel) TableName() string {
	return "user_levels"
}

func (UserStars) TableName() string {
	return "user_stars"
}

func (StarTransaction) TableName() string {
	return "star_transactions"
}
