// models/achievement.go
package models

import "time"

// UserAchievement is the award record: proof that a user earned an
// achievement, created exactly once per (user_id, achievement_key).
// The achievement catalog itself is static configuration, not a table
// (see services/catalog.go).
type UserAchievement struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_achievement_key" json:"user_id"`
	AchievementKey string    `gorm:"not null;size:50;uniqueIndex:idx_user_achievement_key" json:"achievement_key"`
	Category       string    `gorm:"not null;size:40;index" json:"category"`
	AwardedStars   int       `gorm:"default:0" json:"awarded_stars"`
	EarnedAt       time.Time `json:"earned_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}
