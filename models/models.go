// models/models.go - Core Models (tasks, habits, social graph, referrals)
package models

import (
	"time"
)

// Task represents a one-off to-do item
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"not null;index"`
	User        *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Title       string     `json:"title" gorm:"not null;size:200"`
	Description string     `json:"description" gorm:"type:text"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Habit represents a recurring habit with daily check-ins
type Habit struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Title     string    `json:"title" gorm:"not null;size:200"`
	Icon      string    `json:"icon" gorm:"size:20"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HabitCompletion records a habit check-in, one per habit per day
type HabitCompletion struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	HabitID   uint      `json:"habit_id" gorm:"not null;uniqueIndex:idx_habit_day"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Day       string    `json:"day" gorm:"not null;size:10;uniqueIndex:idx_habit_day"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at"`
}

// Post is a shared update on the user's feed (e.g. an unlocked
// achievement). Likes on these posts feed the social achievements.
type Post struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	User           *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Text           string    `json:"text" gorm:"type:text"`
	AchievementKey string    `json:"achievement_key,omitempty" gorm:"size:50"`
	CreatedAt      time.Time `json:"created_at"`
}

// PostReaction is a like (or other reaction) on a post, unique per user
type PostReaction struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	PostID       uint      `json:"post_id" gorm:"not null;uniqueIndex:idx_post_user_reaction"`
	UserID       uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_post_user_reaction"`
	ReactionType string    `json:"reaction_type" gorm:"not null;size:20;default:'like'"`
	CreatedAt    time.Time `json:"created_at"`
}

// Subscription is a follow relationship: follower -> following
type Subscription struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"not null;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"not null;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// Referral links an invited user to their referrer
type Referral struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReferrerID uint      `json:"referrer_id" gorm:"not null;index"`
	ReferredID uint      `json:"referred_id" gorm:"not null;uniqueIndex"`
	CodeUsed   string    `json:"code_used" gorm:"size:12"`
	IsPaying   bool      `json:"is_paying" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName methods for custom table names
func (Task) TableName() string {
	return "tasks"
}

func (Habit) TableName() string {
	return "habits"
}

func (HabitCompletion) TableName() string {
	return "habit_completions"
}

func (Post) TableName() string {
	return "posts"
}

func (PostReaction) TableName() string {
	return "post_reactions"
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (Referral) TableName() string {
	return "referrals"
}
