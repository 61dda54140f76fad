// services/catalog.go - Static achievement catalog
package services

// StatName identifies one of the tracked user statistics that
// achievements are evaluated against.
type StatName string

const (
	StatStreak          StatName = "streak"
	StatTasksCompleted  StatName = "tasks_completed"
	StatHabitsCompleted StatName = "habits_completed"
	StatLikesReceived   StatName = "likes_received"
	StatFollowersCount  StatName = "followers_count"
)

// Snapshot is a point-in-time read of all tracked statistics for one
// user. Missing entries read as zero.
type Snapshot map[StatName]int

// AchievementDefinition is one catalog entry. Key is immutable and
// uniquely identifies the achievement; Threshold is the minimum
// statistic value required (inclusive).
type AchievementDefinition struct {
	Key         string   `json:"key"`
	Category    string   `json:"category"`
	Stat        StatName `json:"stat"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Threshold   int      `json:"threshold"`
	RewardStars int      `json:"reward_stars"`
}

// Achievement categories
const (
	CategoryStreak = "subscription_streak"
	CategoryTasks  = "task_master"
	CategoryHabits = "habit_hero"
	CategorySocial = "social_star"
)

var categoryLabels = map[string]string{
	CategoryStreak: "Streaks",
	CategoryTasks:  "Tasks",
	CategoryHabits: "Habits",
	CategorySocial: "Social",
}

// CategoryLabel returns the display label for a category, falling back
// to the raw key for categories it does not know about.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// DefaultCatalog returns the built-in achievement catalog. The slice is
// freshly allocated on each call; callers treat it as immutable and
// load it once at startup.
func DefaultCatalog() []AchievementDefinition {
	return []AchievementDefinition{
		// Completion streaks
		{Key: "streak_3", Category: CategoryStreak, Stat: StatStreak, Name: "3 Days Straight", Description: "Complete tasks 3 days in a row", Icon: "🔥", Threshold: 3, RewardStars: 5},
		{Key: "streak_7", Category: CategoryStreak, Stat: StatStreak, Name: "Productive Week", Description: "Complete tasks 7 days in a row", Icon: "⭐", Threshold: 7, RewardStars: 15},
		{Key: "streak_14", Category: CategoryStreak, Stat: StatStreak, Name: "Two Weeks Nonstop", Description: "Complete tasks 14 days in a row", Icon: "💪", Threshold: 14, RewardStars: 30},
		{Key: "streak_30", Category: CategoryStreak, Stat: StatStreak, Name: "A Month In", Description: "Complete tasks 30 days in a row", Icon: "🏆", Threshold: 30, RewardStars: 75},
		{Key: "streak_60", Category: CategoryStreak, Stat: StatStreak, Name: "60 Day Marathon", Description: "Complete tasks 60 days in a row", Icon: "👑", Threshold: 60, RewardStars: 150},
		{Key: "streak_100", Category: CategoryStreak, Stat: StatStreak, Name: "100 Day Legend", Description: "Complete tasks 100 days in a row", Icon: "🌟", Threshold: 100, RewardStars: 300},

		// Task achievements
		{Key: "tasks_10", Category: CategoryTasks, Stat: StatTasksCompleted, Name: "Beginner", Description: "Complete 10 tasks", Icon: "📋", Threshold: 10, RewardStars: 5},
		{Key: "tasks_50", Category: CategoryTasks, Stat: StatTasksCompleted, Name: "Doer", Description: "Complete 50 tasks", Icon: "✅", Threshold: 50, RewardStars: 20},
		{Key: "tasks_100", Category: CategoryTasks, Stat: StatTasksCompleted, Name: "Professional", Description: "Complete 100 tasks", Icon: "🎯", Threshold: 100, RewardStars: 50},
		{Key: "tasks_500", Category: CategoryTasks, Stat: StatTasksCompleted, Name: "Task Master", Description: "Complete 500 tasks", Icon: "🏅", Threshold: 500, RewardStars: 150},

		// Habit achievements
		{Key: "habits_7", Category: CategoryHabits, Stat: StatHabitsCompleted, Name: "First Habit", Description: "Check in a habit 7 times", Icon: "🌱", Threshold: 7, RewardStars: 10},
		{Key: "habits_30", Category: CategoryHabits, Stat: StatHabitsCompleted, Name: "Habit for a Month", Description: "Check in a habit 30 times", Icon: "🌿", Threshold: 30, RewardStars: 30},
		{Key: "habits_100", Category: CategoryHabits, Stat: StatHabitsCompleted, Name: "Habit x100", Description: "Check in a habit 100 times", Icon: "🌳", Threshold: 100, RewardStars: 100},

		// Social achievements
		{Key: "likes_10", Category: CategorySocial, Stat: StatLikesReceived, Name: "First Likes", Description: "Receive 10 likes", Icon: "❤️", Threshold: 10, RewardStars: 10},
		{Key: "likes_50", Category: CategorySocial, Stat: StatLikesReceived, Name: "Popularity", Description: "Receive 50 likes", Icon: "💕", Threshold: 50, RewardStars: 30},
		{Key: "followers_5", Category: CategorySocial, Stat: StatFollowersCount, Name: "First Followers", Description: "Gain 5 followers", Icon: "👥", Threshold: 5, RewardStars: 15},
		{Key: "followers_20", Category: CategorySocial, Stat: StatFollowersCount, Name: "Opinion Leader", Description: "Gain 20 followers", Icon: "🌟", Threshold: 20, RewardStars: 50},
	}
}
