// services/progression.go - XP accrual and level derivation
package services

import (
	"fmt"
	"log"

	"uplife/models"
)

// XPSource names the action that earned the XP.
type XPSource string

const (
	XPSourceTask     XPSource = "task"
	XPSourceHabit    XPSource = "habit"
	XPSourceStar     XPSource = "star"
	XPSourceStreak3  XPSource = "streak_3"
	XPSourceStreak7  XPSource = "streak_7"
	XPSourceStreak30 XPSource = "streak_30"
)

// Fixed XP reward table.
var xpRewards = map[XPSource]int{
	XPSourceTask:     25,
	XPSourceHabit:    15,
	XPSourceStar:     10,
	XPSourceStreak3:  50,
	XPSourceStreak7:  100,
	XPSourceStreak30: 500,
}

// XPRewardFor returns the fixed XP amount for a source, 0 if unknown.
func XPRewardFor(source XPSource) int {
	return xpRewards[source]
}

var levelTitles = map[int]string{
	1:  "Newbie",
	2:  "Learner",
	3:  "Apprentice",
	4:  "Achiever",
	5:  "Master",
	6:  "Expert",
	7:  "Pro",
	8:  "Guru",
	9:  "Legend",
	10: "Champion",
}

// LevelTitle returns the display title for a level, capped at 10.
func LevelTitle(level int) string {
	if level > 10 {
		level = 10
	}
	if level < 1 {
		level = 1
	}
	return levelTitles[level]
}

// LevelInfo is the result of deriving a level from a total XP amount.
type LevelInfo struct {
	Level       int `json:"level"`
	XPIntoLevel int `json:"xp_into_level"`
	XPForNext   int `json:"xp_for_next"`
}

// xpRequiredFor returns the XP needed to complete the given level.
// Level L requires 100*L XP: level 1 needs 100, level 2 needs 200, etc.
func xpRequiredFor(level int) int {
	return 100 * level
}

// DeriveLevel computes the level reached with totalXP, the XP carried
// into the current level, and the requirement of that level. TotalXP is
// the only source of truth; the stored current_level column is a cache.
func DeriveLevel(totalXP int) LevelInfo {
	if totalXP < 0 {
		totalXP = 0
	}
	level := 1
	remaining := totalXP
	for remaining >= xpRequiredFor(level) {
		remaining -= xpRequiredFor(level)
		level++
	}
	return LevelInfo{
		Level:       level,
		XPIntoLevel: remaining,
		XPForNext:   xpRequiredFor(level),
	}
}

// GrantResult reports the outcome of an XP grant. Notification of a
// level-up is the caller's concern, driven by LeveledUp.
type GrantResult struct {
	Amount    int      `json:"amount"`
	Source    XPSource `json:"source"`
	TotalXP   int      `json:"total_xp"`
	NewLevel  int      `json:"new_level"`
	LeveledUp bool     `json:"leveled_up"`
}

// ProgressionStore persists per-user progression state. AddXP must be
// an atomic increment: concurrent grants for the same user must not
// lose an update.
type ProgressionStore interface {
	GetOrInit(userID uint) (models.UserLevel, error)
	AddXP(userID uint, amount int) (newTotal int, err error)
	SetLevel(userID uint, level int) error
	IncrementTasks(userID uint) (int, error)
	IncrementHabits(userID uint) (int, error)
}

// ProgressionService maintains total XP and derives levels from it.
type ProgressionService struct {
	store ProgressionStore
}

func NewProgressionService(store ProgressionStore) *ProgressionService {
	return &ProgressionService{store: store}
}

// GrantXP atomically adds XP for a user and detects a level-up by
// comparing the derived level before and after the increment.
func (s *ProgressionService) GrantXP(userID uint, amount int, source XPSource) (GrantResult, error) {
	if amount <= 0 {
		return GrantResult{}, fmt.Errorf("xp amount must be positive, got %d", amount)
	}

	newTotal, err := s.store.AddXP(userID, amount)
	if err != nil {
		return GrantResult{}, fmt.Errorf("add xp: %w", err)
	}

	oldInfo := DeriveLevel(newTotal - amount)
	newInfo := DeriveLevel(newTotal)

	if newInfo.Level != oldInfo.Level {
		// The stored level is a derived cache; a failed write here is
		// logged, not escalated, since reads re-derive from total_xp.
		if err := s.store.SetLevel(userID, newInfo.Level); err != nil {
			log.Printf("Failed to persist level %d for user %d: %v", newInfo.Level, userID, err)
		}
	}

	return GrantResult{
		Amount:    amount,
		Source:    source,
		TotalXP:   newTotal,
		NewLevel:  newInfo.Level,
		LeveledUp: newInfo.Level > oldInfo.Level,
	}, nil
}

// GrantXPFor grants the fixed reward amount for a known source.
func (s *ProgressionService) GrantXPFor(userID uint, source XPSource) (GrantResult, error) {
	return s.GrantXP(userID, XPRewardFor(source), source)
}

// IncrementTaskCount bumps the lifetime completed-task counter and
// returns the new value.
func (s *ProgressionService) IncrementTaskCount(userID uint) (int, error) {
	return s.store.IncrementTasks(userID)
}

// IncrementHabitCount bumps the lifetime habit check-in counter and
// returns the new value.
func (s *ProgressionService) IncrementHabitCount(userID uint) (int, error) {
	return s.store.IncrementHabits(userID)
}

// ProgressionInfo is the read-side view of a user's progression.
type ProgressionInfo struct {
	Level           int    `json:"level"`
	Title           string `json:"title"`
	TotalXP         int    `json:"total_xp"`
	XPIntoLevel     int    `json:"xp_into_level"`
	XPForNext       int    `json:"xp_for_next"`
	ProgressPercent int    `json:"progress_percent"`
	TasksCompleted  int    `json:"tasks_completed"`
	HabitsCompleted int    `json:"habits_completed"`
	StarsEarned     int    `json:"stars_earned"`
}

// Progression returns the user's current progression, creating the
// zero-state row for first-time users.
func (s *ProgressionService) Progression(userID uint) (ProgressionInfo, error) {
	state, err := s.store.GetOrInit(userID)
	if err != nil {
		return ProgressionInfo{}, err
	}

	info := DeriveLevel(state.TotalXP)
	percent := 0
	if info.XPForNext > 0 {
		// Rounded to the nearest percent, so 199/200 reads 100, not 99.
		percent = (info.XPIntoLevel*100 + info.XPForNext/2) / info.XPForNext
	}

	return ProgressionInfo{
		Level:           info.Level,
		Title:           LevelTitle(info.Level),
		TotalXP:         state.TotalXP,
		XPIntoLevel:     info.XPIntoLevel,
		XPForNext:       info.XPForNext,
		ProgressPercent: percent,
		TasksCompleted:  state.TasksCompleted,
		HabitsCompleted: state.HabitsCompleted,
		StarsEarned:     state.StarsEarned,
	}, nil
}
