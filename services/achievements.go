// services/achievements.go - Achievement evaluation and awarding
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"uplife/models"
)

// ErrAlreadyEarned is returned by AwardStore.Insert when an award
// record for the (user, key) pair already exists.
var ErrAlreadyEarned = errors.New("achievement already earned")

// StatSource produces a fresh statistic snapshot for a user. A failed
// sub-read degrades that statistic to 0; the snapshot itself never
// fails.
type StatSource interface {
	Snapshot(userID uint) Snapshot
}

// AwardStore persists award records. Insert must reject a duplicate
// (user, key) pair with ErrAlreadyEarned, never create a second record.
type AwardStore interface {
	ListEarned(userID uint) ([]models.UserAchievement, error)
	Insert(record *models.UserAchievement) error
}

// StarLedger grants star currency. Grants are independent of award
// records: a ledger failure after the record is committed leaves the
// achievement earned.
type StarLedger interface {
	Grant(userID uint, amount int, txType, description string) error
}

// Notifier delivers fire-and-forget user-facing events. Delivery
// failures are never escalated.
type Notifier interface {
	AchievementEarned(userID uint, def AchievementDefinition)
	LeveledUp(userID uint, level int, title string)
}

// AchievementService evaluates the static catalog against user
// statistics and awards newly qualified achievements exactly once.
type AchievementService struct {
	catalog  []AchievementDefinition
	stats    StatSource
	awards   AwardStore
	ledger   StarLedger
	notifier Notifier
}

func NewAchievementService(catalog []AchievementDefinition, stats StatSource, awards AwardStore, ledger StarLedger, notifier Notifier) *AchievementService {
	return &AchievementService{
		catalog:  catalog,
		stats:    stats,
		awards:   awards,
		ledger:   ledger,
		notifier: notifier,
	}
}

// Catalog returns the injected definitions.
func (s *AchievementService) Catalog() []AchievementDefinition {
	return s.catalog
}

// Evaluate returns the catalog entries that qualify against the
// snapshot and are not yet earned. Thresholds are inclusive. Order of
// evaluation does not matter: no definition depends on another.
func (s *AchievementService) Evaluate(snapshot Snapshot, earnedKeys map[string]bool) []AchievementDefinition {
	var qualified []AchievementDefinition
	for _, def := range s.catalog {
		if earnedKeys[def.Key] {
			continue
		}
		if snapshot[def.Stat] >= def.Threshold {
			qualified = append(qualified, def)
		}
	}
	return qualified
}

// Award persists the award record for a definition and grants its star
// reward. The record is the source of truth: a star grant failure is
// logged and the achievement stays earned. Returns ErrAlreadyEarned if
// a concurrent pass won the insert race.
func (s *AchievementService) Award(userID uint, def AchievementDefinition) error {
	record := models.UserAchievement{
		UserID:         userID,
		AchievementKey: def.Key,
		Category:       def.Category,
		AwardedStars:   def.RewardStars,
		EarnedAt:       time.Now().UTC(),
	}

	if err := s.awards.Insert(&record); err != nil {
		if errors.Is(err, ErrAlreadyEarned) {
			return ErrAlreadyEarned
		}
		return fmt.Errorf("insert award record: %w", err)
	}

	if def.RewardStars > 0 {
		desc := fmt.Sprintf("Achievement: %s", def.Name)
		if err := s.ledger.Grant(userID, def.RewardStars, "achievement", desc); err != nil {
			log.Printf("Star grant failed for user %d achievement %s: %v", userID, def.Key, err)
		}
	}

	if s.notifier != nil {
		s.notifier.AchievementEarned(userID, def)
	}

	return nil
}

// CheckAndAward runs one evaluation pass for a user: take a single
// snapshot, find newly qualifying definitions, award them sequentially.
// One award's failure does not block the rest of the batch.
func (s *AchievementService) CheckAndAward(userID uint) ([]AchievementDefinition, error) {
	earned, err := s.awards.ListEarned(userID)
	if err != nil {
		return nil, fmt.Errorf("list earned achievements: %w", err)
	}

	earnedKeys := make(map[string]bool, len(earned))
	for _, record := range earned {
		earnedKeys[record.AchievementKey] = true
	}

	snapshot := s.stats.Snapshot(userID)

	var awarded []AchievementDefinition
	for _, def := range s.Evaluate(snapshot, earnedKeys) {
		if err := s.Award(userID, def); err != nil {
			if errors.Is(err, ErrAlreadyEarned) {
				continue
			}
			log.Printf("Award failed for user %d achievement %s: %v", userID, def.Key, err)
			continue
		}
		awarded = append(awarded, def)
	}

	return awarded, nil
}

// EarnedAchievement pairs a catalog definition with its award record.
type EarnedAchievement struct {
	AchievementDefinition
	EarnedAt time.Time `json:"earned_at"`
}

// AchievementProgress reports how close the user is to an unearned
// achievement, clamped to the threshold.
type AchievementProgress struct {
	Current  int `json:"current"`
	Required int `json:"required"`
}

// AvailableAchievement is a not-yet-earned catalog entry with live
// progress toward its threshold.
type AvailableAchievement struct {
	AchievementDefinition
	Progress AchievementProgress `json:"progress"`
}

// Earned partitions the catalog to the definitions the user holds,
// carrying each record's earned timestamp.
func (s *AchievementService) Earned(userID uint) ([]EarnedAchievement, error) {
	records, err := s.awards.ListEarned(userID)
	if err != nil {
		return nil, err
	}

	earnedAt := make(map[string]time.Time, len(records))
	for _, record := range records {
		earnedAt[record.AchievementKey] = record.EarnedAt
	}

	var result []EarnedAchievement
	for _, def := range s.catalog {
		if at, ok := earnedAt[def.Key]; ok {
			result = append(result, EarnedAchievement{AchievementDefinition: def, EarnedAt: at})
		}
	}
	return result, nil
}

// Available returns the definitions the user has not earned yet, with
// progress read from a fresh statistic snapshot.
func (s *AchievementService) Available(userID uint) ([]AvailableAchievement, error) {
	records, err := s.awards.ListEarned(userID)
	if err != nil {
		return nil, err
	}

	earnedKeys := make(map[string]bool, len(records))
	for _, record := range records {
		earnedKeys[record.AchievementKey] = true
	}

	snapshot := s.stats.Snapshot(userID)

	var result []AvailableAchievement
	for _, def := range s.catalog {
		if earnedKeys[def.Key] {
			continue
		}
		current := snapshot[def.Stat]
		if current > def.Threshold {
			current = def.Threshold
		}
		result = append(result, AvailableAchievement{
			AchievementDefinition: def,
			Progress:              AchievementProgress{Current: current, Required: def.Threshold},
		})
	}
	return result, nil
}
