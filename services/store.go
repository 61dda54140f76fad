// services/store.go - GORM-backed stores for progression and awards
package services

import (
	"errors"
	"fmt"
	"time"

	"uplife/models"

	"gorm.io/gorm"
)

// GormProgressionStore persists progression state in the user_levels
// table. XP and counter updates are single-statement SQL increments so
// concurrent grants never lose an update.
type GormProgressionStore struct {
	db *gorm.DB
}

func NewGormProgressionStore(db *gorm.DB) *GormProgressionStore {
	return &GormProgressionStore{db: db}
}

// GetOrInit returns the user's progression row, creating the zero
// state (level 1, 0 XP) for first-time users.
func (s *GormProgressionStore) GetOrInit(userID uint) (models.UserLevel, error) {
	var state models.UserLevel
	err := s.db.Where(models.UserLevel{UserID: userID}).
		Attrs(models.UserLevel{CurrentLevel: 1}).
		FirstOrCreate(&state).Error
	if err != nil {
		return models.UserLevel{}, fmt.Errorf("get or init progression: %w", err)
	}
	return state, nil
}

// AddXP increments total_xp atomically and returns the new total.
func (s *GormProgressionStore) AddXP(userID uint, amount int) (int, error) {
	newTotal, err := s.incrementColumn(userID, "total_xp", amount)
	if err != nil {
		return 0, fmt.Errorf("add xp: %w", err)
	}
	return newTotal, nil
}

func (s *GormProgressionStore) SetLevel(userID uint, level int) error {
	return s.db.Model(&models.UserLevel{}).
		Where("user_id = ?", userID).
		UpdateColumn("current_level", level).Error
}

func (s *GormProgressionStore) IncrementTasks(userID uint) (int, error) {
	return s.incrementColumn(userID, "tasks_completed", 1)
}

func (s *GormProgressionStore) IncrementHabits(userID uint) (int, error) {
	return s.incrementColumn(userID, "habits_completed", 1)
}

// incrementColumn bumps a counter with UPDATE ... RETURNING, creating
// the progression row first if the user has none yet.
func (s *GormProgressionStore) incrementColumn(userID uint, column string, amount int) (int, error) {
	query := fmt.Sprintf(
		"UPDATE user_levels SET %s = %s + ?, updated_at = ? WHERE user_id = ? RETURNING %s",
		column, column, column,
	)

	var value int
	res := s.db.Raw(query, amount, time.Now().UTC(), userID).Scan(&value)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := s.GetOrInit(userID); err != nil {
			return 0, err
		}
		res = s.db.Raw(query, amount, time.Now().UTC(), userID).Scan(&value)
		if res.Error != nil {
			return 0, res.Error
		}
	}
	return value, nil
}

// GormAwardStore persists award records. The unique index on
// (user_id, achievement_key) backs the once-only guarantee; a losing
// concurrent insert surfaces as ErrAlreadyEarned.
type GormAwardStore struct {
	db *gorm.DB
}

func NewGormAwardStore(db *gorm.DB) *GormAwardStore {
	return &GormAwardStore{db: db}
}

func (s *GormAwardStore) ListEarned(userID uint) ([]models.UserAchievement, error) {
	var records []models.UserAchievement
	err := s.db.Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&records).Error
	return records, err
}

func (s *GormAwardStore) Insert(record *models.UserAchievement) error {
	if err := s.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyEarned
		}
		return err
	}
	return nil
}
