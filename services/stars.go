// services/stars.go - Star currency ledger and daily streak upkeep
package services

import (
	"errors"
	"fmt"
	"time"

	"uplife/models"

	"gorm.io/gorm"
)

// StarService owns the star balance, the append-only transaction
// ledger, and the daily completion streak counter.
type StarService struct {
	db *gorm.DB
}

func NewStarService(db *gorm.DB) *StarService {
	return &StarService{db: db}
}

// Grant credits stars to a user: one ledger row plus an atomic balance
// increment. Implements the StarLedger contract used by achievement
// awards.
func (s *StarService) Grant(userID uint, amount int, txType, description string) error {
	if amount <= 0 {
		return fmt.Errorf("star amount must be positive, got %d", amount)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		record := models.StarTransaction{
			UserID:      userID,
			Amount:      amount,
			Type:        txType,
			Description: description,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("create star transaction: %w", err)
		}

		res := tx.Model(&models.UserStars{}).
			Where("user_id = ?", userID).
			UpdateColumn("balance", gorm.Expr("balance + ?", amount))
		if res.Error != nil {
			return fmt.Errorf("increment star balance: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			stars := models.UserStars{UserID: userID, Balance: amount}
			if err := tx.Create(&stars).Error; err != nil {
				return fmt.Errorf("init star balance: %w", err)
			}
		}

		// Lifetime stars-earned counter on the progression row. The
		// row may not exist yet when stars arrive before any task or
		// habit completion, e.g. a social achievement.
		res = tx.Model(&models.UserLevel{}).
			Where("user_id = ?", userID).
			UpdateColumn("stars_earned", gorm.Expr("stars_earned + ?", amount))
		if res.Error != nil {
			return fmt.Errorf("increment stars earned: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			level := models.UserLevel{UserID: userID, CurrentLevel: 1, StarsEarned: amount}
			if err := tx.Create(&level).Error; err != nil {
				return fmt.Errorf("init stars earned: %w", err)
			}
		}
		return nil
	})
}

// Balance returns the user's current star balance, zero for users
// without a row yet.
func (s *StarService) Balance(userID uint) (int, error) {
	var stars models.UserStars
	if err := s.db.Where("user_id = ?", userID).First(&stars).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return stars.Balance, nil
}

// Transactions lists the most recent ledger entries for a user.
func (s *StarService) Transactions(userID uint, limit int) ([]models.StarTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var txs []models.StarTransaction
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// BumpDailyStreak advances the consecutive-day completion streak on a
// qualifying action: at most one increment per calendar day, reset to 1
// after a missed day. The bump is a single guarded UPDATE, so exactly
// one of several concurrent same-day completions observes bumped=true
// and one-time milestone bonuses cannot pay twice.
func (s *StarService) BumpDailyStreak(userID uint) (int, bool, error) {
	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	var streak int
	res := s.db.Raw(`
		UPDATE user_stars SET
			current_streak_days = CASE WHEN last_activity_date >= ? THEN current_streak_days + 1 ELSE 1 END,
			best_streak_days = CASE
				WHEN (CASE WHEN last_activity_date >= ? THEN current_streak_days + 1 ELSE 1 END) > best_streak_days
				THEN (CASE WHEN last_activity_date >= ? THEN current_streak_days + 1 ELSE 1 END)
				ELSE best_streak_days
			END,
			last_activity_date = ?,
			updated_at = ?
		WHERE user_id = ? AND (last_activity_date IS NULL OR last_activity_date < ?)
		RETURNING current_streak_days`,
		yesterdayStart, yesterdayStart, yesterdayStart, now, now, userID, todayStart).Scan(&streak)
	if res.Error != nil {
		return 0, false, res.Error
	}
	if res.RowsAffected > 0 {
		return streak, true, nil
	}

	// Nothing updated: either the user has no row yet or today is
	// already counted.
	var stars models.UserStars
	err := s.db.Where("user_id = ?", userID).First(&stars).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stars = models.UserStars{UserID: userID, CurrentStreakDays: 1, BestStreakDays: 1, LastActivityDate: &now}
		if err := s.db.Create(&stars).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost the first-bump race; the winner counted today.
				if err := s.db.Where("user_id = ?", userID).First(&stars).Error; err != nil {
					return 0, false, err
				}
				return stars.CurrentStreakDays, false, nil
			}
			return 0, false, err
		}
		return 1, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	return stars.CurrentStreakDays, false, nil
}

// StreakBonusSource maps a just-reached streak length to its one-time
// XP bonus source. Only exact milestone days pay out.
func StreakBonusSource(days int) (XPSource, bool) {
	switch days {
	case 3:
		return XPSourceStreak3, true
	case 7:
		return XPSourceStreak7, true
	case 30:
		return XPSourceStreak30, true
	}
	return "", false
}
