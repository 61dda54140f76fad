// services/cleanup.go - User deletion and background guest cleanup
package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"uplife/database"
	"uplife/models"

	"gorm.io/gorm"
)

// DeleteUsers removes user accounts together with every row tied to
// them. Likes, follows and referral links pointing at other users are
// removed too, so social statistics never count deleted accounts. Both
// deletion paths (admin and guest cleanup) go through here.
func DeleteUsers(db *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// Reactions by other users on the deleted users' posts go
		// first, while the posts still exist.
		if err := tx.Where("post_id IN (SELECT id FROM posts WHERE user_id IN ?)", ids).
			Delete(&models.PostReaction{}).Error; err != nil {
			return err
		}

		for _, model := range []interface{}{
			&models.Task{},
			&models.Habit{},
			&models.HabitCompletion{},
			&models.UserLevel{},
			&models.UserStars{},
			&models.StarTransaction{},
			&models.UserAchievement{},
			&models.Post{},
			&models.PostReaction{},
		} {
			if err := tx.Where("user_id IN ?", ids).Delete(model).Error; err != nil {
				return err
			}
		}

		// Follows and referral links reference users from two columns.
		if err := tx.Where("follower_id IN ? OR following_id IN ?", ids, ids).
			Delete(&models.Subscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("referrer_id IN ? OR referred_id IN ?", ids, ids).
			Delete(&models.Referral{}).Error; err != nil {
			return err
		}

		return tx.Where("id IN ?", ids).Delete(&models.User{}).Error
	})
}

// CleanupService periodically removes guest accounts that have been
// inactive past the retention window, along with their data.
type CleanupService struct {
	db            *gorm.DB
	retentionDays int
	interval      time.Duration
	stop          chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes and starts the singleton cleanup
// service unless disabled via GUEST_CLEANUP_ENABLED=false.
func InitCleanupService() {
	if os.Getenv("GUEST_CLEANUP_ENABLED") == "false" {
		log.Println("Guest cleanup disabled")
		return
	}

	retention := 14
	if v, err := strconv.Atoi(os.Getenv("GUEST_RETENTION_DAYS")); err == nil && v > 0 {
		retention = v
	}

	cleanupService = &CleanupService{
		db:            database.GetDB(),
		retentionDays: retention,
		interval:      6 * time.Hour,
		stop:          make(chan struct{}),
	}
	go cleanupService.run()
}

// GetCleanupService returns the initialized cleanup service, nil if
// cleanup is disabled.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Stop stops the background worker.
func (s *CleanupService) Stop() {
	close(s.stop)
}

func (s *CleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.CleanupGuestUsers(); err != nil {
				log.Printf("Guest cleanup failed: %v", err)
			}
		case <-s.stop:
			return
		}
	}
}

// CleanupGuestUsers deletes guest accounts inactive beyond the
// retention window together with everything they own or touched.
func (s *CleanupService) CleanupGuestUsers() error {
	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)

	var stale []models.User
	if err := s.db.Where("is_guest = ? AND last_login < ?", true, cutoff).Find(&stale).Error; err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	ids := make([]uint, len(stale))
	for i, user := range stale {
		ids[i] = user.ID
	}

	if err := DeleteUsers(s.db, ids); err != nil {
		return err
	}

	log.Printf("✅ Cleaned up %d stale guest accounts", len(stale))
	return nil
}
