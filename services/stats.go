// services/stats.go - Statistic aggregation feeding achievement checks
package services

import (
	"errors"
	"log"

	"uplife/models"

	"gorm.io/gorm"
)

type statReader func(userID uint) (int, error)

// aggregateSnapshot runs every reader and assembles the snapshot. A
// failed reader degrades its statistic to 0 so a single broken signal
// never fails the whole evaluation pass.
func aggregateSnapshot(userID uint, readers map[StatName]statReader) Snapshot {
	snapshot := make(Snapshot, len(readers))
	for name, read := range readers {
		value, err := read(userID)
		if err != nil {
			log.Printf("Stat %s read failed for user %d, using 0: %v", name, userID, err)
			value = 0
		}
		snapshot[name] = value
	}
	return snapshot
}

// GormStatSource reads the five tracked statistics straight from the
// database on every snapshot. No caching: evaluation always sees fresh
// values.
type GormStatSource struct {
	db *gorm.DB
}

func NewGormStatSource(db *gorm.DB) *GormStatSource {
	return &GormStatSource{db: db}
}

func (s *GormStatSource) Snapshot(userID uint) Snapshot {
	return aggregateSnapshot(userID, map[StatName]statReader{
		StatStreak:          s.streak,
		StatTasksCompleted:  s.tasksCompleted,
		StatHabitsCompleted: s.habitsCompleted,
		StatLikesReceived:   s.likesReceived,
		StatFollowersCount:  s.followersCount,
	})
}

// streak reads the daily completion streak maintained by the star
// service. A missing row means the user never completed anything.
func (s *GormStatSource) streak(userID uint) (int, error) {
	var stars models.UserStars
	if err := s.db.Where("user_id = ?", userID).First(&stars).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return stars.CurrentStreakDays, nil
}

func (s *GormStatSource) tasksCompleted(userID uint) (int, error) {
	return s.levelCounter(userID, "tasks_completed")
}

func (s *GormStatSource) habitsCompleted(userID uint) (int, error) {
	return s.levelCounter(userID, "habits_completed")
}

func (s *GormStatSource) levelCounter(userID uint, column string) (int, error) {
	var value int
	err := s.db.Model(&models.UserLevel{}).
		Select(column).
		Where("user_id = ?", userID).
		Scan(&value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return value, nil
}

func (s *GormStatSource) likesReceived(userID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.PostReaction{}).
		Joins("JOIN posts ON posts.id = post_reactions.post_id").
		Where("posts.user_id = ? AND post_reactions.reaction_type = ?", userID, "like").
		Count(&count).Error
	return int(count), err
}

func (s *GormStatSource) followersCount(userID uint) (int, error) {
	var count int64
	err := s.db.Model(&models.Subscription{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return int(count), err
}
