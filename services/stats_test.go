package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateSnapshotDegradesFailedReaders(t *testing.T) {
	readers := map[StatName]statReader{
		StatStreak: func(userID uint) (int, error) {
			return 12, nil
		},
		StatTasksCompleted: func(userID uint) (int, error) {
			return 0, errors.New("table locked")
		},
		StatFollowersCount: func(userID uint) (int, error) {
			return 4, nil
		},
	}

	got := aggregateSnapshot(7, readers)

	// The failed reader degrades to 0 without touching the others
	assert.Equal(t, 12, got[StatStreak])
	assert.Equal(t, 0, got[StatTasksCompleted])
	assert.Equal(t, 4, got[StatFollowersCount])
	assert.Len(t, got, 3)
}

func TestAggregateSnapshotMissingStatReadsZero(t *testing.T) {
	got := aggregateSnapshot(7, map[StatName]statReader{})
	assert.Empty(t, got)
	assert.Equal(t, 0, got[StatLikesReceived], "missing entries read as zero")
}
