package services

import (
	"errors"
	"testing"

	"uplife/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgressionStore keeps progression state in memory.
type fakeProgressionStore struct {
	totals      map[uint]int
	levels      map[uint]int
	tasks       map[uint]int
	habits      map[uint]int
	addErr      error
	setLevelErr error
}

func newFakeProgressionStore() *fakeProgressionStore {
	return &fakeProgressionStore{
		totals: make(map[uint]int),
		levels: make(map[uint]int),
		tasks:  make(map[uint]int),
		habits: make(map[uint]int),
	}
}

func (f *fakeProgressionStore) GetOrInit(userID uint) (models.UserLevel, error) {
	level := f.levels[userID]
	if level == 0 {
		level = 1
	}
	return models.UserLevel{
		UserID:          userID,
		TotalXP:         f.totals[userID],
		CurrentLevel:    level,
		TasksCompleted:  f.tasks[userID],
		HabitsCompleted: f.habits[userID],
	}, nil
}

func (f *fakeProgressionStore) AddXP(userID uint, amount int) (int, error) {
	if f.addErr != nil {
		return 0, f.addErr
	}
	f.totals[userID] += amount
	return f.totals[userID], nil
}

func (f *fakeProgressionStore) SetLevel(userID uint, level int) error {
	if f.setLevelErr != nil {
		return f.setLevelErr
	}
	f.levels[userID] = level
	return nil
}

func (f *fakeProgressionStore) IncrementTasks(userID uint) (int, error) {
	f.tasks[userID]++
	return f.tasks[userID], nil
}

func (f *fakeProgressionStore) IncrementHabits(userID uint) (int, error) {
	f.habits[userID]++
	return f.habits[userID], nil
}

func TestDeriveLevel(t *testing.T) {
	tests := []struct {
		totalXP     int
		level       int
		xpIntoLevel int
		xpForNext   int
	}{
		{0, 1, 0, 100},
		{99, 1, 99, 100},
		{100, 2, 0, 200},
		{250, 2, 150, 200},
		{299, 2, 199, 200},
		{300, 3, 0, 300},
		{600, 4, 0, 400},
		{-50, 1, 0, 100}, // negative clamps to zero
	}

	for _, tt := range tests {
		got := DeriveLevel(tt.totalXP)
		assert.Equal(t, tt.level, got.Level, "level for %d XP", tt.totalXP)
		assert.Equal(t, tt.xpIntoLevel, got.XPIntoLevel, "xp into level for %d XP", tt.totalXP)
		assert.Equal(t, tt.xpForNext, got.XPForNext, "xp for next for %d XP", tt.totalXP)
	}
}

func TestGrantXP(t *testing.T) {
	t.Run("accumulates and detects level up", func(t *testing.T) {
		store := newFakeProgressionStore()
		svc := NewProgressionService(store)

		first, err := svc.GrantXP(1, 50, XPSourceStreak3)
		require.NoError(t, err)
		assert.Equal(t, 50, first.TotalXP)
		assert.Equal(t, 1, first.NewLevel)
		assert.False(t, first.LeveledUp)

		second, err := svc.GrantXP(1, 100, XPSourceStreak7)
		require.NoError(t, err)
		assert.Equal(t, 150, second.TotalXP)
		assert.Equal(t, 2, second.NewLevel)
		assert.True(t, second.LeveledUp)
		assert.Equal(t, 2, store.levels[1], "stored level cache updated")
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc := NewProgressionService(newFakeProgressionStore())

		_, err := svc.GrantXP(1, 0, XPSourceTask)
		assert.Error(t, err)

		_, err = svc.GrantXP(1, -25, XPSourceTask)
		assert.Error(t, err)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store := newFakeProgressionStore()
		store.addErr = errors.New("connection lost")
		svc := NewProgressionService(store)

		_, err := svc.GrantXP(1, 25, XPSourceTask)
		assert.Error(t, err)
	})

	t.Run("level cache write failure is not fatal", func(t *testing.T) {
		store := newFakeProgressionStore()
		store.setLevelErr = errors.New("write failed")
		svc := NewProgressionService(store)

		got, err := svc.GrantXP(1, 150, XPSourceStreak7)
		require.NoError(t, err)
		assert.True(t, got.LeveledUp)
		assert.Equal(t, 2, got.NewLevel)
	})
}

func TestGrantXPFor(t *testing.T) {
	store := newFakeProgressionStore()
	svc := NewProgressionService(store)

	got, err := svc.GrantXPFor(1, XPSourceTask)
	require.NoError(t, err)
	assert.Equal(t, 25, got.Amount)
	assert.Equal(t, 25, got.TotalXP)

	got, err = svc.GrantXPFor(1, XPSourceHabit)
	require.NoError(t, err)
	assert.Equal(t, 15, got.Amount)
	assert.Equal(t, 40, got.TotalXP)

	// Unknown source carries no reward, so the grant is rejected
	_, err = svc.GrantXPFor(1, XPSource("mystery"))
	assert.Error(t, err)
}

func TestXPRewardFor(t *testing.T) {
	assert.Equal(t, 25, XPRewardFor(XPSourceTask))
	assert.Equal(t, 15, XPRewardFor(XPSourceHabit))
	assert.Equal(t, 10, XPRewardFor(XPSourceStar))
	assert.Equal(t, 50, XPRewardFor(XPSourceStreak3))
	assert.Equal(t, 100, XPRewardFor(XPSourceStreak7))
	assert.Equal(t, 500, XPRewardFor(XPSourceStreak30))
	assert.Equal(t, 0, XPRewardFor(XPSource("mystery")))
}

func TestLevelTitle(t *testing.T) {
	assert.Equal(t, "Newbie", LevelTitle(1))
	assert.Equal(t, "Master", LevelTitle(5))
	assert.Equal(t, "Champion", LevelTitle(10))
	assert.Equal(t, "Champion", LevelTitle(37), "titles cap at level 10")
	assert.Equal(t, "Newbie", LevelTitle(0))
	assert.Equal(t, "Newbie", LevelTitle(-3))
}

func TestProgression(t *testing.T) {
	store := newFakeProgressionStore()
	svc := NewProgressionService(store)

	// Fresh user gets the zero state
	info, err := svc.Progression(42)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, "Newbie", info.Title)
	assert.Equal(t, 0, info.TotalXP)
	assert.Equal(t, 100, info.XPForNext)
	assert.Equal(t, 0, info.ProgressPercent)

	_, err = svc.GrantXP(42, 250, XPSourceStreak30)
	require.NoError(t, err)

	info, err = svc.Progression(42)
	require.NoError(t, err)
	assert.Equal(t, 2, info.Level)
	assert.Equal(t, "Learner", info.Title)
	assert.Equal(t, 250, info.TotalXP)
	assert.Equal(t, 150, info.XPIntoLevel)
	assert.Equal(t, 200, info.XPForNext)
	assert.Equal(t, 75, info.ProgressPercent)

	// The percentage rounds to nearest: 199/200 into the level is
	// 99.5%, reported as 100
	store.totals[9] = 299
	info, err = svc.Progression(9)
	require.NoError(t, err)
	assert.Equal(t, 199, info.XPIntoLevel)
	assert.Equal(t, 100, info.ProgressPercent)
}
