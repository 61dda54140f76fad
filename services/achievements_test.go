package services

import (
	"errors"
	"testing"
	"time"

	"uplife/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStatSource serves a fixed snapshot.
type fakeStatSource struct {
	snapshot Snapshot
}

func (f *fakeStatSource) Snapshot(userID uint) Snapshot {
	return f.snapshot
}

// fakeAwardStore keeps award records in memory and enforces the
// one-record-per-key rule like the database unique index does.
type fakeAwardStore struct {
	records   map[uint]map[string]models.UserAchievement
	insertErr map[string]error
	listErr   error
}

func newFakeAwardStore() *fakeAwardStore {
	return &fakeAwardStore{
		records:   make(map[uint]map[string]models.UserAchievement),
		insertErr: make(map[string]error),
	}
}

func (f *fakeAwardStore) ListEarned(userID uint) ([]models.UserAchievement, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.UserAchievement
	for _, record := range f.records[userID] {
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeAwardStore) Insert(record *models.UserAchievement) error {
	if err := f.insertErr[record.AchievementKey]; err != nil {
		return err
	}
	if f.records[record.UserID] == nil {
		f.records[record.UserID] = make(map[string]models.UserAchievement)
	}
	if _, exists := f.records[record.UserID][record.AchievementKey]; exists {
		return ErrAlreadyEarned
	}
	f.records[record.UserID][record.AchievementKey] = *record
	return nil
}

type starGrant struct {
	userID uint
	amount int
}

type fakeStarLedger struct {
	grants   []starGrant
	grantErr error
}

func (f *fakeStarLedger) Grant(userID uint, amount int, txType, description string) error {
	if f.grantErr != nil {
		return f.grantErr
	}
	f.grants = append(f.grants, starGrant{userID: userID, amount: amount})
	return nil
}

type fakeNotifier struct {
	achievements []string
	levelUps     []int
}

func (f *fakeNotifier) AchievementEarned(userID uint, def AchievementDefinition) {
	f.achievements = append(f.achievements, def.Key)
}

func (f *fakeNotifier) LeveledUp(userID uint, level int, title string) {
	f.levelUps = append(f.levelUps, level)
}

func newTestAchievementService(snapshot Snapshot) (*AchievementService, *fakeAwardStore, *fakeStarLedger, *fakeNotifier) {
	awards := newFakeAwardStore()
	ledger := &fakeStarLedger{}
	notifier := &fakeNotifier{}
	svc := NewAchievementService(DefaultCatalog(), &fakeStatSource{snapshot: snapshot}, awards, ledger, notifier)
	return svc, awards, ledger, notifier
}

func TestEvaluateThresholds(t *testing.T) {
	svc, _, _, _ := newTestAchievementService(nil)

	keysOf := func(defs []AchievementDefinition) []string {
		var keys []string
		for _, def := range defs {
			keys = append(keys, def.Key)
		}
		return keys
	}

	t.Run("below threshold does not qualify", func(t *testing.T) {
		got := svc.Evaluate(Snapshot{StatStreak: 6}, nil)
		assert.Equal(t, []string{"streak_3"}, keysOf(got))
	})

	t.Run("threshold is inclusive", func(t *testing.T) {
		got := svc.Evaluate(Snapshot{StatStreak: 7}, nil)
		assert.Equal(t, []string{"streak_3", "streak_7"}, keysOf(got))
	})

	t.Run("earned keys are skipped", func(t *testing.T) {
		got := svc.Evaluate(Snapshot{StatStreak: 7}, map[string]bool{"streak_3": true})
		assert.Equal(t, []string{"streak_7"}, keysOf(got))
	})

	t.Run("empty snapshot qualifies nothing", func(t *testing.T) {
		got := svc.Evaluate(Snapshot{}, nil)
		assert.Empty(t, got)
	})

	t.Run("stats evaluate independently", func(t *testing.T) {
		got := svc.Evaluate(Snapshot{
			StatTasksCompleted: 50,
			StatFollowersCount: 5,
		}, nil)
		assert.Equal(t, []string{"tasks_10", "tasks_50", "followers_5"}, keysOf(got))
	})
}

func TestCheckAndAwardIdempotent(t *testing.T) {
	svc, awards, ledger, notifier := newTestAchievementService(Snapshot{
		StatStreak:         3,
		StatTasksCompleted: 10,
	})

	first, err := svc.CheckAndAward(7)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// A second pass over the same statistics awards nothing new
	second, err := svc.CheckAndAward(7)
	require.NoError(t, err)
	assert.Empty(t, second)

	assert.Len(t, awards.records[7], 2)
	assert.Equal(t, []starGrant{{userID: 7, amount: 5}, {userID: 7, amount: 5}}, ledger.grants)
	assert.Equal(t, []string{"streak_3", "tasks_10"}, notifier.achievements)
}

func TestAwardRaceTreatedAsEarned(t *testing.T) {
	svc, awards, _, _ := newTestAchievementService(Snapshot{StatStreak: 3})

	// Simulate a concurrent pass committing the record between our
	// ListEarned and Insert
	awards.insertErr["streak_3"] = ErrAlreadyEarned

	got, err := svc.CheckAndAward(7)
	require.NoError(t, err)
	assert.Empty(t, got, "a lost insert race is not a new award")
}

func TestAwardStarGrantFailureKeepsRecord(t *testing.T) {
	svc, awards, ledger, notifier := newTestAchievementService(Snapshot{StatStreak: 3})
	ledger.grantErr = errors.New("ledger down")

	got, err := svc.CheckAndAward(7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "streak_3", got[0].Key)

	// The record is the source of truth; the failed grant does not
	// roll it back
	assert.Contains(t, awards.records[7], "streak_3")
	assert.Equal(t, []string{"streak_3"}, notifier.achievements)
}

func TestCheckAndAwardOneFailureDoesNotBlockBatch(t *testing.T) {
	svc, awards, _, _ := newTestAchievementService(Snapshot{
		StatStreak:         3,
		StatTasksCompleted: 10,
		StatFollowersCount: 5,
	})
	awards.insertErr["tasks_10"] = errors.New("insert failed")

	got, err := svc.CheckAndAward(7)
	require.NoError(t, err)

	var keys []string
	for _, def := range got {
		keys = append(keys, def.Key)
	}
	assert.Equal(t, []string{"streak_3", "followers_5"}, keys)
}

func TestCheckAndAwardListFailure(t *testing.T) {
	svc, awards, _, _ := newTestAchievementService(Snapshot{StatStreak: 3})
	awards.listErr = errors.New("query failed")

	_, err := svc.CheckAndAward(7)
	assert.Error(t, err)
}

func TestEarnedCarriesTimestamps(t *testing.T) {
	svc, awards, _, _ := newTestAchievementService(nil)

	earnedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	awards.records[7] = map[string]models.UserAchievement{
		"tasks_10": {UserID: 7, AchievementKey: "tasks_10", EarnedAt: earnedAt},
	}

	got, err := svc.Earned(7)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tasks_10", got[0].Key)
	assert.Equal(t, "Beginner", got[0].Name)
	assert.Equal(t, earnedAt, got[0].EarnedAt)
}

func TestAvailableProgressClamped(t *testing.T) {
	svc, awards, _, _ := newTestAchievementService(Snapshot{
		StatStreak:         45,
		StatTasksCompleted: 3,
	})
	awards.records[7] = map[string]models.UserAchievement{
		"streak_3":  {UserID: 7, AchievementKey: "streak_3"},
		"streak_7":  {UserID: 7, AchievementKey: "streak_7"},
		"streak_14": {UserID: 7, AchievementKey: "streak_14"},
		"streak_30": {UserID: 7, AchievementKey: "streak_30"},
	}

	got, err := svc.Available(7)
	require.NoError(t, err)

	byKey := make(map[string]AvailableAchievement, len(got))
	for _, a := range got {
		byKey[a.Key] = a
	}

	assert.NotContains(t, byKey, "streak_30", "earned entries are excluded")

	require.Contains(t, byKey, "streak_60")
	assert.Equal(t, 45, byKey["streak_60"].Progress.Current)
	assert.Equal(t, 60, byKey["streak_60"].Progress.Required)

	// Progress never exceeds the threshold even when the raw stat does
	svc2, _, _, _ := newTestAchievementService(Snapshot{StatStreak: 45})
	got2, err := svc2.Available(7)
	require.NoError(t, err)
	for _, a := range got2 {
		if a.Key == "streak_3" {
			assert.Equal(t, 3, a.Progress.Current)
			assert.Equal(t, 3, a.Progress.Required)
		}
	}

	require.Contains(t, byKey, "tasks_10")
	assert.Equal(t, 3, byKey["tasks_10"].Progress.Current)
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	assert.Len(t, catalog, 17)

	seen := make(map[string]bool, len(catalog))
	for _, def := range catalog {
		assert.False(t, seen[def.Key], "duplicate key %s", def.Key)
		seen[def.Key] = true
		assert.Positive(t, def.Threshold, "%s threshold", def.Key)
		assert.Positive(t, def.RewardStars, "%s reward", def.Key)
		assert.NotEmpty(t, def.Category, "%s category", def.Key)
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Streaks", CategoryLabel(CategoryStreak))
	assert.Equal(t, "Tasks", CategoryLabel(CategoryTasks))
	assert.Equal(t, "unknown_category", CategoryLabel("unknown_category"))
}
