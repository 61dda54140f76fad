package services

import (
	"testing"
	"time"

	"uplife/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteUsersRemovesSocialRows(t *testing.T) {
	db := newTestDB(t)

	alice := models.User{Username: "alice", Password: "x", ReferralCode: "ALICE123"}
	require.NoError(t, db.Create(&alice).Error)
	guest := models.User{Username: "Guest_1a2b", IsGuest: true, ReferralCode: "GUEST123"}
	require.NoError(t, db.Create(&guest).Error)

	post := models.Post{UserID: alice.ID, Text: "hit a 30 day streak"}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&models.PostReaction{PostID: post.ID, UserID: guest.ID, ReactionType: "like"}).Error)
	require.NoError(t, db.Create(&models.Subscription{FollowerID: guest.ID, FollowingID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Referral{ReferrerID: alice.ID, ReferredID: guest.ID, CodeUsed: "ALICE123"}).Error)
	require.NoError(t, db.Create(&models.Task{UserID: guest.ID, Title: "try the app"}).Error)

	// The guest's like and follow count toward alice before deletion
	stats := NewGormStatSource(db)
	snap := stats.Snapshot(alice.ID)
	require.Equal(t, 1, snap[StatLikesReceived])
	require.Equal(t, 1, snap[StatFollowersCount])

	require.NoError(t, DeleteUsers(db, []uint{guest.ID}))

	// Deleted accounts no longer feed anyone's social statistics
	snap = stats.Snapshot(alice.ID)
	assert.Equal(t, 0, snap[StatLikesReceived])
	assert.Equal(t, 0, snap[StatFollowersCount])

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
	db.Model(&models.Subscription{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.Referral{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.Task{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// Alice's own post survives
	db.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestDeleteUsersRemovesReactionsOnOwnPosts(t *testing.T) {
	db := newTestDB(t)

	guest := models.User{Username: "Guest_3c4d", IsGuest: true, ReferralCode: "GUEST456"}
	require.NoError(t, db.Create(&guest).Error)
	bob := models.User{Username: "bob", Password: "x", ReferralCode: "BOB12345"}
	require.NoError(t, db.Create(&bob).Error)

	post := models.Post{UserID: guest.ID, Text: "first post"}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&models.PostReaction{PostID: post.ID, UserID: bob.ID, ReactionType: "like"}).Error)

	require.NoError(t, DeleteUsers(db, []uint{guest.ID}))

	// Bob's like on the deleted post does not linger as an orphan
	var count int64
	db.Model(&models.PostReaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
	db.Model(&models.Post{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteUsersEmptyInput(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, DeleteUsers(db, nil))
}

func TestCleanupGuestUsersPurgesStaleGuests(t *testing.T) {
	db := newTestDB(t)
	svc := &CleanupService{db: db, retentionDays: 14}

	old := time.Now().UTC().AddDate(0, 0, -30)
	stale := models.User{Username: "Guest_old", IsGuest: true, ReferralCode: "GOLD1234", LastLogin: old}
	require.NoError(t, db.Create(&stale).Error)
	fresh := models.User{Username: "Guest_new", IsGuest: true, ReferralCode: "GNEW1234", LastLogin: time.Now().UTC()}
	require.NoError(t, db.Create(&fresh).Error)
	registered := models.User{Username: "carol", Password: "x", ReferralCode: "CAROL123", LastLogin: old}
	require.NoError(t, db.Create(&registered).Error)

	// The stale guest follows the registered user
	require.NoError(t, db.Create(&models.Subscription{FollowerID: stale.ID, FollowingID: registered.ID}).Error)

	require.NoError(t, svc.CleanupGuestUsers())

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	names := make([]string, 0, len(users))
	for _, user := range users {
		names = append(names, user.Username)
	}
	assert.ElementsMatch(t, []string{"Guest_new", "carol"}, names)

	// The phantom follow went with the account
	stats := NewGormStatSource(db)
	assert.Equal(t, 0, stats.Snapshot(registered.ID)[StatFollowersCount])
}
