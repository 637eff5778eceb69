package database

import (
	"testing"
	"time"

	"mrfriendly/model"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupTestUser(t *testing.T) (*sqlx.DB, *model.User) {
	t.Helper()
	db := setupTestDB(t)
	u, err := AddOrGetUser(db, testGuildID, testUserID)
	require.NoError(t, err)
	return db, u
}

func TestAddOrGetUserCreatesOnce(t *testing.T) {
	db := setupTestDB(t)

	first, err := AddOrGetUser(db, testGuildID, testUserID)
	require.NoError(t, err)
	require.Equal(t, testGuildID, first.GuildID)
	require.Equal(t, testUserID, first.UserID)
	require.Equal(t, first.CreatedAt, first.LastActiveAt)
	require.False(t, first.Verified)
	require.False(t, first.Banned)
	require.False(t, first.Cleaned)

	second, err := AddOrGetUser(db, testGuildID, testUserID)
	require.NoError(t, err)
	require.Equal(t, first.CreatedAt, second.CreatedAt)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM users WHERE guild_id = ? AND user_id = ?`, testGuildID, testUserID))
	require.Equal(t, 1, count)
}

func TestUpdateUserFlags(t *testing.T) {
	db, u := setupTestUser(t)

	require.NoError(t, UpdateVerified(db, u, true))
	require.True(t, u.Verified)
	require.NoError(t, UpdateBanned(db, u, true))
	require.True(t, u.Banned)
	require.NoError(t, UpdateCleaned(db, u, true))
	require.True(t, u.Cleaned)

	fresh, err := AddOrGetUser(db, testGuildID, testUserID)
	require.NoError(t, err)
	require.True(t, fresh.Verified)
	require.True(t, fresh.Banned)
	require.True(t, fresh.Cleaned)
}

func TestUpdateFlagChecksUserStillExists(t *testing.T) {
	db, u := setupTestUser(t)

	_, err := db.Exec(`DELETE FROM users WHERE guild_id = ? AND user_id = ?`, testGuildID, testUserID)
	require.NoError(t, err)

	require.ErrorIs(t, UpdateVerified(db, u, true), ErrNotFound)
}

func TestUpdateLastActive(t *testing.T) {
	db, u := setupTestUser(t)

	_, err := db.Exec(`UPDATE users SET last_active_at = 0 WHERE guild_id = ? AND user_id = ?`, testGuildID, testUserID)
	require.NoError(t, err)
	u.LastActiveAt = 0

	require.NoError(t, UpdateLastActive(db, u))
	require.InDelta(t, time.Now().Unix(), u.LastActiveAt, 5)
}

func TestLeaves(t *testing.T) {
	db, u := setupTestUser(t)

	leaves, err := GetLeaves(db, u, time.Now())
	require.NoError(t, err)
	require.Empty(t, leaves)

	_, err = AddLeave(db, u)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO user_leaves(user_id, created_at) VALUES(?, ?)`,
		testUserID, time.Now().Add(-time.Hour).Unix())
	require.NoError(t, err)

	leaves, err = GetLeaves(db, u, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, leaves, 2)

	// A cutoff before both departures filters them out.
	leaves, err = GetLeaves(db, u, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	require.Empty(t, leaves)
}

func TestAddInfractionDuplicateLinkIsNoop(t *testing.T) {
	db, u := setupTestUser(t)
	link := "https://discord.com/channels/1/2/3"

	inf, err := AddInfraction(db, u, link)
	require.NoError(t, err)
	require.NotNil(t, inf)
	require.Equal(t, link, inf.ReasonMsgLink)
	require.Len(t, u.Infractions, 1)

	dup, err := AddInfraction(db, u, link)
	require.NoError(t, err)
	require.Nil(t, dup)
	require.Len(t, u.Infractions, 1)
}

func TestRemoveInfraction(t *testing.T) {
	db, u := setupTestUser(t)

	inf, err := AddInfraction(db, u, "https://discord.com/channels/1/2/3")
	require.NoError(t, err)

	require.NoError(t, RemoveInfraction(db, u, inf.ID))
	require.Empty(t, u.Infractions)

	infractions, err := GetInfractions(db, u, time.Now().Add(time.Minute))
	require.NoError(t, err)
	require.Empty(t, infractions)

	// Removing it again must not error.
	require.NoError(t, RemoveInfraction(db, u, inf.ID))
}

func TestImageTracking(t *testing.T) {
	db, u := setupTestUser(t)

	img, err := AddImage(db, u, testChannelID, testMessageID)
	require.NoError(t, err)
	require.Equal(t, testChannelID, img.ChannelID)

	got, err := GetImage(db, u, testChannelID, testMessageID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, img.ID, got.ID)

	missing, err := GetImage(db, u, testChannelID, testMessageID+1)
	require.NoError(t, err)
	require.Nil(t, missing)

	all, err := GetAllImages(db, u)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, RemoveImage(db, u, *img))
	all, err = GetAllImages(db, u)
	require.NoError(t, err)
	require.Empty(t, all)

	// Removing a never-tracked image is a no-op.
	require.NoError(t, RemoveImage(db, u, model.Image{ID: 9999}))
}

func TestFindImageByMessage(t *testing.T) {
	db, u := setupTestUser(t)

	img, err := AddImage(db, u, testChannelID, testMessageID)
	require.NoError(t, err)

	found, err := FindImageByMessage(db, testGuildID, testChannelID, testMessageID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, img.ID, found.ID)
	require.Equal(t, testUserID, found.UserID)

	missing, err := FindImageByMessage(db, testGuildID, testChannelID, testMessageID+1)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestBannedAndUncleanUsers(t *testing.T) {
	db, u := setupTestUser(t)
	require.NoError(t, UpdateBanned(db, u, true))

	other, err := AddOrGetUser(db, testGuildID, testUserID+1)
	require.NoError(t, err)
	require.NoError(t, UpdateCleaned(db, other, true))

	banned, err := GetBannedUsers(db, testGuildID)
	require.NoError(t, err)
	require.Len(t, banned, 1)
	require.Equal(t, testUserID, banned[0].UserID)

	unclean, err := GetUncleanUsers(db, testGuildID)
	require.NoError(t, err)
	require.Len(t, unclean, 1)
	require.Equal(t, testUserID, unclean[0].UserID)
}
