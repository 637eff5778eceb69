package database

import (
	"testing"

	"mrfriendly/model"

	"github.com/stretchr/testify/require"
)

func TestAddOrGetSettingsCreatesDefaults(t *testing.T) {
	db := setupTestDB(t)

	s, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)
	require.Equal(t, testGuildID, s.GuildID)
	require.Zero(t, s.ModRoleID)
	require.Zero(t, s.VerifiedRoleID)
	require.EqualValues(t, 60, s.MsgTimeout)

	// A guild row must back the settings row.
	var guildID int64
	require.NoError(t, db.Get(&guildID, `SELECT guild_id FROM guilds WHERE guild_id = ?`, testGuildID))
	require.Equal(t, testGuildID, guildID)
}

func TestAddOrGetSettingsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	first, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)
	second, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM settings WHERE guild_id = ?`, testGuildID))
	require.Equal(t, 1, count)
}

func TestAddOrGetSettingsRejectsShortID(t *testing.T) {
	db := setupTestDB(t)
	_, err := AddOrGetSettings(db, 12345)
	require.Error(t, err)
	require.Contains(t, err.Error(), "too short")
}

func TestUpdateSettingsProperty(t *testing.T) {
	db := setupTestDB(t)
	s, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)

	updated, err := UpdateSettingsProperty(db, s, model.FieldModRoleID, testUserID)
	require.NoError(t, err)
	require.Equal(t, testUserID, updated.ModRoleID)

	fresh, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)
	require.Equal(t, testUserID, fresh.ModRoleID)
}

func TestUpdateSettingsPropertyRejectsUnknownField(t *testing.T) {
	db := setupTestDB(t)
	s, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)

	_, err = UpdateSettingsProperty(db, s, model.SettingsField("guild_id"), testGuildID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a valid settings property")
}

func TestUpdateSettingsPropertyRejectsShortSnowflake(t *testing.T) {
	db := setupTestDB(t)
	s, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)

	_, err = UpdateSettingsProperty(db, s, model.FieldWelcomeChannelID, 42)
	require.Error(t, err)
	require.Contains(t, err.Error(), "too short")

	fresh, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)
	require.Zero(t, fresh.WelcomeChannelID)
}

func TestUpdateSettingsPropertyAllowsSmallTimeout(t *testing.T) {
	db := setupTestDB(t)
	s, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)

	updated, err := UpdateSettingsProperty(db, s, model.FieldMsgTimeout, 15)
	require.NoError(t, err)
	require.EqualValues(t, 15, updated.MsgTimeout)
}

func TestUpdateSettingsPropertyChecksGuildStillExists(t *testing.T) {
	db := setupTestDB(t)
	s, err := AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM settings WHERE guild_id = ?`, testGuildID)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM guilds WHERE guild_id = ?`, testGuildID)
	require.NoError(t, err)

	_, err = UpdateSettingsProperty(db, s, model.FieldModRoleID, testUserID)
	require.ErrorIs(t, err, ErrNotFound)
}
