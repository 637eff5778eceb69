package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddRoleEmbed(t *testing.T) {
	db := setupTestDB(t)

	info, err := AddRoleEmbed(db, "Pronouns", testGuildID, testChannelID, testMessageID)
	require.NoError(t, err)
	require.Equal(t, "Pronouns", info.Name)
	require.NotZero(t, info.ID)
}

func TestAddRoleEmbedRejectsDuplicate(t *testing.T) {
	db := setupTestDB(t)

	_, err := AddRoleEmbed(db, "Pronouns", testGuildID, testChannelID, testMessageID)
	require.NoError(t, err)

	_, err = AddRoleEmbed(db, "Pronouns again", testGuildID, testChannelID, testMessageID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestAddRoleEmbedRejectsShortIDs(t *testing.T) {
	db := setupTestDB(t)

	_, err := AddRoleEmbed(db, "Pronouns", 42, testChannelID, testMessageID)
	require.Error(t, err)
	_, err = AddRoleEmbed(db, "Pronouns", testGuildID, 42, testMessageID)
	require.Error(t, err)
	_, err = AddRoleEmbed(db, "Pronouns", testGuildID, testChannelID, 42)
	require.Error(t, err)
}

func TestGetAllRoleEmbedsErrorsWhenEmpty(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetAllRoleEmbeds(db, testGuildID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = AddRoleEmbed(db, "Pronouns", testGuildID, testChannelID, testMessageID)
	require.NoError(t, err)

	infos, err := GetAllRoleEmbeds(db, testGuildID)
	require.NoError(t, err)
	require.Len(t, infos, 1)
}

func TestGetRoleEmbed(t *testing.T) {
	db := setupTestDB(t)

	added, err := AddRoleEmbed(db, "Pronouns", testGuildID, testChannelID, testMessageID)
	require.NoError(t, err)

	got, err := GetRoleEmbed(db, testGuildID, added.ID)
	require.NoError(t, err)
	require.Equal(t, added, got)

	_, err = GetRoleEmbed(db, testGuildID, added.ID+1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveRoleEmbed(t *testing.T) {
	db := setupTestDB(t)

	added, err := AddRoleEmbed(db, "Pronouns", testGuildID, testChannelID, testMessageID)
	require.NoError(t, err)

	removed, err := RemoveRoleEmbed(db, added.ID)
	require.NoError(t, err)
	require.True(t, removed)

	removed, err = RemoveRoleEmbed(db, added.ID)
	require.NoError(t, err)
	require.False(t, removed)
}
