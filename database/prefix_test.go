package database

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrefixes(t *testing.T) {
	db := setupTestDB(t)

	prefixes, err := GetPrefixes(db, testGuildID)
	require.NoError(t, err)
	require.Empty(t, prefixes)

	require.NoError(t, AddPrefix(db, testGuildID, "$"))
	require.NoError(t, AddPrefix(db, testGuildID, "!"))
	// Duplicates are a no-op.
	require.NoError(t, AddPrefix(db, testGuildID, "$"))

	prefixes, err = GetPrefixes(db, testGuildID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"$", "!"}, prefixes)

	require.NoError(t, DeletePrefix(db, testGuildID, "$"))
	prefixes, err = GetPrefixes(db, testGuildID)
	require.NoError(t, err)
	require.Equal(t, []string{"!"}, prefixes)

	require.NoError(t, ClearPrefixes(db, testGuildID))
	prefixes, err = GetPrefixes(db, testGuildID)
	require.NoError(t, err)
	require.Empty(t, prefixes)
}

func TestAddPrefixRejectsShortGuildID(t *testing.T) {
	db := setupTestDB(t)
	require.Error(t, AddPrefix(db, 42, "$"))
}
