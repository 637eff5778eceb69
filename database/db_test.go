package database

import (
	"path/filepath"
	"testing"

	"mrfriendly/model"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID   = int64(1259645744420360243)
	testUserID    = int64(987654321098765432)
	testChannelID = int64(112233445566778899)
	testMessageID = int64(998877665544332211)
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Init(path)
	require.NoError(t, err)
	_, err = AddOrGetSettings(db, testGuildID)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Init(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM settings WHERE guild_id = ?`, testGuildID))
	require.Equal(t, 1, count)
}

func TestInitSeedsVersionOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Init(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// A second bootstrap must not add another row.
	db, err = Init(path)
	require.NoError(t, err)
	defer db.Close()

	var versions []model.VersionInfo
	require.NoError(t, db.Select(&versions, `SELECT major, minor, revision, level FROM version`))
	require.Len(t, versions, 1)
	require.Equal(t, model.VersionInfo{Major: 0, Minor: 0, Revision: 1, Level: "alpha"}, versions[0])
}

func TestOperationsRejectNilDB(t *testing.T) {
	_, err := AddOrGetSettings(nil, testGuildID)
	require.ErrorIs(t, err, ErrNotReady)

	_, err = AddOrGetUser(nil, testGuildID, testUserID)
	require.ErrorIs(t, err, ErrNotReady)

	require.ErrorIs(t, Migrate(nil), ErrNotReady)
}
