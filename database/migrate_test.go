package database

import (
	"testing"

	"mrfriendly/model"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func storedVersion(t *testing.T, db *sqlx.DB) model.VersionInfo {
	t.Helper()
	var v model.VersionInfo
	require.NoError(t, db.Get(&v, `SELECT major, minor, revision, level FROM version`))
	return v
}

func TestMigrateUpgradesSeededDatabase(t *testing.T) {
	db := setupTestDB(t)
	require.Equal(t, model.VersionInfo{Major: 0, Minor: 0, Revision: 1, Level: "alpha"}, storedVersion(t, db))

	// The bootstrap schema already carries rules_channel_id, so the step's
	// ALTER hits "duplicate column name" and must be tolerated.
	require.NoError(t, Migrate(db))
	require.Equal(t, CodeVersion, storedVersion(t, db))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
	require.Equal(t, CodeVersion, storedVersion(t, db))
}

func TestMigrateAddsMissingColumn(t *testing.T) {
	db := setupTestDB(t)

	// Reproduce a pre-upgrade settings table without rules_channel_id.
	_, err := db.Exec(`ALTER TABLE settings DROP COLUMN rules_channel_id`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var count int
	require.NoError(t, db.Get(&count,
		`SELECT COUNT(*) FROM pragma_table_info('settings') WHERE name = 'rules_channel_id'`))
	require.Equal(t, 1, count)
	require.Equal(t, CodeVersion, storedVersion(t, db))
}

func TestMigrateRecordsFreshInstall(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Exec(`DELETE FROM version`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	require.Equal(t, CodeVersion, storedVersion(t, db))
}

func TestMigrateRejectsUnknownVersion(t *testing.T) {
	db := setupTestDB(t)
	_, err := db.Exec(`UPDATE version SET major = 9, minor = 9, revision = 9, level = 'beta'`)
	require.NoError(t, err)

	err = Migrate(db)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot be reconciled")
}
