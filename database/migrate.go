package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"mrfriendly/model"

	"github.com/jmoiron/sqlx"
)

// CodeVersion is the schema version this build expects to run against.
var CodeVersion = model.VersionInfo{Major: 0, Minor: 0, Revision: 2, Level: "release"}

// Each step must be safe to run against a database already at or past it:
// the only tolerated failure is SQLite's "duplicate column name".
type migrationStep struct {
	target     model.VersionInfo
	statements []string
}

var migrationSteps = []migrationStep{
	{
		target: model.VersionInfo{Major: 0, Minor: 0, Revision: 2, Level: "release"},
		statements: []string{
			`ALTER TABLE settings ADD COLUMN rules_channel_id INTEGER NOT NULL DEFAULT 0`,
		},
	},
}

// Migrate brings the stored schema version in line with CodeVersion.
//
// No version row means a fresh install: the code version is recorded and
// nothing is migrated. Otherwise versions are compared by exact equality of
// (major, minor, revision, level); any mismatch walks the known step list
// once, so a stored version that still differs afterwards (a downgrade, or a
// version this build has never heard of) aborts startup instead of looping.
func Migrate(db *sqlx.DB) error {
	if db == nil {
		return ErrNotReady
	}

	var stored model.VersionInfo
	err := db.Get(&stored, `SELECT major, minor, revision, level FROM version`)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := db.Exec(`INSERT INTO version (major, minor, revision, level) VALUES (?, ?, ?, ?)`,
			CodeVersion.Major, CodeVersion.Minor, CodeVersion.Revision, CodeVersion.Level); err != nil {
			return fmt.Errorf("failed to record schema version %s: %w", CodeVersion, err)
		}
		log.Printf("Recorded fresh schema version %s", CodeVersion)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read stored schema version: %w", err)
	}

	if stored == CodeVersion {
		return nil
	}

	for _, step := range migrationSteps {
		if stored == step.target {
			continue
		}
		log.Printf("Migrating schema %s -> %s", stored, step.target)
		for _, stmt := range step.statements {
			if _, err := db.Exec(stmt); err != nil && !strings.Contains(err.Error(), "duplicate column name") {
				return fmt.Errorf("migration to %s failed on %q: %w", step.target, stmt, err)
			}
		}
		if _, err := db.Exec(`UPDATE version SET major = ?, minor = ?, revision = ?, level = ?`,
			step.target.Major, step.target.Minor, step.target.Revision, step.target.Level); err != nil {
			return fmt.Errorf("failed to update schema version to %s: %w", step.target, err)
		}
		stored = step.target
		if stored == CodeVersion {
			return nil
		}
	}

	return fmt.Errorf("stored schema version %s cannot be reconciled with code version %s", stored, CodeVersion)
}
