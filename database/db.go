package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrNotReady means an operation was called before the database was
	// initialized. That is a programmer error, not a runtime condition.
	ErrNotReady = errors.New("database has not been initialized")

	// ErrNotFound means a mutation's exists-guard found no backing row.
	ErrNotFound = errors.New("record not found")
)

// Most tables run STRICT: an insert with a mismatched column type is
// rejected rather than coerced. The version seed row only applies to a
// fresh table; the sequencer owns it afterwards.
const schema = `
CREATE TABLE IF NOT EXISTS guilds (
	guild_id INTEGER NOT NULL PRIMARY KEY
) STRICT;

CREATE TABLE IF NOT EXISTS settings (
	guild_id INTEGER NOT NULL PRIMARY KEY,
	mod_role_id INTEGER NOT NULL DEFAULT 0,
	verified_role_id INTEGER NOT NULL DEFAULT 0,
	welcome_channel_id INTEGER NOT NULL DEFAULT 0,
	rules_message_id INTEGER NOT NULL DEFAULT 0,
	rules_channel_id INTEGER NOT NULL DEFAULT 0,
	notification_channel_id INTEGER NOT NULL DEFAULT 0,
	flirting_channel_id INTEGER NOT NULL DEFAULT 0,
	personal_intros_channel_id INTEGER NOT NULL DEFAULT 0,
	roles_channel_id INTEGER NOT NULL DEFAULT 0,
	infraction_log_channel_id INTEGER NOT NULL DEFAULT 0,
	msg_timeout INTEGER NOT NULL DEFAULT 60,
	FOREIGN KEY(guild_id) REFERENCES guilds(guild_id)
) STRICT;

CREATE TABLE IF NOT EXISTS users (
	guild_id INTEGER NOT NULL,
	user_id INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	last_active_at INTEGER NOT NULL,
	verified INTEGER NOT NULL DEFAULT 0,
	banned INTEGER NOT NULL DEFAULT 0,
	cleaned INTEGER NOT NULL DEFAULT 0,
	UNIQUE(guild_id, user_id)
) STRICT;

CREATE TABLE IF NOT EXISTS user_leaves (
	user_id INTEGER NOT NULL,
	created_at INTEGER NOT NULL
) STRICT;

CREATE TABLE IF NOT EXISTS infractions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	guild_id INTEGER NOT NULL,
	user_id INTEGER NOT NULL,
	reason_msg_link TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	UNIQUE(user_id, reason_msg_link)
) STRICT;

CREATE TABLE IF NOT EXISTS user_images (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	guild_id INTEGER NOT NULL,
	channel_id INTEGER NOT NULL,
	message_id INTEGER NOT NULL
) STRICT;

CREATE TABLE IF NOT EXISTS role_embeds (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	guild_id INTEGER NOT NULL,
	channel_id INTEGER NOT NULL,
	message_id INTEGER NOT NULL,
	UNIQUE(guild_id, channel_id, message_id)
) STRICT;

CREATE TABLE IF NOT EXISTS prefixes (
	guild_id INTEGER NOT NULL,
	prefix TEXT NOT NULL,
	UNIQUE(guild_id, prefix)
) STRICT;

CREATE TABLE IF NOT EXISTS version (
	major INTEGER NOT NULL,
	minor INTEGER NOT NULL,
	revision INTEGER NOT NULL,
	level TEXT NOT NULL
);

INSERT INTO version (major, minor, revision, level)
SELECT 0, 0, 1, 'alpha'
WHERE NOT EXISTS (SELECT 1 FROM version);
`

// Init opens the SQLite file and applies the bootstrap schema in one
// transaction. Safe to call against an existing database; every statement
// uses create-if-not-exists semantics.
func Init(dbPath string) (*sqlx.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to begin schema transaction: %w", err)
	}
	if _, err := tx.Exec(schema); err != nil {
		tx.Rollback()
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := tx.Commit(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to commit schema: %w", err)
	}

	return db, nil
}
