package database

import (
	"database/sql"
	"errors"
	"fmt"

	"mrfriendly/model"

	"github.com/jmoiron/sqlx"
)

// AddOrGetSettings returns the guild's settings row, creating the guild and
// a default settings row when the guild has never been seen. Absence is not
// an error for this lookup; creation handles it.
func AddOrGetSettings(db *sqlx.DB, guildID int64) (*model.Settings, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := model.CheckSnowflake("guild_id", guildID); err != nil {
		return nil, err
	}

	var s model.Settings
	err := db.Get(&s, `SELECT * FROM settings WHERE guild_id = ?`, guildID)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get settings for guild %d: %w", guildID, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin settings insert: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO guilds(guild_id) VALUES(?) ON CONFLICT(guild_id) DO NOTHING`, guildID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to insert guild %d: %w", guildID, err)
	}
	if _, err := tx.Exec(`INSERT INTO settings(guild_id) VALUES(?) ON CONFLICT(guild_id) DO NOTHING`, guildID); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to insert settings for guild %d: %w", guildID, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit settings insert: %w", err)
	}

	if err := db.Get(&s, `SELECT * FROM settings WHERE guild_id = ?`, guildID); err != nil {
		return nil, fmt.Errorf("failed to read back settings for guild %d: %w", guildID, err)
	}
	return &s, nil
}

// guildExists re-queries the guilds table immediately before a mutation.
// The row may have disappeared since the record was loaded.
func guildExists(db *sqlx.DB, guildID int64) error {
	var id int64
	err := db.Get(&id, `SELECT guild_id FROM guilds WHERE guild_id = ?`, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("guild %d: %w", guildID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check guild %d: %w", guildID, err)
	}
	return nil
}

// UpdateSettingsProperty writes one settings field and mutates the in-memory
// copy to match. Callers must treat the returned record as the new source of
// truth. The field name is re-validated at runtime as a fallback for values
// arriving from autocomplete input.
func UpdateSettingsProperty(db *sqlx.DB, s *model.Settings, field model.SettingsField, value int64) (*model.Settings, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if _, err := model.ParseSettingsField(string(field)); err != nil {
		return nil, err
	}
	if field.IsSnowflake() {
		if err := model.CheckSnowflake(string(field), value); err != nil {
			return nil, err
		}
	}
	if err := guildExists(db, s.GuildID); err != nil {
		return nil, err
	}

	// The field name is validated against the schema above, never caller-
	// supplied SQL.
	query := fmt.Sprintf(`UPDATE settings SET %s = ? WHERE guild_id = ?`, field)
	if _, err := db.Exec(query, value, s.GuildID); err != nil {
		return nil, fmt.Errorf("failed to update settings.%s for guild %d: %w", field, s.GuildID, err)
	}
	s.Set(field, value)
	return s, nil
}
