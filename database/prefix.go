package database

import (
	"fmt"

	"mrfriendly/model"

	"github.com/jmoiron/sqlx"
)

// AddPrefix registers a command prefix for the guild. Duplicates are a no-op.
func AddPrefix(db *sqlx.DB, guildID int64, prefix string) error {
	if db == nil {
		return ErrNotReady
	}
	if err := model.CheckSnowflake("guild_id", guildID); err != nil {
		return err
	}
	if _, err := db.Exec(`INSERT INTO prefixes(guild_id, prefix) VALUES(?, ?) ON CONFLICT(guild_id, prefix) DO NOTHING`,
		guildID, prefix); err != nil {
		return fmt.Errorf("failed to add prefix %q for guild %d: %w", prefix, guildID, err)
	}
	return nil
}

// DeletePrefix removes one prefix for the guild.
func DeletePrefix(db *sqlx.DB, guildID int64, prefix string) error {
	if db == nil {
		return ErrNotReady
	}
	if _, err := db.Exec(`DELETE FROM prefixes WHERE guild_id = ? AND prefix = ?`, guildID, prefix); err != nil {
		return fmt.Errorf("failed to delete prefix %q for guild %d: %w", prefix, guildID, err)
	}
	return nil
}

// ClearPrefixes removes every prefix for the guild.
func ClearPrefixes(db *sqlx.DB, guildID int64) error {
	if db == nil {
		return ErrNotReady
	}
	if _, err := db.Exec(`DELETE FROM prefixes WHERE guild_id = ?`, guildID); err != nil {
		return fmt.Errorf("failed to clear prefixes for guild %d: %w", guildID, err)
	}
	return nil
}

// GetPrefixes lists the guild's prefixes. Zero rows is an empty slice.
func GetPrefixes(db *sqlx.DB, guildID int64) ([]string, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	var prefixes []string
	if err := db.Select(&prefixes, `SELECT prefix FROM prefixes WHERE guild_id = ?`, guildID); err != nil {
		return nil, fmt.Errorf("failed to get prefixes for guild %d: %w", guildID, err)
	}
	return prefixes, nil
}
