package database

import (
	"database/sql"
	"errors"
	"fmt"

	"mrfriendly/model"

	"github.com/jmoiron/sqlx"
)

// AddRoleEmbed records a bot-posted role-selection message. The
// (guild, channel, message) triple is unique; a duplicate insert returns an
// error because the conflict-do-nothing insert yields no row.
func AddRoleEmbed(db *sqlx.DB, name string, guildID, channelID, messageID int64) (*model.RoleEmbedInfo, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := model.CheckSnowflake("guild_id", guildID); err != nil {
		return nil, err
	}
	if err := model.CheckSnowflake("channel_id", channelID); err != nil {
		return nil, err
	}
	if err := model.CheckSnowflake("message_id", messageID); err != nil {
		return nil, err
	}

	var info model.RoleEmbedInfo
	err := db.Get(&info, `INSERT INTO role_embeds(name, guild_id, channel_id, message_id) VALUES(?, ?, ?, ?)
		ON CONFLICT(guild_id, channel_id, message_id) DO NOTHING RETURNING *`,
		name, guildID, channelID, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("unable to add role_embeds entry, it already exists (guild %d, channel %d, message %d)",
			guildID, channelID, messageID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert role embed for guild %d: %w", guildID, err)
	}
	return &info, nil
}

// GetAllRoleEmbeds lists the guild's tracked role embeds. Unlike the
// user-owned collections, zero rows here is an error, not an empty result;
// callers depend on that distinction.
func GetAllRoleEmbeds(db *sqlx.DB, guildID int64) ([]model.RoleEmbedInfo, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := model.CheckSnowflake("guild_id", guildID); err != nil {
		return nil, err
	}
	var infos []model.RoleEmbedInfo
	if err := db.Select(&infos, `SELECT * FROM role_embeds WHERE guild_id = ?`, guildID); err != nil {
		return nil, fmt.Errorf("failed to get role embeds for guild %d: %w", guildID, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("guild %d has no role_embeds entries: %w", guildID, ErrNotFound)
	}
	return infos, nil
}

// GetRoleEmbed looks up one tracked role embed by guild and ID.
func GetRoleEmbed(db *sqlx.DB, guildID, id int64) (*model.RoleEmbedInfo, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	var info model.RoleEmbedInfo
	err := db.Get(&info, `SELECT * FROM role_embeds WHERE guild_id = ? AND id = ?`, guildID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("role embed %d in guild %d: %w", id, guildID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get role embed %d: %w", id, err)
	}
	return &info, nil
}

// RemoveRoleEmbed deletes a tracked role embed by primary key and reports
// whether a row was removed.
func RemoveRoleEmbed(db *sqlx.DB, id int64) (bool, error) {
	if db == nil {
		return false, ErrNotReady
	}
	res, err := db.Exec(`DELETE FROM role_embeds WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete role embed %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for role embed %d: %w", id, err)
	}
	return n > 0, nil
}
