package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mrfriendly/model"

	"github.com/jmoiron/sqlx"
)

// AddOrGetUser returns the member's row, creating it on first interaction
// with created_at and last_active_at both set to now. Calling it again for
// the same (guild, user) pair returns the same row.
func AddOrGetUser(db *sqlx.DB, guildID, userID int64) (*model.User, error) {
	if db == nil {
		return nil, ErrNotReady
	}

	var u model.User
	err := db.Get(&u, `SELECT * FROM users WHERE guild_id = ? AND user_id = ?`, guildID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		now := time.Now().Unix()
		err = db.Get(&u, `INSERT INTO users(guild_id, user_id, created_at, last_active_at) VALUES(?, ?, ?, ?) RETURNING *`,
			guildID, userID, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert user %d in guild %d: %w", userID, guildID, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user %d in guild %d: %w", userID, guildID, err)
	}

	u.Leaves = make(map[model.Leave]struct{})
	u.Infractions = make(map[model.Infraction]struct{})
	u.Images = make(map[model.Image]struct{})
	return &u, nil
}

// GetBannedUsers returns every banned member of the guild.
func GetBannedUsers(db *sqlx.DB, guildID int64) ([]model.User, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	var users []model.User
	if err := db.Select(&users, `SELECT * FROM users WHERE guild_id = ? AND banned = 1`, guildID); err != nil {
		return nil, fmt.Errorf("failed to get banned users for guild %d: %w", guildID, err)
	}
	return users, nil
}

// GetUncleanUsers returns members whose tracked images have not been removed
// from the guild yet.
func GetUncleanUsers(db *sqlx.DB, guildID int64) ([]model.User, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	var users []model.User
	if err := db.Select(&users, `SELECT * FROM users WHERE guild_id = ? AND cleaned = 0`, guildID); err != nil {
		return nil, fmt.Errorf("failed to get unclean users for guild %d: %w", guildID, err)
	}
	return users, nil
}

// userExists re-queries the users table immediately before a mutation.
func userExists(db *sqlx.DB, u *model.User) error {
	var id int64
	err := db.Get(&id, `SELECT user_id FROM users WHERE guild_id = ? AND user_id = ?`, u.GuildID, u.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("user %d in guild %d: %w", u.UserID, u.GuildID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check user %d in guild %d: %w", u.UserID, u.GuildID, err)
	}
	return nil
}

func updateUserFlag(db *sqlx.DB, u *model.User, column string, value bool) error {
	if db == nil {
		return ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE users SET %s = ? WHERE guild_id = ? AND user_id = ?`, column)
	if _, err := db.Exec(query, value, u.GuildID, u.UserID); err != nil {
		return fmt.Errorf("failed to update users.%s for user %d: %w", column, u.UserID, err)
	}
	return nil
}

// UpdateBanned flips the banned flag and mutates the in-memory copy.
func UpdateBanned(db *sqlx.DB, u *model.User, banned bool) error {
	if err := updateUserFlag(db, u, "banned", banned); err != nil {
		return err
	}
	u.Banned = banned
	return nil
}

// UpdateVerified flips the verified flag and mutates the in-memory copy.
func UpdateVerified(db *sqlx.DB, u *model.User, verified bool) error {
	if err := updateUserFlag(db, u, "verified", verified); err != nil {
		return err
	}
	u.Verified = verified
	return nil
}

// UpdateCleaned flips the cleaned flag and mutates the in-memory copy.
func UpdateCleaned(db *sqlx.DB, u *model.User, cleaned bool) error {
	if err := updateUserFlag(db, u, "cleaned", cleaned); err != nil {
		return err
	}
	u.Cleaned = cleaned
	return nil
}

// UpdateLastActive stamps the member's inactivity clock to now.
func UpdateLastActive(db *sqlx.DB, u *model.User) error {
	if db == nil {
		return ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return err
	}
	now := time.Now().Unix()
	if _, err := db.Exec(`UPDATE users SET last_active_at = ? WHERE guild_id = ? AND user_id = ?`,
		now, u.GuildID, u.UserID); err != nil {
		return fmt.Errorf("failed to update last_active_at for user %d: %w", u.UserID, err)
	}
	u.LastActiveAt = now
	return nil
}

// AddLeave records a departure for the member.
func AddLeave(db *sqlx.DB, u *model.User) (*model.Leave, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return nil, err
	}
	var l model.Leave
	err := db.Get(&l, `INSERT INTO user_leaves(user_id, created_at) VALUES(?, ?) RETURNING *`,
		u.UserID, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to insert leave for user %d: %w", u.UserID, err)
	}
	u.Leaves[l] = struct{}{}
	return &l, nil
}

// GetLeaves returns the member's departures at or before the cutoff. Zero
// rows is an empty set, not an error.
func GetLeaves(db *sqlx.DB, u *model.User, before time.Time) (map[model.Leave]struct{}, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return nil, err
	}
	var rows []model.Leave
	err := db.Select(&rows, `SELECT * FROM user_leaves WHERE user_id = ? AND created_at <= ?`,
		u.UserID, before.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to get leaves for user %d: %w", u.UserID, err)
	}
	leaves := make(map[model.Leave]struct{}, len(rows))
	for _, l := range rows {
		leaves[l] = struct{}{}
	}
	u.Leaves = leaves
	return leaves, nil
}

// AddInfraction records an infraction pointing at its log message. Adding
// the same reason link twice for the same user is a no-op: the second call
// returns (nil, nil) and the in-memory set is unchanged.
func AddInfraction(db *sqlx.DB, u *model.User, reasonMsgLink string) (*model.Infraction, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return nil, err
	}
	var inf model.Infraction
	err := db.Get(&inf, `INSERT INTO infractions(guild_id, user_id, reason_msg_link, created_at) VALUES(?, ?, ?, ?)
		ON CONFLICT(user_id, reason_msg_link) DO NOTHING RETURNING *`,
		u.GuildID, u.UserID, reasonMsgLink, time.Now().Unix())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert infraction for user %d: %w", u.UserID, err)
	}
	u.Infractions[inf] = struct{}{}
	return &inf, nil
}

// GetInfractions returns the member's infractions at or before the cutoff.
// Zero rows is an empty set, not an error.
func GetInfractions(db *sqlx.DB, u *model.User, before time.Time) (map[model.Infraction]struct{}, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return nil, err
	}
	var rows []model.Infraction
	err := db.Select(&rows, `SELECT * FROM infractions WHERE guild_id = ? AND user_id = ? AND created_at <= ?`,
		u.GuildID, u.UserID, before.Unix())
	if err != nil {
		return nil, fmt.Errorf("failed to get infractions for user %d: %w", u.UserID, err)
	}
	infractions := make(map[model.Infraction]struct{}, len(rows))
	for _, inf := range rows {
		infractions[inf] = struct{}{}
	}
	u.Infractions = infractions
	return infractions, nil
}

// RemoveInfraction deletes an infraction by ID and drops it from the
// in-memory set if present. It does not error when the set lacks the entry.
func RemoveInfraction(db *sqlx.DB, u *model.User, id int64) error {
	if db == nil {
		return ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM infractions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete infraction %d: %w", id, err)
	}
	for inf := range u.Infractions {
		if inf.ID == id {
			delete(u.Infractions, inf)
			break
		}
	}
	return nil
}

// AddImage tracks an attachment message for later cleanup.
func AddImage(db *sqlx.DB, u *model.User, channelID, messageID int64) (*model.Image, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return nil, err
	}
	var img model.Image
	err := db.Get(&img, `INSERT INTO user_images(user_id, guild_id, channel_id, message_id) VALUES(?, ?, ?, ?) RETURNING *`,
		u.UserID, u.GuildID, channelID, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert image for user %d: %w", u.UserID, err)
	}
	u.Images[img] = struct{}{}
	return &img, nil
}

// GetImage looks up one tracked image. A missing row returns (nil, nil).
func GetImage(db *sqlx.DB, u *model.User, channelID, messageID int64) (*model.Image, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return nil, err
	}
	var img model.Image
	err := db.Get(&img, `SELECT * FROM user_images WHERE user_id = ? AND guild_id = ? AND channel_id = ? AND message_id = ?`,
		u.UserID, u.GuildID, channelID, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get image for user %d: %w", u.UserID, err)
	}
	return &img, nil
}

// GetAllImages returns the member's tracked images. Zero rows is an empty
// set, not an error.
func GetAllImages(db *sqlx.DB, u *model.User) (map[model.Image]struct{}, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return nil, err
	}
	var rows []model.Image
	err := db.Select(&rows, `SELECT * FROM user_images WHERE user_id = ? AND guild_id = ?`, u.UserID, u.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get images for user %d: %w", u.UserID, err)
	}
	images := make(map[model.Image]struct{}, len(rows))
	for _, img := range rows {
		images[img] = struct{}{}
	}
	u.Images = images
	return images, nil
}

// FindImageByMessage looks up a tracked image by its message regardless of
// owner, for delete events that carry no author. A missing row returns
// (nil, nil).
func FindImageByMessage(db *sqlx.DB, guildID, channelID, messageID int64) (*model.Image, error) {
	if db == nil {
		return nil, ErrNotReady
	}
	var img model.Image
	err := db.Get(&img, `SELECT * FROM user_images WHERE guild_id = ? AND channel_id = ? AND message_id = ?`,
		guildID, channelID, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find image by message %d: %w", messageID, err)
	}
	return &img, nil
}

// RemoveImage deletes a tracked image by primary key and drops it from the
// in-memory set if present. Removing an image that was never added is a
// no-op.
func RemoveImage(db *sqlx.DB, u *model.User, img model.Image) error {
	if db == nil {
		return ErrNotReady
	}
	if err := userExists(db, u); err != nil {
		return err
	}
	if _, err := db.Exec(`DELETE FROM user_images WHERE id = ?`, img.ID); err != nil {
		return fmt.Errorf("failed to delete image %d: %w", img.ID, err)
	}
	delete(u.Images, img)
	return nil
}
