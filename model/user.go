package model

import "time"

// User is one guild member's persisted state. The owned collections are
// in-memory mirrors of the related tables; mutation helpers in the database
// package keep them in sync with the rows they touch.
type User struct {
	GuildID      int64 `db:"guild_id"`
	UserID       int64 `db:"user_id"`
	CreatedAt    int64 `db:"created_at"`
	LastActiveAt int64 `db:"last_active_at"`
	Verified     bool  `db:"verified"`
	Banned       bool  `db:"banned"`
	Cleaned      bool  `db:"cleaned"`

	Leaves      map[Leave]struct{}      `db:"-"`
	Infractions map[Infraction]struct{} `db:"-"`
	Images      map[Image]struct{}      `db:"-"`
}

func (u *User) LastActive() time.Time {
	return time.Unix(u.LastActiveAt, 0)
}

// Leave records one departure from the guild.
type Leave struct {
	UserID    int64 `db:"user_id"`
	CreatedAt int64 `db:"created_at"`
}

// Infraction is an append-only moderation record pointing at the log message
// that explains it. (user_id, reason_msg_link) pairs are unique; inserting a
// duplicate is a no-op.
type Infraction struct {
	ID            int64  `db:"id"`
	GuildID       int64  `db:"guild_id"`
	UserID        int64  `db:"user_id"`
	ReasonMsgLink string `db:"reason_msg_link"`
	CreatedAt     int64  `db:"created_at"`
}

// Image tracks a message with attachments so the cleanup job can delete it
// later. Rows are removed when the message disappears or cleanup finishes.
type Image struct {
	ID        int64 `db:"id"`
	UserID    int64 `db:"user_id"`
	GuildID   int64 `db:"guild_id"`
	ChannelID int64 `db:"channel_id"`
	MessageID int64 `db:"message_id"`
}
