package model

// RoleEmbedInfo tracks a bot-posted role-selection message so the scheduler
// can verify it still exists.
type RoleEmbedInfo struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	GuildID   int64  `db:"guild_id"`
	ChannelID int64  `db:"channel_id"`
	MessageID int64  `db:"message_id"`
}
