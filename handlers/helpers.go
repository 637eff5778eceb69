package handlers

import (
	"strconv"

	"mrfriendly/bot"
	"mrfriendly/database"
	"mrfriendly/model"

	"github.com/bwmarrin/discordgo"
)

// loadSettings resolves the guild's settings row for a handler. Handlers
// re-fetch through add-or-get on every event instead of trusting a cached
// record.
func loadSettings(b *bot.Bot, guildID string) (*model.Settings, error) {
	gid, err := strconv.ParseInt(guildID, 10, 64)
	if err != nil {
		return nil, err
	}
	return database.AddOrGetSettings(b.GetDB(), gid)
}

// loadUser resolves the member's user row for a handler.
func loadUser(b *bot.Bot, guildID, userID string) (*model.User, error) {
	gid, err := strconv.ParseInt(guildID, 10, 64)
	if err != nil {
		return nil, err
	}
	uid, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, err
	}
	return database.AddOrGetUser(b.GetDB(), gid, uid)
}

// isModerator reports whether the invoking member carries the configured mod
// role or Administrator. Discord validates the command-level permission
// gates; this is the guild-configured check on top.
func isModerator(i *discordgo.InteractionCreate, settings *model.Settings) bool {
	if i.Member == nil {
		return false
	}
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	if settings.ModRoleID == 0 {
		return false
	}
	modRole := strconv.FormatInt(settings.ModRoleID, 10)
	for _, r := range i.Member.Roles {
		if r == modRole {
			return true
		}
	}
	return false
}

// optionMap flattens an interaction's options by name.
func optionMap(data discordgo.ApplicationCommandInteractionData) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	for _, opt := range data.Options {
		m[opt.Name] = opt
	}
	return m
}
