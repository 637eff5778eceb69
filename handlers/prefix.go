package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"mrfriendly/bot"
	"mrfriendly/database"
	"mrfriendly/utils"

	"github.com/bwmarrin/discordgo"
)

// HandlePrefix manages the guild's command prefixes (add/delete/clear).
func HandlePrefix(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "Prefix", "load settings", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}

	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		utils.RespondEphemeral(s, i, "This command only works in a guild.", settings.MsgTimeout)
		return
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	switch sub.Name {
	case "add":
		prefix := strings.TrimSpace(sub.Options[0].StringValue())
		if prefix == "" {
			utils.RespondEphemeral(s, i, "Prefix cannot be empty.", settings.MsgTimeout)
			return
		}
		if err := database.AddPrefix(b.GetDB(), guildID, prefix); err != nil {
			logHandlerError(s, b, "Prefix", "add", err)
			utils.RespondEphemeral(s, i, fmt.Sprintf("Failed to add the prefix `%s`.", prefix), settings.MsgTimeout)
			return
		}
		utils.RespondEphemeral(s, i, fmt.Sprintf("Added the prefix `%s`.", prefix), settings.MsgTimeout)

	case "delete":
		prefix := sub.Options[0].StringValue()
		if err := database.DeletePrefix(b.GetDB(), guildID, prefix); err != nil {
			logHandlerError(s, b, "Prefix", "delete", err)
			utils.RespondEphemeral(s, i, fmt.Sprintf("Failed to delete the prefix `%s`.", prefix), settings.MsgTimeout)
			return
		}
		utils.RespondEphemeral(s, i, fmt.Sprintf("Deleted the prefix `%s`.", prefix), settings.MsgTimeout)

	case "clear":
		if err := database.ClearPrefixes(b.GetDB(), guildID); err != nil {
			logHandlerError(s, b, "Prefix", "clear", err)
			utils.RespondEphemeral(s, i, "Failed to clear the prefixes.", settings.MsgTimeout)
			return
		}
		utils.RespondEphemeral(s, i, "Cleared all prefixes for this guild.", settings.MsgTimeout)
	}
}
