package handlers

import (
	"fmt"
	"strconv"
	"time"

	"mrfriendly/bot"
	"mrfriendly/database"
	"mrfriendly/utils"

	"github.com/bwmarrin/discordgo"
)

// Embed descriptions cap out at 4096 characters.
const maxEmbedDescription = 4096

// HandleAddInfraction records an infraction, posts the reason to the
// infraction log channel and replies with the new ID. Adding the same reason
// link twice is a no-op.
func HandleAddInfraction(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "Infractions", "load settings", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}
	if settings.InfractionLogChannelID == 0 {
		utils.RespondEphemeral(s, i, "Infraction logging channel has not been set.", settings.MsgTimeout)
		return
	}

	opts := optionMap(i.ApplicationCommandData())
	target := opts["user"].UserValue(s)
	reason := opts["reason"].StringValue()

	logChannelID := strconv.FormatInt(settings.InfractionLogChannelID, 10)
	logChannel, err := s.Channel(logChannelID)
	if err != nil || logChannel.Type != discordgo.ChannelTypeGuildText {
		utils.RespondEphemeral(s, i, "Infraction logging channel is not a valid text channel.", settings.MsgTimeout)
		return
	}

	user, err := loadUser(b, i.GuildID, target.ID)
	if err != nil {
		logHandlerError(s, b, "Infractions", "load user", err)
		utils.RespondEphemeral(s, i, fmt.Sprintf("Unable to find or create %s in the database.", target.Username), settings.MsgTimeout)
		return
	}

	reasonMsgLink := fmt.Sprintf("https://discord.com/channels/%s/%s/%s", i.GuildID, logChannel.ID, logChannel.LastMessageID)
	infraction, err := database.AddInfraction(b.GetDB(), user, reasonMsgLink)
	if err != nil {
		logHandlerError(s, b, "Infractions", "add", err)
		utils.RespondEphemeral(s, i, fmt.Sprintf("Unable to add infraction for %s.", target.Username), settings.MsgTimeout)
		return
	}
	if infraction == nil {
		utils.RespondEphemeral(s, i, fmt.Sprintf("%s already has an infraction for that message.", target.Username), settings.MsgTimeout)
		return
	}

	if len(reason) > maxEmbedDescription {
		reason = reason[:maxEmbedDescription-6] + "..."
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("__%s__ | Infraction ID: **#%d**", target.Username, infraction.ID),
		Description: reason,
		Color:       0xED4245,
		Timestamp:   time.Unix(infraction.CreatedAt, 0).Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Moderator: " + i.Member.User.Username,
		},
	}
	if _, err := s.ChannelMessageSendEmbed(logChannel.ID, embed); err != nil {
		logHandlerError(s, b, "Infractions", "post log embed", err)
	}

	utils.RespondEphemeral(s, i, fmt.Sprintf("Added Infraction #%d for %s | Reason: %s", infraction.ID, target.Username, reason), settings.MsgTimeout)
}

// HandleRemoveInfraction deletes an infraction by ID.
func HandleRemoveInfraction(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "Infractions", "load settings", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}

	opts := optionMap(i.ApplicationCommandData())
	target := opts["user"].UserValue(s)
	infractionID := opts["infraction"].IntValue()

	user, err := loadUser(b, i.GuildID, target.ID)
	if err != nil {
		logHandlerError(s, b, "Infractions", "load user", err)
		utils.RespondEphemeral(s, i, fmt.Sprintf("Unable to find or create %s in the database.", target.Username), settings.MsgTimeout)
		return
	}

	if err := database.RemoveInfraction(b.GetDB(), user, infractionID); err != nil {
		logHandlerError(s, b, "Infractions", "remove", err)
		utils.RespondEphemeral(s, i, fmt.Sprintf("Failed to remove infraction #%d.", infractionID), settings.MsgTimeout)
		return
	}
	utils.RespondEphemeral(s, i, fmt.Sprintf("Removed Infraction #%d for %s.", infractionID, target.Username), settings.MsgTimeout)
}

// HandleListInfractions lists a user's infractions with their reason links.
func HandleListInfractions(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "Infractions", "load settings", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}

	opts := optionMap(i.ApplicationCommandData())
	target := opts["user"].UserValue(s)

	user, err := loadUser(b, i.GuildID, target.ID)
	if err != nil {
		logHandlerError(s, b, "Infractions", "load user", err)
		utils.RespondEphemeral(s, i, fmt.Sprintf("Unable to find or create %s in the database.", target.Username), settings.MsgTimeout)
		return
	}

	infractions, err := database.GetInfractions(b.GetDB(), user, time.Now())
	if err != nil {
		logHandlerError(s, b, "Infractions", "list", err)
		utils.RespondEphemeral(s, i, "Failed to list infractions.", settings.MsgTimeout)
		return
	}
	if len(infractions) == 0 {
		utils.RespondEphemeral(s, i, fmt.Sprintf("%s has no infractions.", target.Username), settings.MsgTimeout)
		return
	}

	content := fmt.Sprintf("Infractions for **%s**:\n", target.Username)
	for infraction := range infractions {
		content += fmt.Sprintf("> Infraction #%d -> %s\n", infraction.ID, infraction.ReasonMsgLink)
	}
	utils.RespondEphemeral(s, i, content, settings.MsgTimeout)
}
