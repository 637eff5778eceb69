package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"mrfriendly/bot"
	"mrfriendly/database"
	"mrfriendly/model"
	"mrfriendly/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleGuildSetting sets one settings property from autocomplete input.
// The property name arrives as a string and is re-validated by the
// persistence layer before any write.
func HandleGuildSetting(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "Settings", "load", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}

	opts := optionMap(i.ApplicationCommandData())
	property := opts["property"].StringValue()
	value, err := strconv.ParseInt(opts["value"].StringValue(), 10, 64)
	if err != nil {
		utils.RespondEphemeral(s, i, fmt.Sprintf("`%s` is not a numeric value.", opts["value"].StringValue()), settings.MsgTimeout)
		return
	}

	field, err := model.ParseSettingsField(property)
	if err != nil {
		utils.RespondEphemeral(s, i, err.Error(), settings.MsgTimeout)
		return
	}

	settings, err = database.UpdateSettingsProperty(b.GetDB(), settings, field, value)
	if err != nil {
		logHandlerError(s, b, "Settings", "update "+property, err)
		utils.RespondEphemeral(s, i, fmt.Sprintf("Failed to update `%s`: %v", property, err), 60)
		return
	}

	var content string
	switch {
	case strings.Contains(property, "channel_id"):
		content = fmt.Sprintf("Settings updated, set `%s` to <#%d>", property, value)
	case strings.Contains(property, "role_id"):
		content = fmt.Sprintf("Settings updated, set `%s` to <@&%d>", property, value)
	default:
		content = fmt.Sprintf("Settings updated, set `%s` to `%d`", property, value)
	}
	utils.RespondEphemeral(s, i, content, settings.MsgTimeout)
}

// HandleShowSettings replies with an embed of every settings field.
func HandleShowSettings(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "Settings", "load", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}
	utils.RespondEmbedEphemeral(s, i, settingsEmbed(settings), settings.MsgTimeout)
}

func settingsEmbed(settings *model.Settings) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Guild Settings",
		Description: "Current guild settings",
		Color:       0x5865F2,
	}
	for _, f := range model.SettingsFields {
		name := string(f)
		value := settings.Get(f)
		var display string
		switch {
		case strings.Contains(name, "channel_id"):
			display = fmt.Sprintf("<#%d>", value)
		case strings.Contains(name, "role_id"):
			display = fmt.Sprintf("<@&%d>", value)
		default:
			display = strconv.FormatInt(value, 10)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("__%s__", name),
			Value:  display,
			Inline: true,
		})
	}
	return embed
}
