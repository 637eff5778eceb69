package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"mrfriendly/bot"
	"mrfriendly/database"
	"mrfriendly/model"

	"github.com/bwmarrin/discordgo"
)

// Discord caps autocomplete responses at 25 choices.
const maxChoices = 25

func handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	data := i.ApplicationCommandData()
	focused := focusedOption(data.Options)
	if focused == nil {
		return
	}
	// The focused option's raw value, lowercased for matching. StringValue
	// would panic on the integer options, so format whatever arrived.
	current := strings.ToLower(fmt.Sprint(focused.Value))

	var choices []*discordgo.ApplicationCommandOptionChoice
	switch data.Name {
	case "guild-setting":
		switch focused.Name {
		case "property":
			choices = settingsPropertyChoices(current)
		case "value":
			choices = settingsValueChoices(s, i, optionMap(data), current)
		}
	case "remove-infraction":
		choices = infractionChoices(b, i, optionMap(data), current)
	case "add-button", "remove-button":
		switch focused.Name {
		case "role_embed":
			choices = roleEmbedChoices(b, i, current)
		case "button":
			choices = buttonChoices(s, b, i, optionMap(data), current)
		}
	}

	if len(choices) > maxChoices {
		choices = choices[:maxChoices]
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		log.Printf("Failed to respond to autocomplete: %v", err)
	}
}

func focusedOption(options []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range options {
		if opt.Focused {
			return opt
		}
		if nested := focusedOption(opt.Options); nested != nil {
			return nested
		}
	}
	return nil
}

func settingsPropertyChoices(current string) []*discordgo.ApplicationCommandOptionChoice {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, f := range model.SettingsFields {
		name := string(f)
		if !strings.Contains(name, current) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	return choices
}

// settingsValueChoices suggests values matching the already-chosen property:
// text channels for channel fields, roles for role fields, the typed value
// for message fields and five-second steps for the timeout.
func settingsValueChoices(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, current string) []*discordgo.ApplicationCommandOptionChoice {
	propertyOpt, ok := opts["property"]
	if !ok {
		return nil
	}
	property := propertyOpt.StringValue()
	if _, err := model.ParseSettingsField(property); err != nil {
		return []*discordgo.ApplicationCommandOptionChoice{{Name: "Invalid Property", Value: "9999"}}
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	switch {
	case strings.Contains(property, "channel_id"):
		guild, err := s.State.Guild(i.GuildID)
		if err != nil {
			return nil
		}
		for _, ch := range guild.Channels {
			if ch.Type != discordgo.ChannelTypeGuildText || !strings.Contains(strings.ToLower(ch.Name), current) {
				continue
			}
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: ch.Name, Value: ch.ID})
		}
	case strings.Contains(property, "role_id"):
		guild, err := s.State.Guild(i.GuildID)
		if err != nil {
			return nil
		}
		for _, role := range guild.Roles {
			if !strings.Contains(strings.ToLower(role.Name), current) && !strings.Contains(role.ID, current) {
				continue
			}
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: role.Name, Value: role.ID})
		}
	case strings.Contains(property, "message_id"):
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: current, Value: current})
	default:
		for count := 0; count < 100; count += 5 {
			v := strconv.Itoa(count)
			if strings.Contains(v, current) {
				choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: v, Value: v})
			}
		}
	}
	return choices
}

func infractionChoices(b *bot.Bot, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, current string) []*discordgo.ApplicationCommandOptionChoice {
	userOpt, ok := opts["user"]
	if !ok {
		return []*discordgo.ApplicationCommandOptionChoice{{Name: "No Entries Found...", Value: 9999}}
	}
	userID, ok := userOpt.Value.(string)
	if !ok {
		return []*discordgo.ApplicationCommandOptionChoice{{Name: "No Entries Found...", Value: 9999}}
	}
	user, err := loadUser(b, i.GuildID, userID)
	if err != nil {
		return []*discordgo.ApplicationCommandOptionChoice{{Name: "No Entries Found...", Value: 9999}}
	}
	infractions, err := database.GetInfractions(b.GetDB(), user, time.Now())
	if err != nil {
		return []*discordgo.ApplicationCommandOptionChoice{{Name: "No Entries Found...", Value: 9999}}
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	for inf := range infractions {
		id := strconv.FormatInt(inf.ID, 10)
		if !strings.Contains(strings.ToLower(inf.ReasonMsgLink), current) && !strings.Contains(id, current) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  "Infraction " + id,
			Value: inf.ID,
		})
	}
	return choices
}

func roleEmbedChoices(b *bot.Bot, i *discordgo.InteractionCreate, current string) []*discordgo.ApplicationCommandOptionChoice {
	guildID, err := strconv.ParseInt(i.GuildID, 10, 64)
	if err != nil {
		return nil
	}
	infos, err := database.GetAllRoleEmbeds(b.GetDB(), guildID)
	if err != nil {
		return nil
	}
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, info := range infos {
		if !strings.Contains(strings.ToLower(info.Name), current) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s - %d", info.Name, info.ID),
			Value: info.ID,
		})
	}
	return choices
}

func buttonChoices(s *discordgo.Session, b *bot.Bot, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, current string) []*discordgo.ApplicationCommandOptionChoice {
	embedOpt, ok := opts["role_embed"]
	if !ok {
		return []*discordgo.ApplicationCommandOptionChoice{{Name: "Failed to find Role Embed...", Value: "9999"}}
	}
	var embedID int64
	switch v := embedOpt.Value.(type) {
	case float64:
		embedID = int64(v)
	case string:
		embedID, _ = strconv.ParseInt(v, 10, 64)
	}
	if embedID == 0 {
		return []*discordgo.ApplicationCommandOptionChoice{{Name: "Failed to find Role Embed...", Value: "9999"}}
	}
	_, msg, err := fetchRoleEmbedMessage(s, b, i.GuildID, embedID)
	if err != nil {
		return []*discordgo.ApplicationCommandOptionChoice{{Name: "Failed to find Role Embed...", Value: "9999"}}
	}

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, btn := range embedButtons(msg) {
		if !strings.Contains(strings.ToLower(btn.Label), current) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: btn.Label, Value: btn.CustomID})
	}
	return choices
}
