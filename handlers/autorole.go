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

const roleButtonPrefix = "RR::BUTTON::"

// Buttons per action row is a platform limit.
const buttonsPerRow = 5

// HandleRoleEmbed posts a role-selection embed with one button per role and
// records the message so the validation job can watch it.
func HandleRoleEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "AutoRole", "load settings", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}

	opts := optionMap(i.ApplicationCommandData())
	title := opts["title"].StringValue()
	fieldBody := opts["field_body"].StringValue()

	channelID := i.ChannelID
	if opt, ok := opts["channel"]; ok {
		channelID = opt.ChannelValue(s).ID
	}

	var buttons []*discordgo.Button
	for _, name := range []string{"role1", "role2", "role3", "role4", "role5"} {
		opt, ok := opts[name]
		if !ok {
			continue
		}
		role := opt.RoleValue(s, i.GuildID)
		buttons = append(buttons, &discordgo.Button{
			Style:    discordgo.SuccessButton,
			Label:    role.Name,
			CustomID: roleButtonPrefix + role.ID,
		})
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("**%s**", title),
		Color: 0x5865F2,
		Description: "Please select a button below to add or remove the roles. " +
			"You are limited to one role at a time, selecting another role removes the previously selected role.",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "**What is this for?**", Value: fieldBody},
		},
	}

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: buttonRows(buttons),
	})
	if err != nil {
		logHandlerError(s, b, "AutoRole", "post embed", err)
		utils.RespondEphemeral(s, i, "Failed to post the role embed.", settings.MsgTimeout)
		return
	}

	guildID, _ := strconv.ParseInt(i.GuildID, 10, 64)
	chanID, _ := strconv.ParseInt(channelID, 10, 64)
	msgID, _ := strconv.ParseInt(msg.ID, 10, 64)
	if _, err := database.AddRoleEmbed(b.GetDB(), title, guildID, chanID, msgID); err != nil {
		logHandlerError(s, b, "AutoRole", "record embed", err)
		utils.RespondEphemeral(s, i, "Posted the embed, but failed to record it for tracking.", settings.MsgTimeout)
		return
	}
	utils.RespondEphemeral(s, i, fmt.Sprintf("Posted role embed **%s** in <#%s>.", title, channelID), settings.MsgTimeout)
}

// HandleAddButton appends a role button to an existing role embed message.
func HandleAddButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "AutoRole", "load settings", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}

	opts := optionMap(i.ApplicationCommandData())
	embedID := opts["role_embed"].IntValue()
	role := opts["role"].RoleValue(s, i.GuildID)

	info, msg, err := fetchRoleEmbedMessage(s, b, i.GuildID, embedID)
	if err != nil {
		utils.RespondEphemeral(s, i, err.Error(), settings.MsgTimeout)
		return
	}

	buttons := append(embedButtons(msg), &discordgo.Button{
		Style:    discordgo.SuccessButton,
		Label:    role.Name,
		CustomID: roleButtonPrefix + role.ID,
	})
	if err := editEmbedButtons(s, msg, buttons); err != nil {
		logHandlerError(s, b, "AutoRole", "add button", err)
		utils.RespondEphemeral(s, i, "Failed to update the role embed message.", settings.MsgTimeout)
		return
	}
	utils.RespondEphemeral(s, i, fmt.Sprintf("Added the role %s to **%s**.", role.Mention(), info.Name), settings.MsgTimeout)
}

// HandleRemoveButton strips a button from an existing role embed message,
// matched by custom ID or label.
func HandleRemoveButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "AutoRole", "load settings", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}

	opts := optionMap(i.ApplicationCommandData())
	embedID := opts["role_embed"].IntValue()
	target := opts["button"].StringValue()

	info, msg, err := fetchRoleEmbedMessage(s, b, i.GuildID, embedID)
	if err != nil {
		utils.RespondEphemeral(s, i, err.Error(), settings.MsgTimeout)
		return
	}

	var kept []*discordgo.Button
	found := false
	for _, btn := range embedButtons(msg) {
		if !found && (btn.CustomID == target || btn.Label == target) {
			found = true
			continue
		}
		kept = append(kept, btn)
	}
	if !found {
		utils.RespondEphemeral(s, i, fmt.Sprintf("Failed to find a button named %s on **%s**.", target, info.Name), settings.MsgTimeout)
		return
	}
	if err := editEmbedButtons(s, msg, kept); err != nil {
		logHandlerError(s, b, "AutoRole", "remove button", err)
		utils.RespondEphemeral(s, i, "Failed to update the role embed message.", settings.MsgTimeout)
		return
	}
	utils.RespondEphemeral(s, i, fmt.Sprintf("Removed the button %s from **%s**.", target, info.Name), settings.MsgTimeout)
}

// HandleRoleButton toggles the clicked role. The buttons on one embed form
// an exclusive group: granting a role removes the group's other roles.
func HandleRoleButton(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if i.Member == nil || i.GuildID == "" {
		return
	}
	roleID := strings.TrimPrefix(i.MessageComponentData().CustomID, roleButtonPrefix)

	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "AutoRole", "load settings", err)
		return
	}

	if hasMemberRole(i.Member, roleID) {
		if err := s.GuildMemberRoleRemove(i.GuildID, i.Member.User.ID, roleID); err != nil {
			logHandlerError(s, b, "AutoRole", "remove role", err)
			utils.RespondEphemeral(s, i, "Failed to remove the role.", settings.MsgTimeout)
			return
		}
		utils.RespondEphemeral(s, i, fmt.Sprintf("Removed <@&%s> from you.", roleID), settings.MsgTimeout)
		return
	}

	// Drop any other role from this embed's group first.
	for _, btn := range embedButtons(i.Message) {
		other := strings.TrimPrefix(btn.CustomID, roleButtonPrefix)
		if other == roleID || !hasMemberRole(i.Member, other) {
			continue
		}
		if err := s.GuildMemberRoleRemove(i.GuildID, i.Member.User.ID, other); err != nil {
			logHandlerError(s, b, "AutoRole", "swap role", err)
		}
	}
	if err := s.GuildMemberRoleAdd(i.GuildID, i.Member.User.ID, roleID); err != nil {
		logHandlerError(s, b, "AutoRole", "add role", err)
		utils.RespondEphemeral(s, i, "Failed to add the role.", settings.MsgTimeout)
		return
	}
	utils.RespondEphemeral(s, i, fmt.Sprintf("Added <@&%s> to you.", roleID), settings.MsgTimeout)
}

func hasMemberRole(member *discordgo.Member, roleID string) bool {
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// fetchRoleEmbedMessage resolves a tracked role embed and its live message.
func fetchRoleEmbedMessage(s *discordgo.Session, b *bot.Bot, guildID string, embedID int64) (*model.RoleEmbedInfo, *discordgo.Message, error) {
	gid, err := strconv.ParseInt(guildID, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid guild ID %q", guildID)
	}
	info, err := database.GetRoleEmbed(b.GetDB(), gid, embedID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find role embed #%d", embedID)
	}
	msg, err := s.ChannelMessage(strconv.FormatInt(info.ChannelID, 10), strconv.FormatInt(info.MessageID, 10))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch the message for role embed **%s**", info.Name)
	}
	return info, msg, nil
}

// embedButtons flattens a message's action rows into its buttons.
func embedButtons(msg *discordgo.Message) []*discordgo.Button {
	var buttons []*discordgo.Button
	for _, component := range msg.Components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, item := range row.Components {
			if btn, ok := item.(*discordgo.Button); ok {
				buttons = append(buttons, btn)
			}
		}
	}
	return buttons
}

// buttonRows chunks buttons into action rows of five.
func buttonRows(buttons []*discordgo.Button) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent
	for start := 0; start < len(buttons); start += buttonsPerRow {
		end := start + buttonsPerRow
		if end > len(buttons) {
			end = len(buttons)
		}
		row := discordgo.ActionsRow{}
		for _, btn := range buttons[start:end] {
			row.Components = append(row.Components, btn)
		}
		rows = append(rows, row)
	}
	return rows
}

func editEmbedButtons(s *discordgo.Session, msg *discordgo.Message, buttons []*discordgo.Button) error {
	components := buttonRows(buttons)
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    msg.ChannelID,
		ID:         msg.ID,
		Components: &components,
	})
	return err
}
