package handlers

import (
	"log"
	"strings"

	"mrfriendly/bot"
	"mrfriendly/utils"

	"github.com/bwmarrin/discordgo"
)

// Register wires every event and interaction handler onto the session.
func Register(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		handleInteractionCreate(s, i, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		handleMessageCreate(s, m, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageDelete) {
		handleMessageDelete(s, m, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		handleReactionAdd(s, r, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
		handleMemberJoin(s, m, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
		handleMemberLeave(s, m, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, ban *discordgo.GuildBanAdd) {
		handleMemberBan(s, ban, b)
	})
	b.Session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
		handleMemberUpdate(s, m, b)
	})
}

func handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case "guild-setting":
			HandleGuildSetting(s, i, b)
		case "show-settings":
			HandleShowSettings(s, i, b)
		case "add-infraction":
			HandleAddInfraction(s, i, b)
		case "remove-infraction":
			HandleRemoveInfraction(s, i, b)
		case "list-infractions":
			HandleListInfractions(s, i, b)
		case "role-embed":
			HandleRoleEmbed(s, i, b)
		case "add-button":
			HandleAddButton(s, i, b)
		case "remove-button":
			HandleRemoveButton(s, i, b)
		case "verify":
			HandleVerify(s, i, b)
		case "prefix":
			HandlePrefix(s, i, b)
		case "about":
			HandleAbout(s, i, b)
		}
	case discordgo.InteractionMessageComponent:
		if strings.HasPrefix(i.MessageComponentData().CustomID, roleButtonPrefix) {
			HandleRoleButton(s, i, b)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		handleAutocomplete(s, i, b)
	}
}

// logHandlerError mirrors a handler failure to the local log and the
// configured log channel; handler errors never propagate.
func logHandlerError(s *discordgo.Session, b *bot.Bot, module, operation string, err error) {
	log.Printf("[%s] %s: %v", module, operation, err)
	if logErr := utils.LogError(s, b.GetConfig().LogChannelID, module, operation, err.Error()); logErr != nil {
		log.Printf("Failed to mirror error to log channel: %v", logErr)
	}
}
