package handlers

import (
	"fmt"
	"strconv"

	"mrfriendly/bot"
	"mrfriendly/database"
	"mrfriendly/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleVerify verifies the member a verification channel belongs to. The
// channel's topic carries the member's user ID; the member gets the
// configured verified role and their user row is flagged.
func HandleVerify(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	settings, err := loadSettings(b, i.GuildID)
	if err != nil {
		logHandlerError(s, b, "Verify", "load settings", err)
		utils.RespondEphemeral(s, i, "Failed to load guild settings.", 60)
		return
	}
	if !isModerator(i, settings) {
		utils.RespondEphemeral(s, i, "You do not have permission to use this command.", settings.MsgTimeout)
		return
	}
	if settings.VerifiedRoleID == 0 {
		utils.RespondEphemeral(s, i, "Verified role has not been set.", settings.MsgTimeout)
		return
	}

	channel, err := s.Channel(i.ChannelID)
	if err != nil {
		logHandlerError(s, b, "Verify", "fetch channel", err)
		utils.RespondEphemeral(s, i, "Failed to look up this channel.", settings.MsgTimeout)
		return
	}
	if channel.Type != discordgo.ChannelTypeGuildText || channel.Topic == "" {
		utils.RespondEphemeral(s, i, "This channel is not a verification channel.", settings.MsgTimeout)
		return
	}
	if _, err := strconv.ParseInt(channel.Topic, 10, 64); err != nil {
		utils.RespondEphemeral(s, i, "This channel's topic does not hold a user ID.", settings.MsgTimeout)
		return
	}

	member, err := s.GuildMember(i.GuildID, channel.Topic)
	if err != nil {
		logHandlerError(s, b, "Verify", "fetch member", err)
		utils.RespondEphemeral(s, i, "The member for this channel is no longer in the guild.", settings.MsgTimeout)
		return
	}

	user, err := loadUser(b, i.GuildID, member.User.ID)
	if err != nil {
		logHandlerError(s, b, "Verify", "load user", err)
		utils.RespondEphemeral(s, i, fmt.Sprintf("Unable to find or create %s in the database.", member.User.Username), settings.MsgTimeout)
		return
	}
	if err := database.UpdateVerified(b.GetDB(), user, true); err != nil {
		logHandlerError(s, b, "Verify", "flag verified", err)
		utils.RespondEphemeral(s, i, fmt.Sprintf("Failed to mark %s as verified.", member.User.Username), settings.MsgTimeout)
		return
	}

	verifiedRole := strconv.FormatInt(settings.VerifiedRoleID, 10)
	if err := s.GuildMemberRoleAdd(i.GuildID, member.User.ID, verifiedRole); err != nil {
		logHandlerError(s, b, "Verify", "grant role", err)
		utils.RespondEphemeral(s, i, fmt.Sprintf("Marked %s as verified, but failed to grant the role.", member.User.Username), settings.MsgTimeout)
		return
	}
	utils.RespondEphemeral(s, i, fmt.Sprintf("Verified %s.", member.Mention()), settings.MsgTimeout)
}
