package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mrfriendly/bot"
	"mrfriendly/database"
	"mrfriendly/model"
	"mrfriendly/utils"

	"github.com/bwmarrin/discordgo"
)

// Policing notices linger just long enough to be read.
const policingNoticeSeconds = 10

// handleMessageCreate stamps the author's activity, tracks attachment
// messages for later cleanup and polices the picture category: text-only
// messages and non-media attachments are removed with a short notice.
func handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if m.GuildID == "" || m.Author == nil || m.Author.Bot || m.Author.ID == s.State.User.ID {
		return
	}

	settings, err := loadSettings(b, m.GuildID)
	if err != nil {
		logHandlerError(s, b, "Events", "load settings", err)
		return
	}

	user, err := loadUser(b, m.GuildID, m.Author.ID)
	if err != nil {
		logHandlerError(s, b, "Events", "load user", err)
		return
	}
	if err := database.UpdateLastActive(b.GetDB(), user); err != nil {
		logHandlerError(s, b, "Events", "stamp activity", err)
	}

	if len(m.Attachments) > 0 {
		channelID, _ := strconv.ParseInt(m.ChannelID, 10, 64)
		messageID, _ := strconv.ParseInt(m.ID, 10, 64)
		if _, err := database.AddImage(b.GetDB(), user, channelID, messageID); err != nil {
			logHandlerError(s, b, "Events", "track image", err)
		}
	}

	// Moderators post freely in the picture channels.
	if m.Member != nil && isGuildModerator(m.Member, settings) {
		return
	}
	if !inPictureCategory(s, m.GuildID, m.ChannelID, b.GetConfig().PictureCategoryName) {
		return
	}

	if len(m.Attachments) == 0 {
		if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
			logHandlerError(s, b, "Events", "police text message", err)
			return
		}
		notice := fmt.Sprintf("%s Text messages are not allowed in this channel.", m.Author.Mention())
		if settings.FlirtingChannelID != 0 {
			notice = fmt.Sprintf("%s Text messages are not allowed in this channel. Please post them in <#%d>.",
				m.Author.Mention(), settings.FlirtingChannelID)
		}
		utils.SendTimedMessage(s, m.ChannelID, notice, policingNoticeSeconds)
		return
	}

	for _, attachment := range m.Attachments {
		kind := strings.SplitN(attachment.ContentType, "/", 2)[0]
		if kind == "image" || kind == "video" {
			continue
		}
		if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
			logHandlerError(s, b, "Events", "police attachment", err)
			return
		}
		utils.SendTimedMessage(s, m.ChannelID,
			fmt.Sprintf("%s: Only images and videos are allowed in this channel.", m.Author.Mention()),
			policingNoticeSeconds)
		return
	}
}

// handleMessageDelete drops tracking rows tied to the deleted message: the
// role embed record if the message was a tracked embed, and the image record
// if the message carried a tracked attachment.
func handleMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete, b *bot.Bot) {
	if m.GuildID == "" {
		return
	}
	guildID, err := strconv.ParseInt(m.GuildID, 10, 64)
	if err != nil {
		return
	}
	channelID, _ := strconv.ParseInt(m.ChannelID, 10, 64)
	messageID, _ := strconv.ParseInt(m.ID, 10, 64)

	embeds, err := database.GetAllRoleEmbeds(b.GetDB(), guildID)
	if err == nil {
		for _, info := range embeds {
			if info.ChannelID != channelID || info.MessageID != messageID {
				continue
			}
			if _, err := database.RemoveRoleEmbed(b.GetDB(), info.ID); err != nil {
				logHandlerError(s, b, "Events", "drop role embed", err)
			}
			break
		}
	}

	img, err := database.FindImageByMessage(b.GetDB(), guildID, channelID, messageID)
	if err != nil {
		logHandlerError(s, b, "Events", "find image", err)
		return
	}
	if img == nil {
		return
	}
	owner, err := database.AddOrGetUser(b.GetDB(), guildID, img.UserID)
	if err != nil {
		logHandlerError(s, b, "Events", "load image owner", err)
		return
	}
	if err := database.RemoveImage(b.GetDB(), owner, *img); err != nil {
		logHandlerError(s, b, "Events", "drop image", err)
	}
}

// handleReactionAdd stamps activity and re-grants the verified role when an
// already-verified member reacts to the rules message.
func handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd, b *bot.Bot) {
	if r.GuildID == "" || r.UserID == s.State.User.ID {
		return
	}

	user, err := loadUser(b, r.GuildID, r.UserID)
	if err != nil {
		logHandlerError(s, b, "Events", "load user", err)
		return
	}
	if err := database.UpdateLastActive(b.GetDB(), user); err != nil {
		logHandlerError(s, b, "Events", "stamp activity", err)
	}

	settings, err := loadSettings(b, r.GuildID)
	if err != nil {
		logHandlerError(s, b, "Events", "load settings", err)
		return
	}
	if settings.RulesMessageID == 0 || r.MessageID != strconv.FormatInt(settings.RulesMessageID, 10) {
		return
	}
	if !user.Verified || settings.VerifiedRoleID == 0 {
		return
	}
	role := strconv.FormatInt(settings.VerifiedRoleID, 10)
	if err := s.GuildMemberRoleAdd(r.GuildID, r.UserID, role); err != nil {
		logHandlerError(s, b, "Events", "re-grant verified role", err)
	}
}

// handleMemberJoin announces the arrival and resets the cleaned flag so the
// cleanup job picks the member up again if they were purged before.
func handleMemberJoin(s *discordgo.Session, m *discordgo.GuildMemberAdd, b *bot.Bot) {
	settings, err := loadSettings(b, m.GuildID)
	if err != nil {
		logHandlerError(s, b, "Events", "load settings", err)
		return
	}
	if settings.NotificationChannelID != 0 {
		channelID := strconv.FormatInt(settings.NotificationChannelID, 10)
		content := fmt.Sprintf("<t:%d:R> | ➡️ %s has joined the server.", time.Now().Unix(), m.Mention())
		if _, err := s.ChannelMessageSend(channelID, content); err != nil {
			logHandlerError(s, b, "Events", "announce join", err)
		}
	}

	user, err := loadUser(b, m.GuildID, m.User.ID)
	if err != nil {
		logHandlerError(s, b, "Events", "load user", err)
		return
	}
	if err := database.UpdateCleaned(b.GetDB(), user, false); err != nil {
		logHandlerError(s, b, "Events", "reset cleaned", err)
	}
}

// handleMemberLeave announces the departure and records it.
func handleMemberLeave(s *discordgo.Session, m *discordgo.GuildMemberRemove, b *bot.Bot) {
	settings, err := loadSettings(b, m.GuildID)
	if err != nil {
		logHandlerError(s, b, "Events", "load settings", err)
		return
	}
	if settings.NotificationChannelID != 0 {
		channelID := strconv.FormatInt(settings.NotificationChannelID, 10)
		content := fmt.Sprintf("<t:%d:R> | ⬅️ %s has left the server.", time.Now().Unix(), m.Mention())
		if _, err := s.ChannelMessageSend(channelID, content); err != nil {
			logHandlerError(s, b, "Events", "announce leave", err)
		}
	}

	user, err := loadUser(b, m.GuildID, m.User.ID)
	if err != nil {
		logHandlerError(s, b, "Events", "load user", err)
		return
	}
	if _, err := database.AddLeave(b.GetDB(), user); err != nil {
		logHandlerError(s, b, "Events", "record leave", err)
	}
}

// handleMemberBan flags the banned member so the cleanup job removes their
// tracked images.
func handleMemberBan(s *discordgo.Session, ban *discordgo.GuildBanAdd, b *bot.Bot) {
	user, err := loadUser(b, ban.GuildID, ban.User.ID)
	if err != nil {
		logHandlerError(s, b, "Events", "load user", err)
		return
	}
	if err := database.UpdateBanned(b.GetDB(), user, true); err != nil {
		logHandlerError(s, b, "Events", "flag banned", err)
	}
}

// handleMemberUpdate welcomes a member the moment they gain the verified
// role, pointing them at the roles and intros channels.
func handleMemberUpdate(s *discordgo.Session, m *discordgo.GuildMemberUpdate, b *bot.Bot) {
	settings, err := loadSettings(b, m.GuildID)
	if err != nil {
		logHandlerError(s, b, "Events", "load settings", err)
		return
	}
	if settings.VerifiedRoleID == 0 || settings.WelcomeChannelID == 0 {
		return
	}
	verifiedRole := strconv.FormatInt(settings.VerifiedRoleID, 10)
	if m.BeforeUpdate != nil && hasMemberRole(m.BeforeUpdate, verifiedRole) {
		return
	}
	if !hasMemberRole(m.Member, verifiedRole) {
		return
	}

	rolesChannel := "<not set>"
	if settings.RolesChannelID != 0 {
		rolesChannel = fmt.Sprintf("<#%d>", settings.RolesChannelID)
	}
	introsChannel := "<not set>"
	if settings.PersonalIntrosChannelID != 0 {
		introsChannel = fmt.Sprintf("<#%d>", settings.PersonalIntrosChannelID)
	}
	content := fmt.Sprintf(
		"Hello everyone, please welcome %s to our community.\nPlease head on over to our Roles channel %s and select a role.\nYou can also head on over to our Intros channel %s and introduce yourself!",
		m.Mention(), rolesChannel, introsChannel)
	channelID := strconv.FormatInt(settings.WelcomeChannelID, 10)
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		logHandlerError(s, b, "Events", "welcome member", err)
	}
}

// isGuildModerator mirrors isModerator for gateway events, which carry a
// Member without resolved permissions.
func isGuildModerator(member *discordgo.Member, settings *model.Settings) bool {
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	if settings.ModRoleID == 0 {
		return false
	}
	return hasMemberRole(member, strconv.FormatInt(settings.ModRoleID, 10))
}

// inPictureCategory reports whether the channel sits under the configured
// picture category, preferring the state cache over the REST API.
func inPictureCategory(s *discordgo.Session, guildID, channelID, categoryName string) bool {
	channel, err := s.State.Channel(channelID)
	if err != nil {
		if channel, err = s.Channel(channelID); err != nil {
			return false
		}
	}
	if channel.GuildID != guildID || channel.ParentID == "" {
		return false
	}
	parent, err := s.State.Channel(channel.ParentID)
	if err != nil {
		if parent, err = s.Channel(channel.ParentID); err != nil {
			return false
		}
	}
	return parent.Type == discordgo.ChannelTypeGuildCategory && strings.EqualFold(parent.Name, categoryName)
}
