package tasks

import (
	"log"
	"strconv"
	"time"

	"mrfriendly/database"
	"mrfriendly/model"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

const kickPause = time.Second

// KickUnverified kicks members who have been in a guild longer than the
// configured window without receiving the verified role.
func KickUnverified(s *discordgo.Session, db *sqlx.DB, cfg *model.Config) error {
	maxAge := time.Duration(cfg.UnverifiedKickDays) * 24 * time.Hour

	for _, guild := range s.State.Guilds {
		guildID, err := strconv.ParseInt(guild.ID, 10, 64)
		if err != nil {
			continue
		}
		settings, err := database.AddOrGetSettings(db, guildID)
		if err != nil {
			log.Printf("Failed to load settings for guild %s: %v", guild.ID, err)
			continue
		}
		if settings.VerifiedRoleID == 0 {
			log.Printf("Guild %s has no verified role configured, skipping unverified kick", guild.ID)
			continue
		}
		verifiedRole := strconv.FormatInt(settings.VerifiedRoleID, 10)

		members, err := fetchAllMembers(s, guild.ID)
		if err != nil {
			log.Printf("Unverified kick: %v", err)
			continue
		}
		for _, member := range members {
			if member.User == nil || member.User.Bot {
				continue
			}
			if member.JoinedAt.IsZero() || time.Since(member.JoinedAt) < maxAge {
				continue
			}
			if hasRole(member, verifiedRole) {
				continue
			}
			if err := s.GuildMemberDeleteWithReason(guild.ID, member.User.ID,
				"Failed to verify within "+strconv.Itoa(cfg.UnverifiedKickDays)+" days"); err != nil {
				log.Printf("Failed to kick unverified member %s in guild %s: %v", member.User.ID, guild.ID, err)
				continue
			}
			time.Sleep(kickPause)
		}
	}
	return nil
}

// KickInactive kicks members whose last recorded activity is older than the
// configured window. Every inbound event stamps last_active_at, so a member
// with no row gets one now and a full window before this job touches them.
func KickInactive(s *discordgo.Session, db *sqlx.DB, cfg *model.Config) error {
	maxIdle := time.Duration(cfg.InactiveKickDays) * 24 * time.Hour

	for _, guild := range s.State.Guilds {
		guildID, err := strconv.ParseInt(guild.ID, 10, 64)
		if err != nil {
			continue
		}
		members, err := fetchAllMembers(s, guild.ID)
		if err != nil {
			log.Printf("Inactive kick: %v", err)
			continue
		}
		for _, member := range members {
			if member.User == nil || member.User.Bot {
				continue
			}
			userID, err := strconv.ParseInt(member.User.ID, 10, 64)
			if err != nil {
				continue
			}
			u, err := database.AddOrGetUser(db, guildID, userID)
			if err != nil {
				log.Printf("Failed to load user %s in guild %s: %v", member.User.ID, guild.ID, err)
				continue
			}
			if time.Since(u.LastActive()) < maxIdle {
				continue
			}
			if err := s.GuildMemberDeleteWithReason(guild.ID, member.User.ID,
				"Inactive for over "+strconv.Itoa(cfg.InactiveKickDays)+" days"); err != nil {
				log.Printf("Failed to kick inactive member %s in guild %s: %v", member.User.ID, guild.ID, err)
				continue
			}
			time.Sleep(kickPause)
		}
	}
	return nil
}
