package tasks

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"mrfriendly/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// ValidateRoleEmbeds drops role_embeds rows whose message no longer exists.
// Guilds with no tracked embeds are skipped; transient fetch failures leave
// the row in place for the next tick.
func ValidateRoleEmbeds(s *discordgo.Session, db *sqlx.DB) error {
	for _, guild := range s.State.Guilds {
		guildID, err := strconv.ParseInt(guild.ID, 10, 64)
		if err != nil {
			continue
		}
		embeds, err := database.GetAllRoleEmbeds(db, guildID)
		if errors.Is(err, database.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("Failed to list role embeds for guild %s: %v", guild.ID, err)
			continue
		}

		for _, embed := range embeds {
			channelID := strconv.FormatInt(embed.ChannelID, 10)
			messageID := strconv.FormatInt(embed.MessageID, 10)
			_, err := s.ChannelMessage(channelID, messageID)
			if err == nil {
				continue
			}
			var restErr *discordgo.RESTError
			if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
				if _, err := database.RemoveRoleEmbed(db, embed.ID); err != nil {
					log.Printf("Failed to remove stale role embed %d: %v", embed.ID, err)
				} else {
					log.Printf("Removed stale role embed %d (%s) in guild %s", embed.ID, embed.Name, guild.ID)
				}
				continue
			}
			log.Printf("Failed to verify role embed %d in guild %s: %v", embed.ID, guild.ID, err)
		}
	}
	return nil
}
