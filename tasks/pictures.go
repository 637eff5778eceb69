package tasks

import (
	"log"
	"strings"
	"time"

	"mrfriendly/model"

	"github.com/bwmarrin/discordgo"
)

const (
	pictureMaxAge      = 14 * 24 * time.Hour
	pictureDeleteBatch = 30
	pictureDeletePause = time.Second
)

// CleanPictures deletes unpinned messages older than 14 days from the
// channels under the configured picture category, a bounded batch per
// channel per tick. Individual delete failures are logged and skipped.
func CleanPictures(s *discordgo.Session, cfg *model.Config) error {
	for _, guild := range s.State.Guilds {
		channels, err := s.GuildChannels(guild.ID)
		if err != nil {
			log.Printf("Failed to list channels for guild %s: %v", guild.ID, err)
			continue
		}

		var categoryID string
		for _, ch := range channels {
			if ch.Type == discordgo.ChannelTypeGuildCategory && strings.EqualFold(ch.Name, cfg.PictureCategoryName) {
				categoryID = ch.ID
				break
			}
		}
		if categoryID == "" {
			continue
		}

		cutoff := snowflakeForTime(time.Now().Add(-pictureMaxAge))
		for _, ch := range channels {
			if ch.ParentID != categoryID || ch.Type != discordgo.ChannelTypeGuildText {
				continue
			}
			messages, err := s.ChannelMessages(ch.ID, pictureDeleteBatch, cutoff, "", "")
			if err != nil {
				log.Printf("Failed to fetch messages for channel %s: %v", ch.ID, err)
				continue
			}
			for _, msg := range messages {
				if msg.Pinned {
					continue
				}
				if err := s.ChannelMessageDelete(ch.ID, msg.ID); err != nil {
					log.Printf("Failed to delete message %s in channel %s: %v", msg.ID, ch.ID, err)
					continue
				}
				time.Sleep(pictureDeletePause)
			}
		}
	}
	return nil
}
