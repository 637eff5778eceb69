package tasks

import (
	"log"
	"strconv"

	"mrfriendly/database"
	"mrfriendly/model"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

const imageDeleteBatch = 30

// CleanUsers deletes the tracked attachment messages of banned and uncleaned
// members, a bounded batch per user per tick, and marks users cleaned once
// nothing of theirs remains.
func CleanUsers(s *discordgo.Session, db *sqlx.DB) error {
	for _, guild := range s.State.Guilds {
		guildID, err := strconv.ParseInt(guild.ID, 10, 64)
		if err != nil {
			continue
		}

		banned, err := database.GetBannedUsers(db, guildID)
		if err != nil {
			log.Printf("Failed to get banned users for guild %s: %v", guild.ID, err)
			continue
		}
		unclean, err := database.GetUncleanUsers(db, guildID)
		if err != nil {
			log.Printf("Failed to get unclean users for guild %s: %v", guild.ID, err)
			continue
		}

		seen := make(map[int64]struct{})
		candidates := make([]model.User, 0, len(banned)+len(unclean))
		for _, u := range append(banned, unclean...) {
			if _, ok := seen[u.UserID]; ok {
				continue
			}
			seen[u.UserID] = struct{}{}
			candidates = append(candidates, u)
		}

		for i := range candidates {
			u := &candidates[i]
			if u.Cleaned {
				continue
			}
			cleanOneUser(s, db, u)
		}
	}
	return nil
}

func cleanOneUser(s *discordgo.Session, db *sqlx.DB, u *model.User) {
	images, err := database.GetAllImages(db, u)
	if err != nil {
		log.Printf("Failed to get images for user %d: %v", u.UserID, err)
		return
	}
	if len(images) == 0 {
		if err := database.UpdateCleaned(db, u, true); err != nil {
			log.Printf("Failed to mark user %d cleaned: %v", u.UserID, err)
		}
		return
	}

	count := 0
	for img := range images {
		if count >= imageDeleteBatch {
			return
		}
		count++

		channelID := strconv.FormatInt(img.ChannelID, 10)
		messageID := strconv.FormatInt(img.MessageID, 10)
		// The message may already be gone, or the channel with it; the row
		// is removed either way.
		if err := s.ChannelMessageDelete(channelID, messageID); err != nil {
			log.Printf("Failed to delete message %s in channel %s: %v", messageID, channelID, err)
		}
		if err := database.RemoveImage(db, u, img); err != nil {
			log.Printf("Failed to remove image row %d: %v", img.ID, err)
		}
	}
}
