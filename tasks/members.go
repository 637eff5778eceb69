package tasks

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
)

// fetchAllMembers pages through the guild member list. The state cache only
// holds members it has seen, which is not enough for the kick jobs.
func fetchAllMembers(s *discordgo.Session, guildID string) ([]*discordgo.Member, error) {
	var members []*discordgo.Member
	after := ""
	for {
		page, err := s.GuildMembers(guildID, after, 1000)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch members for guild %s: %w", guildID, err)
		}
		members = append(members, page...)
		if len(page) < 1000 {
			return members, nil
		}
		after = page[len(page)-1].User.ID
	}
}

func hasRole(member *discordgo.Member, roleID string) bool {
	for _, r := range member.Roles {
		if r == roleID {
			return true
		}
	}
	return false
}

// snowflakeForTime builds the message snowflake corresponding to an instant,
// for use as a `before` cursor in history fetches.
func snowflakeForTime(t time.Time) string {
	const discordEpochMs = 1420070400000
	return strconv.FormatInt((t.UnixMilli()-discordEpochMs)<<22, 10)
}
