package tasks

import (
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestHasRole(t *testing.T) {
	member := &discordgo.Member{Roles: []string{"111", "222"}}
	require.True(t, hasRole(member, "222"))
	require.False(t, hasRole(member, "333"))
	require.False(t, hasRole(&discordgo.Member{}, "111"))
}

func TestSnowflakeForTime(t *testing.T) {
	instant := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	id, err := strconv.ParseInt(snowflakeForTime(instant), 10, 64)
	require.NoError(t, err)

	// discordgo derives a snowflake's timestamp the same way in reverse.
	recovered, err := discordgo.SnowflakeTimestamp(strconv.FormatInt(id, 10))
	require.NoError(t, err)
	require.WithinDuration(t, instant, recovered, time.Second)
}
