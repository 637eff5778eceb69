package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckSnowflake(t *testing.T) {
	require.NoError(t, CheckSnowflake("guild_id", 1259645744420360243))
	require.NoError(t, CheckSnowflake("guild_id", 123456789012345)) // exactly 15 digits

	err := CheckSnowflake("guild_id", 12345678901234) // 14 digits
	require.Error(t, err)
	require.Contains(t, err.Error(), "guild_id")
	require.Contains(t, err.Error(), "too short")
}

func TestParseSnowflake(t *testing.T) {
	v, err := ParseSnowflake("channel_id", "1259645744420360243")
	require.NoError(t, err)
	require.EqualValues(t, 1259645744420360243, v)

	_, err = ParseSnowflake("channel_id", "not-a-number")
	require.Error(t, err)

	_, err = ParseSnowflake("channel_id", "42")
	require.Error(t, err)
}
