package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSettingsField(t *testing.T) {
	f, err := ParseSettingsField("mod_role_id")
	require.NoError(t, err)
	require.Equal(t, FieldModRoleID, f)

	_, err = ParseSettingsField("guild_id")
	require.Error(t, err)
	_, err = ParseSettingsField("")
	require.Error(t, err)
}

func TestSettingsFieldIsSnowflake(t *testing.T) {
	for _, f := range SettingsFields {
		if f == FieldMsgTimeout {
			require.False(t, f.IsSnowflake())
			continue
		}
		require.True(t, f.IsSnowflake(), "field %s", f)
	}
}

func TestSettingsSetGetRoundTrip(t *testing.T) {
	var s Settings
	for i, f := range SettingsFields {
		value := int64(1000 + i)
		s.Set(f, value)
		require.Equal(t, value, s.Get(f), "field %s", f)
	}
}
