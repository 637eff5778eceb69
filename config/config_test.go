package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTokenFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.ini")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadReadsTokenFile(t *testing.T) {
	path := writeTokenFile(t, "[discord]\ntoken = abc123\n")
	t.Setenv("TOKEN_FILE", path)
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("PICTURE_CATEGORY", "")
	t.Setenv("UNVERIFIED_KICK_DAYS", "")
	t.Setenv("INACTIVE_KICK_DAYS", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "abc123", cfg.BotToken)
	require.Equal(t, "data/mrfriendly.db", cfg.DatabasePath)
	require.Equal(t, "nsfw pics-videos", cfg.PictureCategoryName)
	require.Equal(t, 7, cfg.UnverifiedKickDays)
	require.Equal(t, 180, cfg.InactiveKickDays)
}

func TestLoadHonorsEnvOverrides(t *testing.T) {
	path := writeTokenFile(t, "[discord]\ntoken = abc123\n")
	t.Setenv("TOKEN_FILE", path)
	t.Setenv("DATABASE_PATH", "/tmp/other.db")
	t.Setenv("PICTURE_CATEGORY", "media")
	t.Setenv("UNVERIFIED_KICK_DAYS", "3")
	t.Setenv("INACTIVE_KICK_DAYS", "bogus")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/other.db", cfg.DatabasePath)
	require.Equal(t, "media", cfg.PictureCategoryName)
	require.Equal(t, 3, cfg.UnverifiedKickDays)
	// Unparseable overrides fall back to the default.
	require.Equal(t, 180, cfg.InactiveKickDays)
}

func TestLoadFailsWithoutDiscordSection(t *testing.T) {
	path := writeTokenFile(t, "[other]\ntoken = abc123\n")
	t.Setenv("TOKEN_FILE", path)

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "token")
}

func TestLoadFailsWithMissingFile(t *testing.T) {
	t.Setenv("TOKEN_FILE", filepath.Join(t.TempDir(), "missing.ini"))

	_, err := Load()
	require.Error(t, err)
}
