package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"mrfriendly/model"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultTokenFile = "data/token.ini"

// Load reads the token file and environment overrides into a Config.
// The token file is INI with a [discord] section; a missing section or
// empty token is a fatal startup condition surfaced as an error.
func Load() (*model.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: .env file not found, relying on environment variables")
	}

	tokenFile := os.Getenv("TOKEN_FILE")
	if tokenFile == "" {
		tokenFile = defaultTokenFile
	}

	v := viper.New()
	v.SetConfigFile(tokenFile)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", tokenFile, err)
	}
	token := v.GetString("discord.token")
	if token == "" {
		return nil, fmt.Errorf("no `discord` section with a `token` key in %s", tokenFile)
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/mrfriendly.db"
	}

	pictureCategory := os.Getenv("PICTURE_CATEGORY")
	if pictureCategory == "" {
		pictureCategory = "nsfw pics-videos"
	}

	cfg := &model.Config{
		BotToken:            token,
		LogChannelID:        os.Getenv("LOG_CHANNEL_ID"),
		DatabasePath:        dbPath,
		PictureCategoryName: pictureCategory,
		UnverifiedKickDays:  intEnv("UNVERIFIED_KICK_DAYS", 7),
		InactiveKickDays:    intEnv("INACTIVE_KICK_DAYS", 180),
	}
	if cfg.LogChannelID == "" {
		log.Println("Warning: LOG_CHANNEL_ID not set, channel logging will be disabled")
	}
	return cfg, nil
}

func intEnv(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Warning: Invalid %s value %q, using default of %d", key, s, fallback)
		return fallback
	}
	return n
}
