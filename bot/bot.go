package bot

import (
	"log"
	"sync/atomic"

	"mrfriendly/model"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

type Bot struct {
	Session            *discordgo.Session
	DB                 *sqlx.DB
	RegisteredCommands []*discordgo.ApplicationCommand
	config             atomic.Value // *model.Config
	scheduler          *Scheduler
	done               chan struct{}
}

func New(cfg *model.Config, db *sqlx.DB) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentGuildModeration |
		discordgo.IntentMessageContent

	b := &Bot{
		Session: dg,
		DB:      db,
		done:    make(chan struct{}),
	}
	b.config.Store(cfg)
	b.scheduler = NewScheduler(b)
	return b, nil
}

func (b *Bot) GetConfig() *model.Config {
	return b.config.Load().(*model.Config)
}

func (b *Bot) GetDB() *sqlx.DB {
	return b.DB
}

func (b *Bot) GetSession() *discordgo.Session {
	return b.Session
}

func (b *Bot) GetScheduler() *Scheduler {
	return b.scheduler
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	b.scheduler.Stop()
	if err := b.Session.Close(); err != nil {
		log.Printf("Error closing session: %v", err)
	}
	if err := b.DB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
