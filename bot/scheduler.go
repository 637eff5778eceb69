package bot

import (
	"log"
	"sync"
	"time"

	"mrfriendly/model"
	"mrfriendly/tasks"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// BotProvider defines the methods the scheduler needs from the Bot.
type BotProvider interface {
	GetConfig() *model.Config
	GetDB() *sqlx.DB
	GetSession() *discordgo.Session
}

// Scheduler runs the periodic cleanup and kick jobs. Jobs are independent
// best-effort loops: a tick that fails logs and waits for the next tick.
type Scheduler struct {
	bot  BotProvider
	done chan struct{}
	wg   sync.WaitGroup

	pictureCleanupTicker      *time.Ticker
	unverifiedKickTicker      *time.Ticker
	inactiveKickTicker        *time.Ticker
	userCleanupTicker         *time.Ticker
	roleEmbedValidationTicker *time.Ticker
}

func NewScheduler(bot BotProvider) *Scheduler {
	return &Scheduler{
		bot:  bot,
		done: make(chan struct{}),
	}
}

// Start begins all scheduled tasks.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduledTasks()
}

// Stop terminates all scheduled tasks gracefully.
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	close(s.done)
	s.wg.Wait()
	log.Println("Scheduler stopped.")
}

func (s *Scheduler) runScheduledTasks() {
	defer s.wg.Done()

	s.pictureCleanupTicker = time.NewTicker(5 * time.Minute)
	s.unverifiedKickTicker = time.NewTicker(6 * time.Hour)
	s.inactiveKickTicker = time.NewTicker(24 * time.Hour)
	s.userCleanupTicker = time.NewTicker(15 * time.Minute)
	s.roleEmbedValidationTicker = time.NewTicker(1 * time.Hour)

	defer s.pictureCleanupTicker.Stop()
	defer s.unverifiedKickTicker.Stop()
	defer s.inactiveKickTicker.Stop()
	defer s.userCleanupTicker.Stop()
	defer s.roleEmbedValidationTicker.Stop()

	for {
		select {
		case <-s.pictureCleanupTicker.C:
			s.runJob("picture cleanup", func() error {
				return tasks.CleanPictures(s.bot.GetSession(), s.bot.GetConfig())
			})
		case <-s.unverifiedKickTicker.C:
			s.runJob("unverified kick", func() error {
				return tasks.KickUnverified(s.bot.GetSession(), s.bot.GetDB(), s.bot.GetConfig())
			})
		case <-s.inactiveKickTicker.C:
			s.runJob("inactive kick", func() error {
				return tasks.KickInactive(s.bot.GetSession(), s.bot.GetDB(), s.bot.GetConfig())
			})
		case <-s.userCleanupTicker.C:
			s.runJob("user cleanup", func() error {
				return tasks.CleanUsers(s.bot.GetSession(), s.bot.GetDB())
			})
		case <-s.roleEmbedValidationTicker.C:
			s.runJob("role embed validation", func() error {
				return tasks.ValidateRoleEmbeds(s.bot.GetSession(), s.bot.GetDB())
			})
		case <-s.done:
			return
		}
	}
}

// runJob logs a failed tick and lets the loop continue; the next tick is the
// retry.
func (s *Scheduler) runJob(name string, job func() error) {
	log.Printf("Running %s...", name)
	if err := job(); err != nil {
		log.Printf("Error during %s: %v", name, err)
	}
}
