package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mrfriendly/commands"
	"mrfriendly/utils"

	"github.com/bwmarrin/discordgo"
)

// Run opens the gateway connection, registers the slash commands, starts the
// scheduler and blocks until the process is interrupted.
func (b *Bot) Run() {
	err := b.Session.Open()
	if err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	log.Printf("Registering %d commands...", len(commands.All))
	registered, err := b.Session.ApplicationCommandBulkOverwrite(b.Session.State.User.ID, "", commands.All)
	if err != nil {
		log.Fatalf("Cannot register commands: %v", err)
	}
	b.RegisteredCommands = registered

	b.scheduler.Start()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	if err := utils.LogInfo(b.Session, b.GetConfig().LogChannelID, "System", "Startup", "Bot has started successfully."); err != nil {
		log.Printf("Failed to send startup log: %v", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}

// UnregisterCommands removes every command this process registered. Used on
// operator request, not on shutdown.
func (b *Bot) UnregisterCommands() {
	for _, cmd := range b.RegisteredCommands {
		if err := b.Session.ApplicationCommandDelete(b.Session.State.User.ID, "", cmd.ID); err != nil {
			log.Printf("Cannot delete command %q: %v", cmd.Name, err)
		}
	}
	b.RegisteredCommands = []*discordgo.ApplicationCommand{}
}
