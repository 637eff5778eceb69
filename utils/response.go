package utils

import (
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
)

// RespondEphemeral sends a short-lived ephemeral reply and deletes it after
// timeoutSeconds. Failures are logged and swallowed; a missing reply is not
// worth crashing a handler over.
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string, timeoutSeconds int64) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Failed to respond to interaction: %v", err)
		return
	}
	expireResponse(s, i, timeoutSeconds)
}

// RespondEmbedEphemeral sends an ephemeral embed reply with the same expiry
// behavior as RespondEphemeral.
func RespondEmbedEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, timeoutSeconds int64) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Failed to respond to interaction: %v", err)
		return
	}
	expireResponse(s, i, timeoutSeconds)
}

// SendTimedMessage posts a channel message that deletes itself after
// timeoutSeconds. Failures are logged and swallowed.
func SendTimedMessage(s *discordgo.Session, channelID, content string, timeoutSeconds int64) {
	msg, err := s.ChannelMessageSend(channelID, content)
	if err != nil {
		log.Printf("Failed to send message to channel %s: %v", channelID, err)
		return
	}
	if timeoutSeconds <= 0 {
		return
	}
	time.AfterFunc(time.Duration(timeoutSeconds)*time.Second, func() {
		if err := s.ChannelMessageDelete(channelID, msg.ID); err != nil {
			log.Printf("Failed to delete expired message %s: %v", msg.ID, err)
		}
	})
}

func expireResponse(s *discordgo.Session, i *discordgo.InteractionCreate, timeoutSeconds int64) {
	if timeoutSeconds <= 0 {
		return
	}
	interaction := i.Interaction
	time.AfterFunc(time.Duration(timeoutSeconds)*time.Second, func() {
		if err := s.InteractionResponseDelete(interaction); err != nil {
			log.Printf("Failed to delete expired interaction response: %v", err)
		}
	})
}
