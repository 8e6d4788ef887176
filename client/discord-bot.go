package client

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordNotifier posts operational messages to a single channel of the ops server.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(token string, channelID string) (*DiscordNotifier, error) {
	if token == "" || channelID == "" {
		return nil, errors.New("discord bot token and channel id are required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

func (d *DiscordNotifier) Notify(message string) error {
	_, err := d.session.ChannelMessageSend(d.channelID, message)
	return err
}
