package discordadapter

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Announcer posts admission notices to a Discord channel over the REST API.
// The session never opens a gateway connection.
type Announcer struct {
	session   *discordgo.Session
	channelID string
}

func NewAnnouncer(botToken string, channelID string) (*Announcer, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	return &Announcer{
		session:   session,
		channelID: channelID,
	}, nil
}

func (a *Announcer) Announce(ctx context.Context, message string) error {
	_, err := a.session.ChannelMessageSend(a.channelID, message, discordgo.WithContext(ctx))
	return err
}
