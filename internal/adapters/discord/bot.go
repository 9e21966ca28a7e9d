package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
	discordpkg "shikkha/pkg/discord"
)

var _ output.Announcer = (*Bot)(nil)

// embedSender is the part of *discordgo.Session the bot needs.
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot posts announcements for new articles to one Discord channel.
type Bot struct {
	session   *discordgo.Session
	sender    embedSender
	channelID string
	siteURL   string
	t         output.T
}

// NewBot creates the Discord session. Call Open before announcing.
func NewBot(token, channelID, siteURL string, t output.T) (*Bot, error) {
	if token == "" || channelID == "" {
		return nil, fmt.Errorf("discord: token and channel id are required")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	return &Bot{
		session:   s,
		sender:    s,
		channelID: channelID,
		siteURL:   siteURL,
		t:         t,
	}, nil
}

// Open connects the gateway session.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open session: %w", err)
	}
	log.Printf("🤖 Discord announcer online (channel %s)", b.channelID)
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// Announce sends the embed for post to the announcement channel.
func (b *Bot) Announce(ctx context.Context, post *entities.Post) error {
	embed := discordpkg.BuildPostEmbed(b.t, b.siteURL, post)
	if _, err := b.sender.ChannelMessageSendEmbed(b.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: send embed: %w", err)
	}
	log.Printf("📣 Announced post %d (%s/%s)", post.ID, post.Locale, post.Slug)
	return nil
}
