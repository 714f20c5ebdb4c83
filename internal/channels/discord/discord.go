// Package discord connects the bot to Discord via the Bot API gateway.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/marhaba-bot/marhaba/internal/bus"
	"github.com/marhaba-bot/marhaba/internal/channels"
	"github.com/marhaba-bot/marhaba/internal/config"
)

// Discord rejects message bodies over 2000 characters.
const maxMessageLen = 2000

// Channel connects to Discord via the Bot API using gateway events.
type Channel struct {
	*channels.BaseChannel
	session   *discordgo.Session
	config    config.DiscordConfig
	limiter   *rate.Limiter
	botUserID string // populated on start
}

// New creates a new Discord channel from config.
func New(cfg config.DiscordConfig, msgBus *bus.MessageBus) (*Channel, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	// Request necessary intents
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	sendRate := cfg.SendRate
	if sendRate <= 0 {
		sendRate = 5
	}

	return &Channel{
		BaseChannel: channels.NewBaseChannel("discord", msgBus),
		session:     session,
		config:      cfg,
		limiter:     rate.NewLimiter(rate.Limit(sendRate), 5),
	}, nil
}

// Start opens the Discord gateway connection and begins receiving events.
func (c *Channel) Start(_ context.Context) error {
	slog.Info("starting discord bot")

	c.session.AddHandler(c.handleMessage)

	if err := c.session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	user, err := c.session.User("@me")
	if err != nil {
		c.session.Close()
		return fmt.Errorf("fetch discord bot identity: %w", err)
	}
	c.botUserID = user.ID

	if c.config.Presence != "" {
		if err := c.session.UpdateWatchStatus(0, c.config.Presence); err != nil {
			slog.Warn("failed to set discord presence", "error", err)
		}
	}

	c.SetRunning(true)
	slog.Info("discord bot connected", "username", user.Username, "id", user.ID)

	return nil
}

// Stop closes the Discord gateway connection.
func (c *Channel) Stop(_ context.Context) error {
	slog.Info("stopping discord bot")
	c.SetRunning(false)
	return c.session.Close()
}

// Send delivers an outbound message to a Discord channel, waiting on the
// send limiter first so bursts of game notices stay under Discord's rate
// limits.
func (c *Channel) Send(ctx context.Context, msg bus.OutboundMessage) error {
	if !c.IsRunning() {
		return fmt.Errorf("discord bot not running")
	}
	if msg.ChannelID == "" {
		return fmt.Errorf("empty channel ID for discord send")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("send rate wait: %w", err)
	}

	if msg.Rich != nil {
		if _, err := c.session.ChannelMessageSendEmbed(msg.ChannelID, toEmbed(msg.Rich)); err != nil {
			return fmt.Errorf("send discord embed: %w", err)
		}
		return nil
	}

	return c.sendChunked(msg.ChannelID, msg.Content)
}

// sendChunked sends a message, splitting into multiple messages if over
// the Discord length limit.
func (c *Channel) sendChunked(channelID, content string) error {
	for len(content) > 0 {
		chunk := content
		if len(chunk) > maxMessageLen {
			// Try to break at a newline
			cutAt := maxMessageLen
			if idx := lastIndexByte(content[:maxMessageLen], '\n'); idx > maxMessageLen/2 {
				cutAt = idx + 1
			}
			chunk = content[:cutAt]
			content = content[cutAt:]
		} else {
			content = ""
		}

		if _, err := c.session.ChannelMessageSend(channelID, chunk); err != nil {
			return fmt.Errorf("send discord message: %w", err)
		}
	}

	return nil
}

// handleMessage processes incoming Discord messages.
func (c *Channel) handleMessage(_ *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore the bot's own messages and other bots
	if m.Author == nil || m.Author.ID == c.botUserID || m.Author.Bot {
		return
	}

	// DMs carry no guild; use a stable synthetic scope so per-room state
	// still works there.
	guildID := m.GuildID
	if guildID == "" {
		guildID = "dm"
	}

	senderName := resolveDisplayName(m)

	slog.Debug("discord message received",
		"sender_id", m.Author.ID,
		"guild_id", guildID,
		"channel_id", m.ChannelID,
		"preview", channels.Truncate(m.Content, 50),
	)

	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	metadata := map[string]string{
		"message_id": m.ID,
		"username":   m.Author.Username,
		"mention":    m.Author.Mention(),
	}
	if m.Member != nil && !m.Member.JoinedAt.IsZero() {
		metadata["joined_at"] = m.Member.JoinedAt.Format("2006-01-02")
	}

	c.Bus().PublishInbound(bus.InboundMessage{
		Channel:   c.Name(),
		GuildID:   guildID,
		ChannelID: m.ChannelID,
		SenderID:  m.Author.ID,
		Sender:    senderName,
		Content:   m.Content,
		Timestamp: ts,
		Metadata:  metadata,
	})
}

// toEmbed converts bus rich content into a Discord embed.
func toEmbed(rich *bus.RichContent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       rich.Title,
		Description: rich.Body,
		Color:       rich.Color,
	}
	for _, f := range rich.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if rich.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: rich.Footer}
	}
	return embed
}

// resolveDisplayName returns the best available display name for a
// Discord message author. Priority: server nickname > global display
// name > username.
func resolveDisplayName(m *discordgo.MessageCreate) string {
	if m.Member != nil && m.Member.Nick != "" {
		return m.Member.Nick
	}
	if m.Author.GlobalName != "" {
		return m.Author.GlobalName
	}
	return m.Author.Username
}

// lastIndexByte returns the last index of byte c in s, or -1.
func lastIndexByte(s string, c byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == c {
			return i
		}
	}
	return -1
}
