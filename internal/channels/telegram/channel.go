// Package telegram is the bot front-end: it long-polls Telegram for
// updates, parses commands onto the message bus, and delivers replies.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/nextlevelbuilder/jotbot/internal/bus"
)

// Config holds the channel settings.
type Config struct {
	Token string
}

// Channel connects one Telegram bot to the dispatcher via the bus.
type Channel struct {
	bot      *telego.Bot
	bus      *bus.MessageBus
	username string
}

// New creates the channel and verifies the token with getMe.
func New(ctx context.Context, cfg Config, mb *bus.MessageBus) (*Channel, error) {
	bot, err := telego.NewBot(cfg.Token, telego.WithDefaultLogger(false, true))
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	me, err := bot.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("telegram getMe: %w", err)
	}

	slog.Info("telegram bot ready", "username", me.Username)
	return &Channel{bot: bot, bus: mb, username: me.Username}, nil
}

// Name returns the channel name.
func (c *Channel) Name() string { return "telegram" }

// Start long-polls for updates and publishes parsed commands inbound.
// Blocks until ctx is cancelled.
func (c *Channel) Start(ctx context.Context) error {
	updates, err := c.bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		return fmt.Errorf("telegram long polling: %w", err)
	}

	slog.Info("telegram polling started")
	for update := range updates {
		if update.Message == nil {
			continue
		}
		c.handleMessage(ctx, update.Message)
	}
	return nil
}

// DeliverLoop consumes outbound replies and sends them until ctx is cancelled.
func (c *Channel) DeliverLoop(ctx context.Context) error {
	for {
		reply, ok := c.bus.ConsumeOutbound(ctx)
		if !ok {
			return nil
		}
		c.sendSplit(ctx, reply.ChatID, reply.Text)
	}
}

func (c *Channel) handleMessage(ctx context.Context, msg *telego.Message) {
	if msg.From == nil {
		return
	}

	// Voice messages carry the meeting transcript for /summarize_meeting.
	if msg.Voice != nil {
		audio, err := c.downloadVoice(ctx, msg.Voice)
		if err != nil {
			slog.Error("voice download failed", "chat_id", msg.Chat.ID, "error", err)
			c.sendSplit(ctx, msg.Chat.ID, "❌ Error processing meeting summary. Please try again.")
			return
		}
		c.bus.PublishInbound(bus.InboundCommand{
			Command:    "summarize_meeting",
			OwnerID:    msg.From.ID,
			ChatID:     msg.Chat.ID,
			VoiceAudio: audio,
		})
		return
	}

	command, args, ok := parseCommand(msg.Text, c.username)
	if !ok {
		slog.Debug("ignoring non-command message", "chat_id", msg.Chat.ID)
		return
	}

	c.bus.PublishInbound(bus.InboundCommand{
		Command: command,
		Args:    args,
		OwnerID: msg.From.ID,
		ChatID:  msg.Chat.ID,
	})
}

// parseCommand extracts the command name and argument text from a
// message. The @botname suffix is stripped; the name is lowercased.
func parseCommand(text, botUsername string) (command, args string, ok bool) {
	if len(text) == 0 || text[0] != '/' {
		return "", "", false
	}

	head, rest, _ := strings.Cut(text[1:], " ")
	name, mention, mentioned := strings.Cut(head, "@")
	if mentioned && botUsername != "" && !strings.EqualFold(mention, botUsername) {
		// Command addressed to a different bot in a group chat.
		return "", "", false
	}
	name = strings.ToLower(name)
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(rest), true
}

// sendSplit delivers text in chunks under the Telegram length limit.
// Markdown parse failures fall back to plain text rather than dropping
// the reply.
func (c *Channel) sendSplit(ctx context.Context, chatID int64, text string) {
	for _, chunk := range splitMessage(text, telegramMaxMessageLen) {
		msg := tu.Message(tu.ID(chatID), chunk)
		msg.ParseMode = telego.ModeMarkdown
		if _, err := c.bot.SendMessage(ctx, msg); err != nil {
			slog.Debug("markdown send failed, retrying as plain text", "chat_id", chatID, "error", err)
			plain := tu.Message(tu.ID(chatID), chunk)
			if _, err := c.bot.SendMessage(ctx, plain); err != nil {
				slog.Error("telegram send failed", "chat_id", chatID, "error", err)
			}
		}
	}
}
