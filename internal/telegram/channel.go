package telegram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/config"
)

// sender is the part of *bot.Bot used to deliver replies.
type sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

// Channel delivers replies through the Telegram Bot API.
type Channel struct {
	sender     sender
	keyboards  *Keyboards
	partHeader string
	typing     *typingManager
	log        *slog.Logger
}

// NewChannel creates a Channel sending through s, usually a *bot.Bot.
func NewChannel(s sender, keyboards *Keyboards, cfg config.TelegramConfig, log *slog.Logger) *Channel {
	log = log.With("component", "telegram_channel")
	return &Channel{
		sender:     s,
		keyboards:  keyboards,
		partHeader: cfg.PartHeader,
		typing:     &typingManager{sender: s, interval: cfg.TypingInterval, log: log},
		log:        log,
	}
}

// Send delivers one reply. Parts after the first of a split reply are
// prefixed with the part header.
func (c *Channel) Send(ctx context.Context, chatID int64, reply chat.Reply) error {
	text := reply.Text
	if reply.Parts > 1 && reply.Part > 1 {
		text = fmt.Sprintf(c.partHeader, reply.Part, reply.Parts) + text
	}

	_, err := c.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: c.keyboards.Markup(reply.Keyboard),
	})
	if err != nil {
		c.log.ErrorContext(ctx, "Failed to send message", "chat_id", chatID, "error", err)
		return fmt.Errorf("send message to chat %d: %w", chatID, err)
	}
	return nil
}

// Typing shows the typing indicator in chatID until stop is called.
func (c *Channel) Typing(ctx context.Context, chatID int64) (stop func()) {
	return c.typing.start(ctx, chatID)
}

var _ chat.Channel = (*Channel)(nil)
