package telegram

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// typingManager keeps a chat's typing indicator alive while a reply is prepared.
type typingManager struct {
	sender   sender
	interval time.Duration
	log      *slog.Logger
}

// start sends a typing action now and then every interval until stop is called.
// stop waits for the loop to exit, so no typing action follows the reply.
func (t *typingManager) start(ctx context.Context, chatID int64) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		t.sendContinuousTyping(ctx, chatID)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func (t *typingManager) sendContinuousTyping(ctx context.Context, chatID int64) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	if err := t.sendTypingAction(ctx, chatID); err != nil {
		if ctx.Err() == nil {
			t.log.WarnContext(ctx, "Failed to send initial typing action", "chat_id", chatID, "error", err)
		}
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.sendTypingAction(ctx, chatID); err != nil {
				if ctx.Err() != nil {
					return
				}
				t.log.DebugContext(ctx, "Typing action failed", "chat_id", chatID, "error", err)
			}
		}
	}
}

func (t *typingManager) sendTypingAction(ctx context.Context, chatID int64) error {
	_, err := t.sender.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: chatID,
		Action: models.ChatActionTyping,
	})
	return err
}
