// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// PrivateOnly creates a middleware that drops messages from groups and
// channels when telegram.private_only is set. Coaching data is personal and
// every session is keyed by the sender.
func PrivateOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			if !deps.Config.Telegram.PrivateOnly || update.Message == nil {
				next(ctx, bot, update)
				return
			}

			if update.Message.Chat.Type != models.ChatTypePrivate {
				deps.Logger.With("middleware", "PrivateOnly").DebugContext(ctx, "Ignoring message from non-private chat",
					"chat_id", update.Message.Chat.ID, "chat_type", update.Message.Chat.Type)
				return
			}

			next(ctx, bot, update)
		}
	}
}
