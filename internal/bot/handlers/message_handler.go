package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/dualcoach/internal/chat"
)

// NewCommandHandler returns a handler that forwards a slash command to the dispatcher.
func NewCommandHandler(deps HandlerDeps, cmd chat.Command) bot.HandlerFunc {
	return commandHandler{deps: deps, cmd: cmd}.Handle
}

type commandHandler struct {
	deps HandlerDeps
	cmd  chat.Command
}

func (h commandHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", h.cmd.String())

	in, ok := inbound(update)
	if !ok {
		log.WarnContext(ctx, "Command handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	log.InfoContext(ctx, "Handling command", "command", h.cmd.String(), "chat_id", in.ChatID, "user_id", in.UserID)

	in.Event = chat.CommandEvent(h.cmd)
	in.Event.Text = update.Message.Text
	dispatch(ctx, h.deps, in)
}

// NewMessageHandler returns the default handler for plain text messages and
// keyboard button presses. Unknown slash commands and non-text messages are ignored.
func NewMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return messageHandler{deps}.Handle
}

type messageHandler struct {
	deps HandlerDeps
}

func (h messageHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "message")

	in, ok := inbound(update)
	if !ok {
		log.DebugContext(ctx, "Ignoring update without message", "update_id", update.ID)
		return
	}

	text := update.Message.Text
	if strings.TrimSpace(text) == "" {
		log.DebugContext(ctx, "Ignoring message without text", "chat_id", in.ChatID)
		return
	}
	if strings.HasPrefix(text, "/") {
		log.DebugContext(ctx, "Ignoring unknown command", "chat_id", in.ChatID, "text", text)
		return
	}

	in.Event = h.deps.Parser.Event(text)
	dispatch(ctx, h.deps, in)
}

func inbound(update *models.Update) (chat.Inbound, bool) {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return chat.Inbound{}, false
	}
	return chat.Inbound{
		UserID:   update.Message.From.ID,
		ChatID:   update.Message.Chat.ID,
		Username: update.Message.From.Username,
	}, true
}

func dispatch(ctx context.Context, deps HandlerDeps, in chat.Inbound) {
	if err := deps.Dispatcher.Handle(ctx, in); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to handle event",
			"error", err, "chat_id", in.ChatID, "user_id", in.UserID, "event_kind", in.Event.Kind)
	}
}
