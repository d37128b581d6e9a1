package handlers

import (
	"context"
	"log/slog"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/config"
)

// Dispatcher processes one inbound event; *session.Orchestrator implements it.
type Dispatcher interface {
	Handle(ctx context.Context, in chat.Inbound) error
}

// EventParser classifies message text as a button press or free text.
type EventParser interface {
	Event(text string) chat.Event
}

// HandlerDeps provides dependencies for Telegram update handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	Dispatcher Dispatcher
	Parser     EventParser
}
