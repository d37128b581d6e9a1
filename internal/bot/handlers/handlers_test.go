package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/config"
	"github.com/edgard/dualcoach/internal/telegram"
)

type recordingDispatcher struct {
	events []chat.Inbound
	err    error
}

func (r *recordingDispatcher) Handle(_ context.Context, in chat.Inbound) error {
	r.events = append(r.events, in)
	return r.err
}

func newTestDeps(privateOnly bool) (HandlerDeps, *recordingDispatcher) {
	cfg := config.Default()
	cfg.Telegram.PrivateOnly = privateOnly
	d := &recordingDispatcher{}
	return HandlerDeps{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:     cfg,
		Dispatcher: d,
		Parser:     telegram.NewKeyboards(cfg.Labels),
	}, d
}

func message(text string, chatType models.ChatType) *models.Update {
	return &models.Update{
		ID: 1,
		Message: &models.Message{
			ID:   10,
			Text: text,
			From: &models.User{ID: 42, Username: "athlete"},
			Chat: models.Chat{ID: 42, Type: chatType},
		},
	}
}

func TestCommandHandler(t *testing.T) {
	t.Parallel()
	deps, d := newTestDeps(true)

	NewCommandHandler(deps, chat.CommandReset)(context.Background(), nil, message("/reset", models.ChatTypePrivate))

	if len(d.events) != 1 {
		t.Fatalf("dispatched %d events, want 1", len(d.events))
	}
	got := d.events[0]
	if got.UserID != 42 || got.ChatID != 42 || got.Username != "athlete" {
		t.Errorf("inbound = %+v", got)
	}
	if !got.Event.IsCommand(chat.CommandReset) {
		t.Errorf("event = %+v, want reset command", got.Event)
	}
}

func TestMessageHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		update *models.Update
		want   *chat.Event
	}{
		{name: "free text", update: message("привет", models.ChatTypePrivate), want: &chat.Event{Kind: chat.EventText, Text: "привет"}},
		{
			name:   "button press",
			update: message("👩 Женский", models.ChatTypePrivate),
			want:   &chat.Event{Kind: chat.EventChoice, Choice: chat.ChoiceGenderFemale, Text: "👩 Женский"},
		},
		{name: "unknown command", update: message("/unknown", models.ChatTypePrivate)},
		{name: "empty text", update: message("   ", models.ChatTypePrivate)},
		{name: "no message", update: &models.Update{ID: 3}},
		{name: "no sender", update: &models.Update{ID: 4, Message: &models.Message{Text: "hi"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps, d := newTestDeps(true)

			NewMessageHandler(deps)(context.Background(), nil, tt.update)

			if tt.want == nil {
				if len(d.events) != 0 {
					t.Errorf("dispatched %+v, want nothing", d.events)
				}
				return
			}
			if len(d.events) != 1 || d.events[0].Event != *tt.want {
				t.Errorf("dispatched %+v, want event %+v", d.events, *tt.want)
			}
		})
	}
}

func TestDispatchErrorIsLogged(t *testing.T) {
	t.Parallel()
	deps, d := newTestDeps(true)
	d.err = errors.New("boom")

	NewMessageHandler(deps)(context.Background(), nil, message("привет", models.ChatTypePrivate))

	if len(d.events) != 1 {
		t.Fatalf("dispatched %d events, want 1", len(d.events))
	}
}

func TestPrivateOnly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		privateOnly bool
		chatType    models.ChatType
		wantCalled  bool
	}{
		{name: "private chat", privateOnly: true, chatType: models.ChatTypePrivate, wantCalled: true},
		{name: "group chat", privateOnly: true, chatType: models.ChatTypeGroup, wantCalled: false},
		{name: "supergroup", privateOnly: true, chatType: models.ChatTypeSupergroup, wantCalled: false},
		{name: "group allowed", privateOnly: false, chatType: models.ChatTypeGroup, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps, _ := newTestDeps(tt.privateOnly)
			called := false
			next := func(context.Context, *tgbot.Bot, *models.Update) { called = true }

			PrivateOnly(deps)(next)(context.Background(), nil, message("hi", tt.chatType))

			if called != tt.wantCalled {
				t.Errorf("next called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestRegisterAllCommands(t *testing.T) {
	t.Parallel()
	deps, _ := newTestDeps(true)

	handlers := RegisterAllCommands(deps)
	for _, name := range []string{"/start", "/help", "/reset", "/stop"} {
		h, ok := handlers[name]
		if !ok {
			t.Errorf("missing handler %s", name)
			continue
		}
		if h.Pattern != name[1:] || h.MatchType != tgbot.MatchTypeCommandStartOnly || len(h.Middleware) != 1 {
			t.Errorf("handler %s = %+v", name, h)
		}
	}
	if len(BotCommands()) != len(handlers) {
		t.Errorf("BotCommands() has %d entries, want %d", len(BotCommands()), len(handlers))
	}
}
