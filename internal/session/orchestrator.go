// Package session routes inbound chat events for each user to onboarding,
// menu actions, the reset and measurement flows, or free-form chat.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/config"
	"github.com/edgard/dualcoach/internal/database"
	"github.com/edgard/dualcoach/internal/fitness"
	"github.com/edgard/dualcoach/internal/generator"
	"github.com/edgard/dualcoach/internal/onboarding"
	"github.com/edgard/dualcoach/internal/text"
)

// Store is the persistence the orchestrator reads and writes.
type Store interface {
	GetProfile(ctx context.Context, userID int64) (*database.Profile, error)
	ListProgress(ctx context.Context, userID int64, limit int) ([]database.ProgressRecord, error)
	RecordMeasurements(ctx context.Context, userID int64, m fitness.Measurements) (*database.ProgressRecord, error)
	AppendPlan(ctx context.Context, userID int64, kind database.PlanKind, content string) (*database.PlanRecord, error)
	LatestPlan(ctx context.Context, userID int64, kind database.PlanKind) (*database.PlanRecord, error)
	Purge(ctx context.Context, userID int64) error
}

// Deps holds the collaborators of an Orchestrator.
type Deps struct {
	Store      Store
	Generator  generator.Generator
	Channel    chat.Channel
	Onboarding *onboarding.Machine
	Config     *config.Config
	Logger     *slog.Logger
}

// Orchestrator processes inbound events. Events of one user are handled one
// at a time; different users proceed concurrently. Callers that deliver events
// concurrently must queue them per user to keep their arrival order.
type Orchestrator struct {
	store    Store
	gen      generator.Generator
	channel  chat.Channel
	machine  *onboarding.Machine
	messages *config.MessagesConfig
	labels   config.LabelsConfig
	cfg      config.ChatConfig
	cancel   []string
	timeout  time.Duration
	log      *slog.Logger
	sessions *registry
	now      func() time.Time
}

// New creates an Orchestrator.
func New(deps Deps) *Orchestrator {
	cfg := deps.Config
	return &Orchestrator{
		store:    deps.Store,
		gen:      deps.Generator,
		channel:  deps.Channel,
		machine:  deps.Onboarding,
		messages: &cfg.Messages,
		labels:   cfg.Labels,
		cfg:      cfg.Chat,
		cancel:   cfg.Reset.CancelTokens,
		timeout:  cfg.AI.Timeout,
		log:      deps.Logger.With("component", "session"),
		sessions: newRegistry(),
		now:      time.Now,
	}
}

// Handle processes one event. A returned error means the user may not have
// received a reply; the session itself always stays usable.
func (o *Orchestrator) Handle(ctx context.Context, in chat.Inbound) error {
	s, err := o.sessions.acquire(ctx, in.UserID)
	if err != nil {
		return fmt.Errorf("wait for session %d: %w", in.UserID, err)
	}
	defer func() { o.sessions.release(s, o.now()) }()

	if err := o.route(ctx, s, in); err != nil {
		if errors.Is(err, errStorage) {
			o.log.ErrorContext(ctx, "Storage failure", "user_id", in.UserID, "error", err)
			if sendErr := o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.StorageError}); sendErr != nil {
				return errors.Join(err, sendErr)
			}
		}
		return err
	}
	return nil
}

// Sweep forgets sessions idle for longer than ttl, discarding any unfinished
// onboarding draft. It returns the number of sessions removed.
func (o *Orchestrator) Sweep(ttl time.Duration) int {
	return o.sessions.sweep(o.now().Add(-ttl))
}

// Sessions returns the number of sessions currently held in memory.
func (o *Orchestrator) Sessions() int {
	return o.sessions.len()
}

// errStorage marks failures of the store, reported to the user generically.
var errStorage = errors.New("storage failure")

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", errStorage, op, err)
}

func (o *Orchestrator) route(ctx context.Context, s *session, in chat.Inbound) error {
	ev := in.Event

	if ev.Kind == chat.EventCommand {
		switch ev.Command {
		case chat.CommandStart:
			return o.start(ctx, s, in)
		case chat.CommandHelp:
			return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.Help})
		case chat.CommandReset:
			return o.requestReset(ctx, s, in)
		case chat.CommandStop:
			return o.stop(ctx, s, in)
		}
	}

	if st, ok := s.state.(Onboarding); ok {
		return o.advanceOnboarding(ctx, s, in, st.Draft)
	}

	if ev.Kind == chat.EventCommand && ev.Command.IsMenu() {
		return o.menu(ctx, s, in)
	}

	switch s.state.(type) {
	case ConfirmingReset:
		return o.answerReset(ctx, s, in)
	case UpdatingMeasurements:
		return o.updateMeasurements(ctx, s, in)
	}
	return o.freeChat(ctx, in)
}

func (o *Orchestrator) start(ctx context.Context, s *session, in chat.Inbound) error {
	profile, err := o.store.GetProfile(ctx, in.UserID)
	if err != nil {
		return storageErr("get profile", err)
	}
	if profile == nil {
		draft, reply := o.machine.Start(in.UserID, in.Username)
		s.state = Onboarding{Draft: draft}
		o.log.DebugContext(ctx, "Onboarding started", "user_id", in.UserID)
		return o.send(ctx, in.ChatID, reply)
	}

	s.state = Idle{}
	greeting, err := o.messages.Render(o.messages.GreetingBack, struct{ Coach string }{o.messages.Coach(profile.Gender)})
	if err != nil {
		return err
	}
	return o.send(ctx, in.ChatID, chat.Reply{Text: greeting, Keyboard: chat.MainMenu()})
}

func (o *Orchestrator) stop(ctx context.Context, s *session, in chat.Inbound) error {
	profile, err := o.store.GetProfile(ctx, in.UserID)
	if err != nil {
		return storageErr("get profile", err)
	}
	s.state = Idle{}

	farewell := o.messages.FarewellGuest
	if profile != nil {
		farewell, err = o.messages.Render(o.messages.Farewell, struct {
			Coach string
			Male  bool
		}{o.messages.Coach(profile.Gender), profile.Gender == fitness.GenderMale})
		if err != nil {
			return err
		}
	}
	return o.send(ctx, in.ChatID, chat.Reply{Text: farewell, Keyboard: chat.RemoveKeyboard()})
}

func (o *Orchestrator) advanceOnboarding(ctx context.Context, s *session, in chat.Inbound, draft onboarding.Draft) error {
	res, err := o.machine.Advance(ctx, draft, in.Event)
	if err != nil {
		return storageErr("complete onboarding", err)
	}
	switch {
	case res.Profile != nil, res.Cancelled:
		s.state = Idle{}
	default:
		s.state = Onboarding{Draft: res.Draft}
	}
	return o.send(ctx, in.ChatID, res.Replies...)
}

// requireProfile loads the profile or tells the user to register first; a nil
// profile with a nil error means the reply was already sent.
func (o *Orchestrator) requireProfile(ctx context.Context, in chat.Inbound) (*database.Profile, error) {
	profile, err := o.store.GetProfile(ctx, in.UserID)
	if err != nil {
		return nil, storageErr("get profile", err)
	}
	if profile == nil {
		return nil, o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.RegisterFirst})
	}
	return profile, nil
}

func (o *Orchestrator) menu(ctx context.Context, s *session, in chat.Inbound) error {
	profile, err := o.requireProfile(ctx, in)
	if profile == nil {
		return err
	}

	switch in.Event.Command {
	case chat.CommandWorkoutPlan:
		return o.generate(ctx, in, profile, generator.TaskWorkout, "", o.messages.GeneratingWorkout)
	case chat.CommandNutrition:
		return o.generate(ctx, in, profile, generator.TaskNutrition, "", o.messages.GeneratingNutrition)
	case chat.CommandSupplements:
		return o.generate(ctx, in, profile, generator.TaskSupplements, "", o.messages.GeneratingSupplements)
	case chat.CommandProgress:
		return o.showProgress(ctx, in, profile)
	case chat.CommandUpdateMeasurements:
		s.state = UpdatingMeasurements{}
		return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.AskNewMeasurements})
	case chat.CommandSettings:
		return o.showSettings(ctx, in, profile)
	}
	return nil
}

func (o *Orchestrator) requestReset(ctx context.Context, s *session, in chat.Inbound) error {
	profile, err := o.store.GetProfile(ctx, in.UserID)
	if err != nil {
		return storageErr("get profile", err)
	}
	if profile == nil {
		return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.ResetNothing})
	}
	s.state = ConfirmingReset{}
	return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.ResetConfirm, Keyboard: resetKeyboard()})
}

func (o *Orchestrator) answerReset(ctx context.Context, s *session, in chat.Inbound) error {
	ev := in.Event
	switch {
	case ev.IsChoice(chat.ChoiceConfirmReset):
		s.state = Idle{}
		if err := o.store.Purge(ctx, in.UserID); err != nil {
			o.log.ErrorContext(ctx, "Failed to purge user data", "user_id", in.UserID, "error", err)
			return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.ResetFailed})
		}
		o.log.InfoContext(ctx, "User data purged", "user_id", in.UserID)
		return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.ResetDone, Keyboard: chat.RemoveKeyboard()})

	case ev.IsChoice(chat.ChoiceCancel), ev.Kind == chat.EventText && o.isCancelToken(ev.Text):
		s.state = Idle{}
		return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.ResetCancelled, Keyboard: chat.MainMenu()})

	default:
		return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.ResetReprompt, Keyboard: resetKeyboard()})
	}
}

func (o *Orchestrator) isCancelToken(s string) bool {
	s = strings.TrimSpace(s)
	for _, token := range o.cancel {
		if strings.EqualFold(s, token) {
			return true
		}
	}
	return false
}

func resetKeyboard() *chat.Keyboard {
	return &chat.Keyboard{Rows: [][]chat.Button{
		chat.ChoiceRow(chat.ChoiceConfirmReset),
		chat.ChoiceRow(chat.ChoiceCancel),
	}}
}

func (o *Orchestrator) updateMeasurements(ctx context.Context, s *session, in chat.Inbound) error {
	meas, problem := onboarding.ParseMeasurements(o.messages, in.Event.Text)
	if problem != "" {
		return o.send(ctx, in.ChatID, chat.Reply{Text: problem})
	}

	if _, err := o.store.RecordMeasurements(ctx, in.UserID, meas); err != nil {
		if errors.Is(err, database.ErrProfileNotFound) {
			s.state = Idle{}
			return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.RegisterFirst})
		}
		return storageErr("record measurements", err)
	}
	s.state = Idle{}

	reply, err := o.messages.Render(o.messages.MeasurementsUpdated, struct{ Measurements fitness.Measurements }{meas})
	if err != nil {
		return err
	}
	return o.send(ctx, in.ChatID, chat.Reply{Text: reply, Keyboard: chat.MainMenu()})
}

func (o *Orchestrator) freeChat(ctx context.Context, in chat.Inbound) error {
	profile, err := o.requireProfile(ctx, in)
	if profile == nil {
		return err
	}
	if strings.TrimSpace(in.Event.Text) == "" {
		return nil
	}
	return o.generate(ctx, in, profile, generator.TaskChat, in.Event.Text, o.messages.Thinking)
}

// generate calls the generator under the configured timeout with a typing
// indicator, stores plan results and delivers the text in chunks.
func (o *Orchestrator) generate(ctx context.Context, in chat.Inbound, profile *database.Profile, task generator.Task, message, notice string) error {
	if notice != "" {
		if err := o.send(ctx, in.ChatID, chat.Reply{Text: notice}); err != nil {
			return err
		}
	}

	stopTyping := o.channel.Typing(ctx, in.ChatID)
	genCtx, cancel := context.WithTimeout(ctx, o.timeout)
	content, err := o.gen.Generate(genCtx, generator.Request{Profile: profile, Task: task, Message: message})
	cancel()
	stopTyping()

	if err == nil {
		content = text.Sanitize(content)
		if content == "" {
			err = generator.ErrEmptyResponse
		}
	}
	if err != nil {
		o.log.ErrorContext(ctx, "Content generation failed", "user_id", in.UserID, "task", task,
			"timeout", errors.Is(err, context.DeadlineExceeded), "error", err)
		return o.send(ctx, in.ChatID, chat.Reply{Text: o.messages.GeneratorError})
	}

	if kind, ok := task.PlanKind(); ok {
		if _, err := o.store.AppendPlan(ctx, in.UserID, kind, content); err != nil {
			o.log.ErrorContext(ctx, "Failed to store generated plan", "user_id", in.UserID, "kind", kind, "error", err)
		}
	}

	return o.deliver(ctx, in.ChatID, content)
}

// deliver sends content split into transport-sized numbered parts.
func (o *Orchestrator) deliver(ctx context.Context, chatID int64, content string) error {
	parts := text.Split(content, o.cfg.ChunkSize)
	replies := make([]chat.Reply, len(parts))
	for i, p := range parts {
		replies[i] = chat.Reply{Text: p}
		if len(parts) > 1 {
			replies[i].Part = i + 1
			replies[i].Parts = len(parts)
		}
	}
	return o.send(ctx, chatID, replies...)
}

func (o *Orchestrator) send(ctx context.Context, chatID int64, replies ...chat.Reply) error {
	for _, r := range replies {
		if err := o.channel.Send(ctx, chatID, r); err != nil {
			return fmt.Errorf("send reply: %w", err)
		}
	}
	return nil
}
