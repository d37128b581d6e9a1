// Package onboarding drives the registration dialogue: one event at a time it
// fills a Draft, re-prompting on invalid input, until the Draft can be
// promoted to a stored profile.
package onboarding

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/config"
	"github.com/edgard/dualcoach/internal/database"
	"github.com/edgard/dualcoach/internal/fitness"
)

// ProfileSaver persists a completed profile.
type ProfileSaver interface {
	SaveProfile(ctx context.Context, profile *database.Profile) error
}

// Result is the outcome of one Advance call. Exactly one of the following
// holds: Profile is set (registration finished), Cancelled is true, or Draft
// is the dialogue state to keep for the next event.
type Result struct {
	Draft     Draft
	Replies   []chat.Reply
	Profile   *database.Profile
	Cancelled bool
}

// Machine validates onboarding answers and persists the finished profile.
type Machine struct {
	store      ProfileSaver
	messages   *config.MessagesConfig
	noneTokens []string
	log        *slog.Logger
}

// New creates a Machine.
func New(store ProfileSaver, messages *config.MessagesConfig, cfg config.OnboardingConfig, log *slog.Logger) *Machine {
	return &Machine{
		store:      store,
		messages:   messages,
		noneTokens: cfg.NoneTokens,
		log:        log.With("component", "onboarding"),
	}
}

// Start opens a new dialogue at the gender step.
func (m *Machine) Start(userID int64, username string) (Draft, chat.Reply) {
	d := Draft{Step: StepGender, UserID: userID, Username: username}
	return d, chat.Reply{Text: m.messages.Welcome, Keyboard: keyboardFor(StepGender)}
}

// Advance consumes one event for d. Invalid input yields a re-prompt and d
// unchanged. The returned error is non-nil only when the finished profile
// could not be stored; d is then returned unchanged so the last answer can be
// sent again.
func (m *Machine) Advance(ctx context.Context, d Draft, ev chat.Event) (Result, error) {
	if ev.IsChoice(chat.ChoiceCancel) {
		m.log.DebugContext(ctx, "Onboarding cancelled", "user_id", d.UserID, "step", d.Step)
		return Result{
			Cancelled: true,
			Replies:   []chat.Reply{{Text: m.messages.OnboardingCancelled, Keyboard: chat.RemoveKeyboard()}},
		}, nil
	}

	next, problem := m.apply(d, ev)
	if problem != "" {
		return Result{Draft: d, Replies: []chat.Reply{{Text: problem, Keyboard: keyboardFor(d.Step)}}}, nil
	}

	if next.Step != stepDone {
		return Result{Draft: next, Replies: []chat.Reply{m.prompt(next)}}, nil
	}

	profile := next.profile()
	if err := m.store.SaveProfile(ctx, profile); err != nil {
		return Result{Draft: d}, fmt.Errorf("save onboarded profile: %w", err)
	}
	m.log.InfoContext(ctx, "Onboarding completed", "user_id", d.UserID)

	text, err := m.messages.Render(m.messages.OnboardingCompleted, struct {
		Coach           string
		WorkoutsPerWeek int
	}{Coach: m.messages.Coach(profile.Gender), WorkoutsPerWeek: profile.WorkoutsPerWeek})
	if err != nil {
		return Result{}, err
	}
	return Result{
		Profile: profile,
		Replies: []chat.Reply{{Text: text, Keyboard: chat.MainMenu()}},
	}, nil
}

// apply parses ev as the answer to d.Step. It returns the advanced draft, or
// the re-prompt text when the answer is rejected.
func (m *Machine) apply(d Draft, ev chat.Event) (Draft, string) {
	msg := m.messages
	switch d.Step {
	case StepGender:
		g, ok := genderChoices[ev.Choice]
		if ev.Kind != chat.EventChoice || !ok {
			return d, msg.InvalidGender
		}
		d.Gender = g

	case StepAge:
		age, err := fitness.ParseAge(ev.Text)
		if err != nil {
			return d, pick(err, msg.AgeNotNumeric, msg.AgeOutOfRange)
		}
		d.Age = age

	case StepHeight:
		h, err := fitness.ParseHeight(ev.Text)
		if err != nil {
			return d, pick(err, msg.HeightNotNumeric, msg.HeightOutOfRange)
		}
		d.HeightCm = h

	case StepWeight:
		w, err := fitness.ParseWeight(ev.Text)
		if err != nil {
			return d, pick(err, msg.WeightNotNumeric, msg.WeightOutOfRange)
		}
		d.WeightKg = w

	case StepMeasurements:
		meas, problem := ParseMeasurements(msg, ev.Text)
		if problem != "" {
			return d, problem
		}
		d.Measurements = meas

	case StepLevel:
		l, ok := levelChoices[ev.Choice]
		if ev.Kind != chat.EventChoice || !ok {
			return d, msg.InvalidLevel
		}
		d.Level = l

	case StepGoal:
		g, ok := goalChoices[ev.Choice]
		if ev.Kind != chat.EventChoice || !ok {
			return d, msg.InvalidGoal
		}
		d.Goal = g

	case StepLocation:
		l, ok := locationChoices[ev.Choice]
		if ev.Kind != chat.EventChoice || !ok {
			return d, msg.InvalidLocation
		}
		d.Location = l

	case StepWorkouts:
		n, ok := workoutChoices[ev.Choice]
		if ev.Kind != chat.EventChoice || !ok {
			return d, msg.InvalidWorkouts
		}
		d.WorkoutsPerWeek = n

	case StepInjuries:
		text := strings.TrimSpace(ev.Text)
		if text == "" {
			return d, msg.AskInjuries
		}
		if m.isNone(text) {
			d.Injuries = sql.NullString{}
		} else {
			d.Injuries = sql.NullString{String: ev.Text, Valid: true}
		}

	default:
		return d, msg.Welcome
	}

	d.Step++
	return d, ""
}

// ParseMeasurements parses and range-checks four comma-separated
// circumferences, returning the re-prompt text on failure. The
// update-measurements flow uses it as well.
func ParseMeasurements(msg *config.MessagesConfig, text string) (fitness.Measurements, string) {
	meas, err := fitness.ParseMeasurements(text)
	switch {
	case errors.Is(err, fitness.ErrMeasurementCount):
		return meas, msg.MeasurementsCount
	case err != nil:
		return meas, msg.MeasurementsNotNumeric
	}
	if err := fitness.ValidateMeasurements(meas); err != nil {
		return meas, msg.MeasurementsOutOfRange
	}
	return meas, ""
}

func (m *Machine) isNone(text string) bool {
	for _, token := range m.noneTokens {
		if strings.EqualFold(text, token) {
			return true
		}
	}
	return false
}

// prompt asks the question for d.Step.
func (m *Machine) prompt(d Draft) chat.Reply {
	msg := m.messages
	var text string
	switch d.Step {
	case StepAge:
		intro := msg.CoachIntroMale
		if d.Gender == fitness.GenderFemale {
			intro = msg.CoachIntroFemale
		}
		text = intro + "\n\n" + msg.AskAge
	case StepHeight:
		text = msg.AskHeight
	case StepWeight:
		text = msg.AskWeight
	case StepMeasurements:
		text = msg.AskMeasurements
	case StepLevel:
		text = msg.AskLevel
	case StepGoal:
		text = msg.AskGoal
	case StepLocation:
		text = msg.AskLocation
	case StepWorkouts:
		text = msg.AskWorkouts
	case StepInjuries:
		text = msg.AskInjuries
	default:
		text = msg.Welcome
	}
	return chat.Reply{Text: text, Keyboard: keyboardFor(d.Step)}
}

func pick(err error, notNumeric, outOfRange string) string {
	if errors.Is(err, fitness.ErrOutOfRange) {
		return outOfRange
	}
	return notNumeric
}
