// Package generator defines the content generation contract shared by the
// AI backends and builds the profile-conditioned prompts they send.
package generator

import (
	"context"
	"errors"

	"github.com/edgard/dualcoach/internal/database"
)

// ErrEmptyResponse is returned by backends when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from model")

// Task selects the instruction sent with the profile.
type Task int

const (
	TaskWorkout Task = iota + 1
	TaskNutrition
	TaskSupplements
	TaskChat
)

func (t Task) String() string {
	switch t {
	case TaskWorkout:
		return "workout"
	case TaskNutrition:
		return "nutrition"
	case TaskSupplements:
		return "supplements"
	case TaskChat:
		return "chat"
	}
	return "unknown"
}

// PlanKind returns the plan record kind stored for results of t.
func (t Task) PlanKind() (database.PlanKind, bool) {
	switch t {
	case TaskWorkout:
		return database.PlanWorkout, true
	case TaskNutrition:
		return database.PlanNutrition, true
	case TaskSupplements:
		return database.PlanSupplement, true
	}
	return "", false
}

// Request asks for content for one profile. Message is the user's own text
// and is only used by TaskChat.
type Request struct {
	Profile *database.Profile
	Task    Task
	Message string
}

// Generator produces text for a request. Any backend failure is returned as
// an error; partial output is never returned.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
