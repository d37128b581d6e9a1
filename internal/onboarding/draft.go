package onboarding

import (
	"database/sql"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/database"
	"github.com/edgard/dualcoach/internal/fitness"
)

// Step is the question the dialogue is waiting on.
type Step int

const (
	StepGender Step = iota + 1
	StepAge
	StepHeight
	StepWeight
	StepMeasurements
	StepLevel
	StepGoal
	StepLocation
	StepWorkouts
	StepInjuries
	stepDone
)

var stepNames = [...]string{
	StepGender:       "gender",
	StepAge:          "age",
	StepHeight:       "height",
	StepWeight:       "weight",
	StepMeasurements: "measurements",
	StepLevel:        "fitness_level",
	StepGoal:         "goal",
	StepLocation:     "location",
	StepWorkouts:     "workouts_per_week",
	StepInjuries:     "injuries",
}

func (s Step) String() string {
	if s > 0 && int(s) < len(stepNames) {
		return stepNames[s]
	}
	return "unknown"
}

// Draft is a profile under construction. Fields for steps at or after Step
// are zero.
type Draft struct {
	Step     Step
	UserID   int64
	Username string

	Gender          fitness.Gender
	Age             int
	HeightCm        float64
	WeightKg        float64
	Measurements    fitness.Measurements
	Level           fitness.Level
	Goal            fitness.Goal
	Location        fitness.Location
	WorkoutsPerWeek int
	Injuries        sql.NullString
}

func (d Draft) profile() *database.Profile {
	return &database.Profile{
		UserID:          d.UserID,
		Username:        d.Username,
		Gender:          d.Gender,
		Age:             d.Age,
		HeightCm:        d.HeightCm,
		WeightKg:        d.WeightKg,
		Measurements:    d.Measurements,
		FitnessLevel:    d.Level,
		Goal:            d.Goal,
		Location:        d.Location,
		WorkoutsPerWeek: d.WorkoutsPerWeek,
		Injuries:        d.Injuries,
	}
}

var (
	genderChoices = map[chat.Choice]fitness.Gender{
		chat.ChoiceGenderMale:   fitness.GenderMale,
		chat.ChoiceGenderFemale: fitness.GenderFemale,
	}
	levelChoices = map[chat.Choice]fitness.Level{
		chat.ChoiceLevelBeginner:     fitness.LevelBeginner,
		chat.ChoiceLevelIntermediate: fitness.LevelIntermediate,
		chat.ChoiceLevelAdvanced:     fitness.LevelAdvanced,
	}
	goalChoices = map[chat.Choice]fitness.Goal{
		chat.ChoiceGoalFitness:     fitness.GoalFitness,
		chat.ChoiceGoalCompetition: fitness.GoalCompetition,
	}
	locationChoices = map[chat.Choice]fitness.Location{
		chat.ChoiceLocationGym:  fitness.LocationGym,
		chat.ChoiceLocationHome: fitness.LocationHome,
	}
	workoutChoices = map[chat.Choice]int{
		chat.ChoiceWorkouts2:     2,
		chat.ChoiceWorkouts3:     3,
		chat.ChoiceWorkouts4:     4,
		chat.ChoiceWorkouts5Plus: fitness.MaxWorkoutsPerWeek,
	}
)

var cancelRow = chat.ChoiceRow(chat.ChoiceCancel)

// keyboardFor returns the buttons offered with the question for s. Every
// step after gender carries a cancel button.
func keyboardFor(s Step) *chat.Keyboard {
	switch s {
	case StepGender:
		return &chat.Keyboard{Rows: [][]chat.Button{
			chat.ChoiceRow(chat.ChoiceGenderMale, chat.ChoiceGenderFemale),
		}}
	case StepLevel:
		return &chat.Keyboard{Rows: [][]chat.Button{
			chat.ChoiceRow(chat.ChoiceLevelBeginner),
			chat.ChoiceRow(chat.ChoiceLevelIntermediate),
			chat.ChoiceRow(chat.ChoiceLevelAdvanced),
			cancelRow,
		}}
	case StepGoal:
		return &chat.Keyboard{Rows: [][]chat.Button{
			chat.ChoiceRow(chat.ChoiceGoalFitness),
			chat.ChoiceRow(chat.ChoiceGoalCompetition),
			cancelRow,
		}}
	case StepLocation:
		return &chat.Keyboard{Rows: [][]chat.Button{
			chat.ChoiceRow(chat.ChoiceLocationGym, chat.ChoiceLocationHome),
			cancelRow,
		}}
	case StepWorkouts:
		return &chat.Keyboard{Rows: [][]chat.Button{
			chat.ChoiceRow(chat.ChoiceWorkouts2, chat.ChoiceWorkouts3),
			chat.ChoiceRow(chat.ChoiceWorkouts4, chat.ChoiceWorkouts5Plus),
			cancelRow,
		}}
	default:
		return &chat.Keyboard{Rows: [][]chat.Button{cancelRow}}
	}
}
