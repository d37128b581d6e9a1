package session

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/config"
	"github.com/edgard/dualcoach/internal/database"
	"github.com/edgard/dualcoach/internal/fitness"
)

const dateLayout = "02.01.2006 15:04"

type progressEntry struct {
	Date         string
	WeightKg     float64
	Measurements fitness.Measurements
	// Changes lists differences to the next older entry; empty for the oldest.
	Changes string
}

type progressView struct {
	Entries  []progressEntry
	WeightKg float64
	Current  fitness.Measurements
}

func (o *Orchestrator) showProgress(ctx context.Context, in chat.Inbound, profile *database.Profile) error {
	records, err := o.store.ListProgress(ctx, in.UserID, o.cfg.ProgressLimit)
	if err != nil {
		return storageErr("list progress", err)
	}

	view := progressView{WeightKg: profile.WeightKg, Current: profile.Measurements}
	for i, rec := range records {
		entry := progressEntry{
			Date:         rec.RecordedAt.Local().Format(dateLayout),
			WeightKg:     rec.WeightKg,
			Measurements: rec.Measurements,
		}
		if i+1 < len(records) {
			entry.Changes = o.changes(records[i+1], rec)
		}
		view.Entries = append(view.Entries, entry)
	}

	reply, err := o.messages.Render(o.messages.Progress, view)
	if err != nil {
		return err
	}
	return o.deliver(ctx, in.ChatID, reply)
}

// changes describes how cur differs from prev, one line per changed value.
func (o *Orchestrator) changes(prev, cur database.ProgressRecord) string {
	labels := o.messages.MeasurementLabels
	deltas := []struct {
		label string
		unit  string
		delta float64
	}{
		{labels.Weight, "кг", cur.WeightKg - prev.WeightKg},
		{labels.Chest, "см", cur.Measurements.Chest - prev.Measurements.Chest},
		{labels.Waist, "см", cur.Measurements.Waist - prev.Measurements.Waist},
		{labels.Hips, "см", cur.Measurements.Hips - prev.Measurements.Hips},
		{labels.Bicep, "см", cur.Measurements.Bicep - prev.Measurements.Bicep},
	}

	var lines []string
	for _, d := range deltas {
		delta := math.Round(d.delta*10) / 10
		if delta == 0 {
			continue
		}
		sign := ""
		if delta > 0 {
			sign = "+"
		}
		lines = append(lines, fmt.Sprintf("• %s: %s%g %s", d.label, sign, delta, d.unit))
	}
	return strings.Join(lines, "\n")
}

type settingsView struct {
	Gender          string
	Age             int
	HeightCm        float64
	WeightKg        float64
	BMI             float64
	BMICategory     string
	Level           string
	Goal            string
	Location        string
	Workouts        string
	Injuries        string
	Macros          fitness.Macros
	LastWorkoutPlan string
}

func (o *Orchestrator) showSettings(ctx context.Context, in chat.Inbound, profile *database.Profile) error {
	plan, err := o.store.LatestPlan(ctx, in.UserID, database.PlanWorkout)
	if err != nil {
		return storageErr("latest workout plan", err)
	}

	bmi := fitness.BMI(profile.WeightKg, profile.HeightCm)
	tdee := fitness.TDEE(fitness.BMR(profile.Gender, profile.WeightKg, profile.HeightCm, profile.Age), profile.FitnessLevel)
	view := settingsView{
		Gender:      profileLabel(o.labels, profile, fieldGender),
		Age:         profile.Age,
		HeightCm:    profile.HeightCm,
		WeightKg:    profile.WeightKg,
		BMI:         bmi,
		BMICategory: o.messages.BMICategory(fitness.CategorizeBMI(bmi)),
		Level:       profileLabel(o.labels, profile, fieldLevel),
		Goal:        profileLabel(o.labels, profile, fieldGoal),
		Location:    profileLabel(o.labels, profile, fieldLocation),
		Workouts:    profileLabel(o.labels, profile, fieldWorkouts),
		Macros:      fitness.CalculateMacros(tdee, profile.Gender, profile.Goal),
	}
	if profile.Injuries.Valid {
		view.Injuries = profile.Injuries.String
	}
	if plan != nil {
		view.LastWorkoutPlan = plan.CreatedAt.Local().Format(dateLayout)
	}

	reply, err := o.messages.Render(o.messages.Settings, view)
	if err != nil {
		return err
	}
	return o.send(ctx, in.ChatID, chat.Reply{Text: reply, Keyboard: chat.MainMenu()})
}

type profileField int

const (
	fieldGender profileField = iota
	fieldLevel
	fieldGoal
	fieldLocation
	fieldWorkouts
)

// profileLabel shows a stored value with the text of the button that chose it.
func profileLabel(labels config.LabelsConfig, p *database.Profile, f profileField) string {
	var c chat.Choice
	switch f {
	case fieldGender:
		c = map[fitness.Gender]chat.Choice{
			fitness.GenderMale:   chat.ChoiceGenderMale,
			fitness.GenderFemale: chat.ChoiceGenderFemale,
		}[p.Gender]
	case fieldLevel:
		c = map[fitness.Level]chat.Choice{
			fitness.LevelBeginner:     chat.ChoiceLevelBeginner,
			fitness.LevelIntermediate: chat.ChoiceLevelIntermediate,
			fitness.LevelAdvanced:     chat.ChoiceLevelAdvanced,
		}[p.FitnessLevel]
	case fieldGoal:
		c = map[fitness.Goal]chat.Choice{
			fitness.GoalFitness:     chat.ChoiceGoalFitness,
			fitness.GoalCompetition: chat.ChoiceGoalCompetition,
		}[p.Goal]
	case fieldLocation:
		c = map[fitness.Location]chat.Choice{
			fitness.LocationGym:  chat.ChoiceLocationGym,
			fitness.LocationHome: chat.ChoiceLocationHome,
		}[p.Location]
	case fieldWorkouts:
		c = map[int]chat.Choice{
			2: chat.ChoiceWorkouts2,
			3: chat.ChoiceWorkouts3,
			4: chat.ChoiceWorkouts4,
			5: chat.ChoiceWorkouts5Plus,
		}[p.WorkoutsPerWeek]
	}
	if label := labels.Choice(c); label != "" {
		return label
	}
	return "-"
}
