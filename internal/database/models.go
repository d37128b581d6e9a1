package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edgard/dualcoach/internal/fitness"
)

// ErrInvalidProfile is returned when a profile is not fully populated.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile is the completed onboarding record for one user. A stored profile
// always has every required field set.
type Profile struct {
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Username        string               `db:"username"`
	Gender          fitness.Gender       `db:"gender"`
	Age             int                  `db:"age"`
	HeightCm        float64              `db:"height_cm"`
	WeightKg        float64              `db:"weight_kg"`
	Measurements    fitness.Measurements `db:"measurements"`
	FitnessLevel    fitness.Level        `db:"fitness_level"`
	Goal            fitness.Goal         `db:"goal"`
	Location        fitness.Location     `db:"location"`
	WorkoutsPerWeek int                  `db:"workouts_per_week"`
	Injuries        sql.NullString       `db:"injuries"` // NULL when the user reported none
}

// Validate checks that every field holds an accepted value.
func (p *Profile) Validate() error {
	switch {
	case p.UserID == 0:
		return fmt.Errorf("%w: missing user id", ErrInvalidProfile)
	case !p.Gender.Valid():
		return fmt.Errorf("%w: gender %q", ErrInvalidProfile, p.Gender)
	case !fitness.AgeRange.Contains(float64(p.Age)):
		return fmt.Errorf("%w: age %d", ErrInvalidProfile, p.Age)
	case !fitness.HeightRange.Contains(p.HeightCm):
		return fmt.Errorf("%w: height %g", ErrInvalidProfile, p.HeightCm)
	case !fitness.WeightRange.Contains(p.WeightKg):
		return fmt.Errorf("%w: weight %g", ErrInvalidProfile, p.WeightKg)
	case !p.FitnessLevel.Valid():
		return fmt.Errorf("%w: fitness level %q", ErrInvalidProfile, p.FitnessLevel)
	case !p.Goal.Valid():
		return fmt.Errorf("%w: goal %q", ErrInvalidProfile, p.Goal)
	case !p.Location.Valid():
		return fmt.Errorf("%w: location %q", ErrInvalidProfile, p.Location)
	case !fitness.ValidWorkoutsPerWeek(p.WorkoutsPerWeek):
		return fmt.Errorf("%w: workouts per week %d", ErrInvalidProfile, p.WorkoutsPerWeek)
	}
	if err := fitness.ValidateMeasurements(p.Measurements); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}

// ProgressRecord is an immutable weight and measurements snapshot.
type ProgressRecord struct {
	ID           int64                `db:"id"`
	UserID       int64                `db:"user_id"`
	WeightKg     float64              `db:"weight_kg"`
	Measurements fitness.Measurements `db:"measurements"`
	RecordedAt   time.Time            `db:"recorded_at"`
}

// PlanKind tags a stored generated plan.
type PlanKind string

const (
	PlanWorkout    PlanKind = "workout"
	PlanNutrition  PlanKind = "nutrition"
	PlanSupplement PlanKind = "supplement"
)

func (k PlanKind) Valid() bool {
	switch k {
	case PlanWorkout, PlanNutrition, PlanSupplement:
		return true
	}
	return false
}

// PlanRecord is a generated text stored verbatim.
type PlanRecord struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Kind      PlanKind  `db:"kind"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}
