// Package fitness holds the profile value types, the input parsers and range
// checks used during onboarding, and the body composition calculators.
package fitness

// Gender selects the coach persona and the sex-specific formulas.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is one of the known genders.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Level is the self-reported training experience.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Goal is what the user trains for.
type Goal string

const (
	GoalFitness     Goal = "fitness"
	GoalCompetition Goal = "competition"
)

func (g Goal) Valid() bool {
	return g == GoalFitness || g == GoalCompetition
}

// Location is where the user trains.
type Location string

const (
	LocationGym  Location = "gym"
	LocationHome Location = "home"
)

func (l Location) Valid() bool {
	return l == LocationGym || l == LocationHome
}

// MaxWorkoutsPerWeek is the value stored for the "5+" option.
const MaxWorkoutsPerWeek = 5

// ValidWorkoutsPerWeek reports whether n is one of the offered frequencies.
func ValidWorkoutsPerWeek(n int) bool {
	return n >= 2 && n <= MaxWorkoutsPerWeek
}
