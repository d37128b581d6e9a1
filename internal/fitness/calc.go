package fitness

import "math"

// BMR returns the basal metabolic rate in kcal/day using the Mifflin-St Jeor equation.
func BMR(g Gender, weightKg, heightCm float64, age int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if g == GenderMale {
		return base + 5
	}
	return base - 161
}

// ActivityFactor maps the training level onto the light, moderate or active multiplier.
func ActivityFactor(l Level) float64 {
	switch l {
	case LevelBeginner:
		return 1.375
	case LevelIntermediate:
		return 1.55
	default:
		return 1.725
	}
}

// TDEE returns the total daily energy expenditure for the given BMR and level.
func TDEE(bmr float64, l Level) float64 {
	return bmr * ActivityFactor(l)
}

// Macros is a daily intake split, rounded to whole units.
type Macros struct {
	Calories int
	ProteinG int
	FatG     int
	CarbsG   int
}

const (
	kcalPerGramProtein = 4
	kcalPerGramFat     = 9
	kcalPerGramCarbs   = 4
)

// CalculateMacros splits calories into protein, fat and carbohydrates.
// Competition prep shifts the split towards protein.
func CalculateMacros(calories float64, g Gender, goal Goal) Macros {
	var protein, fat float64
	switch {
	case goal == GoalCompetition && g == GenderMale:
		protein, fat = 0.35, 0.20
	case goal == GoalCompetition:
		protein, fat = 0.40, 0.25
	case g == GenderMale:
		protein, fat = 0.25, 0.25
	default:
		protein, fat = 0.30, 0.30
	}
	carbs := 1 - protein - fat

	return Macros{
		Calories: int(math.Round(calories)),
		ProteinG: int(math.Round(calories * protein / kcalPerGramProtein)),
		FatG:     int(math.Round(calories * fat / kcalPerGramFat)),
		CarbsG:   int(math.Round(calories * carbs / kcalPerGramCarbs)),
	}
}

// BMI returns the body mass index rounded to one decimal place.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	h := heightCm / 100
	return math.Round(weightKg/(h*h)*10) / 10
}

// BMICategory is the WHO weight class for a BMI value.
type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

// CategorizeBMI buckets bmi at 18.5, 25 and 30.
func CategorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
