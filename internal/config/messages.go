package config

import "github.com/edgard/dualcoach/internal/chat"

// MessagesConfig holds every text the bot sends. Fields documented as
// templates are text/template sources rendered with the data named there.
type MessagesConfig struct {
	CoachMale   string `mapstructure:"coach_male" validate:"required"`
	CoachFemale string `mapstructure:"coach_female" validate:"required"`

	// Welcome starts onboarding and asks for the gender.
	Welcome string `mapstructure:"welcome" validate:"required"`
	// GreetingBack is a template with .Coach.
	GreetingBack   string `mapstructure:"greeting_back" validate:"required"`
	Help           string `mapstructure:"help" validate:"required"`
	RegisterFirst  string `mapstructure:"register_first" validate:"required"`
	GeneratorError string `mapstructure:"generator_error" validate:"required"`
	StorageError   string `mapstructure:"storage_error" validate:"required"`

	CoachIntroMale   string `mapstructure:"coach_intro_male" validate:"required"`
	CoachIntroFemale string `mapstructure:"coach_intro_female" validate:"required"`
	AskAge           string `mapstructure:"ask_age" validate:"required"`
	AskHeight        string `mapstructure:"ask_height" validate:"required"`
	AskWeight        string `mapstructure:"ask_weight" validate:"required"`
	AskMeasurements  string `mapstructure:"ask_measurements" validate:"required"`
	AskLevel         string `mapstructure:"ask_level" validate:"required"`
	AskGoal          string `mapstructure:"ask_goal" validate:"required"`
	AskLocation      string `mapstructure:"ask_location" validate:"required"`
	AskWorkouts      string `mapstructure:"ask_workouts" validate:"required"`
	AskInjuries      string `mapstructure:"ask_injuries" validate:"required"`

	InvalidGender          string `mapstructure:"invalid_gender" validate:"required"`
	AgeNotNumeric          string `mapstructure:"age_not_numeric" validate:"required"`
	AgeOutOfRange          string `mapstructure:"age_out_of_range" validate:"required"`
	HeightNotNumeric       string `mapstructure:"height_not_numeric" validate:"required"`
	HeightOutOfRange       string `mapstructure:"height_out_of_range" validate:"required"`
	WeightNotNumeric       string `mapstructure:"weight_not_numeric" validate:"required"`
	WeightOutOfRange       string `mapstructure:"weight_out_of_range" validate:"required"`
	MeasurementsCount      string `mapstructure:"measurements_count" validate:"required"`
	MeasurementsNotNumeric string `mapstructure:"measurements_not_numeric" validate:"required"`
	MeasurementsOutOfRange string `mapstructure:"measurements_out_of_range" validate:"required"`
	InvalidLevel           string `mapstructure:"invalid_level" validate:"required"`
	InvalidGoal            string `mapstructure:"invalid_goal" validate:"required"`
	InvalidLocation        string `mapstructure:"invalid_location" validate:"required"`
	InvalidWorkouts        string `mapstructure:"invalid_workouts" validate:"required"`

	// OnboardingCompleted is a template with .Coach and .WorkoutsPerWeek.
	OnboardingCompleted string `mapstructure:"onboarding_completed" validate:"required"`
	OnboardingCancelled string `mapstructure:"onboarding_cancelled" validate:"required"`

	GeneratingWorkout     string `mapstructure:"generating_workout" validate:"required"`
	GeneratingNutrition   string `mapstructure:"generating_nutrition" validate:"required"`
	GeneratingSupplements string `mapstructure:"generating_supplements" validate:"required"`
	Thinking              string `mapstructure:"thinking" validate:"required"`

	AskNewMeasurements string `mapstructure:"ask_new_measurements" validate:"required"`
	// MeasurementsUpdated is a template with .Measurements.
	MeasurementsUpdated string `mapstructure:"measurements_updated" validate:"required"`
	// Settings is a template; see session.settingsView.
	Settings string `mapstructure:"settings" validate:"required"`
	// Progress is a template; see session.progressView.
	Progress string `mapstructure:"progress" validate:"required"`

	ResetConfirm   string `mapstructure:"reset_confirm" validate:"required"`
	ResetNothing   string `mapstructure:"reset_nothing" validate:"required"`
	ResetDone      string `mapstructure:"reset_done" validate:"required"`
	ResetCancelled string `mapstructure:"reset_cancelled" validate:"required"`
	ResetReprompt  string `mapstructure:"reset_reprompt" validate:"required"`
	ResetFailed    string `mapstructure:"reset_failed" validate:"required"`

	// Farewell is a template with .Coach and .Male.
	Farewell      string `mapstructure:"farewell" validate:"required"`
	FarewellGuest string `mapstructure:"farewell_guest" validate:"required"`

	MeasurementLabels MeasurementLabels `mapstructure:"measurement_labels"`
	// BMICategories maps fitness.BMICategory values to display names.
	BMICategories map[string]string `mapstructure:"bmi_categories"`
}

type MeasurementLabels struct {
	Weight string `mapstructure:"weight" validate:"required"`
	Chest  string `mapstructure:"chest" validate:"required"`
	Waist  string `mapstructure:"waist" validate:"required"`
	Hips   string `mapstructure:"hips" validate:"required"`
	Bicep  string `mapstructure:"bicep" validate:"required"`
}

// LabelsConfig holds the text of every keyboard button.
type LabelsConfig struct {
	GenderMale        string `mapstructure:"gender_male" validate:"required"`
	GenderFemale      string `mapstructure:"gender_female" validate:"required"`
	LevelBeginner     string `mapstructure:"level_beginner" validate:"required"`
	LevelIntermediate string `mapstructure:"level_intermediate" validate:"required"`
	LevelAdvanced     string `mapstructure:"level_advanced" validate:"required"`
	GoalFitness       string `mapstructure:"goal_fitness" validate:"required"`
	GoalCompetition   string `mapstructure:"goal_competition" validate:"required"`
	LocationGym       string `mapstructure:"location_gym" validate:"required"`
	LocationHome      string `mapstructure:"location_home" validate:"required"`
	Workouts2         string `mapstructure:"workouts_2" validate:"required"`
	Workouts3         string `mapstructure:"workouts_3" validate:"required"`
	Workouts4         string `mapstructure:"workouts_4" validate:"required"`
	Workouts5Plus     string `mapstructure:"workouts_5_plus" validate:"required"`
	ConfirmReset      string `mapstructure:"confirm_reset" validate:"required"`
	Cancel            string `mapstructure:"cancel" validate:"required"`

	MenuWorkoutPlan        string `mapstructure:"menu_workout_plan" validate:"required"`
	MenuNutrition          string `mapstructure:"menu_nutrition" validate:"required"`
	MenuSupplements        string `mapstructure:"menu_supplements" validate:"required"`
	MenuProgress           string `mapstructure:"menu_progress" validate:"required"`
	MenuUpdateMeasurements string `mapstructure:"menu_update_measurements" validate:"required"`
	MenuSettings           string `mapstructure:"menu_settings" validate:"required"`
}

// Choice returns the button text for c.
func (l LabelsConfig) Choice(c chat.Choice) string {
	switch c {
	case chat.ChoiceGenderMale:
		return l.GenderMale
	case chat.ChoiceGenderFemale:
		return l.GenderFemale
	case chat.ChoiceLevelBeginner:
		return l.LevelBeginner
	case chat.ChoiceLevelIntermediate:
		return l.LevelIntermediate
	case chat.ChoiceLevelAdvanced:
		return l.LevelAdvanced
	case chat.ChoiceGoalFitness:
		return l.GoalFitness
	case chat.ChoiceGoalCompetition:
		return l.GoalCompetition
	case chat.ChoiceLocationGym:
		return l.LocationGym
	case chat.ChoiceLocationHome:
		return l.LocationHome
	case chat.ChoiceWorkouts2:
		return l.Workouts2
	case chat.ChoiceWorkouts3:
		return l.Workouts3
	case chat.ChoiceWorkouts4:
		return l.Workouts4
	case chat.ChoiceWorkouts5Plus:
		return l.Workouts5Plus
	case chat.ChoiceConfirmReset:
		return l.ConfirmReset
	case chat.ChoiceCancel:
		return l.Cancel
	}
	return ""
}

// Command returns the menu button text for c, or "" for commands without a button.
func (l LabelsConfig) Command(c chat.Command) string {
	switch c {
	case chat.CommandWorkoutPlan:
		return l.MenuWorkoutPlan
	case chat.CommandNutrition:
		return l.MenuNutrition
	case chat.CommandSupplements:
		return l.MenuSupplements
	case chat.CommandProgress:
		return l.MenuProgress
	case chat.CommandUpdateMeasurements:
		return l.MenuUpdateMeasurements
	case chat.CommandSettings:
		return l.MenuSettings
	}
	return ""
}
