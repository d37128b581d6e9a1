// Package chat defines the transport-neutral events the bot core consumes and
// the replies it produces. The channel adapter maps button labels and slash
// commands onto these types; the core never inspects presentation strings.
package chat

// Command is a slash command or a main menu action.
type Command int

const (
	CommandStart Command = iota + 1
	CommandHelp
	CommandReset
	CommandStop
	CommandWorkoutPlan
	CommandNutrition
	CommandSupplements
	CommandProgress
	CommandUpdateMeasurements
	CommandSettings
)

var commandNames = map[Command]string{
	CommandStart:              "start",
	CommandHelp:               "help",
	CommandReset:              "reset",
	CommandStop:               "stop",
	CommandWorkoutPlan:        "workout_plan",
	CommandNutrition:          "nutrition",
	CommandSupplements:        "supplements",
	CommandProgress:           "progress",
	CommandUpdateMeasurements: "update_measurements",
	CommandSettings:           "settings",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsMenu reports whether c is one of the profile-gated main menu actions.
func (c Command) IsMenu() bool {
	return c >= CommandWorkoutPlan && c <= CommandSettings
}

// MenuCommands lists the main menu actions in display order.
func MenuCommands() []Command {
	return []Command{
		CommandWorkoutPlan, CommandNutrition,
		CommandSupplements, CommandProgress,
		CommandUpdateMeasurements, CommandSettings,
	}
}

// Choice is a button offered by a prompt.
type Choice int

const (
	ChoiceGenderMale Choice = iota + 1
	ChoiceGenderFemale
	ChoiceLevelBeginner
	ChoiceLevelIntermediate
	ChoiceLevelAdvanced
	ChoiceGoalFitness
	ChoiceGoalCompetition
	ChoiceLocationGym
	ChoiceLocationHome
	ChoiceWorkouts2
	ChoiceWorkouts3
	ChoiceWorkouts4
	ChoiceWorkouts5Plus
	ChoiceConfirmReset
	ChoiceCancel
)

var choiceNames = map[Choice]string{
	ChoiceGenderMale:        "gender_male",
	ChoiceGenderFemale:      "gender_female",
	ChoiceLevelBeginner:     "level_beginner",
	ChoiceLevelIntermediate: "level_intermediate",
	ChoiceLevelAdvanced:     "level_advanced",
	ChoiceGoalFitness:       "goal_fitness",
	ChoiceGoalCompetition:   "goal_competition",
	ChoiceLocationGym:       "location_gym",
	ChoiceLocationHome:      "location_home",
	ChoiceWorkouts2:         "workouts_2",
	ChoiceWorkouts3:         "workouts_3",
	ChoiceWorkouts4:         "workouts_4",
	ChoiceWorkouts5Plus:     "workouts_5_plus",
	ChoiceConfirmReset:      "confirm_reset",
	ChoiceCancel:            "cancel",
}

func (c Choice) String() string {
	if name, ok := choiceNames[c]; ok {
		return name
	}
	return "unknown"
}

// EventKind discriminates Event.
type EventKind int

const (
	EventText EventKind = iota + 1
	EventCommand
	EventChoice
)

// Event is one inbound user action. Text carries what the user actually sent
// for every kind, so free-text steps can still parse a pressed button.
type Event struct {
	Kind    EventKind
	Command Command
	Choice  Choice
	Text    string
}

// TextEvent wraps free text.
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// CommandEvent wraps a command.
func CommandEvent(c Command) Event {
	return Event{Kind: EventCommand, Command: c}
}

// ChoiceEvent wraps a button press together with its label.
func ChoiceEvent(c Choice, label string) Event {
	return Event{Kind: EventChoice, Choice: c, Text: label}
}

// IsChoice reports whether e is a press of button c.
func (e Event) IsChoice(c Choice) bool {
	return e.Kind == EventChoice && e.Choice == c
}

// IsCommand reports whether e is command c.
func (e Event) IsCommand(c Command) bool {
	return e.Kind == EventCommand && e.Command == c
}

// Inbound is an event addressed to the bot by one user.
type Inbound struct {
	UserID   int64
	ChatID   int64
	Username string
	Event    Event
}
