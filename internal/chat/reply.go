package chat

import "context"

// Button is one keyboard entry; exactly one of Command and Choice is set.
type Button struct {
	Command Command
	Choice  Choice
}

// Keyboard describes the reply keyboard to show with a message. A nil
// *Keyboard leaves the current keyboard in place.
type Keyboard struct {
	Rows   [][]Button
	Remove bool
}

// ChoiceRow builds a keyboard row of choices.
func ChoiceRow(choices ...Choice) []Button {
	row := make([]Button, len(choices))
	for i, c := range choices {
		row[i] = Button{Choice: c}
	}
	return row
}

// CommandRow builds a keyboard row of commands.
func CommandRow(cmds ...Command) []Button {
	row := make([]Button, len(cmds))
	for i, c := range cmds {
		row[i] = Button{Command: c}
	}
	return row
}

// MainMenu is the keyboard shown to registered users.
func MainMenu() *Keyboard {
	menu := MenuCommands()
	kb := &Keyboard{}
	for i := 0; i < len(menu); i += 2 {
		kb.Rows = append(kb.Rows, CommandRow(menu[i:min(i+2, len(menu))]...))
	}
	return kb
}

// RemoveKeyboard hides any reply keyboard.
func RemoveKeyboard() *Keyboard {
	return &Keyboard{Remove: true}
}

// Reply is one outbound message. Part and Parts number the chunks of a long
// reply; both are zero for ordinary messages.
type Reply struct {
	Text     string
	Keyboard *Keyboard
	Part     int
	Parts    int
}

// Channel delivers replies to a chat.
type Channel interface {
	Send(ctx context.Context, chatID int64, reply Reply) error
	// Typing shows a typing indicator until stop is called.
	Typing(ctx context.Context, chatID int64) (stop func())
}
