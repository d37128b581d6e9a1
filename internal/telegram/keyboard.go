package telegram

import (
	"strings"
	"unicode"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/dualcoach/internal/chat"
	"github.com/edgard/dualcoach/internal/config"
)

// Keyboards translates between button labels and chat events.
type Keyboards struct {
	labels config.LabelsConfig
	exact  map[string]chat.Button
	stems  map[string]chat.Button
}

// NewKeyboards indexes every configured label.
func NewKeyboards(labels config.LabelsConfig) *Keyboards {
	k := &Keyboards{
		labels: labels,
		exact:  make(map[string]chat.Button),
		stems:  make(map[string]chat.Button),
	}
	for c := chat.ChoiceGenderMale; c <= chat.ChoiceCancel; c++ {
		k.add(labels.Choice(c), chat.Button{Choice: c})
	}
	for _, c := range chat.MenuCommands() {
		k.add(labels.Command(c), chat.Button{Command: c})
	}
	return k
}

func (k *Keyboards) add(label string, b chat.Button) {
	if label == "" {
		return
	}
	k.exact[label] = b
	if s := stem(label); s != "" {
		k.stems[s] = b
	}
}

// stem drops the emoji and symbols a label starts with, so that a user
// typing "В зале" matches the button "🏋️ В зале".
func stem(label string) string {
	return strings.TrimLeftFunc(strings.TrimSpace(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Event classifies an incoming message text as a button press or free text.
func (k *Keyboards) Event(text string) chat.Event {
	trimmed := strings.TrimSpace(text)
	b, ok := k.exact[trimmed]
	if !ok {
		b, ok = k.stems[stem(trimmed)]
	}
	switch {
	case !ok:
		return chat.TextEvent(text)
	case b.Choice != 0:
		return chat.ChoiceEvent(b.Choice, text)
	default:
		ev := chat.CommandEvent(b.Command)
		ev.Text = text
		return ev
	}
}

// Markup renders kb as a Telegram reply markup. A nil kb yields nil, which
// leaves the user's current keyboard untouched.
func (k *Keyboards) Markup(kb *chat.Keyboard) models.ReplyMarkup {
	if kb == nil {
		return nil
	}
	if kb.Remove {
		return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
	}
	rows := make([][]models.KeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]models.KeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, models.KeyboardButton{Text: k.label(b)})
		}
		rows = append(rows, buttons)
	}
	return &models.ReplyKeyboardMarkup{Keyboard: rows, ResizeKeyboard: true}
}

func (k *Keyboards) label(b chat.Button) string {
	if b.Choice != 0 {
		return k.labels.Choice(b.Choice)
	}
	return k.labels.Command(b.Command)
}
