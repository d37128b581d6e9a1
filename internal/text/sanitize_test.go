package text_test

import (
	"testing"

	"github.com/edgard/dualcoach/internal/text"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "plain text", input: "Squat 5x5 today.", expected: "Squat 5x5 today."},
		{name: "bold and italic", input: "**Day 1**: _legs_", expected: "Day 1: legs"},
		{name: "code and links", input: "Use `creatine` [daily](https://x)", expected: "Use creatine daily(https://x)"},
		{name: "html tags", input: "<b>Bench</b> press<br/>", expected: "Bench press"},
		{name: "tag with attributes", input: `<a href="x">link</a> text`, expected: "link text"},
		{name: "cyrillic preserved", input: "*Жим лёжа* — 3 подхода", expected: "Жим лёжа — 3 подхода"},
		{name: "windows line endings", input: "one\r\ntwo\rthree", expected: "one\ntwo\nthree"},
		{name: "zero width characters", input: "re\u200bst\ufeff day", expected: "rest day"},
		{name: "emoji joiner kept", input: "*Тренер* \U0001F468\u200d\U0001F3EB готов", expected: "Тренер \U0001F468\u200d\U0001F3EB готов"},
		{name: "surrounding whitespace", input: "  \n hello \n ", expected: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := text.Sanitize(tt.input); got != tt.expected {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
