// Package text prepares generated text for delivery: it strips markup the chat
// transport would try to interpret and splits long replies into sendable chunks.
package text

import (
	"regexp"
	"strings"
)

var (
	// markupReplacer removes emphasis and link delimiters along with invisible
	// format characters that models like to emit. U+200D stays: it joins
	// emoji sequences such as 👨‍🏫.
	markupReplacer = strings.NewReplacer(
		"*", "", "_", "", "`", "", "[", "", "]", "",
		"\u200b", "", "\ufeff", "", "\u2060", "",
		"\r\n", "\n", "\r", "\n",
	)

	tagRegex = regexp.MustCompile(`<[^>]+>`)
)

// Sanitize removes markup delimiters and angle-bracket tags from s. It is a
// lossy cleanup with no notion of nesting or well-formedness.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	s = markupReplacer.Replace(s)
	s = tagRegex.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
