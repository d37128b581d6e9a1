package text_test

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/edgard/dualcoach/internal/text"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 150)

	tests := []struct {
		name     string
		input    string
		limit    int
		expected []string
	}{
		{
			name:     "fits",
			input:    "short reply",
			limit:    100,
			expected: []string{"short reply"},
		},
		{
			name:     "exactly the limit",
			input:    "abcde",
			limit:    5,
			expected: []string{"abcde"},
		},
		{
			name:     "fits keeps whitespace and markup",
			input:    "  *keep*\n\n",
			limit:    100,
			expected: []string{"  *keep*\n\n"},
		},
		{
			name:     "paragraphs grouped",
			input:    "aaaaaaaaaa\n\nbbbbbbbbbb\n\ncccccccccc",
			limit:    25,
			expected: []string{"aaaaaaaaaa\n\nbbbbbbbbbb", "cccccccccc"},
		},
		{
			name:     "one paragraph per chunk",
			input:    "aaaaaaaaaa\n\nbbbbbbbbbb\n\ncccccccccc",
			limit:    20,
			expected: []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"},
		},
		{
			name:     "sentences inside an oversized paragraph",
			input:    "One two three. Four five six. Seven eight nine.",
			limit:    30,
			expected: []string{"One two three. Four five six.", "Seven eight nine."},
		},
		{
			name:     "oversized sentence truncated",
			input:    long,
			limit:    100,
			expected: []string{strings.Repeat("x", 50) + text.TruncationMarker},
		},
		{
			name:     "blank paragraphs skipped",
			input:    "aaaaaaaaaa\n\n\n\n   \n\nbbbbbbbbbb",
			limit:    15,
			expected: []string{"aaaaaaaaaa", "bbbbbbbbbb"},
		},
		{
			name:     "limit counts runes not bytes",
			input:    "привет мир",
			limit:    10,
			expected: []string{"привет мир"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := text.Split(tt.input, tt.limit)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Split(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.expected)
			}
		})
	}
}

func TestSplitDefaultLimit(t *testing.T) {
	t.Parallel()

	para := strings.Repeat("word ", 300) // 1500 runes
	input := strings.Join([]string{para, para, para}, "\n\n")

	got := text.Split(input, 0)
	if len(got) != 2 {
		t.Fatalf("Split(input, 0) returned %d chunks, want 2", len(got))
	}
	for i, c := range got {
		if n := utf8.RuneCountInString(c); n > text.DefaultChunkSize {
			t.Errorf("chunk %d has %d runes, limit %d", i, n, text.DefaultChunkSize)
		}
	}
}

func TestSplitProperties(t *testing.T) {
	t.Parallel()

	words := []string{"жим", "присед", "тяга", "sets", "reps", "протеин", "rest", "кардио", "warmup", "неделя"}
	rng := rand.New(rand.NewSource(7))

	randomText := func() string {
		paragraphs := make([]string, 1+rng.Intn(8))
		for p := range paragraphs {
			sentences := make([]string, 1+rng.Intn(6))
			for s := range sentences {
				ws := make([]string, 3+rng.Intn(10))
				for w := range ws {
					ws[w] = words[rng.Intn(len(words))]
				}
				sentences[s] = strings.Join(ws, " ") + "."
			}
			paragraphs[p] = strings.Join(sentences, " ")
		}
		return strings.Join(paragraphs, "\n\n")
	}

	stripSpace := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}

	for i := 0; i < 200; i++ {
		input := randomText()
		limit := 150 + rng.Intn(400)

		chunks := text.Split(input, limit)
		if len(chunks) == 0 {
			t.Fatalf("case %d: Split returned no chunks", i)
		}
		if utf8.RuneCountInString(input) <= limit {
			if len(chunks) != 1 || chunks[0] != input {
				t.Fatalf("case %d: text within limit was altered: %q", i, chunks)
			}
			continue
		}
		for j, c := range chunks {
			if n := utf8.RuneCountInString(c); n > limit {
				t.Fatalf("case %d: chunk %d has %d runes, limit %d", i, j, n, limit)
			}
			if c == "" {
				t.Fatalf("case %d: chunk %d is empty", i, j)
			}
		}
		if got, want := stripSpace(strings.Join(chunks, "")), stripSpace(input); got != want {
			t.Fatalf("case %d: chunks do not preserve the text\n got: %q\nwant: %q", i, got, want)
		}
	}
}
