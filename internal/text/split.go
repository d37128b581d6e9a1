package text

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultChunkSize keeps messages under the Telegram limit of 4096 characters.
	DefaultChunkSize = 4000

	// TruncationMarker ends a sentence that alone exceeded the chunk size.
	TruncationMarker = "..."

	truncationReserve  = 50
	paragraphSeparator = "\n\n"
	sentenceSeparator  = ". "
)

// Split breaks s into chunks of at most limit runes. Paragraph boundaries are
// preferred, then sentence boundaries; a sentence longer than the limit is cut
// to limit-50 runes and marked with TruncationMarker. Text that already fits is
// returned unchanged as the only chunk. The result is never empty.
func Split(s string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkSize
	}
	if utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}

	c := &chunker{limit: limit}
	for _, para := range strings.Split(s, paragraphSeparator) {
		if strings.TrimSpace(para) == "" {
			continue
		}
		c.addParagraph(para)
	}
	c.flush()

	if len(c.chunks) == 0 {
		return []string{""}
	}
	return c.chunks
}

type chunker struct {
	limit  int
	chunks []string
	cur    strings.Builder
	curLen int
}

func (c *chunker) addParagraph(para string) {
	if utf8.RuneCountInString(para) <= c.limit {
		c.add(para, paragraphSeparator)
		return
	}

	c.flush()
	sentences := strings.Split(para, sentenceSeparator)
	for i, sentence := range sentences {
		if i < len(sentences)-1 {
			sentence += "."
		}
		if utf8.RuneCountInString(sentence) > c.limit {
			c.flush()
			c.chunks = append(c.chunks, truncate(sentence, c.limit))
			continue
		}
		c.add(sentence, " ")
	}
	// The next paragraph starts a fresh chunk.
	c.flush()
}

// add appends unit to the current chunk, starting a new chunk when it would overflow.
func (c *chunker) add(unit, sep string) {
	n := utf8.RuneCountInString(unit)
	if c.curLen > 0 && c.curLen+utf8.RuneCountInString(sep)+n > c.limit {
		c.flush()
	}
	if c.curLen > 0 {
		c.cur.WriteString(sep)
		c.curLen += utf8.RuneCountInString(sep)
	}
	c.cur.WriteString(unit)
	c.curLen += n
}

func (c *chunker) flush() {
	if c.curLen == 0 {
		return
	}
	if chunk := strings.TrimSpace(c.cur.String()); chunk != "" {
		c.chunks = append(c.chunks, chunk)
	}
	c.cur.Reset()
	c.curLen = 0
}

func truncate(s string, limit int) string {
	keep := limit - truncationReserve
	if keep < 0 {
		keep = 0
	}
	if m := utf8.RuneCountInString(TruncationMarker); keep+m > limit {
		keep = max(limit-m, 0)
	}
	runes := []rune(s)
	if keep > len(runes) {
		keep = len(runes)
	}
	return strings.TrimSpace(string(runes[:keep])) + TruncationMarker
}
