package notifier

import (
	"strings"
	"unicode/utf8"
)

// maxMessageRunes is the sendMessage text limit of the Bot API.
const maxMessageRunes = 4096

const (
	preOpen  = "<pre>"
	preClose = "</pre>"
)

// SplitMessage cuts text into parts of at most limit runes, breaking at line
// ends where possible. A <pre> block that spans a cut is closed at the end of
// one part and reopened at the start of the next, so every part stays valid
// HTML for the Bot API.
func SplitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}
	budget := limit - len(preClose)
	pieceMax := budget - len(preOpen)
	if pieceMax < 1 {
		pieceMax = 1
	}

	var (
		parts []string
		cur   strings.Builder
		size  int
		inPre bool
	)
	flush := func() {
		part := strings.TrimRight(cur.String(), "\n")
		if inPre {
			part += preClose
		}
		parts = append(parts, part)
		cur.Reset()
		size = 0
		if inPre {
			cur.WriteString(preOpen)
			size = len(preOpen)
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		for _, piece := range splitRunes(line, pieceMax) {
			n := utf8.RuneCountInString(piece)
			if size > 0 && size+n > budget {
				flush()
			}
			cur.WriteString(piece)
			size += n
			inPre = preState(inPre, piece)
		}
	}
	if size > 0 {
		parts = append(parts, strings.TrimRight(cur.String(), "\n"))
	}
	return parts
}

// preState reports whether a <pre> block is still open after s.
func preState(inPre bool, s string) bool {
	open, closed := strings.LastIndex(s, preOpen), strings.LastIndex(s, preClose)
	switch {
	case open > closed:
		return true
	case closed > open:
		return false
	}
	return inPre
}

func splitRunes(s string, n int) []string {
	if utf8.RuneCountInString(s) <= n {
		return []string{s}
	}
	var out []string
	runes := []rune(s)
	for len(runes) > n {
		out = append(out, string(runes[:n]))
		runes = runes[n:]
	}
	return append(out, string(runes))
}
