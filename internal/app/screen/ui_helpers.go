package screen

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

// Key constants for navigation.
const (
	keyEnter    = "enter"
	keyEsc      = "esc"
	keyEscRaw   = "\x1b" // Raw escape byte for terminals that send ESC as a rune
	keyTab      = "tab"
	keyShiftTab = "shift+tab"
	keyQ        = "q"
	keyCtrlC    = "ctrl+c"
)

// modalWidth is the outer width of confirm and info boxes.
const modalWidth = 60

// wrapMessage hard-wraps message to width so long server errors and
// worksheet names stay inside the box.
func wrapMessage(message string, width int) string {
	if width <= 0 {
		return message
	}
	return wrap.String(strings.TrimSpace(message), width)
}

// messageHeight returns the number of lines of a wrapped message, at least min.
func messageHeight(wrapped string, min int) int {
	return maxInt(min, lipgloss.Height(wrapped))
}

// indexFold returns the rune index of the first case-insensitive match of
// query in runes at or after from, or -1.
func indexFold(runes []rune, query string, from int) int {
	n := utf8.RuneCountInString(query)
	for i := from; i+n <= len(runes); i++ {
		if strings.EqualFold(string(runes[i:i+n]), query) {
			return i
		}
	}
	return -1
}

func containsFold(line, query string) bool {
	return indexFold([]rune(line), query, 0) >= 0
}

// highlightMatches highlights every case-insensitive occurrence of query in
// line. Matching works on runes, so case changes that alter a character's
// byte length never split it.
func highlightMatches(line, query string, style lipgloss.Style) string {
	if query == "" {
		return line
	}

	runes := []rune(line)
	n := utf8.RuneCountInString(query)
	var b strings.Builder
	from := 0
	for {
		idx := indexFold(runes, query, from)
		if idx < 0 {
			b.WriteString(string(runes[from:]))
			break
		}
		b.WriteString(string(runes[from:idx]))
		b.WriteString(style.Render(string(runes[idx : idx+n])))
		from = idx + n
	}
	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
