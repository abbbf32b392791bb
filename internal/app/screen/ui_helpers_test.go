package screen

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHighlightMatches(t *testing.T) {
	mark := lipgloss.NewStyle().Transform(func(s string) string { return "[" + s + "]" })

	tests := []struct {
		name  string
		line  string
		query string
		want  string
	}{
		{name: "empty query", line: "Open in browser", query: "", want: "Open in browser"},
		{name: "ignores case", line: "Open the open link", query: "OPEN", want: "[Open] the [open] link"},
		{name: "no match", line: "Quit", query: "zz", want: "Quit"},
		{name: "dotted capital I before match", line: "İstanbul sheet", query: "sheet", want: "İstanbul [sheet]"},
		{name: "sharp s folds", line: "STRAẞE notes", query: "straße", want: "[STRAẞE] notes"},
		{name: "multibyte match at end", line: "café Café", query: "CAFÉ", want: "[café] [Café]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, highlightMatches(tt.line, tt.query, mark))
		})
	}
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("İstanbul sheet", "SHEET"))
	assert.True(t, containsFold("STRAẞE", "straße"))
	assert.False(t, containsFold("short", "longer query"))
}
