package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/codalab/lazyworksheets/internal/app/state"
	"github.com/codalab/lazyworksheets/internal/theme"
)

type focusEvent struct {
	source state.Target
	kind   state.FocusKind
}

func newRecordingSearch() (*Search, *[]string, *[]focusEvent) {
	var changes []string
	var events []focusEvent
	s := NewSearch(
		func(text string) { changes = append(changes, text) },
		func(source state.Target, kind state.FocusKind) {
			events = append(events, focusEvent{source, kind})
		},
	)
	return s, &changes, &events
}

func TestSearchReportsEveryChange(t *testing.T) {
	s, changes, _ := newRecordingSearch()
	s.Focus()

	for _, r := range "Al" {
		s.Update(keyRunes(string(r)))
	}
	s.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, []string{"A", "Al", "A"}, *changes)
	assert.Equal(t, "A", s.Value())
}

func TestSearchIgnoresKeysWhenBlurred(t *testing.T) {
	s, changes, _ := newRecordingSearch()

	s.Update(keyRunes("a"))
	assert.Empty(t, *changes)
	assert.Empty(t, s.Value())
}

func TestSearchFocusEvents(t *testing.T) {
	s, _, events := newRecordingSearch()

	s.Focus()
	s.Focus()
	assert.True(t, s.Focused())
	assert.Equal(t, []focusEvent{{state.TargetSearch, state.FocusGained}}, *events)

	s.Blur()
	s.Blur()
	assert.False(t, s.Focused())
	assert.Equal(t, []focusEvent{
		{state.TargetSearch, state.FocusGained},
		{state.TargetSearch, state.FocusLost},
	}, *events)
}

func TestSearchLeaveKeysBlur(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyEnter}, {Type: tea.KeyTab}} {
		s, changes, events := newRecordingSearch()
		s.Focus()
		s.Update(keyRunes("x"))

		s.Update(msg)
		assert.False(t, s.Focused(), msg.String())
		assert.Equal(t, "x", s.Value(), "leaving keeps the text")
		assert.Equal(t, []string{"x"}, *changes, msg.String())
		assert.Len(t, *events, 2, msg.String())
	}
}

func TestSearchView(t *testing.T) {
	s, _, _ := newRecordingSearch()
	s.SetWidth(40)
	assert.Contains(t, s.View(theme.Dracula()), "Search worksheets")
}
