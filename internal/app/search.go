package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codalab/lazyworksheets/internal/app/state"
	"github.com/codalab/lazyworksheets/internal/theme"
)

// Search is the filter field above the list. It reports every text change
// and every focus transition to its owner.
type Search struct {
	input         textinput.Model
	onChange      func(text string)
	onFocusChange func(source state.Target, kind state.FocusKind)
}

// NewSearch builds an unfocused search field.
func NewSearch(onChange func(string), onFocusChange func(state.Target, state.FocusKind)) *Search {
	ti := textinput.New()
	ti.Placeholder = "Search worksheets"
	ti.Prompt = "/ "
	ti.CharLimit = 256
	ti.Blur()

	return &Search{
		input:         ti,
		onChange:      onChange,
		onFocusChange: onFocusChange,
	}
}

// Focused reports whether the field has input focus.
func (s *Search) Focused() bool {
	return s.input.Focused()
}

// Value returns the current filter text.
func (s *Search) Value() string {
	return s.input.Value()
}

// Focus grants input focus. Focusing an already focused field is a no-op.
func (s *Search) Focus() tea.Cmd {
	if s.input.Focused() {
		return nil
	}
	cmd := s.input.Focus()
	if s.onFocusChange != nil {
		s.onFocusChange(state.TargetSearch, state.FocusGained)
	}
	return cmd
}

// Blur drops input focus, keeping the text.
func (s *Search) Blur() {
	if !s.input.Focused() {
		return
	}
	s.input.Blur()
	if s.onFocusChange != nil {
		s.onFocusChange(state.TargetSearch, state.FocusLost)
	}
}

// Update edits the text while focused. Esc, enter and tab leave the field.
func (s *Search) Update(msg tea.KeyMsg) tea.Cmd {
	if !s.input.Focused() {
		return nil
	}
	switch keyStr := msg.String(); {
	case isEscKey(keyStr), keyStr == keyEnter, keyStr == keyTab:
		s.Blur()
		return nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if after := s.input.Value(); after != before && s.onChange != nil {
		s.onChange(after)
	}
	return cmd
}

// SetWidth sizes the field.
func (s *Search) SetWidth(width int) {
	s.input.Width = max(10, width-len(s.input.Prompt)-1)
}

// View renders the field.
func (s *Search) View(thm *theme.Theme) string {
	s.input.PromptStyle = lipgloss.NewStyle().Foreground(thm.MutedFg)
	if s.input.Focused() {
		s.input.PromptStyle = lipgloss.NewStyle().Foreground(thm.Accent).Bold(true)
	}
	s.input.PlaceholderStyle = lipgloss.NewStyle().Foreground(thm.MutedFg)
	s.input.TextStyle = lipgloss.NewStyle().Foreground(thm.TextFg)
	return s.input.View()
}
