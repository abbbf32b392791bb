package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codalab/lazyworksheets/internal/theme"
)

// InfoScreen displays a modal message with an OK button.
type InfoScreen struct {
	Title   string
	Message string
	IsError bool
	Thm     *theme.Theme
}

// NewInfoScreen creates an informational modal with an OK button.
func NewInfoScreen(message string, thm *theme.Theme) *InfoScreen {
	return &InfoScreen{
		Message: message,
		Thm:     thm,
	}
}

// NewErrorScreen creates an info modal styled for a failed action.
func NewErrorScreen(title string, err error, thm *theme.Theme) *InfoScreen {
	s := NewInfoScreen(err.Error(), thm)
	s.Title = title
	s.IsError = true
	return s
}

// Type returns the screen type.
func (s *InfoScreen) Type() Type {
	return TypeInfo
}

// Update processes keyboard events for the info dialog.
// Returns nil to signal that the screen should be closed.
func (s *InfoScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc, keyEscRaw, keyQ, keyCtrlC, " ":
		return nil, nil
	}
	return s, nil
}

// View renders the informational UI box with a single OK button.
func (s *InfoScreen) View() string {
	width := modalWidth
	inner := width - 4
	message := wrapMessage(s.Message, inner)

	accent := s.Thm.Accent
	if s.IsError {
		accent = s.Thm.ErrorFg
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(width)

	titleStyle := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(accent).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Width(inner).
		Height(messageHeight(message, 3)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(s.Thm.TextFg)

	okStyle := lipgloss.NewStyle().
		Width(width-6).
		Align(lipgloss.Center).
		Padding(0, 2).
		Foreground(s.Thm.AccentFg).
		Background(accent).
		Bold(true)

	body := messageStyle.Render(message)
	if s.Title != "" {
		body = titleStyle.Render(s.Title) + "\n\n" + body
	}

	return boxStyle.Render(fmt.Sprintf("%s\n\n%s", body, okStyle.Render("[OK]")))
}

// SetTheme updates the theme for this screen.
func (s *InfoScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
}
