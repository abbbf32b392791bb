package screen

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codalab/lazyworksheets/internal/theme"
)

// Button indexes of the confirm dialog.
const (
	ButtonConfirm = 0
	ButtonCancel  = 1
)

// ConfirmScreen displays a modal confirmation prompt with Confirm/Cancel buttons.
// The action only proceeds through OnConfirm; every other exit runs OnCancel.
type ConfirmScreen struct {
	Title          string
	Message        string
	SelectedButton int
	Thm            *theme.Theme

	OnConfirm func() tea.Cmd
	OnCancel  func() tea.Cmd
}

// NewConfirmScreen creates a confirm screen preloaded with a message.
func NewConfirmScreen(message string, thm *theme.Theme) *ConfirmScreen {
	return &ConfirmScreen{
		Message:        message,
		SelectedButton: ButtonConfirm,
		Thm:            thm,
	}
}

// NewConfirmScreenWithDefault creates a confirmation modal with a specified default button.
func NewConfirmScreenWithDefault(message string, defaultButton int, thm *theme.Theme) *ConfirmScreen {
	s := NewConfirmScreen(message, thm)
	if defaultButton == ButtonCancel {
		s.SelectedButton = ButtonCancel
	}
	return s
}

// Type returns the screen type.
func (s *ConfirmScreen) Type() Type {
	return TypeConfirm
}

func (s *ConfirmScreen) confirm() (Screen, tea.Cmd) {
	if s.OnConfirm != nil {
		return nil, s.OnConfirm()
	}
	return nil, nil
}

func (s *ConfirmScreen) cancel() (Screen, tea.Cmd) {
	if s.OnCancel != nil {
		return nil, s.OnCancel()
	}
	return nil, nil
}

// Update processes keyboard events for the confirmation dialog.
// Returns nil to signal that the screen should be closed.
func (s *ConfirmScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case keyTab, "right", "l":
		s.SelectedButton = (s.SelectedButton + 1) % 2
	case keyShiftTab, "left", "h":
		s.SelectedButton = (s.SelectedButton + 1) % 2
	case "y", "Y":
		return s.confirm()
	case "n", "N", keyEsc, keyEscRaw, keyQ, keyCtrlC:
		return s.cancel()
	case keyEnter:
		if s.SelectedButton == ButtonConfirm {
			return s.confirm()
		}
		return s.cancel()
	}
	return s, nil
}

// View renders the confirmation UI box with focused button highlighting.
func (s *ConfirmScreen) View() string {
	width := modalWidth
	inner := width - 4
	message := wrapMessage(s.Message, inner)
	msgHeight := messageHeight(message, 3)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Padding(1, 2).
		Width(width)

	titleStyle := lipgloss.NewStyle().
		Width(inner).
		Align(lipgloss.Center).
		Foreground(s.Thm.ErrorFg).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Width(inner).
		Height(msgHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(s.Thm.TextFg)

	buttonStyle := lipgloss.NewStyle().
		Width((width - 6) / 2).
		Align(lipgloss.Center).
		Padding(0, 2)

	focusedConfirmStyle := buttonStyle.
		Foreground(s.Thm.AccentFg).
		Background(s.Thm.ErrorFg).
		Bold(true)

	focusedCancelStyle := buttonStyle.
		Foreground(s.Thm.AccentFg).
		Background(s.Thm.Accent).
		Bold(true)

	unfocusedButtonStyle := buttonStyle.
		Foreground(s.Thm.MutedFg).
		Background(s.Thm.BorderDim)

	confirmButton := unfocusedButtonStyle.Render("[Confirm]")
	cancelButton := unfocusedButtonStyle.Render("[Cancel]")
	if s.SelectedButton == ButtonConfirm {
		confirmButton = focusedConfirmStyle.Render("[Confirm]")
	} else {
		cancelButton = focusedCancelStyle.Render("[Cancel]")
	}

	body := messageStyle.Render(message)
	if s.Title != "" {
		body = titleStyle.Render(s.Title) + "\n\n" + body
	}

	content := fmt.Sprintf("%s\n\n%s  %s", body, confirmButton, cancelButton)
	return boxStyle.Render(content)
}

// SetTheme updates the theme for this screen.
func (s *ConfirmScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
}
