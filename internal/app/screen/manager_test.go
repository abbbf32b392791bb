package screen

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codalab/lazyworksheets/internal/theme"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewManager(t *testing.T) {
	m := NewManager()
	if m == nil {
		t.Fatal("expected non-nil manager")
	}
	if m.IsActive() {
		t.Error("expected new manager to have no active screen")
	}
	if m.Type() != TypeNone {
		t.Errorf("expected TypeNone, got %v", m.Type())
	}
	if cmd := m.Update(runeKey("y")); cmd != nil {
		t.Error("expected nil command without a screen")
	}
}

func TestManagerPushPop(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	confirm := NewConfirmScreen("test", thm)
	m.Push(confirm)

	if !m.IsActive() {
		t.Error("expected manager to be active after push")
	}
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm, got %v", m.Type())
	}
	if m.Current() != confirm {
		t.Error("expected current to be the pushed screen")
	}

	info := NewInfoScreen("info", thm)
	m.Push(info)

	if m.Type() != TypeInfo {
		t.Errorf("expected TypeInfo, got %v", m.Type())
	}
	if m.StackDepth() != 1 {
		t.Errorf("expected stack depth 1, got %d", m.StackDepth())
	}

	if popped := m.Pop(); popped != info {
		t.Error("expected to pop the info screen")
	}
	if m.Type() != TypeConfirm {
		t.Errorf("expected TypeConfirm after pop, got %v", m.Type())
	}

	if popped := m.Pop(); popped != confirm {
		t.Error("expected to pop the confirm screen")
	}
	if m.IsActive() {
		t.Error("expected manager to be inactive after popping all screens")
	}

	m.Push(nil)
	if m.IsActive() {
		t.Error("pushing nil must not activate the manager")
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	m.Push(NewConfirmScreen("test", thm))
	m.Push(NewInfoScreen("info", thm))
	m.Clear()

	if m.IsActive() {
		t.Error("expected manager to be inactive after clear")
	}
	if m.StackDepth() != 0 {
		t.Errorf("expected stack depth 0, got %d", m.StackDepth())
	}
}

func TestManagerUpdatePopsClosedScreen(t *testing.T) {
	m := NewManager()
	thm := theme.Dracula()

	m.Push(NewInfoScreen("below", thm))
	confirm := NewConfirmScreen("top", thm)
	confirmed := false
	confirm.OnConfirm = func() tea.Cmd {
		confirmed = true
		return func() tea.Msg { return "deleted" }
	}
	m.Push(confirm)

	// Moving between buttons keeps the screen open.
	if cmd := m.Update(runeKey("l")); cmd != nil {
		t.Error("expected no command for button navigation")
	}
	if m.Current() != confirm {
		t.Fatal("expected confirm to stay on top")
	}

	m.Update(runeKey("h"))
	cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !confirmed {
		t.Error("expected OnConfirm to run")
	}
	if cmd == nil || cmd() != "deleted" {
		t.Error("expected the OnConfirm command to be returned")
	}
	if m.Type() != TypeInfo {
		t.Errorf("expected info screen to be revealed, got %v", m.Type())
	}
}

func TestConfirmScreenUpdate(t *testing.T) {
	thm := theme.Dracula()
	s := NewConfirmScreen("test", thm)

	updated, _ := s.Update(runeKey("l"))
	if updated.(*ConfirmScreen).SelectedButton != ButtonCancel {
		t.Error("expected button to move right")
	}

	s = NewConfirmScreen("test", thm)
	confirmCalled := false
	s.OnConfirm = func() tea.Cmd {
		confirmCalled = true
		return nil
	}
	updated, _ = s.Update(runeKey("y"))
	if updated != nil {
		t.Error("expected nil screen after confirm")
	}
	if !confirmCalled {
		t.Error("expected OnConfirm to be called for 'y' key")
	}

	for _, msg := range []tea.KeyMsg{runeKey("n"), {Type: tea.KeyEsc}, runeKey("q")} {
		s = NewConfirmScreen("test", thm)
		cancelCalled := false
		s.OnConfirm = func() tea.Cmd {
			t.Error("OnConfirm must not run on cancel")
			return nil
		}
		s.OnCancel = func() tea.Cmd {
			cancelCalled = true
			return nil
		}
		updated, _ = s.Update(msg)
		if updated != nil {
			t.Errorf("expected nil screen after %q", msg.String())
		}
		if !cancelCalled {
			t.Errorf("expected OnCancel to be called for %q", msg.String())
		}
	}
}

func TestConfirmScreenEnterOnCancelButton(t *testing.T) {
	s := NewConfirmScreenWithDefault("delete?", ButtonCancel, theme.Dracula())
	confirmed := false
	s.OnConfirm = func() tea.Cmd { confirmed = true; return nil }

	updated, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated != nil {
		t.Error("expected screen to close")
	}
	if confirmed {
		t.Error("enter on the cancel button must not confirm")
	}
}

func TestConfirmScreenViewWrapsLongMessages(t *testing.T) {
	s := NewConfirmScreen(strings.Repeat("worksheet ", 20), theme.Dracula())
	s.Title = "Delete worksheet"

	view := s.View()
	if !strings.Contains(view, "Delete worksheet") {
		t.Error("expected title in view")
	}
	if !strings.Contains(view, "[Confirm]") || !strings.Contains(view, "[Cancel]") {
		t.Error("expected both buttons in view")
	}
}

func TestInfoScreenUpdate(t *testing.T) {
	thm := theme.Dracula()
	s := NewInfoScreen("test", thm)

	updated, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated != nil {
		t.Error("expected nil screen after enter")
	}

	s = NewInfoScreen("test", thm)
	updated, _ = s.Update(runeKey("j"))
	if updated != s {
		t.Error("expected unrelated keys to keep the screen open")
	}
}

func TestErrorScreenView(t *testing.T) {
	s := NewErrorScreen("Copy failed", errors.New("no clipboard utility"), theme.Dracula())
	if !s.IsError {
		t.Error("expected error styling")
	}
	view := s.View()
	if !strings.Contains(view, "Copy failed") || !strings.Contains(view, "no clipboard utility") {
		t.Errorf("unexpected view: %s", view)
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		t        Type
		expected string
	}{
		{TypeNone, "none"},
		{TypeConfirm, "confirm"},
		{TypeInfo, "info"},
		{TypeHelp, "help"},
		{Type(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}
