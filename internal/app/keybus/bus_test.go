package keybus

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDispatchWithoutSubscribers(t *testing.T) {
	bus := New()
	consumed, cmd := bus.Dispatch(key("j"))
	assert.False(t, consumed)
	assert.Nil(t, cmd)
}

func TestDispatchStopsAtFirstConsumer(t *testing.T) {
	bus := New()
	var calls []string

	bus.Subscribe(func(tea.KeyMsg) (bool, tea.Cmd) {
		calls = append(calls, "first")
		return false, nil
	})
	bus.Subscribe(func(tea.KeyMsg) (bool, tea.Cmd) {
		calls = append(calls, "second")
		return true, func() tea.Msg { return "done" }
	})
	bus.Subscribe(func(tea.KeyMsg) (bool, tea.Cmd) {
		calls = append(calls, "third")
		return true, nil
	})

	consumed, cmd := bus.Dispatch(key("j"))
	assert.True(t, consumed)
	require.NotNil(t, cmd)
	assert.Equal(t, "done", cmd())
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestReleaseRemovesOnlyItsHandler(t *testing.T) {
	bus := New()
	hits := map[string]int{}

	releaseA := bus.Subscribe(func(tea.KeyMsg) (bool, tea.Cmd) { hits["a"]++; return false, nil })
	bus.Subscribe(func(tea.KeyMsg) (bool, tea.Cmd) { hits["b"]++; return false, nil })
	assert.Equal(t, 2, bus.Len())

	releaseA()
	releaseA()
	assert.Equal(t, 1, bus.Len())

	bus.Dispatch(key("x"))
	assert.Equal(t, 0, hits["a"])
	assert.Equal(t, 1, hits["b"])
}

func TestReleaseDuringDispatch(t *testing.T) {
	bus := New()
	var release func()
	calls := 0
	release = bus.Subscribe(func(tea.KeyMsg) (bool, tea.Cmd) {
		calls++
		release()
		return false, nil
	})
	bus.Subscribe(func(tea.KeyMsg) (bool, tea.Cmd) { calls++; return false, nil })

	bus.Dispatch(key("x"))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, bus.Len())
}
