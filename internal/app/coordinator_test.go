package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalab/lazyworksheets/internal/app/keybus"
	"github.com/codalab/lazyworksheets/internal/app/state"
)

type recordingHandler struct {
	keys    []string
	consume bool
}

func (r *recordingHandler) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	r.keys = append(r.keys, msg.String())
	return r.consume, nil
}

type coordinatorHarness struct {
	list        *recordingHandler
	focusCalls  int
	scrollCalls int
	c           *Coordinator
}

func newCoordinatorHarness() *coordinatorHarness {
	h := &coordinatorHarness{list: &recordingHandler{consume: true}}
	h.c = NewCoordinator(h.list,
		func() tea.Cmd { h.focusCalls++; return nil },
		func() tea.Cmd { h.scrollCalls++; return nil },
	)
	return h
}

func TestCoordinatorStartsOnList(t *testing.T) {
	h := newCoordinatorHarness()
	assert.Equal(t, state.TargetList, h.c.Active())

	consumed, _ := h.c.HandleGlobalKey(keyRunes("j"))
	assert.True(t, consumed)
	assert.Equal(t, []string{"j"}, h.list.keys)
}

func TestCoordinatorFocusChanges(t *testing.T) {
	h := newCoordinatorHarness()

	h.c.OnFocusChange(state.TargetSearch, state.FocusGained)
	assert.Equal(t, state.TargetSearch, h.c.Active())

	consumed, cmd := h.c.HandleGlobalKey(keyRunes("j"))
	assert.False(t, consumed, "search target has no key handler")
	assert.Nil(t, cmd)
	assert.Empty(t, h.list.keys)

	// Any blur hands input back to the list, whoever reports it.
	h.c.OnFocusChange(state.TargetList, state.FocusLost)
	assert.Equal(t, state.TargetList, h.c.Active())
}

func TestCoordinatorSlashFocusesSearchFromAnyTarget(t *testing.T) {
	for _, active := range []state.Target{state.TargetList, state.TargetSearch} {
		h := newCoordinatorHarness()
		if active == state.TargetSearch {
			h.c.OnFocusChange(state.TargetSearch, state.FocusGained)
		}

		consumed, _ := h.c.HandleGlobalKey(keyRunes("/"))
		assert.True(t, consumed, active.String())
		assert.Equal(t, 1, h.focusCalls, active.String())
		assert.Equal(t, 1, h.scrollCalls, active.String())
		assert.Empty(t, h.list.keys, active.String())
	}
}

func TestCoordinatorUnconsumedKeyFallsThrough(t *testing.T) {
	h := newCoordinatorHarness()
	h.list.consume = false

	consumed, _ := h.c.HandleGlobalKey(keyRunes("z"))
	assert.False(t, consumed)
}

func TestCoordinatorNilListUsesNoop(t *testing.T) {
	c := NewCoordinator(nil, nil, nil)
	consumed, cmd := c.HandleGlobalKey(keyRunes("j"))
	assert.False(t, consumed)
	assert.Nil(t, cmd)

	consumed, _ = c.HandleGlobalKey(keyRunes("/"))
	assert.True(t, consumed)
}

func TestCoordinatorMountInstallsOneListener(t *testing.T) {
	h := newCoordinatorHarness()
	bus := keybus.New()

	h.c.Mount(bus)
	h.c.Mount(bus)
	require.True(t, h.c.Mounted())
	assert.Equal(t, 1, bus.Len())

	consumed, _ := bus.Dispatch(keyRunes("k"))
	assert.True(t, consumed)
	assert.Equal(t, []string{"k"}, h.list.keys)

	h.c.Unmount()
	h.c.Unmount()
	assert.False(t, h.c.Mounted())
	assert.Equal(t, 0, bus.Len())

	consumed, _ = bus.Dispatch(keyRunes("k"))
	assert.False(t, consumed)
	assert.Len(t, h.list.keys, 1)
}

func TestCoordinatorRemountDoesNotLeak(t *testing.T) {
	h := newCoordinatorHarness()
	bus := keybus.New()

	for i := 0; i < 3; i++ {
		h.c.Mount(bus)
		h.c.Unmount()
	}
	h.c.Mount(bus)
	assert.Equal(t, 1, bus.Len())

	_, _ = bus.Dispatch(keyRunes("j"))
	assert.Equal(t, []string{"j"}, h.list.keys)
}

func TestNoopKeyHandler(t *testing.T) {
	var h KeyHandler = NoopKeyHandler{}
	consumed, cmd := h.HandleKey(keyRunes("j"))
	assert.False(t, consumed)
	assert.Nil(t, cmd)
}
