package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codalab/lazyworksheets/internal/app/keybus"
	"github.com/codalab/lazyworksheets/internal/app/state"
	"github.com/codalab/lazyworksheets/internal/log"
)

// KeyHandler is a component that can take keyboard input while it is the
// active target.
type KeyHandler interface {
	HandleKey(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd)
}

// NoopKeyHandler never consumes a key.
type NoopKeyHandler struct{}

// HandleKey implements KeyHandler.
func (NoopKeyHandler) HandleKey(tea.KeyMsg) (bool, tea.Cmd) { return false, nil }

// Coordinator routes global keys to the active child and tracks which
// child that is.
type Coordinator struct {
	nav      state.NavigationState
	handlers map[state.Target]KeyHandler

	focusSearch func() tea.Cmd
	scrollTop   func() tea.Cmd

	release func()
}

// NewCoordinator binds the list handler to TargetList. The search field
// edits its own text, so TargetSearch is bound to NoopKeyHandler.
func NewCoordinator(list KeyHandler, focusSearch, scrollTop func() tea.Cmd) *Coordinator {
	if list == nil {
		list = NoopKeyHandler{}
	}
	return &Coordinator{
		handlers: map[state.Target]KeyHandler{
			state.TargetList:   list,
			state.TargetSearch: NoopKeyHandler{},
		},
		focusSearch: focusSearch,
		scrollTop:   scrollTop,
	}
}

// Active returns the current keyboard target.
func (c *Coordinator) Active() state.Target {
	return c.nav.Active
}

// OnFocusChange switches the active target. Focus makes the search active;
// any blur hands input back to the list.
func (c *Coordinator) OnFocusChange(source state.Target, kind state.FocusKind) {
	switch kind {
	case state.FocusGained:
		c.nav.Active = state.TargetSearch
	case state.FocusLost:
		c.nav.Active = state.TargetList
	}
	log.Printf("focus: %s reported %d, active target %s", source, kind, c.nav.Active)
}

// HandleGlobalKey is the program-wide key listener.
func (c *Coordinator) HandleGlobalKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == keySlash {
		var cmds []tea.Cmd
		if c.scrollTop != nil {
			cmds = append(cmds, c.scrollTop())
		}
		if c.focusSearch != nil {
			cmds = append(cmds, c.focusSearch())
		}
		return true, tea.Batch(cmds...)
	}
	return c.handlerFor(c.nav.Active).HandleKey(msg)
}

func (c *Coordinator) handlerFor(target state.Target) KeyHandler {
	if h, ok := c.handlers[target]; ok && h != nil {
		return h
	}
	return NoopKeyHandler{}
}

// Mount installs the listener on bus. Mounting twice keeps a single listener.
func (c *Coordinator) Mount(bus *keybus.Bus) {
	if c.release != nil {
		return
	}
	c.release = bus.Subscribe(c.HandleGlobalKey)
}

// Unmount removes the listener installed by Mount.
func (c *Coordinator) Unmount() {
	if c.release == nil {
		return
	}
	c.release()
	c.release = nil
}

// Mounted reports whether the listener is installed.
func (c *Coordinator) Mounted() bool {
	return c.release != nil
}
