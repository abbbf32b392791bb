// Package keybus is the single program-wide key listener registry.
//
// The root model forwards every key press it does not route to a modal
// screen through Dispatch. Components that want global keys Subscribe and
// keep the returned release func to unsubscribe on unmount.
package keybus

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Handler receives a key and reports whether it consumed it.
type Handler func(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd)

type subscription struct {
	id      uint64
	handler Handler
}

// Bus fans key presses out to its subscribers in subscription order.
// It is owned by the Bubble Tea update loop and is not safe for
// concurrent use.
type Bus struct {
	next uint64
	subs []subscription
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a func that removes it. Calling the
// release func more than once is harmless.
func (b *Bus) Subscribe(h Handler) (release func()) {
	b.next++
	id := b.next
	b.subs = append(b.subs, subscription{id: id, handler: h})
	return func() { b.remove(id) }
}

func (b *Bus) remove(id uint64) {
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Dispatch offers msg to each subscriber until one consumes it.
func (b *Bus) Dispatch(msg tea.KeyMsg) (bool, tea.Cmd) {
	subs := append([]subscription(nil), b.subs...)
	for _, sub := range subs {
		if consumed, cmd := sub.handler(msg); consumed {
			return true, cmd
		}
	}
	return false, nil
}

// Len returns the number of installed listeners.
func (b *Bus) Len() int {
	return len(b.subs)
}
