package input

import (
	"time"

	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
)

const (
	// debounceDuration is the minimum time between debounced events
	debounceDuration = 300 * time.Millisecond
)

// Manager handles input actions and their associated callbacks
type Manager struct {
	handlers      map[action.Action]map[event.Type][]func()
	lastTriggered map[action.Action]map[event.Type]time.Time
	keypad        *memory.Keypad
}

func NewManager(k *memory.Keypad) *Manager {
	return &Manager{
		handlers:      make(map[action.Action]map[event.Type][]func()),
		lastTriggered: make(map[action.Action]map[event.Type]time.Time),
		keypad:        k,
	}
}

// On registers a callback for a specific action and event type
func (m *Manager) On(act action.Action, evt event.Type, callback func()) {
	if m.handlers[act] == nil {
		m.handlers[act] = make(map[event.Type][]func())
	}
	m.handlers[act][evt] = append(m.handlers[act][evt], callback)
}

// Trigger handles the given action and event type.
//
// Keypad actions are written straight to the keypad and are never
// debounced, games poll keys every frame and a dropped release would
// leave a key stuck. Presses of other actions are debounced.
func (m *Manager) Trigger(act action.Action, evt event.Type) {
	if key, ok := act.Key(); ok {
		if m.keypad != nil {
			switch evt {
			case event.Press, event.Hold:
				m.keypad.Press(memory.Key(key))
			case event.Release:
				m.keypad.Release(memory.Key(key))
			}
		}
		m.dispatch(act, evt)
		return
	}

	if evt == event.Press {
		now := time.Now()
		if m.lastTriggered[act] == nil {
			m.lastTriggered[act] = make(map[event.Type]time.Time)
		}
		if now.Sub(m.lastTriggered[act][evt]) < debounceDuration {
			return
		}
		m.lastTriggered[act][evt] = now
	}

	m.dispatch(act, evt)
}

func (m *Manager) dispatch(act action.Action, evt event.Type) {
	for _, callback := range m.handlers[act][evt] {
		callback()
	}
}
