package input

import (
	"time"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// Handler manages input processing with debouncing for UI actions
type Handler struct {
	lastActionTime map[action.Action]time.Time
	debounceDelay  time.Duration
}

func NewHandler() *Handler {
	return &Handler{
		lastActionTime: make(map[action.Action]time.Time),
		debounceDelay:  debounceDuration,
	}
}

// ProcessEvent reports whether an event should be handled. Presses of
// non-keypad actions closer than the debounce delay are dropped, every
// other event passes.
func (h *Handler) ProcessEvent(evt backend.InputEvent) bool {
	if evt.Type != event.Press {
		return true
	}
	if action.GetInfo(evt.Action).Category == action.CategoryKeypad {
		return true
	}

	now := time.Now()
	if lastTime, exists := h.lastActionTime[evt.Action]; exists {
		if now.Sub(lastTime) < h.debounceDelay {
			return false
		}
	}
	h.lastActionTime[evt.Action] = now
	return true
}
