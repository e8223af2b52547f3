package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
)

func TestManager_KeypadWrites(t *testing.T) {
	keypad := memory.NewKeypad()
	m := NewManager(keypad)

	m.Trigger(action.KeyC, event.Press)
	assert.True(t, keypad.IsPressed(0xC))

	m.Trigger(action.KeyC, event.Release)
	assert.False(t, keypad.IsPressed(0xC))

	// rapid repeats are never dropped for the keypad
	m.Trigger(action.KeyC, event.Press)
	assert.True(t, keypad.IsPressed(0xC))
	m.Trigger(action.KeyC, event.Release)
	assert.False(t, keypad.IsPressed(0xC))
}

func TestManager_HoldKeepsKeyPressed(t *testing.T) {
	keypad := memory.NewKeypad()
	m := NewManager(keypad)

	m.Trigger(action.Key1, event.Hold)
	assert.True(t, keypad.IsPressed(0x1))
}

func TestManager_CallbacksAreDebounced(t *testing.T) {
	m := NewManager(nil)
	calls := 0
	m.On(action.EmulatorPauseToggle, event.Press, func() { calls++ })

	m.Trigger(action.EmulatorPauseToggle, event.Press)
	m.Trigger(action.EmulatorPauseToggle, event.Press)

	assert.Equal(t, 1, calls)
}

func TestManager_ReleaseNotDebounced(t *testing.T) {
	m := NewManager(nil)
	calls := 0
	m.On(action.EmulatorStepFrame, event.Release, func() { calls++ })

	m.Trigger(action.EmulatorStepFrame, event.Release)
	m.Trigger(action.EmulatorStepFrame, event.Release)

	assert.Equal(t, 2, calls)
}

func TestManager_KeypadCallbacks(t *testing.T) {
	m := NewManager(memory.NewKeypad())
	var got []action.Action
	m.On(action.Key0, event.Press, func() { got = append(got, action.Key0) })

	m.Trigger(action.Key0, event.Press)
	m.Trigger(action.Key0, event.Press)

	assert.Equal(t, []action.Action{action.Key0, action.Key0}, got)
}

func TestDefaultKeyMap_Keypad(t *testing.T) {
	layout := map[string]uint8{
		"1": 0x1, "2": 0x2, "3": 0x3, "4": 0xC,
		"q": 0x4, "w": 0x5, "e": 0x6, "r": 0xD,
		"a": 0x7, "s": 0x8, "d": 0x9, "f": 0xE,
		"z": 0xA, "x": 0x0, "c": 0xB, "v": 0xF,
	}
	seen := map[uint8]bool{}
	for key, want := range layout {
		act, ok := GetDefaultMapping(key)
		assert.True(t, ok, key)
		got, isKey := act.Key()
		assert.True(t, isKey, key)
		assert.Equal(t, want, got, key)
		seen[got] = true
	}
	assert.Len(t, seen, 16, "every keypad key is reachable")

	act, ok := GetDefaultMapping("Escape")
	assert.True(t, ok)
	assert.Equal(t, action.EmulatorQuit, act)
}
