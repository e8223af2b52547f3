package action

import "fmt"

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// CHIP-8 keypad, in key order so KeypadAction can index it
	Key0 Action = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF

	// Emulator features
	EmulatorDebugToggle
	EmulatorDebugUpdate
	EmulatorSnapshot
	EmulatorPauseToggle
	EmulatorStepFrame
	EmulatorStepInstruction
	EmulatorReset
	EmulatorTestPatternCycle
	EmulatorQuit

	// Debug controls
	DebugLogLevelIncrease
	DebugLogLevelDecrease

	actionCount
)

// Category groups actions by who handles them.
type Category int

const (
	// CategoryKeypad actions are written to the machine keypad.
	CategoryKeypad Category = iota
	// CategoryEmulator actions control the emulation itself.
	CategoryEmulator
	// CategoryDebug actions only affect debug displays and logging.
	CategoryDebug
)

// Info describes an action for help screens and routing.
type Info struct {
	Name        string
	Description string
	Category    Category
}

var emulatorInfo = map[Action]Info{
	EmulatorDebugToggle:      {"DebugToggle", "Toggle debug panels", CategoryDebug},
	EmulatorDebugUpdate:      {"DebugUpdate", "Refresh debug panels", CategoryDebug},
	EmulatorSnapshot:         {"Snapshot", "Save a PNG snapshot of the screen", CategoryEmulator},
	EmulatorPauseToggle:      {"PauseToggle", "Pause or resume emulation", CategoryEmulator},
	EmulatorStepFrame:        {"StepFrame", "Run a single frame while paused", CategoryEmulator},
	EmulatorStepInstruction:  {"StepInstruction", "Run a single instruction while paused", CategoryEmulator},
	EmulatorReset:            {"Reset", "Reload the ROM and restart", CategoryEmulator},
	EmulatorTestPatternCycle: {"TestPatternCycle", "Show the next test pattern", CategoryEmulator},
	EmulatorQuit:             {"Quit", "Quit the emulator", CategoryEmulator},
	DebugLogLevelIncrease:    {"LogLevelIncrease", "Show more log output", CategoryDebug},
	DebugLogLevelDecrease:    {"LogLevelDecrease", "Show less log output", CategoryDebug},
}

// GetInfo returns the description of an action.
func GetInfo(act Action) Info {
	if key, ok := act.Key(); ok {
		return Info{
			Name:        fmt.Sprintf("Key%X", key),
			Description: fmt.Sprintf("Keypad key %X", key),
			Category:    CategoryKeypad,
		}
	}
	if info, ok := emulatorInfo[act]; ok {
		return info
	}
	return Info{Name: "Unknown", Description: "Unknown action", Category: CategoryEmulator}
}

func (a Action) String() string {
	return GetInfo(a).Name
}

// KeypadAction returns the action for a keypad key, masked to 0x0-0xF.
func KeypadAction(key uint8) Action {
	return Key0 + Action(key&0x0F)
}

// Key returns the keypad key an action stands for, if it is a keypad action.
func (a Action) Key() (uint8, bool) {
	if a < Key0 || a > KeyF {
		return 0, false
	}
	return uint8(a - Key0), true
}

// All returns every defined action.
func All() []Action {
	all := make([]Action, 0, actionCount)
	for a := Key0; a < actionCount; a++ {
		all = append(all, a)
	}
	return all
}
