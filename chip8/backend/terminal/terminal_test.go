package terminal

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/video"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBackend(t *testing.T, config backend.BackendConfig) (*Backend, tcell.SimulationScreen, *fakeClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	clock := &fakeClock{t: time.Unix(1000, 0)}

	b := New().WithScreen(screen)
	b.now = clock.now
	require.NoError(t, b.Init(config))
	screen.SetSize(120, 40)
	t.Cleanup(func() { _ = b.Cleanup() })
	return b, screen, clock
}

func keyEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func eventsFor(events []backend.InputEvent, act action.Action) []event.Type {
	var types []event.Type
	for _, e := range events {
		if e.Action == act {
			types = append(types, e.Type)
		}
	}
	return types
}

func TestKeypadPressHoldRelease(t *testing.T) {
	b, _, clock := newTestBackend(t, backend.BackendConfig{})
	frame := video.NewFrameBuffer()

	// 'w' is keypad 5 on the QWERTY layout
	b.processKeyEvent(keyEvent('w'), clock.now())
	events, err := b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []event.Type{event.Press}, eventsFor(events, action.Key5))

	clock.advance(50 * time.Millisecond)
	b.processKeyEvent(keyEvent('w'), clock.now())
	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []event.Type{event.Hold}, eventsFor(events, action.Key5))

	clock.advance(keyTimeout)
	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Equal(t, []event.Type{event.Release}, eventsFor(events, action.Key5))

	events, err = b.Update(frame)
	require.NoError(t, err)
	assert.Empty(t, eventsFor(events, action.Key5))
}

func TestEmulatorKeysAreQueued(t *testing.T) {
	b, _, clock := newTestBackend(t, backend.BackendConfig{})

	b.processKeyEvent(keyEvent(' '), clock.now())
	b.processKeyEvent(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), clock.now())

	events, err := b.Update(video.NewFrameBuffer())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, backend.InputEvent{Action: action.EmulatorPauseToggle, Type: event.Press}, events[0])
	assert.Equal(t, backend.InputEvent{Action: action.EmulatorReset, Type: event.Press}, events[1])
}

func TestUppercaseRunesMapLikeLowercase(t *testing.T) {
	assert.Equal(t, runeMapping['q'], runeMapping['Q'])
	assert.Equal(t, action.KeyF, runeMapping['V'])
}

func TestQuitStopsRendering(t *testing.T) {
	b, _, clock := newTestBackend(t, backend.BackendConfig{})

	b.processKeyEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), clock.now())
	events, err := b.Update(video.NewFrameBuffer())
	require.NoError(t, err)
	assert.Equal(t, []event.Type{event.Press}, eventsFor(events, action.EmulatorQuit))
	assert.False(t, b.running)
}

func TestRenderHalfBlocks(t *testing.T) {
	b, screen, _ := newTestBackend(t, backend.BackendConfig{})

	frame := video.NewFrameBuffer()
	frame.SetPixel(0, 0, true)
	frame.SetPixel(0, 1, true)
	frame.SetPixel(1, 0, true)
	frame.SetPixel(2, 1, true)

	_, err := b.Update(frame)
	require.NoError(t, err)

	cells, w, _ := screen.GetContents()
	cell := func(x, y int) rune {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			return ' '
		}
		return runes[0]
	}

	// display rows 0 and 1 share terminal row 1
	assert.Equal(t, '█', cell(0, 1))
	assert.Equal(t, '▀', cell(1, 1))
	assert.Equal(t, '▄', cell(2, 1))
	assert.Equal(t, ' ', cell(3, 1))
}

type stubProvider struct{ data *debug.Data }

func (s stubProvider) ExtractDebugData() *debug.Data { return s.data }

func TestRegisterLines(t *testing.T) {
	data := &debug.Data{
		CPU: &debug.CPUState{
			I:     0x2EA,
			PC:    0x204,
			SP:    2,
			Stack: []uint16{0x202, 0x210},
			State: "running",
		},
		DebuggerState: debug.DebuggerPaused,
	}
	data.CPU.V[0xA] = 0x3C
	data.Keys[0x1] = true
	data.Keys[0xF] = true

	lines := registerLines(data)

	assert.Equal(t, "Status: PAUSED  CPU: running", lines[0])
	assert.Equal(t, "V8:00 V9:00 VA:3C VB:00", lines[3])
	assert.Contains(t, lines, "I: 0x2EA  PC: 0x204  SP: 2")
	assert.Contains(t, lines, "Stack: 202 210")
	assert.Contains(t, lines, "Keys: .1.............F")

	data.Err = errors.New("stack overflow")
	lines = registerLines(data)
	assert.Equal(t, "Error: stack overflow", lines[len(lines)-1])
}

func TestDebugPanelRenders(t *testing.T) {
	data := &debug.Data{
		CPU:    &debug.CPUState{PC: 0x200},
		Memory: &debug.MemorySnapshot{StartAddr: 0x200, Bytes: []byte{0x60, 0x05, 0x00, 0xE0}},
	}
	b, screen, _ := newTestBackend(t, backend.BackendConfig{
		ShowDebug:     true,
		DebugProvider: stubProvider{data: data},
	})

	_, err := b.Update(video.NewFrameBuffer())
	require.NoError(t, err)

	cells, w, h := screen.GetContents()
	var text []rune
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if runes := cells[y*w+x].Runes; len(runes) > 0 {
				text = append(text, runes[0])
			}
		}
	}
	assert.Contains(t, string(text), "LD V0, #05")
	assert.Contains(t, string(text), "CLS")
}

func TestHandleAction(t *testing.T) {
	b, _, _ := newTestBackend(t, backend.BackendConfig{})

	b.HandleAction(action.EmulatorDebugToggle)
	assert.True(t, b.config.ShowDebug)

	b.HandleAction(action.DebugLogLevelIncrease)
	assert.Equal(t, "DEBUG", b.logLevel.String())
	b.HandleAction(action.DebugLogLevelDecrease)
	b.HandleAction(action.DebugLogLevelDecrease)
	assert.Equal(t, "WARN", b.logLevel.String())
}

func TestTestPatternCycle(t *testing.T) {
	b, _, _ := newTestBackend(t, backend.BackendConfig{TestPattern: true})

	assert.True(t, b.testPatternFrame.Pixel(0, 0) || b.testPatternFrame.Pixel(4, 0))
	b.HandleAction(action.EmulatorTestPatternCycle)
	assert.Equal(t, 1, b.testPatternType)
	assert.Equal(t, "test_pattern_stripes", b.snapshotName())
}

func TestTerminalImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*Backend)(nil)
	var _ backend.ActionHandler = (*Backend)(nil)
}

func TestCleanupRestoresLogger(t *testing.T) {
	prev := slog.Default()

	b := New().WithScreen(tcell.NewSimulationScreen("UTF-8"))
	require.NoError(t, b.Init(backend.BackendConfig{}))
	assert.NotSame(t, prev, slog.Default())

	require.NoError(t, b.Cleanup())
	assert.Same(t, prev, slog.Default())
}
