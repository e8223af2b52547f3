package chip8

import (
	"log/slog"

	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/render"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

// TestPatternEmulator displays test patterns without actual emulation
type TestPatternEmulator struct {
	frameBuffer      *video.FrameBuffer
	patternType      int
	animationCounter int
	limiter          timing.Limiter
}

func NewTestPatternEmulator() *TestPatternEmulator {
	e := &TestPatternEmulator{
		frameBuffer: video.NewFrameBuffer(),
		limiter:     timing.NewNoOpLimiter(),
	}
	render.DrawTestPattern(e.frameBuffer, e.patternType, 0)
	return e
}

func (e *TestPatternEmulator) RunUntilFrame() error {
	e.animationCounter++
	if e.animationCounter%display.TestPatternAnimationFrames == 0 {
		render.DrawTestPattern(e.frameBuffer, e.patternType, e.animationCounter/display.TestPatternAnimationFrames)
	}
	e.limiter.WaitForNextFrame()
	return nil
}

func (e *TestPatternEmulator) GetCurrentFrame() *video.FrameBuffer {
	return e.frameBuffer
}

func (e *TestPatternEmulator) HandleAction(act action.Action, pressed bool) {
	if act == action.EmulatorTestPatternCycle && pressed {
		e.CycleTestPattern()
	}
}

func (e *TestPatternEmulator) ExtractDebugData() *debug.Data {
	return &debug.Data{
		DebuggerState: debug.DebuggerRunning,
		Title:         "Test Pattern: " + render.TestPatternNames[e.patternType],
	}
}

func (e *TestPatternEmulator) SoundActive() bool {
	return false
}

func (e *TestPatternEmulator) CycleTestPattern() {
	e.patternType = (e.patternType + 1) % display.TestPatternCount
	render.DrawTestPattern(e.frameBuffer, e.patternType, 0)
	slog.Debug("Switched to test pattern", "pattern", render.TestPatternNames[e.patternType])
}

func (e *TestPatternEmulator) PatternType() int {
	return e.patternType
}

func (e *TestPatternEmulator) SetFrameLimiter(limiter timing.Limiter) {
	if limiter == nil {
		e.limiter = timing.NewNoOpLimiter()
	} else {
		e.limiter = limiter
	}
}

var _ Emulator = (*TestPatternEmulator)(nil)
