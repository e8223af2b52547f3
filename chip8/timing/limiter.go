package timing

import "time"

// Limiter controls frame rate timing for emulation.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for headless mode).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// Frames are locked to the 60 Hz timer rate, instructions are spread
// evenly across them.
const (
	FrameRate          = 60
	DefaultClockSpeed  = 700
	MinInstructionRate = FrameRate
)

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return time.Second / FrameRate
}

// InstructionsPerFrame returns how many instructions to run each frame to
// reach the given instruction rate, rounding down. Rates below one per
// frame are raised to one.
func InstructionsPerFrame(hz int) int {
	if hz < MinInstructionRate {
		return 1
	}
	return hz / FrameRate
}
