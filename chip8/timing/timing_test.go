package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInstructionsPerFrame(t *testing.T) {
	testCases := []struct {
		hz   int
		want int
	}{
		{hz: 700, want: 11},
		{hz: 1000, want: 16},
		{hz: 540, want: 9},
		{hz: 60, want: 1},
		{hz: 1, want: 1},
		{hz: 0, want: 1},
	}
	for _, tC := range testCases {
		assert.Equal(t, tC.want, InstructionsPerFrame(tC.hz), "hz %d", tC.hz)
	}
}

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, time.Second/60, FrameDuration())
}

func TestNoOpLimiter(t *testing.T) {
	l := NewNoOpLimiter()
	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.WaitForNextFrame()
	}
	l.Reset()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestAdaptiveLimiter_PacesFrames(t *testing.T) {
	l := NewAdaptiveLimiter()
	start := time.Now()

	// the first frame is due immediately
	for i := 0; i < 4; i++ {
		l.WaitForNextFrame()
	}

	assert.GreaterOrEqual(t, time.Since(start), 3*FrameDuration())
}
