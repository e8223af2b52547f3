package timing

import (
	"log/slog"
	"time"
)

// AdaptiveLimiter sleeps for most of the frame and busy-waits the last
// millisecond, correcting accumulated drift once a second.
type AdaptiveLimiter struct {
	targetFrameTime time.Duration
	nextFrameTime   time.Time
	startTime       time.Time
	frameCounter    int64
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	now := time.Now()
	return &AdaptiveLimiter{
		targetFrameTime: FrameDuration(),
		nextFrameTime:   now,
		startTime:       now,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	sleepTime := a.nextFrameTime.Sub(now)

	switch {
	case sleepTime > 2*time.Millisecond:
		time.Sleep(sleepTime - time.Millisecond)
		a.spinUntilDeadline()
	case sleepTime > 0:
		a.spinUntilDeadline()
	case sleepTime < -5*time.Millisecond:
		// too far behind, don't try to catch up
		a.nextFrameTime = now
	}

	a.nextFrameTime = a.nextFrameTime.Add(a.targetFrameTime)
	a.frameCounter++

	if a.frameCounter%FrameRate != 0 {
		return
	}
	drift := time.Since(a.nextFrameTime)
	if drift.Abs() > 10*time.Millisecond {
		a.nextFrameTime = a.nextFrameTime.Add(drift / 10)
		elapsed := time.Since(a.startTime).Seconds()
		slog.Debug("Frame timing drift correction",
			"drift_ms", drift.Milliseconds(),
			"fps", float64(a.frameCounter)/elapsed)
	}
}

func (a *AdaptiveLimiter) spinUntilDeadline() {
	for time.Now().Before(a.nextFrameTime) {
	}
}

func (a *AdaptiveLimiter) Reset() {
	now := time.Now()
	a.nextFrameTime = now
	a.startTime = now
	a.frameCounter = 0
}
