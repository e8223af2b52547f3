package timing

import "time"

// TickerLimiter uses time.Ticker for simple, consistent frame timing.
// Less accurate than AdaptiveLimiter but simpler.
type TickerLimiter struct {
	ticker *time.Ticker
}

func NewTickerLimiter() *TickerLimiter {
	return &TickerLimiter{ticker: time.NewTicker(FrameDuration())}
}

func (t *TickerLimiter) WaitForNextFrame() {
	<-t.ticker.C
}

func (t *TickerLimiter) Reset() {
	t.ticker.Reset(FrameDuration())
}

func (t *TickerLimiter) Stop() {
	t.ticker.Stop()
}
