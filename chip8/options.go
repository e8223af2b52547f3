package chip8

import (
	"math/rand"

	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

type config struct {
	cpuOpts    []cpu.Option
	clockSpeed int
	limiter    timing.Limiter
	palette    video.Palette
}

// Option configures a Machine.
type Option func(*config)

func defaultConfig() config {
	return config{
		clockSpeed: timing.DefaultClockSpeed,
		limiter:    timing.NewNoOpLimiter(),
		palette:    video.DefaultPalette,
	}
}

// WithQuirks selects the instruction behavior variant.
func WithQuirks(q cpu.Quirks) Option {
	return func(c *config) { c.cpuOpts = append(c.cpuOpts, cpu.WithQuirks(q)) }
}

// WithRandom sets the source used by CXNN. Tests pass a seeded source.
func WithRandom(r *rand.Rand) Option {
	return func(c *config) { c.cpuOpts = append(c.cpuOpts, cpu.WithRandom(r)) }
}

// WithClockSpeed sets how many instructions run per second.
func WithClockSpeed(hz int) Option {
	return func(c *config) { c.clockSpeed = hz }
}

// WithFrameLimiter paces RunUntilFrame. The default does not wait.
func WithFrameLimiter(l timing.Limiter) Option {
	return func(c *config) {
		if l != nil {
			c.limiter = l
		}
	}
}

// WithPalette sets the colors of the framebuffer.
func WithPalette(p video.Palette) Option {
	return func(c *config) { c.palette = p }
}
