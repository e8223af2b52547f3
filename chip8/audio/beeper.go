package audio

import (
	"sync"
	"sync/atomic"
)

// Beeper generates a square wave while the sound timer is running.
//
// The emulation loop calls Update once per frame, players call GetSamples
// from their own goroutine.
type Beeper struct {
	active atomic.Bool
	muted  atomic.Bool

	mu sync.Mutex
	// phase counts samples into the current period so the wave stays
	// continuous across GetSamples calls.
	phase     int
	period    int
	amplitude int16
	buf       []int16
}

// NewBeeper creates a beeper producing ToneFrequency at SampleRate.
func NewBeeper() *Beeper {
	return NewBeeperWithTone(SampleRate, ToneFrequency, Amplitude)
}

// NewBeeperWithTone creates a beeper for a custom sample rate and pitch.
func NewBeeperWithTone(sampleRate, frequency int, amplitude int16) *Beeper {
	period := 2
	if frequency > 0 && sampleRate/frequency > period {
		period = sampleRate / frequency
	}
	return &Beeper{
		period:    period,
		amplitude: amplitude,
	}
}

// Update samples the sound state of src.
func (b *Beeper) Update(src SoundSource) {
	b.SetActive(src.SoundActive())
}

func (b *Beeper) SetActive(active bool) { b.active.Store(active) }
func (b *Beeper) Active() bool          { return b.active.Load() }
func (b *Beeper) SetMuted(muted bool)   { b.muted.Store(muted) }
func (b *Beeper) Muted() bool           { return b.muted.Load() }

// GetSamples returns count samples. The returned slice is reused by the
// next call.
func (b *Beeper) GetSamples(count int) []int16 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cap(b.buf) < count {
		b.buf = make([]int16, count)
	}
	out := b.buf[:count]

	if !b.active.Load() || b.muted.Load() {
		clear(out)
		// restart the wave on the next beep
		b.phase = 0
		return out
	}

	half := b.period / 2
	for i := range out {
		if b.phase < half {
			out[i] = b.amplitude
		} else {
			out[i] = -b.amplitude
		}
		b.phase = (b.phase + 1) % b.period
	}
	return out
}
