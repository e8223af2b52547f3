package memory

// TimerFrequency is the rate, in Hz, at which the delay and sound timers
// count down. It is independent of the instruction rate.
const TimerFrequency = 60

// Timers holds the delay and sound countdown registers.
type Timers struct {
	delay uint8
	sound uint8
}

// Tick decrements both timers by one, stopping at zero.
// The host must call it at TimerFrequency.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

func (t *Timers) Delay() uint8         { return t.delay }
func (t *Timers) Sound() uint8         { return t.sound }
func (t *Timers) SetDelay(value uint8) { t.delay = value }
func (t *Timers) SetSound(value uint8) { t.sound = value }

// SoundActive reports whether the buzzer should be sounding.
func (t *Timers) SoundActive() bool {
	return t.sound != 0
}

// Reset zeroes both timers.
func (t *Timers) Reset() {
	t.delay = 0
	t.sound = 0
}
