package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeypad_PressRelease(t *testing.T) {
	k := NewKeypad()

	assert.False(t, k.IsPressed(0x5))

	k.Press(0x5)
	assert.True(t, k.IsPressed(0x5))

	k.Release(0x5)
	assert.False(t, k.IsPressed(0x5))
}

func TestKeypad_IgnoresOutOfRange(t *testing.T) {
	k := NewKeypad()
	k.Press(0x10)
	assert.Equal(t, [KeyCount]bool{}, k.State())
}

func TestKeypad_IsPressedMasksKey(t *testing.T) {
	k := NewKeypad()
	k.Press(0xA)
	assert.True(t, k.IsPressed(0x1A))
}

func TestKeypad_StateAndReset(t *testing.T) {
	k := NewKeypad()
	k.Press(0xC)
	k.Press(0x3)

	state := k.State()
	assert.True(t, state[0x3])
	assert.True(t, state[0xC])
	assert.False(t, state[0x4])

	k.Reset()
	assert.Equal(t, [KeyCount]bool{}, k.State())
}

func TestTimers_Tick(t *testing.T) {
	testCases := []struct {
		desc      string
		delay     uint8
		sound     uint8
		wantDelay uint8
		wantSound uint8
	}{
		{desc: "decrements", delay: 5, sound: 3, wantDelay: 4, wantSound: 2},
		{desc: "floors at zero", delay: 0, sound: 0, wantDelay: 0, wantSound: 0},
		{desc: "independent", delay: 0, sound: 1, wantDelay: 0, wantSound: 0},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			var timers Timers
			timers.SetDelay(tC.delay)
			timers.SetSound(tC.sound)

			timers.Tick()

			assert.Equal(t, tC.wantDelay, timers.Delay())
			assert.Equal(t, tC.wantSound, timers.Sound())
		})
	}
}

func TestTimers_SoundActive(t *testing.T) {
	var timers Timers
	assert.False(t, timers.SoundActive())

	timers.SetSound(2)
	assert.True(t, timers.SoundActive())

	timers.Tick()
	assert.True(t, timers.SoundActive())

	timers.Tick()
	assert.False(t, timers.SoundActive())
}
