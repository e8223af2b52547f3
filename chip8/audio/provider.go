package audio

// Provider is a source of mono audio samples pulled by a player.
type Provider interface {
	// GetSamples retrieves audio samples for playback
	GetSamples(count int) []int16

	// Audio debugging controls

	SetMuted(muted bool)
	Muted() bool
}

// SoundSource reports whether the machine wants the tone to play, which
// on CHIP-8 is whenever the sound timer is non-zero.
type SoundSource interface {
	SoundActive() bool
}

var _ Provider = (*Beeper)(nil)
