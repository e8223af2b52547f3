package audio

// Output format shared by the beeper and the players.
const (
	// SampleRate is the output sample rate in Hz.
	SampleRate = 44100
	// ChannelCount is mono, the machine has a single tone.
	ChannelCount = 1
	// BytesPerSample is the size of one signed 16 bit sample.
	BytesPerSample = 2
)

// Tone constants. The original hardware only had a fixed buzzer, the pitch
// is not specified and 440 Hz is a common choice.
const (
	// ToneFrequency is the pitch of the beep in Hz.
	ToneFrequency = 440
	// Amplitude is the peak sample value of the square wave.
	Amplitude = 3000
)
