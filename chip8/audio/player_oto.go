//go:build oto

package audio

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player streams a Provider to the default audio device.
type Player struct {
	ctx      *oto.Context
	player   *oto.Player
	provider Provider

	mu      sync.Mutex
	started bool
}

// NewPlayer opens the audio device. It blocks until the device is ready.
func NewPlayer(provider Provider) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	p := &Player{ctx: ctx, provider: provider}
	p.player = ctx.NewPlayer(p)
	return p, nil
}

// Read implements io.Reader for the oto player.
func (p *Player) Read(buf []byte) (int, error) {
	n := len(buf) / BytesPerSample
	for i, s := range p.provider.GetSamples(n) {
		binary.LittleEndian.PutUint16(buf[i*BytesPerSample:], uint16(s))
	}
	return n * BytesPerSample, nil
}

func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.player.Play()
		p.started = true
		slog.Info("Audio started", "sample_rate", SampleRate)
	}
}

func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.started = false
	return p.player.Close()
}
