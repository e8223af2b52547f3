//go:build !oto

package audio

import "errors"

// ErrUnavailable is returned when the binary was built without audio.
var ErrUnavailable = errors.New("audio not available - build with -tags oto to enable")

// Player stub for when oto is not available
type Player struct{}

func NewPlayer(provider Provider) (*Player, error) {
	return nil, ErrUnavailable
}

func (p *Player) Start()       {}
func (p *Player) Close() error { return nil }
