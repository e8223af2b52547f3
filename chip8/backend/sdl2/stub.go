//go:build !sdl2

package sdl2

import (
	"errors"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/video"
)

// ErrUnavailable is returned when the binary was built without SDL2.
var ErrUnavailable = errors.New("SDL2 backend not available - build with -tags sdl2 to enable")

// Backend stub for when SDL2 is not available
type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (s *Backend) Init(config backend.BackendConfig) error {
	return ErrUnavailable
}

func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	return nil, ErrUnavailable
}

func (s *Backend) Cleanup() error {
	return nil
}

func (s *Backend) HandleAction(act action.Action) {}

func (s *Backend) ToggleDebugWindow() {}
