package chip8

import (
	"context"
	"log/slog"

	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
)

// RunConfig holds the optional collaborators of Run.
type RunConfig struct {
	// Input debounces emulator control presses. Nil disables debouncing.
	Input *input.Handler
	// Beeper follows the sound timer once per frame when set.
	Beeper *audio.Beeper
}

// Run drives the emulator one frame at a time, presenting each frame on the
// backend and feeding the returned input back. It stops on a quit action,
// on context cancellation or on the first emulation or backend error. A
// halting error is presented once before being returned so the last frame
// stays visible.
func Run(ctx context.Context, emu Emulator, b backend.Backend, cfg RunConfig) error {
	handler, _ := b.(backend.ActionHandler)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Run cancelled")
			return nil
		default:
		}

		runErr := emu.RunUntilFrame()
		if cfg.Beeper != nil {
			cfg.Beeper.Update(emu)
		}

		events, err := b.Update(emu.GetCurrentFrame())
		if err != nil {
			return err
		}
		if runErr != nil {
			return runErr
		}

		for _, evt := range events {
			if cfg.Input != nil && !cfg.Input.ProcessEvent(evt) {
				continue
			}
			if evt.Action == action.EmulatorQuit {
				if evt.Type == event.Press {
					slog.Info("Quit requested")
					return nil
				}
				continue
			}
			if evt.Type == event.Hold && action.GetInfo(evt.Action).Category != action.CategoryKeypad {
				continue
			}
			if handler != nil && evt.Type == event.Press {
				handler.HandleAction(evt.Action)
			}
			emu.HandleAction(evt.Action, evt.Type != event.Release)
		}
	}
}
