package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli"
	"github.com/valerio/go-chip8/chip8"
	"github.com/valerio/go-chip8/chip8/audio"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/headless"
	"github.com/valerio/go-chip8/chip8/backend/sdl2"
	"github.com/valerio/go-chip8/chip8/backend/terminal"
	"github.com/valerio/go-chip8/chip8/cpu"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/timing"
	"github.com/valerio/go-chip8/chip8/video"
)

func main() {
	app := cli.NewApp()
	app.Name = "chip8"
	app.Description = "A CHIP-8 interpreter"
	app.Usage = "chip8 [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: terminal or sdl2",
			Value: "terminal",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "hz",
			Usage: "Instructions executed per second",
			Value: timing.DefaultClockSpeed,
		},
		cli.StringFlag{
			Name:  "quirks",
			Usage: "Instruction behaviour: modern or vip",
			Value: "modern",
		},
		cli.StringFlag{
			Name:  "pacing",
			Usage: "Frame pacing: adaptive (precise) or ticker (lower CPU use)",
			Value: "adaptive",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scale factor for the sdl2 backend",
		},
		cli.StringFlag{
			Name:  "fg",
			Usage: "Color of lit pixels as RRGGBB",
			Value: "FFFFFF",
		},
		cli.StringFlag{
			Name:  "bg",
			Usage: "Color of unlit pixels as RRGGBB",
			Value: "000000",
		},
		cli.BoolFlag{
			Name:  "mute",
			Usage: "Disable the sound timer tone",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Show debug panels",
		},
		cli.BoolFlag{
			Name:  "test-pattern",
			Usage: "Display a test pattern instead of emulation (for debugging display)",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

// frameLimited is implemented by emulators that can be paced to real time.
type frameLimited interface {
	chip8.Emulator
	SetFrameLimiter(limiter timing.Limiter)
}

func runEmulator(c *cli.Context) error {
	palette, err := parsePalette(c.String("fg"), c.String("bg"))
	if err != nil {
		return err
	}

	var emu frameLimited
	title := "Test Pattern"
	romPath := ""

	if c.Bool("test-pattern") {
		slog.Info("Running in test pattern mode")
		emu = chip8.NewTestPatternEmulator()
	} else {
		romPath = c.String("rom")
		if romPath == "" {
			if c.NArg() > 0 {
				romPath = c.Args().Get(0)
			} else {
				cli.ShowAppHelp(c)
				return errors.New("no ROM path provided")
			}
		}

		quirks, err := parseQuirks(c.String("quirks"))
		if err != nil {
			return err
		}

		m, err := chip8.NewWithFile(romPath,
			chip8.WithQuirks(quirks),
			chip8.WithClockSpeed(c.Int("hz")),
			chip8.WithPalette(palette),
		)
		if err != nil {
			return err
		}
		emu = m
		title = m.Title()
	}

	b, err := createBackend(c, romPath)
	if err != nil {
		return err
	}

	config := backend.BackendConfig{
		Title:         title,
		Scale:         c.Int("scale"),
		ShowDebug:     c.Bool("debug"),
		TestPattern:   c.Bool("test-pattern"),
		Palette:       palette,
		DebugProvider: emu,
	}
	if err := b.Init(config); err != nil {
		return err
	}
	defer b.Cleanup()

	runCfg := chip8.RunConfig{Input: input.NewHandler()}
	if !c.Bool("headless") {
		switch c.String("pacing") {
		case "ticker":
			ticker := timing.NewTickerLimiter()
			defer ticker.Stop()
			emu.SetFrameLimiter(ticker)
		default:
			emu.SetFrameLimiter(timing.NewAdaptiveLimiter())
		}

		if !c.Bool("mute") {
			beeper := audio.NewBeeper()
			player, err := audio.NewPlayer(beeper)
			if err != nil {
				slog.Warn("Audio disabled", "error", err)
			} else {
				player.Start()
				defer player.Close()
				runCfg.Beeper = beeper
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return chip8.Run(ctx, emu, b, runCfg)
}

func createBackend(c *cli.Context, romPath string) (backend.Backend, error) {
	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 && !c.Bool("test-pattern") {
			return nil, errors.New("headless mode requires --frames option with a positive value")
		}

		var snapshotConfig headless.SnapshotConfig
		if interval := c.Int("snapshot-interval"); interval > 0 {
			cfg, err := headless.CreateSnapshotConfig(interval, c.String("snapshot-dir"), romPath)
			if err != nil {
				return nil, err
			}
			snapshotConfig = cfg
		}

		return headless.New(frames, snapshotConfig), nil
	}

	switch name := strings.ToLower(c.String("backend")); name {
	case "terminal":
		return terminal.New(), nil
	case "sdl2":
		return sdl2.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q, expected terminal or sdl2", name)
	}
}

func parseQuirks(name string) (cpu.Quirks, error) {
	switch strings.ToLower(name) {
	case "modern", "":
		return cpu.ModernQuirks(), nil
	case "vip", "cosmac":
		return cpu.VIPQuirks(), nil
	}
	return cpu.Quirks{}, fmt.Errorf("unknown quirks %q, expected modern or vip", name)
}

func parsePalette(fg, bg string) (video.Palette, error) {
	on, err := parseColor(fg)
	if err != nil {
		return video.Palette{}, fmt.Errorf("invalid --fg: %w", err)
	}
	off, err := parseColor(bg)
	if err != nil {
		return video.Palette{}, fmt.Errorf("invalid --bg: %w", err)
	}
	return video.Palette{On: on, Off: off}, nil
}

// parseColor reads an RRGGBB hex string, with or without a leading '#',
// into an opaque Color.
func parseColor(s string) (video.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("%q is not an RRGGBB color", s)
	}
	rgb, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not an RRGGBB color", s)
	}
	return video.Color(rgb<<8 | 0xFF), nil
}
