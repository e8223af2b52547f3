package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/memory"
	"github.com/valerio/go-chip8/chip8/video"
)

// Backend implements the Backend interface for automated testing and batch processing
type Backend struct {
	config         backend.BackendConfig
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
	// Logging to stderr is installed by Init unless disabled, tests keep
	// the default logger.
	keepLogger bool
}

// SnapshotConfig holds configuration for frame snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	ROMName   string // ROM name for snapshot filenames
	Text      bool   // Also write a text rendering next to each PNG
}

func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

// KeepLogger stops Init from replacing the default slog logger.
func (h *Backend) KeepLogger() *Backend {
	h.keepLogger = true
	return h
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.config = config

	if config.TestPattern {
		slog.Info("Headless test pattern mode - test patterns verified, exiting")
		return nil
	}

	if !h.keepLogger {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
		slog.SetDefault(slog.New(handler))
	}

	slog.Info("Running headless mode",
		"frames", h.maxFrames,
		"snapshot_interval", h.snapshotConfig.Interval,
		"snapshot_dir", h.snapshotConfig.Directory)

	return nil
}

// Update processes a frame and handles snapshots
func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	if h.config.TestPattern {
		return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}, nil
	}

	h.frameCount++

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		h.saveSnapshot(frame)
	}

	if h.frameCount%60 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames <= 0 || h.frameCount < h.maxFrames {
		return nil, nil
	}

	// final snapshot, unless one was just taken
	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
		h.saveSnapshot(frame)
	}

	if h.snapshotConfig.Enabled {
		slog.Info("Headless execution completed", "frames", h.frameCount, "png_snapshots_saved_to", h.snapshotConfig.Directory)
	} else {
		slog.Info("Headless execution completed", "frames", h.frameCount)
	}

	return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}, nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// FrameCount returns the number of frames processed so far.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters
func CreateSnapshotConfig(interval int, directory, romPath string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "chip8-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0o755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	config.ROMName = memory.TitleFromPath(romPath)

	return config, nil
}

// saveSnapshot saves a PNG snapshot for the current frame
func (h *Backend) saveSnapshot(frame *video.FrameBuffer) {
	baseName := fmt.Sprintf("%s_frame_%d", h.snapshotConfig.ROMName, h.frameCount)

	if _, err := debug.SaveFramePNGToDir(frame, baseName, h.snapshotConfig.Directory); err != nil {
		slog.Error("Failed to save PNG snapshot", "frame", h.frameCount, "error", err)
	}

	if h.snapshotConfig.Text {
		path := filepath.Join(h.snapshotConfig.Directory, baseName+".txt")
		if err := debug.SaveFrameText(frame, path); err != nil {
			slog.Error("Failed to save text snapshot", "frame", h.frameCount, "error", err)
		}
	}
}
