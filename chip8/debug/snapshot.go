package debug

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
)

// TakeSnapshot handles the snapshot hotkey for backends
func TakeSnapshot(frame *video.FrameBuffer, baseName string) {
	if frame == nil {
		slog.Warn("No frame data available for snapshot")
		return
	}
	if baseName == "" {
		baseName = "chip8_snapshot"
	}

	if _, err := SaveFramePNGToDir(frame, baseName, ""); err != nil {
		slog.Error("Failed to save snapshot", "error", err)
	}
}

// FrameImage converts a framebuffer to an image scaled by an integer factor.
func FrameImage(frame *video.FrameBuffer, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	w, h := video.FramebufferWidth*scale, video.FramebufferHeight*scale
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := pixelToRGBA(frame.GetPixel(x/scale, y/scale))
			idx := img.PixOffset(x, y)
			img.Pix[idx] = r
			img.Pix[idx+1] = g
			img.Pix[idx+2] = b
			img.Pix[idx+3] = a
		}
	}
	return img
}

// SaveFramePNGToDir saves a framebuffer as PNG with timestamp to a specific
// directory, the current one if empty. Returns the path written.
func SaveFramePNGToDir(frame *video.FrameBuffer, baseName, directory string) (string, error) {
	img := FrameImage(frame, display.SnapshotScale)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.png", baseName, timestamp)

	outputDir, err := resolveDir(directory)
	if err != nil {
		return "", err
	}

	filePath := filepath.Join(outputDir, filename)
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy()), "format", "PNG")
	return filePath, nil
}

// SaveFrameText writes the textual rendering of a framebuffer to path.
func SaveFrameText(frame *video.FrameBuffer, path string) error {
	if err := os.WriteFile(path, []byte(frame.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write text snapshot %s: %w", path, err)
	}
	slog.Info("Snapshot saved", "path", path, "format", "text")
	return nil
}

func resolveDir(directory string) (string, error) {
	if directory != "" {
		return directory, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

func pixelToRGBA(pixel uint32) (r, g, b, a uint8) {
	return uint8((pixel >> display.RGBARShift) & display.RGBAColorMask),
		uint8((pixel >> display.RGBAGShift) & display.RGBAColorMask),
		uint8((pixel >> display.RGBABShift) & display.RGBAColorMask),
		uint8(pixel & display.RGBAColorMask)
}
