package render

import (
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/video"
)

// Test patterns exercise the rendering pipeline of a backend without
// running a ROM.
const (
	PatternCheckerboard = iota
	PatternStripes
	PatternDiagonal
)

// TestPatternNames are indexed by pattern number.
var TestPatternNames = [display.TestPatternCount]string{"Checkerboard", "Stripes", "Diagonal"}

// DrawTestPattern fills the framebuffer with the given pattern. frame
// advances the animation of the stripes and diagonal patterns.
func DrawTestPattern(fb *video.FrameBuffer, patternType, frame int) {
	patternType %= display.TestPatternCount
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			fb.SetPixel(x, y, patternPixel(patternType, frame, x, y))
		}
	}
}

func patternPixel(patternType, frame, x, y int) bool {
	switch patternType {
	case PatternStripes:
		return ((x+frame*display.TestPatternStripeSpeed)/display.TestPatternStripeWidth)%2 == 0
	case PatternDiagonal:
		return ((x+y+frame*display.TestPatternDiagonalSpeed)/display.TestPatternTileSize)%2 == 0
	default:
		return ((x/display.TestPatternTileSize)+(y/display.TestPatternTileSize))%2 == 0
	}
}
