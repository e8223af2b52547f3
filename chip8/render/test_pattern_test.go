package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-chip8/chip8/video"
)

func TestDrawTestPattern_Checkerboard(t *testing.T) {
	fb := video.NewFrameBuffer()
	DrawTestPattern(fb, PatternCheckerboard, 0)

	assert.True(t, fb.Pixel(0, 0))
	assert.False(t, fb.Pixel(4, 0))
	assert.False(t, fb.Pixel(0, 4))
	assert.True(t, fb.Pixel(4, 4))
}

func TestDrawTestPattern_StripesAnimate(t *testing.T) {
	fb := video.NewFrameBuffer()
	DrawTestPattern(fb, PatternStripes, 0)
	first := fb.ToSlice()

	DrawTestPattern(fb, PatternStripes, 1)

	assert.NotEqual(t, first, fb.ToSlice())
}

func TestDrawTestPattern_WrapsPatternNumber(t *testing.T) {
	a := video.NewFrameBuffer()
	b := video.NewFrameBuffer()
	DrawTestPattern(a, PatternCheckerboard, 0)
	DrawTestPattern(b, len(TestPatternNames), 0)

	assert.Equal(t, a.ToSlice(), b.ToSlice())
}
