package video

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func countOn(fb *FrameBuffer) int {
	n := 0
	for y := 0; y < FramebufferHeight; y++ {
		for x := 0; x < FramebufferWidth; x++ {
			if fb.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestDrawSprite_SetsPixels(t *testing.T) {
	fb := NewFrameBuffer()

	collision := fb.DrawSprite(0, 0, []byte{0b10100000})

	assert.False(t, collision)
	assert.True(t, fb.Pixel(0, 0))
	assert.False(t, fb.Pixel(1, 0))
	assert.True(t, fb.Pixel(2, 0))
	assert.Equal(t, 2, countOn(fb))
}

func TestDrawSprite_SecondDrawClearsAndCollides(t *testing.T) {
	fb := NewFrameBuffer()

	fb.DrawSprite(0, 0, []byte{0b10100000})
	collision := fb.DrawSprite(0, 0, []byte{0b10100000})

	assert.True(t, collision)
	assert.False(t, fb.Pixel(0, 0))
	assert.False(t, fb.Pixel(2, 0))
	assert.Equal(t, 0, countOn(fb))
}

func TestDrawSprite_XORIsSelfInverse(t *testing.T) {
	fb := NewFrameBuffer()
	// some existing content that partially overlaps the sprite
	fb.SetPixel(11, 6, true)
	fb.SetPixel(40, 20, true)
	before := fb.ToSlice()

	sprite := []byte{0xF0, 0x90, 0xF0, 0x90, 0x90}

	first := fb.DrawSprite(10, 5, sprite)
	second := fb.DrawSprite(10, 5, sprite)

	assert.True(t, first, "sprite overlaps the pixel at (11, 6)")
	assert.True(t, second, "second draw turns off the pixels the first one turned on")
	assert.Equal(t, before, fb.ToSlice())
}

func TestDrawSprite_NoCollisionWhenTurningOnOnly(t *testing.T) {
	fb := NewFrameBuffer()
	fb.DrawSprite(0, 0, []byte{0b10000000})

	collision := fb.DrawSprite(1, 0, []byte{0b10000000})

	assert.False(t, collision)
	assert.True(t, fb.Pixel(0, 0))
	assert.True(t, fb.Pixel(1, 0))
}

func TestDrawSprite_Wraps(t *testing.T) {
	testCases := []struct {
		desc   string
		x, y   byte
		sprite []byte
		want   [][2]int
	}{
		{
			desc:   "start position is taken modulo screen size",
			x:      64 + 3,
			y:      32 + 1,
			sprite: []byte{0x80},
			want:   [][2]int{{3, 1}},
		},
		{
			desc:   "pixels past the right edge wrap to the left",
			x:      62,
			y:      0,
			sprite: []byte{0xF0},
			want:   [][2]int{{62, 0}, {63, 0}, {0, 0}, {1, 0}},
		},
		{
			desc:   "rows past the bottom edge wrap to the top",
			x:      0,
			y:      31,
			sprite: []byte{0x80, 0x80},
			want:   [][2]int{{0, 31}, {0, 0}},
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			fb := NewFrameBuffer()
			fb.DrawSprite(tC.x, tC.y, tC.sprite)

			for _, p := range tC.want {
				assert.True(t, fb.Pixel(p[0], p[1]), "pixel (%d, %d)", p[0], p[1])
			}
			assert.Equal(t, len(tC.want), countOn(fb))
		})
	}
}

func TestClear(t *testing.T) {
	fb := NewFrameBuffer()
	fb.DrawSprite(5, 5, []byte{0xFF, 0xFF})
	fb.ClearDirty()

	fb.Clear()

	assert.Equal(t, 0, countOn(fb))
	assert.True(t, fb.Dirty())
}

func TestDirty(t *testing.T) {
	fb := NewFrameBuffer()
	assert.True(t, fb.Dirty(), "a fresh buffer has never been presented")

	fb.ClearDirty()
	assert.False(t, fb.Dirty())

	fb.DrawSprite(0, 0, []byte{0x80})
	assert.True(t, fb.Dirty())
}

func TestToSlice_UsesPalette(t *testing.T) {
	fb := NewFrameBuffer()
	fb.SetPixel(1, 0, true)

	pixels := fb.ToSlice()
	assert.Len(t, pixels, FramebufferWidth*FramebufferHeight)
	assert.Equal(t, uint32(OffColor), pixels[0])
	assert.Equal(t, uint32(OnColor), pixels[1])

	fb.SetPalette(Palette{On: 0x00FF00FF, Off: 0x000000FF})
	assert.Equal(t, uint32(0x00FF00FF), fb.GetPixel(1, 0))
}

func TestString(t *testing.T) {
	fb := NewFrameBuffer()
	fb.SetPixel(0, 0, true)

	lines := strings.Split(strings.TrimSuffix(fb.String(), "\n"), "\n")
	assert.Len(t, lines, FramebufferHeight)
	assert.True(t, strings.HasPrefix(lines[0], "█."))
	assert.Equal(t, strings.Repeat(".", FramebufferWidth), lines[1])
}
