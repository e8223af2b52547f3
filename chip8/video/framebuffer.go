package video

import "strings"

const (
	FramebufferWidth  = 64
	FramebufferHeight = 32
)

// Color is a packed RGBA value, red in the most significant byte.
type Color uint32

const (
	OnColor  Color = 0xFFFFFFFF
	OffColor Color = 0x000000FF
)

// Palette maps the two pixel states to colors for renderers.
type Palette struct {
	On  Color
	Off Color
}

// DefaultPalette draws white pixels on black.
var DefaultPalette = Palette{On: OnColor, Off: OffColor}

// FrameBuffer is the 64x32 monochrome display. Each pixel is either on or
// off, sprites are XORed into it.
type FrameBuffer struct {
	pixels  [FramebufferWidth * FramebufferHeight]bool
	palette Palette
	dirty   bool
}

// NewFrameBuffer creates a cleared frame buffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{palette: DefaultPalette, dirty: true}
}

// Clear turns every pixel off.
func (fb *FrameBuffer) Clear() {
	fb.pixels = [FramebufferWidth * FramebufferHeight]bool{}
	fb.dirty = true
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates wrap.
func (fb *FrameBuffer) Pixel(x, y int) bool {
	return fb.pixels[index(x, y)]
}

// SetPixel sets the state of the pixel at (x, y). Coordinates wrap.
func (fb *FrameBuffer) SetPixel(x, y int, on bool) {
	fb.pixels[index(x, y)] = on
	fb.dirty = true
}

// DrawSprite XORs the sprite rows into the buffer starting at (x, y).
// Each row is 8 pixels wide, most significant bit on the left. The start
// position wraps around the screen, and so do pixels that run past the
// right or bottom edge.
// Returns true if any pixel was turned from on to off.
func (fb *FrameBuffer) DrawSprite(x, y byte, sprite []byte) bool {
	collision := false
	startX := int(x) % FramebufferWidth
	startY := int(y) % FramebufferHeight

	for row, data := range sprite {
		for col := 0; col < 8; col++ {
			if data&(0x80>>col) == 0 {
				continue
			}
			i := index(startX+col, startY+row)
			if fb.pixels[i] {
				collision = true
			}
			fb.pixels[i] = !fb.pixels[i]
		}
	}

	fb.dirty = true
	return collision
}

// Dirty reports whether the buffer changed since the last ClearDirty.
func (fb *FrameBuffer) Dirty() bool {
	return fb.dirty
}

// ClearDirty marks the current content as presented.
func (fb *FrameBuffer) ClearDirty() {
	fb.dirty = false
}

// SetPalette changes the colors returned by GetPixel and ToSlice.
func (fb *FrameBuffer) SetPalette(p Palette) {
	fb.palette = p
}

// GetPixel returns the color of the pixel at (x, y).
func (fb *FrameBuffer) GetPixel(x, y int) uint32 {
	if fb.Pixel(x, y) {
		return uint32(fb.palette.On)
	}
	return uint32(fb.palette.Off)
}

// ToSlice returns the buffer as row-major packed colors.
func (fb *FrameBuffer) ToSlice() []uint32 {
	out := make([]uint32, len(fb.pixels))
	for i, on := range fb.pixels {
		if on {
			out[i] = uint32(fb.palette.On)
		} else {
			out[i] = uint32(fb.palette.Off)
		}
	}
	return out
}

// CopyFrom replaces the content of the buffer with another one.
func (fb *FrameBuffer) CopyFrom(other *FrameBuffer) {
	fb.pixels = other.pixels
	fb.dirty = true
}

// String renders the buffer as text, one line per row.
func (fb *FrameBuffer) String() string {
	var sb strings.Builder
	sb.Grow((FramebufferWidth + 1) * FramebufferHeight * 3)
	for y := 0; y < FramebufferHeight; y++ {
		for x := 0; x < FramebufferWidth; x++ {
			if fb.pixels[y*FramebufferWidth+x] {
				sb.WriteRune('█')
			} else {
				sb.WriteRune('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func index(x, y int) int {
	x %= FramebufferWidth
	if x < 0 {
		x += FramebufferWidth
	}
	y %= FramebufferHeight
	if y < 0 {
		y += FramebufferHeight
	}
	return y*FramebufferWidth + x
}
