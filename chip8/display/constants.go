package display

// RGBA pixel format constants
const (
	// RGBABytesPerPixel is the number of bytes per pixel in RGBA format
	RGBABytesPerPixel = 4
	// RGBARShift is the bit shift for the red component in RGBA format
	RGBARShift = 24
	// RGBAGShift is the bit shift for the green component in RGBA format
	RGBAGShift = 16
	// RGBABShift is the bit shift for the blue component in RGBA format
	RGBABShift = 8
	// RGBAColorMask is the mask for extracting color components
	RGBAColorMask = 0xFF
)

// Backend scaling and window constants
const (
	// DefaultPixelScale is the default scaling factor for CHIP-8 pixels
	DefaultPixelScale = 10
	// DefaultWindowWidth is the default window width (64 * scale)
	DefaultWindowWidth = 64 * DefaultPixelScale
	// DefaultWindowHeight is the default window height (32 * scale)
	DefaultWindowHeight = 32 * DefaultPixelScale
	// SnapshotScale is the scaling factor of PNG snapshots
	SnapshotScale = 8
)

// Test pattern constants
const (
	// TestPatternCount is the number of available test patterns
	TestPatternCount = 3
	// TestPatternTileSize is the size of tiles for checkerboard and diagonal patterns
	TestPatternTileSize = 4
	// TestPatternStripeWidth is the width of stripes in the stripe pattern
	TestPatternStripeWidth = 2
	// TestPatternAnimationFrames is the number of frames between test pattern animations
	TestPatternAnimationFrames = 30
	// TestPatternStripeSpeed is the animation speed for stripe patterns
	TestPatternStripeSpeed = 1
	// TestPatternDiagonalSpeed is the animation speed for diagonal patterns
	TestPatternDiagonalSpeed = 2
)

// FullAlpha is the alpha value for fully opaque pixels
const FullAlpha = 255
