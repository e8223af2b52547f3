package render

// Two display rows share one terminal cell, drawn with half blocks.
const (
	GlyphEmpty  = ' '
	GlyphFull   = '█'
	GlyphTop    = '▀'
	GlyphBottom = '▄'
)

// HalfBlock returns the glyph for a cell whose upper pixel is top and whose
// lower pixel is bottom.
func HalfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return GlyphFull
	case top:
		return GlyphTop
	case bottom:
		return GlyphBottom
	default:
		return GlyphEmpty
	}
}
