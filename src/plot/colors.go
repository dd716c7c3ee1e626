package plot

import "github.com/wcharczuk/go-chart/v2/drawing"

// palette holds the fixed curve colors in assignment order: the classic
// b, g, r, c, m, y sequence plus orange and purple. Pure white and black
// stay reserved for figure backgrounds.
var palette = []drawing.Color{
	{R: 0x00, G: 0x00, B: 0xff, A: 0xff}, // blue
	{R: 0x00, G: 0x80, B: 0x00, A: 0xff}, // green
	{R: 0xff, G: 0x00, B: 0x00, A: 0xff}, // red
	{R: 0x00, G: 0xbf, B: 0xbf, A: 0xff}, // cyan
	{R: 0xbf, G: 0x00, B: 0xbf, A: 0xff}, // magenta
	{R: 0xbf, G: 0xbf, B: 0x00, A: 0xff}, // yellow
	{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}, // orange
	{R: 0x80, G: 0x00, B: 0x80, A: 0xff}, // purple
}

// Cycle hands out palette colors in positional order, wrapping at the
// palette length. Each render invocation owns its own Cycle, so repeated
// runs over the same ordered state sequence reproduce identical colors.
type Cycle struct {
	pos int
}

// Next returns the color at the current cycle position and advances,
// resetting to the first entry after the last.
func (c *Cycle) Next() drawing.Color {
	col := palette[c.pos]
	c.pos++
	if c.pos == len(palette) {
		c.pos = 0
	}
	return col
}

// PaletteColor returns the palette entry for a curve position, wrapping
// modulo the palette length.
func PaletteColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// PaletteSize reports the number of distinct curve colors.
func PaletteSize() int { return len(palette) }
