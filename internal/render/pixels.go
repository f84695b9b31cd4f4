package render

import "image/color"

// Palette maps display cell values to colors. Index 0 is a down spin and
// index 1 an up spin.
type Palette [2]color.RGBA

// DefaultPalette draws up spins white and down spins dark blue.
var DefaultPalette = Palette{
	{R: 20, G: 30, B: 70, A: 255},
	{R: 240, G: 240, B: 235, A: 255},
}

// fillSpinRGBA converts display cells (0 down, anything else up) into RGBA
// pixels in buf. buf must hold 4 bytes per cell.
func fillSpinRGBA(buf []byte, cells []uint8, p Palette) {
	for i, c := range cells {
		col := p[0]
		if c != 0 {
			col = p[1]
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
