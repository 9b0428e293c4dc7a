package render

import "image/color"

// rgba8 flattens a color into 8-bit RGBA components.
func rgba8(c color.Color) [4]byte {
	r, g, b, a := c.RGBA()
	return [4]byte{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

// fillCellsRGBA converts 0/1 cell data into RGBA pixels in buf. Cells past
// the end of buf are ignored.
func fillCellsRGBA(buf []byte, cells []uint8, on, off color.Color) {
	live, dead := rgba8(on), rgba8(off)
	for i, c := range cells {
		base := i * 4
		if base+4 > len(buf) {
			return
		}
		if c != 0 {
			copy(buf[base:base+4], live[:])
			continue
		}
		copy(buf[base:base+4], dead[:])
	}
}
