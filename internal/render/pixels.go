// Package render turns terrain fields into pixels and writes them out.
package render

import (
	"image"
	"image/color"

	"markovmap/internal/terrain"
)

// Paint fills one cell x cell block per grid cell with its category color.
// Cell (x, y) covers pixels [x*cell, x*cell+cell) x [y*cell, y*cell+cell).
// Categories beyond the palette use its last color; an empty palette leaves
// the image transparent black. A cell below 1 pixel is clamped to 1; callers
// taking sizes from users validate them first (see config.Validate).
func Paint(f *terrain.Field, palette []color.RGBA, cell int) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Cols()*cell, f.Rows()*cell))
	PaintInto(img, f, palette, cell, f.Cols())
	return img
}

// PaintInto paints the first cols columns of f into img, which must be at
// least f.Cols()*cell x f.Rows()*cell pixels. Used for progressive reveals.
func PaintInto(img *image.RGBA, f *terrain.Field, palette []color.RGBA, cell, cols int) {
	if len(palette) == 0 {
		return
	}
	last := len(palette) - 1
	f.Each(func(x, y int, c terrain.Category) {
		if x >= cols {
			return
		}
		idx := int(c)
		if idx > last {
			idx = last
		}
		fillBlock(img.Pix, img.Stride, x*cell, y*cell, cell, palette[idx])
	})
}

// fillBlock writes an n x n square of col at pixel (px, py) in an RGBA buffer.
func fillBlock(buf []byte, stride, px, py, n int, col color.RGBA) {
	for dy := 0; dy < n; dy++ {
		row := (py+dy)*stride + px*4
		for dx := 0; dx < n; dx++ {
			base := row + dx*4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
