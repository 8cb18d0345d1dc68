package render

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// Thumbnail scales img down so its longer side is at most maxSide pixels,
// keeping the aspect ratio. Images already small enough are returned as is.
// Nearest-neighbor sampling keeps terrain edges crisp.
func Thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}
	return transform.Resize(img, w, h, transform.NearestNeighbor)
}
