package core

// Size describes the dimensions of a terrain grid in cells.
type Size struct {
	W int
	H int
}

// Pixels returns the canvas dimensions for the given cell edge length.
func (s Size) Pixels(cell int) (int, int) {
	return s.W * cell, s.H * cell
}
