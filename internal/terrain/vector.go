package terrain

// Vector is a probability vector aligned to catalog order: entry i is the
// weight of Category(i).
type Vector []float64

// Sum returns the total weight.
func (v Vector) Sum() float64 {
	s := 0.0
	for _, p := range v {
		s += p
	}
	return s
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	return append(Vector(nil), v...)
}

// Normalize returns a copy scaled to sum to 1. A vector with no positive
// mass is returned unchanged.
func (v Vector) Normalize() Vector {
	out := v.Clone()
	s := v.Sum()
	if s <= 0 {
		return out
	}
	for i := range out {
		out[i] /= s
	}
	return out
}
