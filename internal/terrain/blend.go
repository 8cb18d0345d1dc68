package terrain

import "github.com/gomlx/exceptions"

// Blend merges the row carried down the current column (vertical) with the
// row of the already painted left neighbor (horizontal).
//
// Categories both rows allow get the mean of the two weights. A category
// either row rules out is vetoed: it gets zero, and its mean weight becomes
// leftover mass spread evenly over the surviving categories. When no category
// survives the rows are incompatible and vertical wins unchanged.
//
// For valid rows the result is non-negative and sums to 1 within Tolerance.
func Blend(vertical, horizontal Vector) Vector {
	if len(vertical) != len(horizontal) {
		exceptions.Panicf("terrain.Blend: vertical has %d entries, horizontal has %d", len(vertical), len(horizontal))
	}
	merged := make(Vector, len(vertical))
	leftover := 0.0
	support := 0
	for i, v := range vertical {
		h := horizontal[i]
		switch {
		case v != 0 && h != 0:
			merged[i] = (v + h) / 2
			support++
		case v != 0 || h != 0:
			leftover += (v + h) / 2
		}
	}
	if leftover <= 0 {
		return merged
	}
	if support == 0 {
		return vertical.Clone()
	}
	share := leftover / float64(support)
	for i, p := range merged {
		if p != 0 {
			merged[i] += share
		}
	}
	return merged
}
