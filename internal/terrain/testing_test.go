package terrain

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

// zeroSource always draws the lowest value: IntN returns 0, Float64 returns 0.
type zeroSource struct{}

func (zeroSource) IntN(int) int     { return 0 }
func (zeroSource) Float64() float64 { return 0 }

// fixedSource replays Float64 values and always returns 0 from IntN.
type fixedSource struct {
	floats []float64
	i      int
}

func (s *fixedSource) IntN(int) int { return 0 }

func (s *fixedSource) Float64() float64 {
	v := s.floats[s.i%len(s.floats)]
	s.i++
	return v
}

func twoCategoryCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]CategoryDef{
		{Name: "land", Color: color.RGBA{R: 0, G: 200, B: 0, A: 255}},
		{Name: "sea", Color: color.RGBA{R: 0, G: 0, B: 200, A: 255}},
	}, map[string]map[string]float64{
		"land": {"land": 0.7, "sea": 0.3},
		"sea":  {"land": 0.4, "sea": 0.6},
	})
	require.NoError(t, err)
	return c
}
