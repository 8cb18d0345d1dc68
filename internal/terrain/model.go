package terrain

import (
	"math"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"markovmap/internal/core"
)

// Model answers transition queries over a validated catalog and draws
// categories from probability vectors.
type Model struct {
	catalog *Catalog
}

// NewModel wraps a catalog. The catalog must have passed Validate.
func NewModel(c *Catalog) *Model {
	return &Model{catalog: c}
}

// Catalog returns the wrapped catalog.
func (m *Model) Catalog() *Catalog { return m.catalog }

// Row returns the transition probabilities out of cat, in catalog order.
func (m *Model) Row(cat Category) (Vector, error) {
	if !m.catalog.Contains(cat) {
		return nil, errors.Wrapf(ErrUnknownCategory, "no transition row for category #%d", cat)
	}
	return Vector(m.catalog.matrix[cat]).Clone(), nil
}

// First draws a category uniformly from the whole catalog.
func (m *Model) First(rng core.Source) Category {
	return Category(rng.IntN(m.catalog.Len()))
}

// Sample draws a category with probability proportional to v.
//
// v must match the catalog length, hold only finite non-negative weights and
// have positive mass; anything else is an upstream bug and panics. A total
// that drifted away from 1 is renormalized by scaling the draw.
func (m *Model) Sample(v Vector, rng core.Source) Category {
	if len(v) != m.catalog.Len() {
		exceptions.Panicf("terrain.Sample: vector has %d entries, catalog has %d", len(v), m.catalog.Len())
	}
	total := 0.0
	for i, p := range v {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			exceptions.Panicf("terrain.Sample: invalid weight %g for %q", p, m.catalog.Name(Category(i)))
		}
		total += p
	}
	if total <= 0 {
		exceptions.Panicf("terrain.Sample: vector %v has no probability mass", v)
	}

	r := rng.Float64() * total
	last := -1
	for i, p := range v {
		if p <= 0 {
			continue
		}
		last = i
		r -= p
		if r <= 0 {
			return Category(i)
		}
	}
	return Category(last)
}
