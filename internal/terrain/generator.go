package terrain

import (
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"markovmap/internal/core"
)

// Mode selects how the generator threads state through the grid.
type Mode int

const (
	// ModeSpatial reseeds each column and blends the vertical chain with the
	// left neighbor of every cell.
	ModeSpatial Mode = iota
	// ModeChain runs one vertical chain through the whole grid, column after
	// column, with no horizontal influence.
	ModeChain
)

// String returns the mode name accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeSpatial:
		return "spatial"
	case ModeChain:
		return "chain"
	default:
		return "unknown"
	}
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "spatial":
		return ModeSpatial, nil
	case "chain":
		return ModeChain, nil
	}
	return 0, errors.Wrapf(ErrConfig, "unknown generation mode %q", s)
}

// Generator paints terrain fields from a transition model.
type Generator struct {
	model *Model
	mode  Mode
}

// Option configures a Generator.
type Option func(*Generator)

// WithMode selects the traversal mode. The default is ModeSpatial.
func WithMode(m Mode) Option {
	return func(g *Generator) { g.mode = m }
}

// NewGenerator returns a generator drawing from model.
func NewGenerator(model *Model, opts ...Option) *Generator {
	g := &Generator{model: model}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Mode returns the configured traversal mode.
func (g *Generator) Mode() Mode { return g.mode }

// Model returns the transition model the generator draws from.
func (g *Generator) Model() *Model { return g.model }

// Generate paints a cols x rows field, column by column from the left and
// top to bottom within a column. Every cell is painted exactly once.
func (g *Generator) Generate(cols, rows int, rng core.Source) (*Field, error) {
	if err := g.model.Catalog().Validate(); err != nil {
		return nil, err
	}
	f, err := NewField(cols, rows)
	if err != nil {
		return nil, err
	}
	switch g.mode {
	case ModeSpatial:
		err = g.paintSpatial(f, rng)
	case ModeChain:
		err = g.paintChain(f, rng)
	default:
		err = errors.Wrapf(ErrConfig, "unknown generation mode %d", g.mode)
	}
	if err != nil {
		return nil, err
	}
	klog.V(1).Infof("painted %dx%d field (%s, %d categories)", cols, rows, g.mode, g.model.Catalog().Len())
	return f, nil
}

func (g *Generator) paintSpatial(f *Field, rng core.Source) error {
	for x := 0; x < f.cols; x++ {
		current := g.model.First(rng)
		if err := f.Set(x, 0, current); err != nil {
			return err
		}
		for y := 1; y < f.rows; y++ {
			probs, err := g.model.Row(current)
			if err != nil {
				return err
			}
			if x > 0 {
				left, err := f.Get(x-1, y)
				if err != nil {
					return err
				}
				leftProbs, err := g.model.Row(left)
				if err != nil {
					return err
				}
				probs = Blend(probs, leftProbs)
			}
			current = g.model.Sample(probs, rng)
			if err := f.Set(x, y, current); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Generator) paintChain(f *Field, rng core.Source) error {
	current := g.model.First(rng)
	for x := 0; x < f.cols; x++ {
		for y := 0; y < f.rows; y++ {
			if err := f.Set(x, y, current); err != nil {
				return err
			}
			probs, err := g.model.Row(current)
			if err != nil {
				return err
			}
			current = g.model.Sample(probs, rng)
		}
	}
	return nil
}
