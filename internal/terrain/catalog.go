// Package terrain holds the spatial Markov terrain model: the category catalog
// and its transition matrix, the two-source probability blend, the terrain
// field, and the column-major generator that paints it.
package terrain

import (
	"encoding/json"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// Tolerance bounds how far a probability row may drift from summing to 1.
const Tolerance = 1e-6

// MaxCategories is the largest catalog a Field can store.
const MaxCategories = math.MaxUint8

// Category indexes a terrain category in catalog order.
type Category uint8

// CategoryDef names a category and its display color.
type CategoryDef struct {
	Name  string
	Color color.RGBA
}

// Catalog is the immutable set of terrain categories, their colors and the
// row-stochastic transition matrix between them.
type Catalog struct {
	names  []string
	index  map[string]Category
	colors []color.RGBA
	matrix [][]float64
}

// NewCatalog builds a catalog from ordered category definitions and a
// transition table keyed by category name. Entries missing from a row are
// zero. The result is validated before it is returned.
func NewCatalog(defs []CategoryDef, transitions map[string]map[string]float64) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, errors.Wrap(ErrConfig, "catalog has no categories")
	}
	if len(defs) > MaxCategories {
		return nil, errors.Wrapf(ErrConfig, "catalog has %d categories, at most %d supported", len(defs), MaxCategories)
	}
	c := &Catalog{
		names:  make([]string, len(defs)),
		index:  make(map[string]Category, len(defs)),
		colors: make([]color.RGBA, len(defs)),
		matrix: make([][]float64, len(defs)),
	}
	for i, d := range defs {
		if d.Name == "" {
			return nil, errors.Wrapf(ErrConfig, "category #%d has no name", i)
		}
		if _, dup := c.index[d.Name]; dup {
			return nil, errors.Wrapf(ErrConfig, "category %q listed twice", d.Name)
		}
		c.names[i] = d.Name
		c.index[d.Name] = Category(i)
		c.colors[i] = d.Color
	}
	for from := range transitions {
		if _, ok := c.index[from]; !ok {
			return nil, errors.Wrapf(ErrConfig, "transition row for unknown category %q", from)
		}
	}
	for i, name := range c.names {
		row, ok := transitions[name]
		if !ok {
			return nil, errors.Wrapf(ErrConfig, "category %q has no transition row", name)
		}
		c.matrix[i] = make([]float64, len(defs))
		for to, p := range row {
			j, ok := c.index[to]
			if !ok {
				return nil, errors.Wrapf(ErrConfig, "row %q references unknown category %q", name, to)
			}
			c.matrix[i][j] = p
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the matrix is square over the category set and that
// every row is non-negative and sums to 1 within Tolerance.
func (c *Catalog) Validate() error {
	if c == nil || len(c.names) == 0 {
		return errors.Wrap(ErrConfig, "catalog has no categories")
	}
	n := len(c.names)
	if len(c.matrix) != n {
		return errors.Wrapf(ErrConfig, "transition matrix has %d rows for %d categories", len(c.matrix), n)
	}
	for i, row := range c.matrix {
		if len(row) != n {
			return errors.Wrapf(ErrConfig, "row %q has %d entries for %d categories", c.names[i], len(row), n)
		}
		sum := 0.0
		for j, p := range row {
			if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
				return errors.Wrapf(ErrConfig, "row %q: invalid probability %g for %q", c.names[i], p, c.names[j])
			}
			sum += p
		}
		if math.Abs(sum-1) > Tolerance {
			return errors.Wrapf(ErrConfig, "row %q sums to %g, want 1", c.names[i], sum)
		}
	}
	return nil
}

// Len returns the number of categories.
func (c *Catalog) Len() int { return len(c.names) }

// Categories returns every category in catalog order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.names))
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Contains reports whether cat belongs to the catalog.
func (c *Catalog) Contains(cat Category) bool { return int(cat) < len(c.names) }

// Name returns the category name, or "" for a foreign category.
func (c *Catalog) Name(cat Category) string {
	if !c.Contains(cat) {
		return ""
	}
	return c.names[cat]
}

// Lookup resolves a category by name.
func (c *Catalog) Lookup(name string) (Category, error) {
	cat, ok := c.index[name]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownCategory, "%q", name)
	}
	return cat, nil
}

// ColorOf returns the display color of cat.
func (c *Catalog) ColorOf(cat Category) (color.RGBA, error) {
	if !c.Contains(cat) {
		return color.RGBA{}, errors.Wrapf(ErrUnknownCategory, "category #%d", cat)
	}
	return c.colors[cat], nil
}

// Palette returns the colors indexed by category.
func (c *Catalog) Palette() []color.RGBA {
	return append([]color.RGBA(nil), c.colors...)
}

// RowSums returns the sum of every transition row, in catalog order.
func (c *Catalog) RowSums() []float64 {
	sums := make([]float64, len(c.matrix))
	for i, row := range c.matrix {
		for _, p := range row {
			sums[i] += p
		}
	}
	return sums
}

// CatalogDoc is the JSON form of a catalog.
type CatalogDoc struct {
	Categories  []CategoryDoc                 `json:"categories"`
	Transitions map[string]map[string]float64 `json:"transitions"`
}

// CategoryDoc is one category entry of a CatalogDoc.
type CategoryDoc struct {
	Name  string   `json:"name"`
	Color [3]uint8 `json:"color"`
}

// Doc converts the catalog to its JSON form. Zero transitions are omitted.
func (c *Catalog) Doc() CatalogDoc {
	doc := CatalogDoc{
		Categories:  make([]CategoryDoc, len(c.names)),
		Transitions: make(map[string]map[string]float64, len(c.names)),
	}
	for i, name := range c.names {
		col := c.colors[i]
		doc.Categories[i] = CategoryDoc{Name: name, Color: [3]uint8{col.R, col.G, col.B}}
		row := make(map[string]float64)
		for j, p := range c.matrix[i] {
			if p != 0 {
				row[c.names[j]] = p
			}
		}
		doc.Transitions[name] = row
	}
	return doc
}

// Catalog builds and validates the catalog described by the document.
func (d CatalogDoc) Catalog() (*Catalog, error) {
	defs := make([]CategoryDef, len(d.Categories))
	for i, cd := range d.Categories {
		defs[i] = CategoryDef{Name: cd.Name, Color: color.RGBA{R: cd.Color[0], G: cd.Color[1], B: cd.Color[2], A: 255}}
	}
	return NewCatalog(defs, d.Transitions)
}

// LoadCatalog reads a JSON catalog document.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var doc CatalogDoc
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrapf(ErrConfig, "failed to decode catalog: %v", err)
	}
	return doc.Catalog()
}

// LoadCatalogFile reads a JSON catalog document from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open catalog %q", path)
	}
	defer f.Close()
	c, err := LoadCatalog(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "catalog %q", path)
	}
	return c, nil
}
