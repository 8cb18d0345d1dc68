package terrain

import (
	"image/color"
	"sort"
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// ClassicCatalog is the name of the default catalog.
const ClassicCatalog = "classic"

var (
	registryMu sync.RWMutex
	catalogs   = map[string]func() *Catalog{}
)

// Register adds a catalog constructor under the provided name. Empty names
// and nil constructors are ignored.
func Register(name string, f func() *Catalog) {
	if name == "" || f == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	catalogs[name] = f
}

// CatalogNames lists the registered catalogs, sorted.
func CatalogNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CatalogNamed builds the catalog registered under name.
func CatalogNamed(name string) (*Catalog, error) {
	registryMu.RLock()
	f, ok := catalogs[name]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCatalog, "%q", name)
	}
	return f(), nil
}

// Classic returns the six-category landmass catalog: grass, sand, water,
// forest, low mountain and high mountain.
func Classic() *Catalog {
	return mustCatalog([]CategoryDef{
		{Name: "grass", Color: rgb(115, 189, 63)},
		{Name: "sand", Color: rgb(240, 226, 189)},
		{Name: "water", Color: rgb(92, 116, 209)},
		{Name: "forest", Color: rgb(68, 117, 45)},
		{Name: "low mountain", Color: rgb(132, 126, 135)},
		{Name: "high mountain", Color: rgb(103, 94, 107)},
	}, map[string]map[string]float64{
		"grass":         {"grass": 0.9, "sand": 0.05, "forest": 0.025, "low mountain": 0.025},
		"sand":          {"grass": 0.1, "sand": 0.8, "water": 0.08, "low mountain": 0.02},
		"water":         {"sand": 0.2, "water": 0.8},
		"forest":        {"grass": 0.1, "forest": 0.9},
		"low mountain":  {"grass": 0.075, "sand": 0.02, "water": 0.005, "low mountain": 0.8, "high mountain": 0.1},
		"high mountain": {"low mountain": 0.4, "high mountain": 0.6},
	})
}

// Archipelago returns a water-dominated four-category catalog that grows
// scattered islands ringed by beaches.
func Archipelago() *Catalog {
	return mustCatalog([]CategoryDef{
		{Name: "water", Color: rgb(92, 116, 209)},
		{Name: "sand", Color: rgb(240, 226, 189)},
		{Name: "grass", Color: rgb(115, 189, 63)},
		{Name: "forest", Color: rgb(68, 117, 45)},
	}, map[string]map[string]float64{
		"water":  {"water": 0.95, "sand": 0.05},
		"sand":   {"water": 0.25, "sand": 0.6, "grass": 0.15},
		"grass":  {"sand": 0.1, "grass": 0.85, "forest": 0.05},
		"forest": {"grass": 0.2, "forest": 0.8},
	})
}

func mustCatalog(defs []CategoryDef, transitions map[string]map[string]float64) *Catalog {
	c, err := NewCatalog(defs, transitions)
	if err != nil {
		exceptions.Panicf("built-in catalog is invalid: %+v", err)
	}
	return c
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

func init() {
	Register(ClassicCatalog, Classic)
	Register("archipelago", Archipelago)
}
