// Package config holds the run configuration shared by the command-line
// tools and the map server.
package config

import (
	"flag"
	"strconv"

	"github.com/pkg/errors"

	"markovmap/internal/core"
	"markovmap/internal/terrain"
)

// Config controls one generation run (or a batch of them).
type Config struct {
	// Width and Height are the canvas size in pixels.
	Width  int
	Height int
	// Cell is the edge length of one grid cell in pixels.
	Cell int

	Seed    int64
	Catalog string
	// CatalogFile, when set, overrides Catalog with a JSON document.
	CatalogFile string
	Mode        string

	Output  string
	Count   int
	Workers int
	Preview bool
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:   1400,
		Height:  900,
		Cell:    4,
		Seed:    1337,
		Catalog: terrain.ClassicCatalog,
		Mode:    terrain.ModeSpatial.String(),
		Output:  "map.png",
		Count:   1,
		Workers: 0,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "canvas width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "canvas height in pixels")
	fs.IntVar(&c.Cell, "cell", c.Cell, "cell edge length in pixels; must divide width and height")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.StringVar(&c.Catalog, "catalog", c.Catalog, "name of a built-in terrain catalog")
	fs.StringVar(&c.CatalogFile, "catalog_file", c.CatalogFile, "JSON terrain catalog, overrides -catalog")
	fs.StringVar(&c.Mode, "mode", c.Mode, "generation mode: spatial or chain")
	fs.StringVar(&c.Output, "output", c.Output, "output image path (.png, .bmp or .tiff)")
	fs.IntVar(&c.Count, "count", c.Count, "number of maps to generate, seeds increase from -seed")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel generations when -count > 1, 0 uses GOMAXPROCS")
	fs.BoolVar(&c.Preview, "preview", c.Preview, "print a colored preview to the terminal")
}

// FromMap populates the config from a string map (flag-style key/value
// pairs), starting from the defaults.
func FromMap(m map[string]string) (Config, error) {
	c := DefaultConfig()
	if m == nil {
		return c, nil
	}
	var err error
	if c.Width, err = getOr(m, "width", c.Width); err != nil {
		return c, err
	}
	if c.Height, err = getOr(m, "height", c.Height); err != nil {
		return c, err
	}
	if c.Cell, err = getOr(m, "cell", c.Cell); err != nil {
		return c, err
	}
	if c.Seed, err = getOr(m, "seed", c.Seed); err != nil {
		return c, err
	}
	if c.Catalog, err = getOr(m, "catalog", c.Catalog); err != nil {
		return c, err
	}
	if c.Mode, err = getOr(m, "mode", c.Mode); err != nil {
		return c, err
	}
	if c.Output, err = getOr(m, "output", c.Output); err != nil {
		return c, err
	}
	if c.Count, err = getOr(m, "count", c.Count); err != nil {
		return c, err
	}
	if c.Workers, err = getOr(m, "workers", c.Workers); err != nil {
		return c, err
	}
	if c.Preview, err = getOr(m, "preview", c.Preview); err != nil {
		return c, err
	}
	return c, nil
}

// getOr parses m[key] into the type of defaultValue, or returns defaultValue
// when the key is absent or empty. A bare boolean key means true.
func getOr[T bool | int | int64 | string](m map[string]string, key string, defaultValue T) (T, error) {
	value, ok := m[key]
	if !ok {
		return defaultValue, nil
	}
	var out any
	var err error
	switch any(defaultValue).(type) {
	case string:
		out = value
	case int:
		if value == "" {
			return defaultValue, nil
		}
		out, err = strconv.Atoi(value)
	case int64:
		if value == "" {
			return defaultValue, nil
		}
		out, err = strconv.ParseInt(value, 10, 64)
	case bool:
		if value == "" {
			return any(true).(T), nil
		}
		out, err = strconv.ParseBool(value)
	}
	if err != nil {
		return defaultValue, errors.Wrapf(terrain.ErrConfig, "failed to parse %s=%q: %v", key, value, err)
	}
	return out.(T), nil
}

// Validate checks the canvas geometry and run settings. Canvas dimensions
// must be exact multiples of the cell size.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(terrain.ErrConfig, "canvas must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Cell <= 0 {
		return errors.Wrapf(terrain.ErrConfig, "cell size must be positive, got %d", c.Cell)
	}
	if c.Width%c.Cell != 0 || c.Height%c.Cell != 0 {
		return errors.Wrapf(terrain.ErrConfig, "canvas %dx%d is not a multiple of cell size %d", c.Width, c.Height, c.Cell)
	}
	if c.Count < 1 {
		return errors.Wrapf(terrain.ErrConfig, "count must be at least 1, got %d", c.Count)
	}
	if c.Workers < 0 {
		return errors.Wrapf(terrain.ErrConfig, "workers must not be negative, got %d", c.Workers)
	}
	if _, err := terrain.ParseMode(c.Mode); err != nil {
		return err
	}
	return nil
}

// Grid returns the field dimensions in cells.
func (c Config) Grid() core.Size {
	if c.Cell <= 0 {
		return core.Size{}
	}
	return core.Size{W: c.Width / c.Cell, H: c.Height / c.Cell}
}

// LoadCatalog resolves the configured catalog, preferring CatalogFile.
func (c Config) LoadCatalog() (*terrain.Catalog, error) {
	if c.CatalogFile != "" {
		return terrain.LoadCatalogFile(c.CatalogFile)
	}
	return terrain.CatalogNamed(c.Catalog)
}

// Generator builds the validated model and generator for this config.
func (c Config) Generator() (*terrain.Generator, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	catalog, err := c.LoadCatalog()
	if err != nil {
		return nil, err
	}
	mode, err := terrain.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	return terrain.NewGenerator(terrain.NewModel(catalog), terrain.WithMode(mode)), nil
}

// Parameters reports the configuration grouped for display.
func (c Config) Parameters() core.ParameterSnapshot {
	grid := c.Grid()
	catalog := c.Catalog
	if c.CatalogFile != "" {
		catalog = c.CatalogFile
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Canvas",
			Params: []core.Parameter{
				core.IntParam("width", "Width", c.Width),
				core.IntParam("height", "Height", c.Height),
				core.IntParam("cell", "Cell size", c.Cell),
				core.IntParam("cols", "Columns", grid.W),
				core.IntParam("rows", "Rows", grid.H),
			},
		},
		{
			Name: "Generation",
			Params: []core.Parameter{
				core.Int64Param("seed", "Seed", c.Seed),
				core.StringParam("catalog", "Catalog", catalog),
				core.StringParam("mode", "Mode", c.Mode),
			},
		},
		{
			Name: "Output",
			Params: []core.Parameter{
				core.StringParam("output", "Output", c.Output),
				core.IntParam("count", "Count", c.Count),
				core.IntParam("workers", "Workers", c.Workers),
				core.BoolParam("preview", "Preview", c.Preview),
			},
		},
	}}
}
