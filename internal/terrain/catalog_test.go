package terrain

import (
	"bytes"
	"encoding/json"
	"image/color"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestClassicCatalog(t *testing.T) {
	c := Classic()
	require.NoError(t, c.Validate())
	require.Equal(t, 6, c.Len())

	names := make([]string, 0, c.Len())
	for _, cat := range c.Categories() {
		names = append(names, c.Name(cat))
	}
	require.Equal(t, []string{"grass", "sand", "water", "forest", "low mountain", "high mountain"}, names)

	water, err := c.Lookup("water")
	require.NoError(t, err)
	col, err := c.ColorOf(water)
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 92, G: 116, B: 209, A: 255}, col)

	for i, sum := range c.RowSums() {
		require.InDeltaf(t, 1.0, sum, Tolerance, "row %q", c.Name(Category(i)))
	}
}

func TestCatalogLookupUnknown(t *testing.T) {
	c := Classic()
	_, err := c.Lookup("lava")
	require.True(t, errors.Is(err, ErrUnknownCategory), "got %v", err)
	_, err = c.ColorOf(Category(c.Len()))
	require.True(t, errors.Is(err, ErrUnknownCategory), "got %v", err)
	require.Equal(t, "", c.Name(Category(c.Len())))
}

func TestNewCatalogRejects(t *testing.T) {
	defs := []CategoryDef{{Name: "a"}, {Name: "b"}}
	tests := []struct {
		name        string
		defs        []CategoryDef
		transitions map[string]map[string]float64
		want        string
	}{
		{"empty", nil, nil, "no categories"},
		{"unnamed", []CategoryDef{{}}, map[string]map[string]float64{"": {"": 1}}, "no name"},
		{"duplicate", []CategoryDef{{Name: "a"}, {Name: "a"}}, nil, "twice"},
		{"missing row", defs, map[string]map[string]float64{"a": {"a": 1}}, "no transition row"},
		{"unknown source", defs, map[string]map[string]float64{"a": {"a": 1}, "b": {"b": 1}, "c": {"c": 1}}, "unknown category \"c\""},
		{"unknown target", defs, map[string]map[string]float64{"a": {"z": 1}, "b": {"b": 1}}, "unknown category \"z\""},
		{"short row", defs, map[string]map[string]float64{"a": {"a": 0.5}, "b": {"b": 1}}, "sums to 0.5"},
		{"long row", defs, map[string]map[string]float64{"a": {"a": 0.6, "b": 0.6}, "b": {"b": 1}}, "sums to 1.2"},
		{"negative", defs, map[string]map[string]float64{"a": {"a": 1.5, "b": -0.5}, "b": {"b": 1}}, "invalid probability"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCatalog(tc.defs, tc.transitions)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrConfig), "got %v", err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCatalogToleratesRounding(t *testing.T) {
	_, err := NewCatalog([]CategoryDef{{Name: "a"}, {Name: "b"}, {Name: "c"}}, map[string]map[string]float64{
		"a": {"a": 0.1, "b": 0.2, "c": 0.7000000001},
		"b": {"b": 1},
		"c": {"a": 1.0 / 3, "b": 1.0 / 3, "c": 1.0 / 3},
	})
	require.NoError(t, err)
}

func TestCatalogDocRoundTrip(t *testing.T) {
	c := Classic()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(c.Doc()))

	loaded, err := LoadCatalog(&buf)
	require.NoError(t, err)
	require.Equal(t, c.Len(), loaded.Len())
	require.Equal(t, c.Palette(), loaded.Palette())
	for _, cat := range c.Categories() {
		require.Equal(t, c.Name(cat), loaded.Name(cat))
		want, err := NewModel(c).Row(cat)
		require.NoError(t, err)
		got, err := NewModel(loaded).Row(cat)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestLoadCatalogInvalid(t *testing.T) {
	_, err := LoadCatalog(strings.NewReader(`{"categories": [], "bogus": 1}`))
	require.True(t, errors.Is(err, ErrConfig), "got %v", err)

	_, err = LoadCatalog(strings.NewReader(`{"categories": [{"name": "a", "color": [1, 2, 3]}], "transitions": {"a": {"a": 0.9}}}`))
	require.True(t, errors.Is(err, ErrConfig), "got %v", err)
}

func TestLoadCatalogFileMissing(t *testing.T) {
	_, err := LoadCatalogFile(t.TempDir() + "/missing.json")
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	names := CatalogNames()
	require.Contains(t, names, ClassicCatalog)
	require.Contains(t, names, "archipelago")

	c, err := CatalogNamed("archipelago")
	require.NoError(t, err)
	require.Equal(t, 4, c.Len())
	require.NoError(t, c.Validate())

	_, err = CatalogNamed("moon")
	require.True(t, errors.Is(err, ErrUnknownCatalog), "got %v", err)

	Register("", Classic)
	Register("nil", nil)
	require.NotContains(t, CatalogNames(), "nil")
}
