package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"markovmap/internal/core"
	"markovmap/internal/terrain"
)

func previewLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestPreviewDimensions(t *testing.T) {
	c := terrain.Classic()
	f, err := terrain.NewGenerator(terrain.NewModel(c)).Generate(100, 40, core.NewRNG(1))
	require.NoError(t, err)

	// 100 columns into 50 characters: step 2, so 40 rows become 10 lines.
	lines := previewLines(Preview(f, c, 50))
	require.Len(t, lines, 10)
	for _, line := range lines {
		require.Equal(t, 50, displayWidth(line))
	}

	// A narrow field is never stretched.
	lines = previewLines(Preview(f, c, 500))
	require.Len(t, lines, 20)
	require.Equal(t, 100, displayWidth(lines[0]))
}

func TestPreviewOddRows(t *testing.T) {
	c := terrain.Classic()
	f, err := terrain.NewGenerator(terrain.NewModel(c)).Generate(3, 3, core.NewRNG(1))
	require.NoError(t, err)
	lines := previewLines(Preview(f, c, 0))
	require.Len(t, lines, 2)
	require.Equal(t, 3, displayWidth(lines[1]))
}

func TestLegend(t *testing.T) {
	c := terrain.Classic()
	legend := ansiFilter.ReplaceAllString(Legend(c, []int{50, 25, 25, 0, 0, 0}), "")
	require.Contains(t, legend, "grass")
	require.Contains(t, legend, "50.0%")
	require.Contains(t, legend, "high mountain")
	require.Contains(t, legend, "0.0%")

	empty := ansiFilter.ReplaceAllString(Legend(c, nil), "")
	require.Contains(t, empty, "water")
}

func TestDisplayWidth(t *testing.T) {
	require.Equal(t, 3, displayWidth("\x1b[38;2;1;2;3mab▀\x1b[0m"))
}
