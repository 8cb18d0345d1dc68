// Package cli renders terrain fields for the terminal.
package cli

import (
	"fmt"
	"image/color"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"markovmap/internal/terrain"
)

const (
	// DefaultWidth is used when the terminal size cannot be determined.
	DefaultWidth = 80

	halfBlock = "▀"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the
// number of runes left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// TerminalWidth returns the width of stdout, or DefaultWidth when stdout is
// not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// Preview draws f at most maxWidth characters wide. Each character is a half
// block: the foreground shows one sampled cell and the background the cell
// sampled below it, so a character covers one column by two rows of samples.
func Preview(f *terrain.Field, catalog *terrain.Catalog, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = DefaultWidth
	}
	step := (f.Cols() + maxWidth - 1) / maxWidth
	if step < 1 {
		step = 1
	}
	palette := catalog.Palette()
	colorAt := func(x, y int) lipgloss.Color {
		c, err := f.Get(x, y)
		if err != nil || int(c) >= len(palette) {
			return lipgloss.Color("0")
		}
		return hex(palette[c])
	}

	var sb strings.Builder
	for y := 0; y < f.Rows(); y += 2 * step {
		for x := 0; x < f.Cols(); x += step {
			style := lipgloss.NewStyle().Foreground(colorAt(x, y))
			if below := y + step; below < f.Rows() {
				style = style.Background(colorAt(x, below))
			}
			sb.WriteString(style.Render(halfBlock))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Legend lists each category with a color swatch and its share of cells.
func Legend(catalog *terrain.Catalog, histogram []int) string {
	total := 0
	for _, n := range histogram {
		total += n
	}
	nameWidth := 0
	for _, c := range catalog.Categories() {
		nameWidth = max(nameWidth, len(catalog.Name(c)))
	}
	var lines []string
	for _, c := range catalog.Categories() {
		col, _ := catalog.ColorOf(c)
		swatch := lipgloss.NewStyle().Background(hex(col)).Render("  ")
		share := 0.0
		if total > 0 && int(c) < len(histogram) {
			share = 100 * float64(histogram[c]) / float64(total)
		}
		lines = append(lines, fmt.Sprintf("%s %-*s %5.1f%%", swatch, nameWidth, catalog.Name(c), share))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
