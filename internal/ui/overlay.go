//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"markovmap/internal/terrain"
)

const (
	legendSwatch  = 10
	legendLine    = 16
	legendPadding = 6
)

var legendBackground = color.RGBA{A: 170}

// Overlay draws the category legend and run status over the map. L toggles
// the legend.
type Overlay struct {
	catalog    *terrain.Catalog
	showLegend bool
	histogram  []int
	status     string
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(catalog *terrain.Catalog) *Overlay {
	return &Overlay{catalog: catalog, showLegend: true}
}

// SetHistogram updates the per-category cell counts shown in the legend.
func (o *Overlay) SetHistogram(h []int) { o.histogram = h }

// SetStatus updates the status line drawn under the legend.
func (o *Overlay) SetStatus(s string) { o.status = s }

// Update allows the overlay to update internal state.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		o.showLegend = !o.showLegend
	}
}

// Draw renders the overlay onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.showLegend || o.catalog == nil {
		return
	}
	total := 0
	for _, n := range o.histogram {
		total += n
	}
	lines := o.catalog.Len() + 1
	vector.DrawFilledRect(screen, 0, 0, 190, float32(lines*legendLine+2*legendPadding), legendBackground, false)

	for i, c := range o.catalog.Categories() {
		y := legendPadding + i*legendLine
		col, _ := o.catalog.ColorOf(c)
		vector.DrawFilledRect(screen, legendPadding, float32(y+3), legendSwatch, legendSwatch, col, false)
		label := o.catalog.Name(c)
		if total > 0 && int(c) < len(o.histogram) {
			label = fmt.Sprintf("%-13s %5.1f%%", label, 100*float64(o.histogram[c])/float64(total))
		}
		ebitenutil.DebugPrintAt(screen, label, legendPadding+legendSwatch+6, y)
	}
	ebitenutil.DebugPrintAt(screen, o.status, legendPadding, legendPadding+o.catalog.Len()*legendLine)
}
