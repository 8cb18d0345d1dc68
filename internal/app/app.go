//go:build ebiten

package app

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"k8s.io/klog/v2"

	"markovmap/internal/core"
	"markovmap/internal/render"
	"markovmap/internal/terrain"
	"markovmap/internal/ui"
)

// Viewer adapts a terrain generator to the ebiten.Game interface. The map is
// generated up front and revealed column by column, in traversal order.
type Viewer struct {
	gen     *terrain.Generator
	catalog *terrain.Catalog
	size    core.Size
	cell    int
	seed    int64

	field    *terrain.Field
	pixels   *image.RGBA
	img      *ebiten.Image
	revealed int
	pacer    *core.ColumnPacer
	paused   bool
	overlay  *ui.Overlay
}

// New constructs a Viewer painting size cells of cell pixels each.
func New(gen *terrain.Generator, catalog *terrain.Catalog, size core.Size, cell int, seed int64, revealRate int) (*Viewer, error) {
	v := &Viewer{
		gen:     gen,
		catalog: catalog,
		size:    size,
		cell:    cell,
		pacer:   core.NewColumnPacer(revealRate),
		overlay: ui.NewOverlay(catalog),
	}
	w, h := size.Pixels(cell)
	v.pixels = image.NewRGBA(image.Rect(0, 0, w, h))
	v.img = ebiten.NewImage(w, h)
	if err := v.Reset(seed); err != nil {
		return nil, err
	}
	return v, nil
}

// Reset generates a fresh field for seed and restarts the reveal.
func (v *Viewer) Reset(seed int64) error {
	f, err := v.gen.Generate(v.size.W, v.size.H, core.NewRNG(seed))
	if err != nil {
		return err
	}
	v.seed = seed
	v.field = f
	v.revealed = 0
	v.pacer.Reset()
	for i := range v.pixels.Pix {
		v.pixels.Pix[i] = 0
	}
	v.overlay.SetHistogram(f.Histogram(v.catalog.Len()))
	klog.V(1).Infof("viewer: generated seed %d", seed)
	return nil
}

// Update handles per-frame logic and advances the reveal.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		v.revealed = v.size.W
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := v.Reset(v.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := v.Reset(time.Now().UnixNano()); err != nil {
			return err
		}
	}
	v.overlay.Update()

	if !v.paused && v.revealed < v.size.W {
		v.revealed = min(v.size.W, v.revealed+v.pacer.Advance())
	} else {
		v.pacer.Advance()
	}
	v.overlay.SetStatus(fmt.Sprintf("seed %d  %d/%d cols", v.seed, v.revealed, v.size.W))
	return nil
}

// Draw renders the revealed part of the field.
func (v *Viewer) Draw(screen *ebiten.Image) {
	render.PaintInto(v.pixels, v.field, v.catalog.Palette(), v.cell, v.revealed)
	v.img.WritePixels(v.pixels.Pix)
	screen.DrawImage(v.img, nil)
	v.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.size.Pixels(v.cell)
}
