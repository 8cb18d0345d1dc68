//go:build !ebiten

package ui

import "markovmap/internal/terrain"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(*terrain.Catalog) *Overlay { return &Overlay{} }

// SetHistogram is a no-op in headless builds.
func (o *Overlay) SetHistogram([]int) {}

// SetStatus is a no-op in headless builds.
func (o *Overlay) SetStatus(string) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
