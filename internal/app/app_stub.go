//go:build !ebiten

package app

import (
	"fmt"

	"markovmap/internal/core"
	"markovmap/internal/terrain"
)

// Viewer is a placeholder that satisfies the API expected by the GUI build.
type Viewer struct{}

// New reports that the ebiten build tag is required for GUI support.
func New(*terrain.Generator, *terrain.Catalog, core.Size, int, int64, int) (*Viewer, error) {
	return nil, fmt.Errorf("app.New requires building with the 'ebiten' tag")
}

// Reset always reports that the GUI build tag is missing.
func (v *Viewer) Reset(int64) error {
	return fmt.Errorf("app.Viewer.Reset requires building with the 'ebiten' tag")
}

// Update always reports that the GUI build tag is missing.
func (v *Viewer) Update() error {
	return fmt.Errorf("app.Viewer.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (v *Viewer) Draw(any) {}

// Layout returns zeros in the headless build.
func (v *Viewer) Layout(int, int) (int, int) { return 0, 0 }
