// Package run records generated maps so they can be listed and regenerated
// from their seed.
package run

import (
	"context"
	"time"

	"github.com/google/uuid"

	"markovmap/internal/terrain"
)

// Record describes one generated field.
type Record struct {
	ID        string         `json:"id"`
	Seed      int64          `json:"seed"`
	Catalog   string         `json:"catalog"`
	Mode      string         `json:"mode"`
	Cols      int            `json:"cols"`
	Rows      int            `json:"rows"`
	Cell      int            `json:"cell"`
	Histogram map[string]int `json:"histogram"`
	CreatedAt time.Time      `json:"created_at"`
}

// Store persists records.
type Store interface {
	Save(ctx context.Context, r Record) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// NewRecord describes a finished field painted from catalog.
func NewRecord(f *terrain.Field, catalog *terrain.Catalog, catalogName string, mode terrain.Mode, seed int64, cell int, now time.Time) Record {
	return Record{
		ID:        uuid.NewString(),
		Seed:      seed,
		Catalog:   catalogName,
		Mode:      mode.String(),
		Cols:      f.Cols(),
		Rows:      f.Rows(),
		Cell:      cell,
		Histogram: Histogram(f, catalog),
		CreatedAt: now.UTC(),
	}
}

// Histogram counts cells per category name.
func Histogram(f *terrain.Field, catalog *terrain.Catalog) map[string]int {
	counts := f.Histogram(catalog.Len())
	out := make(map[string]int, len(counts))
	for i, n := range counts {
		out[catalog.Name(terrain.Category(i))] = n
	}
	return out
}
