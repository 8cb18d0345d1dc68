package gormrepo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"markovmap/internal/run"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("MARKOVMAP_DB_DSN")
	if dsn == "" {
		t.Skip("MARKOVMAP_DB_DSN is required for integration test")
	}
	return dsn
}

func TestRunRepo_SaveAndRecent(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	ctx := context.Background()
	repo := NewRunRepo(db)
	base := time.Now().UTC().Add(time.Hour).Truncate(time.Microsecond)
	older := run.Record{ID: uuid.NewString(), Seed: 1, Catalog: "classic", Mode: "spatial", Cols: 2, Rows: 2, Cell: 4,
		Histogram: map[string]int{"grass": 4}, CreatedAt: base}
	newer := older
	newer.ID = uuid.NewString()
	newer.Seed = 2
	newer.CreatedAt = base.Add(time.Second)
	t.Cleanup(func() { db.Exec("DELETE FROM map_runs WHERE id IN ?", []string{older.ID, newer.ID}) })

	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	got, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, newer.ID, got[0].ID)
	require.Equal(t, older.ID, got[1].ID)
	require.Equal(t, map[string]int{"grass": 4}, got[1].Histogram)
}
