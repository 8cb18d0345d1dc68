package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"markovmap/internal/core"
	"markovmap/internal/terrain"
)

func TestJobs(t *testing.T) {
	require.Equal(t, []Job{{Index: 0, Seed: 9, Output: "out/map.png"}}, Jobs(9, "out/map.png", 1))

	jobs := Jobs(100, "out/map.png", 3)
	require.Equal(t, []Job{
		{Index: 0, Seed: 100, Output: "out/map_000.png"},
		{Index: 1, Seed: 101, Output: "out/map_001.png"},
		{Index: 2, Seed: 102, Output: "out/map_002.png"},
	}, jobs)

	require.Equal(t, "noext_001", Jobs(0, "noext", 2)[1].Output)
}

func TestWorkers(t *testing.T) {
	require.Equal(t, 3, Workers(3))
	require.Positive(t, Workers(0))
}

func TestRunGeneratesIndependentFields(t *testing.T) {
	g := terrain.NewGenerator(terrain.NewModel(terrain.Classic()))
	jobs := Jobs(40, "map.png", 8)

	var mu sync.Mutex
	fields := map[int]*terrain.Field{}
	err := Run(context.Background(), jobs, 4, func(_ context.Context, job Job) error {
		f, err := g.Generate(30, 20, core.NewRNG(job.Seed))
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		fields[job.Index] = f
		return nil
	})
	require.NoError(t, err)
	require.Len(t, fields, len(jobs))

	// Parallel runs match sequential runs with the same seed.
	for _, job := range jobs {
		want, err := g.Generate(30, 20, core.NewRNG(job.Seed))
		require.NoError(t, err)
		require.True(t, want.Equal(fields[job.Index]), "job %d", job.Index)
	}
}

func TestRunStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var started atomic.Int32
	err := Run(context.Background(), Jobs(0, "m.png", 50), 1, func(_ context.Context, job Job) error {
		started.Add(1)
		if job.Index == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	require.Less(t, int(started.Load()), 50)
}
