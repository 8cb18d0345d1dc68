package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"markovmap/internal/run"
)

func ids(rs []run.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestStoreRecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore(3)
	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, got)

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Save(ctx, run.Record{ID: fmt.Sprint(i)}))
	}
	got, _ = s.Recent(ctx, 0)
	require.Equal(t, []string{"1", "0"}, ids(got))

	for i := 2; i < 5; i++ {
		require.NoError(t, s.Save(ctx, run.Record{ID: fmt.Sprint(i)}))
	}
	got, _ = s.Recent(ctx, 0)
	require.Equal(t, []string{"4", "3", "2"}, ids(got))
	got, _ = s.Recent(ctx, 2)
	require.Equal(t, []string{"4", "3"}, ids(got))
}

func TestStoreConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	s := NewStore(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Save(ctx, run.Record{ID: fmt.Sprint(i)})
		}()
	}
	wg.Wait()
	got, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 50)
}
