package cache

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/jukestrip/catalog"
	"github.com/ByLCY/jukestrip/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRelease(ref catalog.Ref) catalog.Release {
	return catalog.Release{
		Ref:    ref,
		Title:  "Paranoid",
		Artist: "Black Sabbath",
		Tracks: []catalog.RawTrack{{Position: "A1", Title: "War Pigs"}, {Position: "A2", Title: "Paranoid"}},
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ref := catalog.Ref{Kind: catalog.KindRelease, ID: 42}

	_, ok, err := store.Get(ctx, ref, 0)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, ref, sampleRelease(ref)))
	require.NoError(t, store.Put(ctx, ref, sampleRelease(ref)), "second put must upsert")

	got, ok, err := store.Get(ctx, ref, 0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleRelease(ref), got)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	purged, err := store.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestStoreExpiry(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	ref := catalog.Ref{Kind: catalog.KindMaster, ID: 7}

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	require.NoError(t, store.Put(ctx, ref, sampleRelease(ref)))

	store.now = func() time.Time { return base.Add(2 * time.Hour) }
	_, ok, err := store.Get(ctx, ref, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "stale entry must be ignored")

	_, ok, err = store.Get(ctx, ref, 0)
	require.NoError(t, err)
	assert.True(t, ok, "maxAge 0 disables expiry")
}

func countingSource(calls *atomic.Int32, fail bool) catalog.Source {
	return catalog.SourceFunc(func(_ context.Context, ref catalog.Ref) (catalog.Release, error) {
		calls.Add(1)
		if fail {
			return catalog.Release{}, catalog.Wrap(catalog.ErrCatalogLookup, "test", "lookup", "offline", nil)
		}
		return sampleRelease(ref), nil
	})
}

func TestSourceReadThrough(t *testing.T) {
	store := openTestStore(t)
	var calls atomic.Int32
	src := NewSource(store, countingSource(&calls, false), 0, logging.NewNop())
	ctx := context.Background()
	ref := catalog.Ref{Kind: catalog.KindRelease, ID: 1}

	first, err := src.Lookup(ctx, ref)
	require.NoError(t, err)
	second, err := src.Lookup(ctx, ref)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load(), "second lookup must be served from cache")
}

func TestSourceSkipsLocalRefs(t *testing.T) {
	store := openTestStore(t)
	var calls atomic.Int32
	src := NewSource(store, countingSource(&calls, false), 0, nil)
	ctx := context.Background()
	ref := catalog.Ref{Kind: catalog.KindDir, Path: "/music/paranoid"}

	for i := 0; i < 2; i++ {
		_, err := src.Lookup(ctx, ref)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())
	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSourceDoesNotCacheFailures(t *testing.T) {
	store := openTestStore(t)
	var calls atomic.Int32
	src := NewSource(store, countingSource(&calls, true), 0, nil)
	ref := catalog.Ref{Kind: catalog.KindRelease, ID: 9}

	_, err := src.Lookup(context.Background(), ref)
	assert.True(t, errors.Is(err, catalog.ErrCatalogLookup))
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSourceWithoutStore(t *testing.T) {
	var calls atomic.Int32
	src := NewSource(nil, countingSource(&calls, false), 0, nil)
	_, err := src.Lookup(context.Background(), catalog.Ref{Kind: catalog.KindRelease, ID: 3})
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}
