package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stores returns one fresh instance of every Store implementation.
func stores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestStore_GetMissing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "absent")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v1, err := s.Put(ctx, "k", "one", 0)
			require.NoError(t, err)
			assert.Positive(t, v1)

			e, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, Entry{Key: "k", Value: "one", Version: v1}, e)

			v2, err := s.Put(ctx, "k", "two", v1)
			require.NoError(t, err)
			assert.Greater(t, v2, v1)

			e, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "two", e.Value)
		})
	}
}

func TestStore_PutConflict(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v1, err := s.Put(ctx, "k", "one", 0)
			require.NoError(t, err)

			// key exists, so "must not exist" fails
			_, err = s.Put(ctx, "k", "again", 0)
			assert.ErrorIs(t, err, ErrVersionConflict)

			_, err = s.Put(ctx, "k", "two", v1)
			require.NoError(t, err)

			// stale version
			_, err = s.Put(ctx, "k", "three", v1)
			assert.ErrorIs(t, err, ErrVersionConflict)

			e, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "two", e.Value)
		})
	}
}

func TestStore_VersionNotReusedAfterRemove(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			v1, err := s.Put(ctx, "k", "one", 0)
			require.NoError(t, err)
			require.NoError(t, s.Remove(ctx, "k"))

			v2, err := s.Put(ctx, "k", "one again", 0)
			require.NoError(t, err)
			assert.NotEqual(t, v1, v2)

			// a writer holding the pre-removal version must not win
			_, err = s.Put(ctx, "k", "stale", v1)
			assert.ErrorIs(t, err, ErrVersionConflict)
		})
	}
}

func TestStore_RemoveIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Remove(ctx, "never-written"))

			_, err := s.Put(ctx, "k", "v", 0)
			require.NoError(t, err)
			require.NoError(t, s.Remove(ctx, "k"))
			require.NoError(t, s.Remove(ctx, "k"))

			_, err = s.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}
