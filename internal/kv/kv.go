package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("kv: key not found")

	// ErrVersionConflict is returned by Put when the stored version is not
	// the expected one.
	ErrVersionConflict = errors.New("kv: version conflict")
)

// Entry is a stored value and the version it was written at.
type Entry struct {
	Key     string `db:"name"`
	Value   string `db:"value"`
	Version int64  `db:"version"`
}

// Store is a versioned string map.
type Store interface {
	// Get returns the entry for key, or ErrNotFound.
	Get(ctx context.Context, key string) (Entry, error)

	// Put writes value under key if the stored version equals expect.
	// An expect of 0 means the key must not exist. Returns the new version,
	// or ErrVersionConflict.
	Put(ctx context.Context, key, value string, expect int64) (int64, error)

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the store.
	Close() error
}
