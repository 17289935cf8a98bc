// Package drafts keeps saved invoices in local storage.
//
// The whole collection lives under a single key as one JSON array, in
// insertion order. Every mutation rewrites the array. Writes from this
// process go through one mutex; writes from other processes are caught by
// the key's version and the mutation is re-applied on the fresh collection.
package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/invoify/internal/invoice"
	"github.com/roach88/invoify/internal/kv"
)

// CollectionKey is the storage key holding the invoice collection.
const CollectionKey = "invoices"

// maxWriteAttempts bounds how often a mutation is retried after losing a
// version race to another writer.
const maxWriteAttempts = 5

var (
	// ErrNotFound is returned when no saved invoice has the number.
	ErrNotFound = errors.New("drafts: invoice not found")

	// ErrConflict is returned when a write kept losing to concurrent writers.
	ErrConflict = errors.New("drafts: concurrent modification")
)

// Store is the draft store.
type Store struct {
	kv     kv.Store
	logger *slog.Logger

	mu sync.Mutex // single writer within the process
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New returns a draft store over the given key-value store.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{kv: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save appends inv to the collection. The stored record is a serialized
// copy; later changes to inv do not affect it.
func (s *Store) Save(ctx context.Context, inv *invoice.Invoice) error {
	err := s.mutate(ctx, func(all []invoice.Invoice) ([]invoice.Invoice, error) {
		return append(all, *inv), nil
	})
	if err != nil {
		return fmt.Errorf("save invoice %q: %w", inv.Number(), err)
	}
	s.logger.Debug("invoice saved", "number", inv.Number())
	return nil
}

// List returns every saved invoice in insertion order. A missing or
// unreadable collection yields an empty slice.
func (s *Store) List(ctx context.Context) ([]invoice.Invoice, error) {
	all, _, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return all, nil
}

// Count returns the number of saved invoices.
func (s *Store) Count(ctx context.Context) (int, error) {
	all, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

// FindByNumber returns the first saved invoice whose number equals number
// exactly, or ErrNotFound.
func (s *Store) FindByNumber(ctx context.Context, number string) (invoice.Invoice, error) {
	all, err := s.List(ctx)
	if err != nil {
		return invoice.Invoice{}, err
	}
	for _, inv := range all {
		if inv.Number() == number {
			return inv, nil
		}
	}
	return invoice.Invoice{}, fmt.Errorf("%w: %q", ErrNotFound, number)
}

// DeleteByNumber removes every saved invoice whose number equals number
// exactly and reports how many were removed.
func (s *Store) DeleteByNumber(ctx context.Context, number string) (int, error) {
	var removed int
	err := s.mutate(ctx, func(all []invoice.Invoice) ([]invoice.Invoice, error) {
		kept := make([]invoice.Invoice, 0, len(all))
		removed = 0
		for _, inv := range all {
			if inv.Number() == number {
				removed++
				continue
			}
			kept = append(kept, inv)
		}
		return kept, nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete invoice %q: %w", number, err)
	}
	s.logger.Debug("invoices deleted", "number", number, "removed", removed)
	return removed, nil
}

// ClearAll removes the whole collection.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, CollectionKey); err != nil {
		return fmt.Errorf("clear invoices: %w", err)
	}
	s.logger.Debug("invoices cleared")
	return nil
}

// mutate applies fn to the current collection and writes the result back,
// re-reading and re-applying when another writer got there first.
func (s *Store) mutate(ctx context.Context, fn func([]invoice.Invoice) ([]invoice.Invoice, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		all, version, err := s.load(ctx)
		if err != nil {
			return err
		}
		next, err := fn(all)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode collection: %w", err)
		}

		_, err = s.kv.Put(ctx, CollectionKey, string(data), version)
		if err == nil {
			return nil
		}
		if !errors.Is(err, kv.ErrVersionConflict) {
			return err
		}
		s.logger.Debug("collection changed underneath, retrying", "attempt", attempt)
	}
	return ErrConflict
}

// load reads the collection and the version it was read at. Version 0 means
// the key is absent. A corrupt value is logged and treated as empty, keeping
// its version so the next write replaces it.
func (s *Store) load(ctx context.Context) ([]invoice.Invoice, int64, error) {
	entry, err := s.kv.Get(ctx, CollectionKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []invoice.Invoice{}, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	var all []invoice.Invoice
	if err := json.Unmarshal([]byte(entry.Value), &all); err != nil {
		s.logger.Warn("stored invoice collection is unreadable, treating as empty", "error", err)
		return []invoice.Invoice{}, entry.Version, nil
	}
	if all == nil {
		all = []invoice.Invoice{}
	}
	return all, entry.Version, nil
}
