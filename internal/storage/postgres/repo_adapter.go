// Package postgres provides a Postgres-backed storage.Store implementation.
// This adapter wires the Postgres backend into the storage-agnostic factory by
// registering a constructor at init time. The CLI (cmd/salesetl) and the jobs
// obtain a Store via storage.New(...) without importing this package directly.
package postgres

import (
	"context"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo implements storage.Store by delegating to the concrete
// *postgres.Repository while providing a Close method that calls the close
// function returned by NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Ensure wrappedRepo satisfies storage.Store at compile time.
var _ storage.Store = (*wrappedRepo)(nil)

// Close implements storage.Store.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Store, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})
}
