// Package storage contains the warehouse-agnostic contracts used by every
// pipeline stage: the Store interface, the SQL Dialect each backend provides,
// and the registry that maps a backend kind ("duckdb", "postgres", ...) to a
// constructor.
//
// Backends register themselves from init functions; importing
// internal/storage/all enables all of them. Callers obtain a Store through
// New and never import driver packages directly.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownBackend is returned by New when no constructor was registered
// for the requested kind.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Store is the opaque queryable warehouse every stage runs against.
type Store interface {
	// Dialect returns the SQL dialect used to render statements for this store.
	Dialect() Dialect

	// Exec runs a statement that returns no rows (DDL, DML).
	Exec(ctx context.Context, sql string) error

	// Query runs a statement and materializes its result set.
	Query(ctx context.Context, sql string) (*Rows, error)

	// CreateOrReplaceTable replaces table with the result of query. The swap
	// is atomic where the engine supports transactional DDL.
	CreateOrReplaceTable(ctx context.Context, table TableName, query string) error

	// CopyFrom bulk-inserts rows (aligned to columns) into table and returns
	// the number of rows written.
	CopyFrom(ctx context.Context, table TableName, columns []string, rows [][]any) (int64, error)

	// Close releases the underlying connection pool.
	Close()
}

// Config carries everything a backend constructor may need. Only Kind is
// interpreted here; the rest is passed through untouched.
type Config struct {
	// Kind selects the backend ("duckdb", "postgres", "sqlite", "mssql", "snowflake").
	Kind string

	// DSN is the driver connection string. For snowflake it may be empty,
	// in which case the discrete identifiers below are used.
	DSN string

	Account   string
	User      string
	Password  string
	Role      string
	Warehouse string
	Database  string
}

// Factory constructs a Store for a given Config.
type Factory func(ctx context.Context, cfg Config) (Store, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind. It is typically
// called from backend packages' init functions.
func Register(kind string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[kind] = f
}

// New opens a Store for cfg.Kind.
func New(ctx context.Context, cfg Config) (Store, error) {
	regMu.RLock()
	f, ok := factories[cfg.Kind]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: %w %q (registered: %v)", ErrUnknownBackend, cfg.Kind, ListKinds())
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered backend kinds in sorted order.
func ListKinds() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Rows is a fully materialized result set.
type Rows struct {
	Columns []string
	Values  [][]any
}

// Len returns the number of rows.
func (r *Rows) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Values)
}

// Index returns the position of column name, or -1.
func (r *Rows) Index(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}
