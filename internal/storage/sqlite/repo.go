// Package sqlite implements a SQLite-backed storage.Store using
// database/sql. Bulk copies run as prepared INSERTs inside a transaction;
// SQLite has no dedicated bulk-load API like Postgres COPY, but a single
// transaction keeps throughput acceptable for moderate volumes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/sqldb"
)

// Repository is a SQLite-backed implementation of storage.Store.
type Repository struct {
	db *sqldb.DB
}

var _ storage.Store = (*Repository)(nil)

// Open opens a SQLite database. A single connection is used so that
// ":memory:" databases are shared by every statement of a run.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// New wraps an already-open database.
func New(db *sql.DB) *Repository {
	return &Repository{db: &sqldb.DB{SQL: db, Dialect: Dialect{}, Label: "sqlite"}}
}

// NewRepository opens a SQLite connection using the provided DSN and returns
// a Repository plus a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := Open(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if err := sqldb.Ping(ctx, db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	r := New(db)
	return r, r.Close, nil
}

// Close closes the underlying database. Closing a Repository built on a nil
// database is a no-op.
func (r *Repository) Close() {
	if r.db != nil && r.db.SQL != nil {
		_ = r.db.SQL.Close()
	}
}

// Dialect implements storage.Store.
func (r *Repository) Dialect() storage.Dialect { return Dialect{} }

// Exec executes an arbitrary SQL statement.
func (r *Repository) Exec(ctx context.Context, sql string) error { return r.db.Exec(ctx, sql) }

// Query executes a statement and materializes its rows.
func (r *Repository) Query(ctx context.Context, sql string) (*storage.Rows, error) {
	return r.db.Query(ctx, sql)
}

// CreateOrReplaceTable drops and recreates t from query in one transaction.
func (r *Repository) CreateOrReplaceTable(ctx context.Context, t storage.TableName, query string) error {
	return r.db.ReplaceTable(ctx, t, query)
}

// CopyFrom inserts the given rows into t using a single transaction and a
// prepared INSERT statement. len(row) must equal len(columns) for every row.
func (r *Repository) CopyFrom(
	ctx context.Context,
	t storage.TableName,
	columns []string,
	rows [][]any,
) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("sqlite: CopyFrom: columns must not be empty")
	}
	if len(rows) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmtSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		Dialect{}.Table(t),
		storage.ColumnList(columns),
		placeholders,
	)

	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, row := range rows {
		if len(row) != len(columns) {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: CopyFrom: row length %d != columns length %d", len(row), len(columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("sqlite: insert: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("sqlite: commit: %w", err)
	}
	return inserted, nil
}
