// Package postgres implements a Postgres warehouse using pgx v5. Staging
// loads use COPY; table replacement runs DROP + CREATE TABLE AS inside one
// transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/sqldb"
)

// Config holds Postgres repository configuration.
type Config struct {
	DSN string // connection string for pgxpool
}

// Repository is a Postgres-backed implementation of storage.Store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, sqldb.PingTimeout)
	defer cancel()
	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}
	close := func() { pool.Close() }
	return &Repository{pool: pool}, close, nil
}

// Dialect implements storage.Store.
func (r *Repository) Dialect() storage.Dialect { return Dialect{} }

// Exec implements storage.Store.Exec for Postgres. The simple protocol is
// used so that function bodies and utility statements need no preparation.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if _, err := r.pool.Exec(ctx, sql, pgx.QueryExecModeSimpleProtocol); err != nil {
		return fmt.Errorf("postgres: exec: %w", describe(err))
	}
	return nil
}

// Query runs sql and materializes the result. NUMERIC values are returned as
// float64 so callers see the same types as with the database/sql backends.
func (r *Repository) Query(ctx context.Context, sql string) (*storage.Rows, error) {
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("postgres: query: %w", describe(err))
	}
	defer rows.Close()

	fds := rows.FieldDescriptions()
	out := &storage.Rows{Columns: make([]string, len(fds))}
	for i, fd := range fds {
		out.Columns[i] = fd.Name
	}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("postgres: scan: %w", err)
		}
		for i, v := range vals {
			vals[i] = normalizeValue(v)
		}
		out.Values = append(out.Values, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows: %w", describe(err))
	}
	return out, nil
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case int32:
		return int64(t)
	default:
		return v
	}
}

// CreateOrReplaceTable swaps t for the result of query in one transaction.
func (r *Repository) CreateOrReplaceTable(ctx context.Context, t storage.TableName, query string) error {
	stmts := Dialect{}.ReplaceTable(t, query)
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, s := range stmts {
			if _, err := tx.Exec(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("postgres: replace %s: %w", t, describe(err))
	}
	return nil
}

// CopyFrom streams rows into t with the COPY protocol.
func (r *Repository) CopyFrom(ctx context.Context, t storage.TableName, columns []string, rows [][]any) (int64, error) {
	n, err := r.pool.CopyFrom(ctx, pgx.Identifier{t.Schema, t.Name}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return n, fmt.Errorf("postgres: copy into %s: %w", t, describe(err))
	}
	return n, nil
}

// describe surfaces the server-side detail of a PgError when present.
func describe(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Detail != "" {
		return fmt.Errorf("%w (%s; %s)", err, pgErr.Detail, pgErr.SQLState())
	}
	return err
}
