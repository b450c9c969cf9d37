// Package duckdb implements the default warehouse on an embedded DuckDB
// database. DDL and queries go through database/sql; staging loads use the
// native Appender on a dedicated connection from the same connector.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math/big"
	"sync"

	duckdb "github.com/duckdb/duckdb-go/v2"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/sqldb"
)

// Config holds DuckDB repository configuration. An empty DSN opens an
// in-memory database.
type Config struct {
	DSN string
}

// Repository is a DuckDB-backed implementation of storage.Store.
type Repository struct {
	db *sqldb.DB

	// mu serializes appenders on the native connection.
	mu   sync.Mutex
	conn *duckdb.Conn
}

// NewRepository opens the database and a native connection for the Appender
// API, and returns a Close function releasing both.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	connector, err := duckdb.NewConnector(cfg.DSN, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("duckdb: connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := sqldb.Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("duckdb: ping: %w", err)
	}

	raw, err := connector.Connect(ctx)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("duckdb: native connection: %w", err)
	}
	conn, ok := raw.(*duckdb.Conn)
	if !ok {
		_ = raw.Close()
		_ = db.Close()
		return nil, nil, fmt.Errorf("duckdb: unexpected connection type %T", raw)
	}

	r := &Repository{
		db:   &sqldb.DB{SQL: db, Dialect: Dialect{}, Label: "duckdb"},
		conn: conn,
	}
	closeFn := func() {
		_ = conn.Close()
		_ = db.Close()
		_ = connector.Close()
	}
	return r, closeFn, nil
}

func (r *Repository) Dialect() storage.Dialect { return Dialect{} }

func (r *Repository) Exec(ctx context.Context, sql string) error { return r.db.Exec(ctx, sql) }

// Query materializes the result. DECIMAL and HUGEINT values are converted so
// callers see float64 and int64 like the other backends.
func (r *Repository) Query(ctx context.Context, sql string) (*storage.Rows, error) {
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	for _, row := range rows.Values {
		for i, v := range row {
			row[i] = normalizeValue(v)
		}
	}
	return rows, nil
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case duckdb.Decimal:
		return t.Float64()
	case *big.Int:
		if t.IsInt64() {
			return t.Int64()
		}
		f, _ := new(big.Float).SetInt(t).Float64()
		return f
	case int32:
		return int64(t)
	default:
		return v
	}
}

func (r *Repository) CreateOrReplaceTable(ctx context.Context, t storage.TableName, query string) error {
	return r.db.ReplaceTable(ctx, t, query)
}

// CopyFrom appends rows to t with a DuckDB Appender. The appender writes
// every column of the table, so columns must list them all in table order.
func (r *Repository) CopyFrom(ctx context.Context, t storage.TableName, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	app, err := duckdb.NewAppenderFromConn(r.conn, t.Schema, t.Name)
	if err != nil {
		return 0, fmt.Errorf("duckdb: appender %s: %w", t, err)
	}
	var n int64
	vals := make([]driver.Value, len(columns))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			_ = app.Close()
			return n, err
		}
		if len(row) != len(columns) {
			_ = app.Close()
			return n, fmt.Errorf("duckdb: row %d: length %d != columns length %d", i, len(row), len(columns))
		}
		for j, v := range row {
			vals[j] = v
		}
		if err := app.AppendRow(vals...); err != nil {
			_ = app.Close()
			return n, fmt.Errorf("duckdb: append row %d: %w", i, err)
		}
		n++
	}
	if err := app.Close(); err != nil {
		return 0, fmt.Errorf("duckdb: flush %s: %w", t, err)
	}
	return n, nil
}
