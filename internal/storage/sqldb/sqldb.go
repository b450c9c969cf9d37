// Package sqldb implements the parts of storage.Store that are identical for
// every database/sql backend (sqlite, mssql, duckdb, snowflake): statement
// execution, result materialization, transactional table replacement and a
// batched multi-row INSERT fallback for bulk copies.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// DB wraps a *sql.DB together with the dialect used to render DDL.
type DB struct {
	SQL     *sql.DB
	Dialect storage.Dialect
	// Label prefixes error messages, e.g. "sqlite".
	Label string
}

// Exec runs a statement that returns no rows.
func (d *DB) Exec(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	if _, err := d.SQL.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%s: exec: %w", d.Label, err)
	}
	return nil
}

// Query runs a statement and materializes every row.
func (d *DB) Query(ctx context.Context, query string) (*storage.Rows, error) {
	rows, err := d.SQL.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", d.Label, err)
	}
	defer rows.Close()
	out, err := Scan(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", d.Label, err)
	}
	return out, nil
}

// Scan drains rows into a storage.Rows. Byte slices are returned as strings
// so callers see the same Go types regardless of driver.
func Scan(rows *sql.Rows) (*storage.Rows, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	out := &storage.Rows{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out.Values = append(out.Values, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// ReplaceTable runs the dialect's replace sequence inside one transaction.
func (d *DB) ReplaceTable(ctx context.Context, t storage.TableName, query string) error {
	stmts := d.Dialect.ReplaceTable(t, query)
	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx: %w", d.Label, err)
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%s: replace %s: %w", d.Label, t, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", d.Label, err)
	}
	return nil
}

// PingTimeout bounds the initial connectivity check of every backend.
const PingTimeout = 10 * time.Second

// Ping fails fast on unreachable databases.
func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	return db.PingContext(ctx)
}

// MaxParams caps bind parameters per INSERT statement; SQLite's historical
// default limit is 999.
const MaxParams = 999

// InsertRows writes rows with multi-row INSERT statements inside a single
// transaction, using "?" placeholders.
func (d *DB) InsertRows(ctx context.Context, t storage.TableName, columns []string, rows [][]any) (int64, error) {
	if len(columns) == 0 {
		return 0, fmt.Errorf("%s: insert: columns must not be empty", d.Label)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	perStmt := MaxParams / len(columns)
	if perStmt < 1 {
		perStmt = 1
	}

	tx, err := d.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin tx: %w", d.Label, err)
	}
	rowPH := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
	prefix := fmt.Sprintf("INSERT INTO %s (%s) VALUES ", d.Dialect.Table(t), storage.ColumnList(columns))

	var inserted int64
	for startIx := 0; startIx < len(rows); startIx += perStmt {
		end := startIx + perStmt
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[startIx:end]
		phs := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*len(columns))
		for i, r := range chunk {
			if len(r) != len(columns) {
				_ = tx.Rollback()
				return inserted, fmt.Errorf("%s: insert: row length %d != columns length %d", d.Label, len(r), len(columns))
			}
			phs[i] = rowPH
			args = append(args, r...)
		}
		if _, err := tx.ExecContext(ctx, prefix+strings.Join(phs, ", "), args...); err != nil {
			_ = tx.Rollback()
			return inserted, fmt.Errorf("%s: insert: %w", d.Label, err)
		}
		inserted += int64(len(chunk))
	}
	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("%s: commit: %w", d.Label, err)
	}
	return inserted, nil
}
