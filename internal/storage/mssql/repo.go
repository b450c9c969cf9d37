// Package mssql implements a Microsoft SQL Server warehouse using
// go-mssqldb. Staging loads use the driver's bulk copy API.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/sqldb"
)

// Config holds MSSQL repository configuration.
type Config struct {
	DSN string
}

// Repository is an MSSQL-backed implementation of storage.Store.
type Repository struct {
	db *sqldb.DB
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql dsn: %w", err)
	}
	db, err := sql.Open("sqlserver", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := sqldb.Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping: %w", err)
	}
	close := func() { _ = db.Close() }
	return &Repository{db: &sqldb.DB{SQL: db, Dialect: Dialect{}, Label: "mssql"}}, close, nil
}

func (r *Repository) Dialect() storage.Dialect { return Dialect{} }

func (r *Repository) Exec(ctx context.Context, sqlText string) error {
	return r.db.Exec(ctx, sqlText)
}

func (r *Repository) Query(ctx context.Context, sqlText string) (*storage.Rows, error) {
	return r.db.Query(ctx, sqlText)
}

func (r *Repository) CreateOrReplaceTable(ctx context.Context, t storage.TableName, query string) error {
	return r.db.ReplaceTable(ctx, t, query)
}

// CopyFrom bulk-inserts rows into t inside one transaction.
func (r *Repository) CopyFrom(ctx context.Context, t storage.TableName, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	rollback := func() { _ = tx.Rollback() }

	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(msFQN(t), mssql.BulkOptions{}, columns...))
	if err != nil {
		rollback()
		return 0, fmt.Errorf("prepare bulk: %w", err)
	}
	for i := range rows {
		if _, err := stmt.ExecContext(ctx, rows[i]...); err != nil {
			_ = stmt.Close()
			rollback()
			return 0, fmt.Errorf("bulk row %d: %w", i, err)
		}
	}
	res, err := stmt.ExecContext(ctx)
	if cerr := stmt.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		rollback()
		return 0, fmt.Errorf("bulk finalize: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		rollback()
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func msIdent(id string) string { return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]` }

// msFQN renders t with bracketed segments, the form the bulk copy API and
// OBJECT_ID expect.
func msFQN(t storage.TableName) string {
	if t.Schema == "" {
		return msIdent(t.Name)
	}
	return msIdent(t.Schema) + "." + msIdent(t.Name)
}
