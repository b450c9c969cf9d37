// Package snowflake implements a Snowflake warehouse using gosnowflake.
// Staging loads are batched multi-row INSERTs with bind parameters.
package snowflake

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/snowflakedb/gosnowflake"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/sqldb"
)

// DefaultDatabase is used when no database is configured.
const DefaultDatabase = "SNOWPARK_DB"

// Config holds the Snowflake connection identifiers. When DSN is set it is
// used as-is and the discrete fields are ignored.
type Config struct {
	DSN       string
	Account   string
	User      string
	Password  string
	Role      string
	Warehouse string
	Database  string
}

// dsn renders cfg as a gosnowflake connection string.
func (cfg Config) dsn() (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	db := cfg.Database
	if db == "" {
		db = DefaultDatabase
	}
	return gosnowflake.DSN(&gosnowflake.Config{
		Account:   cfg.Account,
		User:      cfg.User,
		Password:  cfg.Password,
		Role:      cfg.Role,
		Warehouse: cfg.Warehouse,
		Database:  db,
	})
}

// Repository is a Snowflake-backed implementation of storage.Store.
type Repository struct {
	db *sqldb.DB
}

// NewRepository connects to Snowflake and returns a Close function.
// Credentials are checked only by the connection attempt itself.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	dsn, err := cfg.dsn()
	if err != nil {
		return nil, nil, fmt.Errorf("snowflake: dsn: %w", err)
	}
	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("snowflake: open: %w", err)
	}
	if err := sqldb.Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("snowflake: ping: %w", err)
	}
	close := func() { _ = db.Close() }
	return &Repository{db: &sqldb.DB{SQL: db, Dialect: Dialect{}, Label: "snowflake"}}, close, nil
}

func (r *Repository) Dialect() storage.Dialect { return Dialect{} }

func (r *Repository) Exec(ctx context.Context, sql string) error { return r.db.Exec(ctx, sql) }

func (r *Repository) Query(ctx context.Context, sql string) (*storage.Rows, error) {
	return r.db.Query(ctx, sql)
}

func (r *Repository) CreateOrReplaceTable(ctx context.Context, t storage.TableName, query string) error {
	return r.db.ReplaceTable(ctx, t, query)
}

func (r *Repository) CopyFrom(ctx context.Context, t storage.TableName, columns []string, rows [][]any) (int64, error) {
	return r.db.InsertRows(ctx, t, columns, rows)
}
