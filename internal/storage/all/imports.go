// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories with the storage package.
//
// Importing this package makes the following storage kinds available:
//
//   - "duckdb"    (internal/storage/duckdb), the default
//   - "postgres"  (internal/storage/postgres)
//   - "mssql"     (internal/storage/mssql)
//   - "sqlite"    (internal/storage/sqlite)
//   - "snowflake" (internal/storage/snowflake)
//
// Typical usage (in cmd/salesetl or a similar wiring layer):
//
//	import _ "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/all"
//
//	store, err := storage.New(ctx, storage.Config{Kind: cfg.Backend, DSN: cfg.DSN})
//	if err != nil {
//	    // handle error
//	}
//	defer store.Close()
//
// If you want a binary that supports only a subset of backends, define an
// alternative wiring package that imports only the required backends.
package all

import (
	_ "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/duckdb"
	_ "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/mssql"
	_ "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/postgres"
	_ "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/snowflake"
	_ "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/sqlite"
)
