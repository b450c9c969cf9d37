// Package sqlite implements a SQLite-backed storage.Store.
package sqlite

// Config holds SQLite store configuration derived from storage.Config.
type Config struct {
	// DSN is a SQLite connection string or file path, e.g.:
	//   "file:sales.db?_pragma=busy_timeout(5000)"
	//   ":memory:"
	DSN string
}
