package storage

import (
	"fmt"
	"strings"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
)

// Kind is the logical type of a column, mapped to a physical type by each
// Dialect.
type Kind string

const (
	Text      Kind = "text"
	Number    Kind = "number"
	Timestamp Kind = "timestamp"
	Integer   Kind = "integer"
)

// Column describes one column of a table definition.
type Column struct {
	Name string
	Kind Kind
}

// TableName is a schema-qualified table reference. Schema is one of the
// warehouse layers (STAGING, RAW, TRANSFORMED, CURATED).
type TableName struct {
	Schema string
	Name   string
}

func (t TableName) String() string { return t.Schema + "." + t.Name }

// Dialect renders the engine-specific fragments of otherwise portable SQL.
// Identifiers in templates use ANSI double quotes, which every supported
// engine accepts; only functions, types and DDL shapes differ.
type Dialect interface {
	// Name is the backend kind this dialect belongs to.
	Name() string

	// Table renders a quoted, qualified table reference.
	Table(t TableName) string

	// TypeName maps a logical kind to the engine's column type.
	TypeName(k Kind) string

	// TryNumber renders a non-throwing numeric parse of expr that strips
	// thousands separators and yields NULL on failure.
	TryNumber(expr string) string

	// TryTimestamp renders a non-throwing timestamp parse of expr using f.
	TryTimestamp(expr string, f cleanse.TimeFormat) string

	// Year and Month extract calendar parts as integers.
	Year(expr string) string
	Month(expr string) string

	// Now renders the current load timestamp.
	Now() string

	// Bootstrap returns the idempotent statements that prepare a fresh
	// warehouse: schemas and any helper functions the dialect relies on.
	Bootstrap(schemas []string) []string

	// CreateTableIfNotExists renders DDL that creates t when missing.
	CreateTableIfNotExists(t TableName, cols []Column) string

	// Truncate renders a statement that removes every row of t.
	Truncate(t TableName) string

	// ReplaceTable renders the statement sequence that overwrites t with
	// the result of query. Stores run the sequence in one transaction.
	ReplaceTable(t TableName, query string) []string
}

// QuoteIdent quotes an identifier with ANSI double quotes.
func QuoteIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }

// QuoteLiteral quotes a string literal with single quotes.
func QuoteLiteral(s string) string { return "'" + strings.ReplaceAll(s, "'", "''") + "'" }

// QualifiedTable renders "SCHEMA"."NAME".
func QualifiedTable(t TableName) string {
	if t.Schema == "" {
		return QuoteIdent(t.Name)
	}
	return QuoteIdent(t.Schema) + "." + QuoteIdent(t.Name)
}

// ColumnList renders a comma-separated list of quoted identifiers.
func ColumnList(cols []string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = QuoteIdent(c)
	}
	return strings.Join(out, ", ")
}

// ColumnDefs renders "name type" pairs for a CREATE TABLE body.
func ColumnDefs(d Dialect, cols []Column) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = fmt.Sprintf("%s %s", QuoteIdent(c.Name), d.TypeName(c.Kind))
	}
	return strings.Join(out, ", ")
}

// Names returns the column names of cols.
func Names(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}
