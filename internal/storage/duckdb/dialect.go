package duckdb

import (
	"fmt"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// Dialect renders DuckDB SQL.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

func (Dialect) Name() string { return "duckdb" }

func (Dialect) Table(t storage.TableName) string { return storage.QualifiedTable(t) }

func (Dialect) TypeName(k storage.Kind) string {
	switch k {
	case storage.Number:
		return "DECIMAL(38,4)"
	case storage.Integer:
		return "INTEGER"
	case storage.Timestamp:
		return "TIMESTAMP"
	default:
		return "VARCHAR"
	}
}

func (d Dialect) TryNumber(expr string) string {
	return fmt.Sprintf("TRY_CAST(REPLACE(TRIM(CAST(%s AS VARCHAR)), ',', '') AS %s)", expr, d.TypeName(storage.Number))
}

func (Dialect) TryTimestamp(expr string, f cleanse.TimeFormat) string {
	if f.Strftime == "" {
		return fmt.Sprintf("TRY_CAST(%s AS TIMESTAMP)", expr)
	}
	return fmt.Sprintf("try_strptime(TRIM(CAST(%s AS VARCHAR)), %s)", expr, storage.QuoteLiteral(f.Strftime))
}

func (Dialect) Year(expr string) string  { return fmt.Sprintf("CAST(year(%s) AS INTEGER)", expr) }
func (Dialect) Month(expr string) string { return fmt.Sprintf("CAST(month(%s) AS INTEGER)", expr) }

func (Dialect) Now() string { return "CAST(now() AS TIMESTAMP)" }

func (Dialect) Bootstrap(schemas []string) []string {
	out := make([]string, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, "CREATE SCHEMA IF NOT EXISTS "+storage.QuoteIdent(s))
	}
	return out
}

func (d Dialect) CreateTableIfNotExists(t storage.TableName, cols []storage.Column) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.Table(t), storage.ColumnDefs(d, cols))
}

func (d Dialect) Truncate(t storage.TableName) string { return "DELETE FROM " + d.Table(t) }

func (d Dialect) ReplaceTable(t storage.TableName, query string) []string {
	return []string{fmt.Sprintf("CREATE OR REPLACE TABLE %s AS %s", d.Table(t), query)}
}
