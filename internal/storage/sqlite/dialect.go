package sqlite

import (
	"fmt"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// Dialect renders SQLite SQL. SQLite has no schemas, so layer-qualified
// names are flattened to "<SCHEMA>_<NAME>"; timestamps are stored as text
// in cleanse.CanonicalLayout.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

func (Dialect) Name() string { return "sqlite" }

func (Dialect) Table(t storage.TableName) string {
	if t.Schema == "" {
		return storage.QuoteIdent(t.Name)
	}
	return storage.QuoteIdent(t.Schema + "_" + t.Name)
}

func (Dialect) TypeName(k storage.Kind) string {
	switch k {
	case storage.Number:
		return "REAL"
	case storage.Integer:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func (Dialect) TryNumber(expr string) string { return fmt.Sprintf("try_to_number(%s)", expr) }

func (Dialect) TryTimestamp(expr string, f cleanse.TimeFormat) string {
	return fmt.Sprintf("try_to_timestamp(%s, %s)", expr, storage.QuoteLiteral(f.Layouts[0]))
}

func (Dialect) Year(expr string) string {
	return fmt.Sprintf("CAST(strftime('%%Y', %s) AS INTEGER)", expr)
}

func (Dialect) Month(expr string) string {
	return fmt.Sprintf("CAST(strftime('%%m', %s) AS INTEGER)", expr)
}

func (Dialect) Now() string { return "CURRENT_TIMESTAMP" }

func (Dialect) Bootstrap([]string) []string { return nil }

func (d Dialect) CreateTableIfNotExists(t storage.TableName, cols []storage.Column) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.Table(t), storage.ColumnDefs(d, cols))
}

func (d Dialect) Truncate(t storage.TableName) string { return "DELETE FROM " + d.Table(t) }

func (d Dialect) ReplaceTable(t storage.TableName, query string) []string {
	return []string{
		"DROP TABLE IF EXISTS " + d.Table(t),
		fmt.Sprintf("CREATE TABLE %s AS %s", d.Table(t), query),
	}
}
