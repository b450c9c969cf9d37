package snowflake

import (
	"fmt"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// Dialect renders Snowflake SQL. Snowflake provides every non-throwing
// parse natively.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

func (Dialect) Name() string { return "snowflake" }

func (Dialect) Table(t storage.TableName) string { return storage.QualifiedTable(t) }

func (Dialect) TypeName(k storage.Kind) string {
	switch k {
	case storage.Number:
		return "NUMBER(38,4)"
	case storage.Integer:
		return "INTEGER"
	case storage.Timestamp:
		return "TIMESTAMP_NTZ"
	default:
		return "VARCHAR"
	}
}

func (Dialect) TryNumber(expr string) string {
	return fmt.Sprintf("TRY_TO_NUMBER(REPLACE(TRIM(CAST(%s AS VARCHAR)), ',', ''), 38, 4)", expr)
}

func (Dialect) TryTimestamp(expr string, f cleanse.TimeFormat) string {
	if f.Strftime == "" {
		return fmt.Sprintf("TRY_TO_TIMESTAMP_NTZ(CAST(%s AS VARCHAR))", expr)
	}
	return fmt.Sprintf("TRY_TO_TIMESTAMP_NTZ(CAST(%s AS VARCHAR), %s)", expr, storage.QuoteLiteral(f.Pattern))
}

func (Dialect) Year(expr string) string  { return fmt.Sprintf("YEAR(%s)", expr) }
func (Dialect) Month(expr string) string { return fmt.Sprintf("MONTH(%s)", expr) }

func (Dialect) Now() string { return "CAST(CURRENT_TIMESTAMP() AS TIMESTAMP_NTZ)" }

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

func (d Dialect) Truncate(t storage.TableName) string { return "TRUNCATE TABLE " + d.Table(t) }

func (d Dialect) ReplaceTable(t storage.TableName, query string) []string {
	return []string{fmt.Sprintf("CREATE OR REPLACE TABLE %s AS %s", d.Table(t), query)}
}
