package postgres

import (
	"fmt"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// Dialect renders PostgreSQL SQL. Non-throwing parses are provided by two
// plpgsql helper functions created in Bootstrap.
type Dialect struct{}

var _ storage.Dialect = Dialect{}

// helperFunctions are created by Bootstrap. Both swallow conversion errors
// and return NULL. try_to_number also rejects NaN, infinities and values
// outside NUMERIC(38,4), casting inside the handler so overflow is caught.
var helperFunctions = []string{
	`CREATE OR REPLACE FUNCTION try_to_number(v text) RETURNS numeric AS $$
DECLARE
  s text := TRIM(REPLACE(v, ',', ''));
BEGIN
  IF s IS NULL OR s = '' OR LOWER(LTRIM(s, '+-')) IN ('nan', 'inf', 'infinity') THEN
    RETURN NULL;
  END IF;
  RETURN s::numeric(38,4);
EXCEPTION WHEN others THEN
  RETURN NULL;
END;
$$ LANGUAGE plpgsql IMMUTABLE`,
	`CREATE OR REPLACE FUNCTION try_to_timestamp(v text, fmt text) RETURNS timestamp AS $$
BEGIN
  IF v IS NULL OR TRIM(v) = '' THEN
    RETURN NULL;
  END IF;
  IF fmt = '' THEN
    RETURN TRIM(v)::timestamp;
  END IF;
  RETURN to_timestamp(TRIM(v), fmt)::timestamp;
EXCEPTION WHEN others THEN
  RETURN NULL;
END;
$$ LANGUAGE plpgsql IMMUTABLE`,
}

func (Dialect) Name() string { return "postgres" }

func (Dialect) Table(t storage.TableName) string { return storage.QualifiedTable(t) }

func (Dialect) TypeName(k storage.Kind) string {
	switch k {
	case storage.Number:
		return "NUMERIC(38,4)"
	case storage.Integer:
		return "INTEGER"
	case storage.Timestamp:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

func (d Dialect) TryNumber(expr string) string {
	return fmt.Sprintf("CAST(try_to_number(CAST(%s AS TEXT)) AS %s)", expr, d.TypeName(storage.Number))
}

// TryTimestamp passes the to_timestamp pattern; ISO input (no strftime
// pattern) is cast directly.
func (Dialect) TryTimestamp(expr string, f cleanse.TimeFormat) string {
	pattern := f.Pattern
	if f.Strftime == "" {
		pattern = ""
	}
	return fmt.Sprintf("try_to_timestamp(CAST(%s AS TEXT), %s)", expr, storage.QuoteLiteral(pattern))
}

func (Dialect) Year(expr string) string {
	return fmt.Sprintf("CAST(EXTRACT(YEAR FROM %s) AS INTEGER)", expr)
}

func (Dialect) Month(expr string) string {
	return fmt.Sprintf("CAST(EXTRACT(MONTH FROM %s) AS INTEGER)", expr)
}

func (Dialect) Now() string { return "LOCALTIMESTAMP" }

func (Dialect) Bootstrap(schemas []string) []string {
	out := make([]string, 0, len(schemas)+len(helperFunctions))
	for _, s := range schemas {
		out = append(out, "CREATE SCHEMA IF NOT EXISTS "+storage.QuoteIdent(s))
	}
	return append(out, helperFunctions...)
}

func (d Dialect) CreateTableIfNotExists(t storage.TableName, cols []storage.Column) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.Table(t), storage.ColumnDefs(d, cols))
}

func (d Dialect) Truncate(t storage.TableName) string { return "TRUNCATE TABLE " + d.Table(t) }

// ReplaceTable relies on transactional DDL: readers never observe the table
// missing.
func (d Dialect) ReplaceTable(t storage.TableName, query string) []string {
	return []string{
		"DROP TABLE IF EXISTS " + d.Table(t),
		fmt.Sprintf("CREATE TABLE %s AS %s", d.Table(t), query),
	}
}
