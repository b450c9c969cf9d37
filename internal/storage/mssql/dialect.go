package mssql

import (
	"fmt"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// Dialect renders T-SQL. Templates use ANSI double-quoted identifiers, which
// SQL Server accepts with QUOTED_IDENTIFIER ON (the driver's session default).
type Dialect struct{}

var _ storage.Dialect = Dialect{}

// convertStyles maps a source time format to its CONVERT style code.
var convertStyles = map[string]int{
	cleanse.DayMonthYear.Name: 105, // dd-mm-yyyy
	cleanse.USDateTime.Name:   101, // mm/dd/yyyy
}

const textType = "NVARCHAR(4000)"

func (Dialect) Name() string { return "mssql" }

func (Dialect) Table(t storage.TableName) string { return storage.QualifiedTable(t) }

func (Dialect) TypeName(k storage.Kind) string {
	switch k {
	case storage.Number:
		return "DECIMAL(38,4)"
	case storage.Integer:
		return "INT"
	case storage.Timestamp:
		return "DATETIME2"
	default:
		return textType
	}
}

func (d Dialect) TryNumber(expr string) string {
	return fmt.Sprintf("TRY_CONVERT(%s, REPLACE(LTRIM(RTRIM(CAST(%s AS %s))), ',', ''))",
		d.TypeName(storage.Number), expr, textType)
}

func (Dialect) TryTimestamp(expr string, f cleanse.TimeFormat) string {
	if f.Name == cleanse.MonthLabel.Name {
		// "Apr-18" -> "01 Apr 18", style 6 is "dd mon yy".
		return fmt.Sprintf("TRY_CONVERT(DATETIME2, '01 ' + REPLACE(CAST(%s AS %s), '-', ' '), 6)", expr, textType)
	}
	if style, ok := convertStyles[f.Name]; ok {
		return fmt.Sprintf("TRY_CONVERT(DATETIME2, %s, %d)", expr, style)
	}
	return fmt.Sprintf("TRY_CONVERT(DATETIME2, %s)", expr)
}

func (Dialect) Year(expr string) string  { return fmt.Sprintf("YEAR(%s)", expr) }
func (Dialect) Month(expr string) string { return fmt.Sprintf("MONTH(%s)", expr) }

func (Dialect) Now() string { return "SYSDATETIME()" }

func (Dialect) Bootstrap(schemas []string) []string {
	out := make([]string, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, fmt.Sprintf("IF SCHEMA_ID(%s) IS NULL EXEC('CREATE SCHEMA %s')",
			storage.QuoteLiteral(s), msIdent(s)))
	}
	return out
}

func (d Dialect) CreateTableIfNotExists(t storage.TableName, cols []storage.Column) string {
	return fmt.Sprintf("IF OBJECT_ID(%s, 'U') IS NULL CREATE TABLE %s (%s)",
		storage.QuoteLiteral(msFQN(t)), d.Table(t), storage.ColumnDefs(d, cols))
}

func (d Dialect) Truncate(t storage.TableName) string { return "TRUNCATE TABLE " + d.Table(t) }

// ReplaceTable uses SELECT ... INTO, SQL Server's form of CREATE TABLE AS.
func (d Dialect) ReplaceTable(t storage.TableName, query string) []string {
	return []string{
		"DROP TABLE IF EXISTS " + d.Table(t),
		fmt.Sprintf("SELECT * INTO %s FROM (%s) AS src", d.Table(t), query),
	}
}
