// Package cleanse holds the non-throwing value parsers shared by the Go side
// of the pipeline: locale-formatted numbers and the fixed set of source
// timestamp formats. Dialects render the same rules in SQL; backends without
// native equivalents (SQLite) call these functions directly.
package cleanse

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ThousandsSeparator is stripped from numeric strings before parsing.
const ThousandsSeparator = ","

// maxNumber is the exclusive bound of a DECIMAL(38,4) value.
var maxNumber = decimal.New(1, 34)

// ParseNumber parses a locale-formatted number such as "1,200.50".
// It returns ok=false for empty or unparseable input, and for values that
// do not fit DECIMAL(38,4), instead of an error.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ThousandsSeparator, ""))
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.Abs().Cmp(maxNumber) >= 0 {
		return decimal.Decimal{}, false
	}
	return d, true
}

// NumberOrNil is ParseNumber for driver values: it returns a float64 or nil.
func NumberOrNil(v any) any {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	case []byte:
		s = string(t)
	case int64:
		return float64(t)
	case float64:
		return t
	default:
		return nil
	}
	d, ok := ParseNumber(s)
	if !ok {
		return nil
	}
	return d.InexactFloat64()
}
