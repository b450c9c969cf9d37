package storage

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
)

// Statement templates are plain SQL with ANSI-quoted identifiers plus a small
// set of dialect functions:
//
//	{{table "RAW" "INDIA_ORDERS"}}        qualified table
//	{{num "\"AMOUNT\""}}                  non-throwing numeric parse
//	{{ts "\"ORDER_DATE\"" "iso"}}         non-throwing timestamp parse
//	{{year X}} {{month X}}                calendar parts
//	{{now}}                               load timestamp
//	{{null "number"}}                     typed NULL
//	{{cast X "number"}}                   typed cast
//	{{lit "India"}}                       string literal
//	{{q "COL"}}                           quoted identifier
//
// Templates are parsed once against placeholder functions and rendered per
// dialect through Render.

var placeholderFuncs = template.FuncMap{
	"table": func(schema, name string) string { return "" },
	"num":   func(expr string) string { return "" },
	"ts":    func(expr, format string) (string, error) { return "", nil },
	"year":  func(expr string) string { return "" },
	"month": func(expr string) string { return "" },
	"now":   func() string { return "" },
	"null":  func(kind string) string { return "" },
	"cast":  func(expr, kind string) string { return "" },
	"lit":   QuoteLiteral,
	"q":     QuoteIdent,
}

// ParseTemplate parses a statement template.
func ParseTemplate(name, text string) (*template.Template, error) {
	return template.New(name).Funcs(placeholderFuncs).Parse(text)
}

// NewTemplate is ParseTemplate for package-level variables; it panics on
// syntax errors.
func NewTemplate(name, text string) *template.Template {
	return template.Must(ParseTemplate(name, text))
}

// FuncMap binds the template functions to d.
func FuncMap(d Dialect) template.FuncMap {
	return template.FuncMap{
		"table": func(schema, name string) string { return d.Table(TableName{Schema: schema, Name: name}) },
		"num":   d.TryNumber,
		"ts": func(expr, format string) (string, error) {
			f, ok := cleanse.LookupTimeFormat(format)
			if !ok {
				return "", fmt.Errorf("unknown time format %q", format)
			}
			return d.TryTimestamp(expr, f), nil
		},
		"year":  d.Year,
		"month": d.Month,
		"now":   d.Now,
		"null":  func(kind string) string { return fmt.Sprintf("CAST(NULL AS %s)", d.TypeName(Kind(kind))) },
		"cast":  func(expr, kind string) string { return fmt.Sprintf("CAST(%s AS %s)", expr, d.TypeName(Kind(kind))) },
		"lit":   QuoteLiteral,
		"q":     QuoteIdent,
	}
}

// Render executes t against data using d's functions.
func Render(d Dialect, t *template.Template, data any) (string, error) {
	c, err := t.Clone()
	if err != nil {
		return "", fmt.Errorf("render %s: clone: %w", t.Name(), err)
	}
	var b strings.Builder
	if err := c.Funcs(FuncMap(d)).Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return strings.TrimSpace(b.String()), nil
}
