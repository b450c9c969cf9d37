package curate

import (
	"strings"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// countryAliases are the source spellings replaced before aggregation.
var countryAliases = []struct{ From, To string }{
	{"USA", "United States"},
	{"EIRE", "Ireland"},
	{"Unspecified", "Unknown"},
	{"European Community", "Europe"},
}

// CanonicalCountry returns the reporting name for a source country. Names
// without an alias are returned unchanged.
func CanonicalCountry(country string) string {
	for _, a := range countryAliases {
		if country == a.From {
			return a.To
		}
	}
	return country
}

// countryCase renders CanonicalCountry as a SQL CASE over expr.
func countryCase(expr string) string {
	var b strings.Builder
	b.WriteString("CASE " + expr)
	for _, a := range countryAliases {
		b.WriteString(" WHEN " + storage.QuoteLiteral(a.From) + " THEN " + storage.QuoteLiteral(a.To))
	}
	b.WriteString(" ELSE " + expr + " END")
	return b.String()
}
