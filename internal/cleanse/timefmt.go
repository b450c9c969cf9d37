package cleanse

import (
	"strings"
	"time"
)

// CanonicalLayout is how parsed timestamps are rendered when an engine has
// no native timestamp type.
const CanonicalLayout = "2006-01-02 15:04:05"

// TimeFormat is one of the fixed source date formats. Each field describes
// the same format in a different pattern language so every dialect can
// render it natively.
type TimeFormat struct {
	// Name identifies the format in SQL templates.
	Name string
	// Pattern uses warehouse to_timestamp notation (DD, MM, YYYY, HH24, MI, MON, YY).
	Pattern string
	// Strftime is the strptime equivalent; empty means a plain ISO cast.
	Strftime string
	// Layouts are the Go layouts tried in order.
	Layouts []string
}

var (
	// DayMonthYear is the India orders date, e.g. "05-11-2020".
	DayMonthYear = TimeFormat{
		Name:     "day_month_year",
		Pattern:  "DD-MM-YYYY",
		Strftime: "%d-%m-%Y",
		Layouts:  []string{"2-1-2006"},
	}

	// USDateTime is the UK invoice timestamp, e.g. "12/1/2010 8:26".
	USDateTime = TimeFormat{
		Name:     "us_datetime",
		Pattern:  "MM/DD/YYYY HH24:MI",
		Strftime: "%m/%d/%Y %H:%M",
		Layouts:  []string{"1/2/2006 15:04"},
	}

	// ISO covers the dates rendered by the Parquet reader.
	ISO = TimeFormat{
		Name:    "iso",
		Pattern: "YYYY-MM-DD HH24:MI:SS",
		Layouts: []string{CanonicalLayout, time.RFC3339, "2006-01-02"},
	}

	// MonthLabel is the sales-target month, e.g. "Apr-18".
	MonthLabel = TimeFormat{
		Name:     "month_label",
		Pattern:  "MON-YY",
		Strftime: "%b-%y",
		Layouts:  []string{"Jan-06"},
	}
)

var formats = map[string]TimeFormat{
	DayMonthYear.Name: DayMonthYear,
	USDateTime.Name:   USDateTime,
	ISO.Name:          ISO,
	MonthLabel.Name:   MonthLabel,
}

// LookupTimeFormat returns the format registered under name.
func LookupTimeFormat(name string) (TimeFormat, bool) {
	f, ok := formats[name]
	return f, ok
}

// LookupLayout finds the format whose first Go layout is layout. SQLite
// receives the layout string as a function argument and maps it back here.
func LookupLayout(layout string) (TimeFormat, bool) {
	for _, f := range formats {
		if len(f.Layouts) > 0 && f.Layouts[0] == layout {
			return f, true
		}
	}
	return TimeFormat{}, false
}

// ParseTime parses s with f's layouts. Empty or unparseable input yields ok=false.
func ParseTime(s string, f TimeFormat) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range f.Layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
