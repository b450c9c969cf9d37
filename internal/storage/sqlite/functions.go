package sqlite

import (
	"database/sql/driver"

	"modernc.org/sqlite"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
)

// SQLite has no non-throwing numeric or formatted-timestamp parse, so the
// dialect calls these Go implementations, registered for every connection
// opened by the driver.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("try_to_number", 1, tryToNumber)
	sqlite.MustRegisterDeterministicScalarFunction("try_to_timestamp", 2, tryToTimestamp)
}

func tryToNumber(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	return cleanse.NumberOrNil(args[0]), nil
}

// tryToTimestamp(value, layout) renders a parsed timestamp in
// cleanse.CanonicalLayout, or NULL.
func tryToTimestamp(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	s, ok := text(args[0])
	if !ok {
		return nil, nil
	}
	layout, _ := text(args[1])
	f, known := cleanse.LookupLayout(layout)
	if !known {
		f = cleanse.TimeFormat{Layouts: []string{layout}}
	}
	t, ok := cleanse.ParseTime(s, f)
	if !ok {
		return nil, nil
	}
	return t.Format(cleanse.CanonicalLayout), nil
}

func text(v driver.Value) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	}
	return "", false
}
