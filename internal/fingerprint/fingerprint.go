// Package fingerprint computes an order-independent content hash of a
// warehouse table. Each row is encoded canonically and hashed with xxh3;
// row hashes are summed, so two tables with the same multiset of rows have
// the same fingerprint regardless of physical order.
package fingerprint

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// DefaultExclude lists columns that change on every load.
var DefaultExclude = []string{"INSERT_DTS"}

const (
	fieldSep = 0x1f
	nullMark = 0x00
)

// hashFn hashes one encoded row.
var hashFn = xxh3.Hash

// Result is a table fingerprint.
type Result struct {
	Table string
	Rows  int64
	Sum   uint64
}

func (r Result) String() string {
	return fmt.Sprintf("%s rows=%d xxh3=%016x", r.Table, r.Rows, r.Sum)
}

// ParseTable parses "SCHEMA.NAME".
func ParseTable(s string) (storage.TableName, error) {
	schema, name, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || schema == "" || name == "" || strings.Contains(name, ".") {
		return storage.TableName{}, fmt.Errorf("fingerprint: table %q: want SCHEMA.NAME", s)
	}
	return storage.TableName{Schema: strings.ToUpper(schema), Name: strings.ToUpper(name)}, nil
}

// Table reads every row of t and fingerprints it, ignoring the exclude
// columns (case-insensitive).
func Table(ctx context.Context, s storage.Store, t storage.TableName, exclude ...string) (Result, error) {
	rows, err := s.Query(ctx, "SELECT * FROM "+s.Dialect().Table(t))
	if err != nil {
		return Result{}, fmt.Errorf("fingerprint: %s: %w", t, err)
	}
	n, sum := Rows(rows, exclude...)
	return Result{Table: t.String(), Rows: n, Sum: sum}, nil
}

// Rows fingerprints a materialized result set.
func Rows(rows *storage.Rows, exclude ...string) (int64, uint64) {
	skip := make(map[string]bool, len(exclude))
	for _, c := range exclude {
		skip[strings.ToUpper(c)] = true
	}
	keep := make([]int, 0, len(rows.Columns))
	for i, c := range rows.Columns {
		if !skip[strings.ToUpper(c)] {
			keep = append(keep, i)
		}
	}

	var (
		sum uint64
		buf []byte
	)
	for _, r := range rows.Values {
		buf = buf[:0]
		for _, i := range keep {
			buf = appendValue(buf, r[i])
			buf = append(buf, fieldSep)
		}
		sum += hashFn(buf)
	}
	return int64(rows.Len()), sum
}

// appendValue encodes v so equal values from different drivers encode the
// same way: integral floats and ints share a form, times use
// cleanse.CanonicalLayout.
func appendValue(b []byte, v any) []byte {
	switch t := v.(type) {
	case nil:
		return append(b, nullMark)
	case string:
		return append(b, t...)
	case []byte:
		return append(b, t...)
	case int64:
		return strconv.AppendInt(b, t, 10)
	case int32:
		return strconv.AppendInt(b, int64(t), 10)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.AppendInt(b, int64(t), 10)
		}
		return strconv.AppendFloat(b, t, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(b, t)
	case time.Time:
		return t.AppendFormat(b, cleanse.CanonicalLayout)
	default:
		return fmt.Append(b, t)
	}
}
