// Package parquet streams staging rows out of Parquet files using Apache
// Arrow. File columns are matched to staging columns by case-insensitive
// name; staging columns absent from the file load as NULL and extra file
// columns are ignored. Every value is rendered as text.
package parquet

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/cleanse"
)

// BatchSize is the number of rows decoded per Arrow record.
const BatchSize = 8192

// Mapping returns, for every staging column, the index of the matching file
// field or -1.
func Mapping(schema *arrow.Schema, columns []string) []int {
	byName := make(map[string]int, schema.NumFields())
	for i, f := range schema.Fields() {
		key := strings.ToLower(strings.TrimSpace(f.Name))
		if _, dup := byName[key]; !dup {
			byName[key] = i
		}
	}
	out := make([]int, len(columns))
	for i, c := range columns {
		ix, ok := byName[strings.ToLower(c)]
		if !ok {
			ix = -1
		}
		out[i] = ix
	}
	return out
}

// readerAt returns src as a parquet.ReaderAtSeeker, buffering it in memory
// when it only supports sequential reads (HTTP, S3, GCS bodies).
func readerAt(src io.Reader) (parquet.ReaderAtSeeker, error) {
	if ras, ok := src.(parquet.ReaderAtSeeker); ok {
		return ras, nil
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("parquet: buffer input: %w", err)
	}
	return bytes.NewReader(b), nil
}

// StreamRows decodes src and sends one []any per row, aligned to columns,
// to out. It does not close out.
func StreamRows(ctx context.Context, src io.Reader, columns []string, out chan<- []any) error {
	ras, err := readerAt(src)
	if err != nil {
		return err
	}
	pf, err := file.NewParquetReader(ras)
	if err != nil {
		return fmt.Errorf("parquet: open: %w", err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{BatchSize: BatchSize}, memory.DefaultAllocator)
	if err != nil {
		return fmt.Errorf("parquet: arrow reader: %w", err)
	}
	schema, err := fr.Schema()
	if err != nil {
		return fmt.Errorf("parquet: schema: %w", err)
	}

	colIx := Mapping(schema, columns)
	for i, ix := range colIx {
		if ix < 0 {
			log.Printf("parquet: column %q not in file; loading NULL", columns[i])
		}
	}

	rr, err := fr.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return fmt.Errorf("parquet: record reader: %w", err)
	}
	defer rr.Release()

	for rr.Next() {
		rec := rr.Record()
		for r := 0; r < int(rec.NumRows()); r++ {
			row := make([]any, len(columns))
			for t, ix := range colIx {
				if ix >= 0 {
					row[t] = Value(rec.Column(ix), r)
				}
			}
			select {
			case out <- row:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	if err := rr.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("parquet: read: %w", err)
	}
	return ctx.Err()
}

// Value renders element i of arr as text, or nil when null. Dates render as
// YYYY-MM-DD and timestamps in cleanse.CanonicalLayout.
func Value(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Int64:
		return strconv.FormatInt(a.Value(i), 10)
	case *array.Int32:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Float64:
		return strconv.FormatFloat(a.Value(i), 'f', -1, 64)
	case *array.Float32:
		return strconv.FormatFloat(float64(a.Value(i)), 'f', -1, 32)
	case *array.Boolean:
		return strconv.FormatBool(a.Value(i))
	case *array.Date32:
		return a.Value(i).ToTime().Format("2006-01-02")
	case *array.Date64:
		return a.Value(i).ToTime().Format("2006-01-02")
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit).UTC().Format(cleanse.CanonicalLayout)
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		return a.Value(i).ToString(scale)
	default:
		return arr.ValueStr(i)
	}
}
