// Package csv streams staging rows out of delimited files. Columns are mapped
// by position to the staging table, empty cells become NULL, and malformed
// rows are reported to a caller-supplied policy callback that decides whether
// the stream continues.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrFieldCount marks a row whose width differs from the staging table.
var ErrFieldCount = errors.New("wrong number of fields")

// Options configures parsing. Callers normally start from DefaultOptions.
type Options struct {
	// HasHeader skips the first record.
	HasHeader bool

	// Comma is the field delimiter; zero means ','.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each cell.
	TrimSpace bool

	// Charset names the input encoding (WHATWG label such as "utf-8",
	// "windows-1252", "iso-8859-1"). Empty means UTF-8.
	Charset string
}

// DefaultOptions matches the feed files: header row, comma, trimmed cells, UTF-8.
var DefaultOptions = Options{HasHeader: true, Comma: ',', TrimSpace: true}

// RowErrorFunc is invoked for every malformed row. Returning nil skips the
// row and continues; returning an error aborts the stream with it.
type RowErrorFunc func(line int, err error) error

// decode wraps r with a decoder for charset.
func decode(r io.Reader, charset string) (io.Reader, error) {
	cs := strings.ToLower(strings.TrimSpace(charset))
	if cs == "" || cs == "utf-8" || cs == "utf8" {
		return r, nil
	}
	enc, err := htmlindex.Get(cs)
	if err != nil {
		return nil, fmt.Errorf("csv: charset %q: %w", charset, err)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// StreamRows reads src and sends one []any of length width per valid data
// row to out. Cells are strings or nil. It returns nil at EOF, ctx.Err() on
// cancellation, or the error returned by onErr. It does not close out.
func StreamRows(
	ctx context.Context,
	src io.Reader,
	width int,
	opt Options,
	out chan<- []any,
	onErr RowErrorFunc,
) error {
	if width <= 0 {
		return fmt.Errorf("csv: width must be > 0")
	}
	r, err := decode(src, opt.Charset)
	if err != nil {
		return err
	}

	cr := csv.NewReader(skipBOM(r))
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1 // width is enforced below so the policy sees it

	report := func(line int, err error) error {
		if onErr == nil {
			return fmt.Errorf("csv: line %d: %w", line, err)
		}
		return onErr(line, err)
	}

	if opt.HasHeader {
		if _, err := cr.Read(); err != nil {
			if err == io.EOF {
				return nil
			}
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return fmt.Errorf("csv: read header: %w", err)
			}
			if rerr := report(pe.Line, err); rerr != nil {
				return rerr
			}
		}
	}

	const logEveryN = 50_000
	rowsSeen := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if !errors.As(err, &pe) {
				return fmt.Errorf("csv: read: %w", err)
			}
			if rerr := report(pe.Line, err); rerr != nil {
				return rerr
			}
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != width {
			if rerr := report(line, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(rec), width)); rerr != nil {
				return rerr
			}
			continue
		}

		row := make([]any, width)
		for i, v := range rec {
			if opt.TrimSpace {
				v = strings.TrimSpace(v)
			}
			if v == "" {
				row[i] = nil
			} else {
				row[i] = v
			}
		}

		select {
		case out <- row:
			rowsSeen++
			if rowsSeen%logEveryN == 0 {
				log.Printf("reader: line=%d emitted=%d", line, rowsSeen)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
