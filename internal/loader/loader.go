// Package loader bulk-loads the source feeds into their staging tables. Each
// feed is truncated, then refilled from its location: a reader goroutine
// parses the file and a batcher copies rows with the store's bulk primitive.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/datasource"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/metrics"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/model"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/parser/csv"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/parser/parquet"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// ErrMalformedRow wraps the first bad row of a feed loaded with Abort.
var ErrMalformedRow = errors.New("malformed row")

// BatchSize is the number of rows per bulk copy.
var BatchSize = 5000

const metricsJob = "load-raw"

// openLocation is a test seam.
var openLocation = datasource.Open

// Result reports one feed load.
type Result struct {
	Feed    string
	Loaded  int64
	Skipped int64
}

// EnsureStaging creates the warehouse schemas and any missing staging tables.
func EnsureStaging(ctx context.Context, s storage.Store) error {
	d := s.Dialect()
	for _, stmt := range d.Bootstrap(model.Schemas) {
		if err := s.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("loader: bootstrap: %w", err)
		}
	}
	for _, t := range model.StagingTables {
		if err := s.Exec(ctx, d.CreateTableIfNotExists(t, model.StagingColumns[t])); err != nil {
			return fmt.Errorf("loader: create %s: %w", t, err)
		}
	}
	return nil
}

// Load replaces the contents of feed's staging table with the rows read
// from location.
func Load(ctx context.Context, s storage.Store, feed Feed, location string) (Result, error) {
	res := Result{Feed: feed.Name}
	start := time.Now()
	err := load(ctx, s, feed, location, &res)
	metrics.RecordStep(metricsJob, feed.Name, err, time.Since(start))
	metrics.RecordRow(metricsJob, "loaded", res.Loaded)
	metrics.RecordRow(metricsJob, "skipped", res.Skipped)
	if err != nil {
		return res, fmt.Errorf("loader: %s: %w", feed.Name, err)
	}
	log.Printf("loader: %s: table=%s loaded=%d skipped=%d elapsed=%s",
		feed.Name, feed.Table, res.Loaded, res.Skipped, time.Since(start).Truncate(time.Millisecond))
	return res, nil
}

func load(ctx context.Context, s storage.Store, feed Feed, location string, res *Result) error {
	cols := feed.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("no staging columns for %s", feed.Table)
	}
	if err := s.Exec(ctx, s.Dialect().Truncate(feed.Table)); err != nil {
		return fmt.Errorf("truncate %s: %w", feed.Table, err)
	}

	rc, err := openLocation(ctx, location)
	if err != nil {
		return err
	}
	defer rc.Close()

	rows := make(chan []any, BatchSize)
	g, gctx := errgroup.WithContext(ctx)

	var skipped atomic.Int64
	g.Go(func() error {
		defer close(rows)
		return read(gctx, feed, rc, cols, rows, &skipped)
	})

	var stats storage.BatchStats
	g.Go(func() error {
		var err error
		stats, err = storage.LoadBatches(gctx, feed.Name, rows, BatchSize, storage.CopyInto(s, feed.Table, cols))
		return err
	})

	err = g.Wait()
	res.Loaded = stats.Rows
	res.Skipped = skipped.Load()
	metrics.RecordBatches(metricsJob, stats.Batches)
	return err
}

func read(ctx context.Context, feed Feed, r io.Reader, cols []string, out chan<- []any, skipped *atomic.Int64) error {
	switch feed.Format {
	case Parquet:
		return parquet.StreamRows(ctx, r, cols, out)
	case CSV:
		opt := csv.DefaultOptions
		opt.Charset = feed.Charset
		return csv.StreamRows(ctx, r, len(cols), opt, out, rowPolicy(feed, skipped))
	default:
		return fmt.Errorf("unknown format %q", feed.Format)
	}
}

func rowPolicy(feed Feed, skipped *atomic.Int64) csv.RowErrorFunc {
	if feed.Policy == Skip {
		return func(line int, err error) error {
			skipped.Add(1)
			log.Printf("loader: %s: skip line=%d err=%v", feed.Name, line, err)
			return nil
		}
	}
	return func(line int, err error) error {
		return fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
	}
}

// LoadAll loads every feed in catalog order. locations maps feed names to
// locations; a missing or unknown entry fails the run before anything is
// truncated.
// The first failing feed aborts the run.
func LoadAll(ctx context.Context, s storage.Store, locations map[string]string) ([]Result, error) {
	for name := range locations {
		if _, ok := Lookup(name); !ok {
			return nil, fmt.Errorf("loader: unknown feed %q", name)
		}
	}
	for _, f := range Feeds {
		if locations[f.Name] == "" {
			return nil, fmt.Errorf("loader: no location for feed %s", f.Name)
		}
	}
	if err := EnsureStaging(ctx, s); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(Feeds))
	for _, f := range Feeds {
		res, err := Load(ctx, s, f, locations[f.Name])
		if err != nil {
			return out, err
		}
		out = append(out, res)
	}
	return out, nil
}
