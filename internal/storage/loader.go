package storage

// This file implements the generic batched copy used by the staging loader:
// it drains rows from a channel and hands fixed-size batches to the store's
// bulk primitive (Postgres COPY, SQL Server bulk copy, DuckDB appender, ...).

import (
	"context"
	"fmt"
	"log"
	"time"
)

// CopyFn abstracts a store's bulk insert for one target table. It returns
// the number of rows reported as written.
type CopyFn func(ctx context.Context, rows [][]any) (int64, error)

// CopyInto adapts Store.CopyFrom to a CopyFn bound to table and columns.
func CopyInto(s Store, table TableName, columns []string) CopyFn {
	return func(ctx context.Context, rows [][]any) (int64, error) {
		return s.CopyFrom(ctx, table, columns, rows)
	}
}

// BatchStats summarizes a LoadBatches run.
type BatchStats struct {
	Rows    int64
	Batches int64
}

// LoadBatches drains in, groups rows into batches of batchSize and calls
// copyFn per non-empty batch. It returns the running totals and the first
// error encountered. On cancellation it returns ctx.Err().
func LoadBatches(
	ctx context.Context,
	label string,
	in <-chan []any,
	batchSize int,
	copyFn CopyFn,
) (BatchStats, error) {
	var stats BatchStats
	if batchSize <= 0 {
		return stats, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return stats, fmt.Errorf("copyFn must not be nil")
	}

	var (
		batch     = make([][]any, 0, batchSize)
		start     = time.Now()
		lastFlush = start
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := copyFn(ctx, batch)
		stats.Rows += n
		batch = batch[:0]
		if err != nil {
			log.Printf("loader: %s: copy failed after=%d total=%d err=%v", label, n, stats.Rows, err)
			return err
		}

		stats.Batches++
		now := time.Now()
		since := now.Sub(lastFlush)
		rps := float64(0)
		if since > 0 {
			rps = float64(n) / since.Seconds()
		}
		log.Printf(
			"loader: %s: batch #%d: rps=%.0f inserted=%d total_inserted=%d elapsed=%s",
			label, stats.Batches, rps, n, stats.Rows, now.Sub(start).Truncate(time.Millisecond),
		)
		lastFlush = now
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()

		case row, ok := <-in:
			if !ok {
				if err := flush(); err != nil {
					return stats, err
				}
				return stats, nil
			}
			batch = append(batch, row)
			if len(batch) >= batchSize {
				if err := flush(); err != nil {
					return stats, err
				}
			}
		}
	}
}
