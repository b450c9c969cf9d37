// Package jobs runs the pipeline stages as scheduler-facing jobs. Each job
// takes an open store and returns a completion message; WithStore scopes a
// store to a single job.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/curate"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/loader"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/normalize"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/unify"
)

// Completion messages returned by the jobs.
const (
	LoadRawDone   = "STAGING → RAW load completed successfully"
	TransformDone = "RAW → TRANSFORMED load completed successfully"
	CurateDone    = "TRANSFORMED → CURATED load completed successfully"
)

// Job is one stage run against an open store.
type Job func(ctx context.Context, s storage.Store) (string, error)

var newStore = storage.New

// WithStore opens a store for cfg, runs fn and closes the store whether or
// not fn succeeds.
func WithStore(ctx context.Context, cfg storage.Config, fn func(context.Context, storage.Store) error) error {
	s, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("jobs: open %s: %w", cfg.Kind, err)
	}
	defer s.Close()
	return fn(ctx, s)
}

// LoadRaw copies every feed into staging and rebuilds the raw layer.
func LoadRaw(ctx context.Context, s storage.Store, locations map[string]string) (string, error) {
	results, err := loader.LoadAll(ctx, s, locations)
	for _, r := range results {
		log.Printf("jobs: load-raw: feed=%s loaded=%d skipped=%d", r.Feed, r.Loaded, r.Skipped)
	}
	if err != nil {
		return "", fmt.Errorf("jobs: load-raw: %w", err)
	}
	if _, err := normalize.Run(ctx, s); err != nil {
		return "", fmt.Errorf("jobs: load-raw: %w", err)
	}
	return LoadRawDone, nil
}

// Transform rebuilds the unified GLOBAL_SALES_ORDER table.
func Transform(ctx context.Context, s storage.Store) (string, error) {
	if _, err := unify.Run(ctx, s); err != nil {
		return "", fmt.Errorf("jobs: transform: %w", err)
	}
	return TransformDone, nil
}

// Curate rebuilds the curated reports.
func Curate(ctx context.Context, s storage.Store) (string, error) {
	if _, err := curate.Run(ctx, s); err != nil {
		return "", fmt.Errorf("jobs: curate: %w", err)
	}
	return CurateDone, nil
}

// LoadRawJob binds locations so LoadRaw fits the Job signature.
func LoadRawJob(locations map[string]string) Job {
	return func(ctx context.Context, s storage.Store) (string, error) {
		return LoadRaw(ctx, s, locations)
	}
}

// Run executes job inside its own scoped store.
func Run(ctx context.Context, cfg storage.Config, name string, job Job) (string, error) {
	start := time.Now()
	var msg string
	err := WithStore(ctx, cfg, func(ctx context.Context, s storage.Store) error {
		var err error
		msg, err = job(ctx, s)
		return err
	})
	if err != nil {
		log.Printf("jobs: %s: failed after %s: %v", name, time.Since(start).Truncate(time.Millisecond), err)
		return "", err
	}
	log.Printf("jobs: %s: %s (%s)", name, msg, time.Since(start).Truncate(time.Millisecond))
	return msg, nil
}

// RunAll runs load-raw, transform and curate in order, each with its own
// store. It stops at the first failing job and returns the messages of the
// jobs that completed.
func RunAll(ctx context.Context, cfg storage.Config, locations map[string]string) ([]string, error) {
	steps := []struct {
		name string
		job  Job
	}{
		{"load-raw", LoadRawJob(locations)},
		{"transform", Transform},
		{"curate", Curate},
	}
	var out []string
	for _, st := range steps {
		msg, err := Run(ctx, cfg, st.name, st.job)
		if err != nil {
			return out, err
		}
		out = append(out, msg)
	}
	return out, nil
}
