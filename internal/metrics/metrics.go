// Package metrics records pipeline instrumentation through a pluggable
// Backend. The default backend discards everything, so stages can record
// unconditionally; cmd/salesetl installs a Prometheus Pushgateway or
// Datadog backend when configured.
//
// Recorded series:
//
//	salesetl_step_total{job,step,status}             one per table written or feed loaded
//	salesetl_step_duration_seconds{job,step,status}  duration of the same
//	salesetl_rows_total{job,kind}                    loaded and skipped staging rows
//	salesetl_batches_total{job}                      bulk-copy batches
package metrics

import (
	"sync"
	"time"
)

// Metric names shared with the backends.
const (
	StepTotal    = "salesetl_step_total"
	StepDuration = "salesetl_step_duration_seconds"
	RowsTotal    = "salesetl_rows_total"
	BatchesTotal = "salesetl_batches_total"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface a metrics system implements.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a duration-style observation.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes buffered metrics where the backend needs it.
	Flush() error
}

type nopBackend struct{}

func (nopBackend) IncCounter(string, float64, Labels)       {}
func (nopBackend) ObserveHistogram(string, float64, Labels) {}
func (nopBackend) Flush() error                             { return nil }

var (
	mu      sync.RWMutex
	backend Backend = nopBackend{}
)

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// SetBackend installs b. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	mu.Lock()
	backend = b
	mu.Unlock()
}

// Flush delegates to the current backend.
func Flush() error { return current().Flush() }

// RecordStep counts one execution of step within job and observes its
// duration. A non-nil err marks the step as failed.
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "step": step, "status": status}

	b := current()
	b.IncCounter(StepTotal, 1, lbls)
	b.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordRow adds delta rows of kind ("loaded", "skipped") for job.
// Non-positive deltas are ignored.
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(RowsTotal, float64(delta), Labels{"job": job, "kind": kind})
}

// RecordBatches adds delta copy batches for job.
func RecordBatches(job string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(BatchesTotal, float64(delta), Labels{"job": job})
}
