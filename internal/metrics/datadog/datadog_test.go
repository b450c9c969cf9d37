package datadog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/metrics"
)

type sample struct {
	kind  string
	name  string
	value float64
	tags  []string
}

type fakeClient struct {
	samples  []sample
	flushErr error
	flushes  int
}

func (f *fakeClient) Count(name string, value int64, tags []string, _ float64) error {
	f.samples = append(f.samples, sample{"count", name, float64(value), tags})
	return nil
}

func (f *fakeClient) Histogram(name string, value float64, tags []string, _ float64) error {
	f.samples = append(f.samples, sample{"histogram", name, value, tags})
	return nil
}

func (f *fakeClient) Flush() error {
	f.flushes++
	return f.flushErr
}

func TestBackend_ForwardsWithSortedTags(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{}
	b := &Backend{client: fc}

	lbls := metrics.Labels{"status": "success", "job": "curate", "step": "SALES_BY_COUNTRY"}
	b.IncCounter(metrics.StepTotal, 1, lbls)
	b.ObserveHistogram(metrics.StepDuration, 0.25, lbls)
	b.IncCounter(metrics.BatchesTotal, 2.9, nil)

	want := []sample{
		{"count", metrics.StepTotal, 1, []string{"job:curate", "status:success", "step:SALES_BY_COUNTRY"}},
		{"histogram", metrics.StepDuration, 0.25, []string{"job:curate", "status:success", "step:SALES_BY_COUNTRY"}},
		{"count", metrics.BatchesTotal, 2, nil},
	}
	if !reflect.DeepEqual(fc.samples, want) {
		t.Fatalf("samples = %+v\nwant %+v", fc.samples, want)
	}
}

func TestBackend_Flush(t *testing.T) {
	t.Parallel()

	fc := &fakeClient{}
	b := &Backend{client: fc}
	if err := b.Flush(); err != nil || fc.flushes != 1 {
		t.Fatalf("Flush = %v, flushes=%d", err, fc.flushes)
	}

	fc.flushErr = errors.New("agent down")
	if err := b.Flush(); err == nil {
		t.Fatalf("expected flush error")
	}
}

func TestBackend_NilClient(t *testing.T) {
	t.Parallel()

	var b Backend
	b.IncCounter(metrics.StepTotal, 1, nil)
	b.ObserveHistogram(metrics.StepDuration, 1, nil)
	if err := b.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestNewBackend_DefaultAddr(t *testing.T) {
	t.Parallel()

	// UDP clients do not connect, so this succeeds without an agent.
	b, err := NewBackend(Config{Namespace: "sales.", Tags: []string{"env:test"}})
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	if b.client == nil {
		t.Fatalf("client not set")
	}
}
