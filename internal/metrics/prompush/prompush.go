// Package prompush is a metrics.Backend that accumulates series in a private
// Prometheus registry and pushes them to a Pushgateway on Flush. Batch jobs
// exit before a scraper could reach them, so push is the only delivery path.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/metrics"
)

// DefaultJob is the Pushgateway grouping job when none is given.
const DefaultJob = "salesetl"

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string
	jobName    string
	reg        *prometheus.Registry

	stepCounter  *prometheus.CounterVec
	stepDuration *prometheus.SummaryVec
	rowCounter   *prometheus.CounterVec
	batchCounter *prometheus.CounterVec
}

// NewBackend builds a backend pushing to gatewayURL under jobName.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = DefaultJob
	}

	// "job" is reserved for the Pushgateway grouping key, so the pipeline
	// job is exported as "pipeline".
	b := &Backend{
		gatewayURL: gatewayURL,
		jobName:    jobName,
		reg:        prometheus.NewRegistry(),
		stepCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.StepTotal,
			Help: "Pipeline step executions by pipeline job, step and status.",
		}, []string{"pipeline", "step", "status"}),
		stepDuration: prometheus.NewSummaryVec(prometheus.SummaryOpts{
			Name:       metrics.StepDuration,
			Help:       "Pipeline step duration in seconds.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, []string{"pipeline", "step", "status"}),
		rowCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.RowsTotal,
			Help: "Staging rows by pipeline job and kind (loaded, skipped).",
		}, []string{"pipeline", "kind"}),
		batchCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metrics.BatchesTotal,
			Help: "Bulk-copy batches flushed by pipeline job.",
		}, []string{"pipeline"}),
	}

	for _, c := range []prometheus.Collector{b.stepCounter, b.stepDuration, b.rowCounter, b.batchCounter} {
		if err := b.reg.Register(c); err != nil {
			return nil, fmt.Errorf("prompush: register: %w", err)
		}
	}
	return b, nil
}

// IncCounter routes known counters; unknown names are ignored.
func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case metrics.StepTotal:
		if b.stepCounter != nil {
			b.stepCounter.WithLabelValues(labels["job"], labels["step"], labels["status"]).Add(delta)
		}
	case metrics.RowsTotal:
		if b.rowCounter != nil {
			b.rowCounter.WithLabelValues(labels["job"], labels["kind"]).Add(delta)
		}
	case metrics.BatchesTotal:
		if b.batchCounter != nil {
			b.batchCounter.WithLabelValues(labels["job"]).Add(delta)
		}
	}
}

// ObserveHistogram records step durations; other names are ignored.
func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	if name != metrics.StepDuration || b.stepDuration == nil {
		return
	}
	b.stepDuration.WithLabelValues(labels["job"], labels["step"], labels["status"]).Observe(value)
}

// Flush pushes the registry to the Pushgateway, replacing the group.
func (b *Backend) Flush() error {
	if err := push.New(b.gatewayURL, b.jobName).Gatherer(b.reg).Push(); err != nil {
		return fmt.Errorf("prompush: push: %w", err)
	}
	return nil
}
