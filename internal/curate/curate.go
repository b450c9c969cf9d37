// Package curate derives the reporting aggregates from the unified sales
// table. Each report is an independent full-refresh overwrite computed over
// the table with country names canonicalized.
package curate

import (
	"context"
	"fmt"
	"log"
	"text/template"
	"time"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/metrics"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/model"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

const metricsJob = "curate"

// IndiaCountry is the country value the unifier writes for India rows.
const IndiaCountry = "India"

// Report is one curated table and the query that fills it.
type Report struct {
	Table    storage.TableName
	template *template.Template
}

// Render returns the report query for d.
func (r Report) Render(d storage.Dialect) (string, error) {
	data := struct{ Country, India string }{
		Country: countryCase(`g."COUNTRY"`),
		India:   IndiaCountry,
	}
	q, err := storage.Render(d, r.template, data)
	if err != nil {
		return "", fmt.Errorf("curate: %w", err)
	}
	return q, nil
}

var reports = []Report{
	{model.SalesByCountry, salesByCountry},
	{model.CategoryPerformance, categoryPerformance},
	{model.MonthlySalesTrend, monthlySalesTrend},
	{model.IndiaSalesVsTarget, indiaSalesVsTarget},
	{model.TopProductsByRevenue, topProductsByRevenue},
}

// Reports returns the curated reports in execution order.
func Reports() []Report {
	out := make([]Report, len(reports))
	copy(out, reports)
	return out
}

// Run overwrites every curated table and returns the tables written, in
// order. The first failure stops the run.
func Run(ctx context.Context, s storage.Store) ([]string, error) {
	written := make([]string, 0, len(reports))
	for _, r := range reports {
		q, err := r.Render(s.Dialect())
		if err != nil {
			return written, err
		}
		start := time.Now()
		err = s.CreateOrReplaceTable(ctx, r.Table, q)
		metrics.RecordStep(metricsJob, r.Table.Name, err, time.Since(start))
		if err != nil {
			return written, fmt.Errorf("curate: %s: %w", r.Table, err)
		}
		log.Printf("curate: table=%s elapsed=%s", r.Table, time.Since(start).Truncate(time.Millisecond))
		written = append(written, r.Table.String())
	}
	return written, nil
}
