// Package normalize projects the staging tables into typed, per-country raw
// tables. Numbers are parsed with thousands separators stripped and
// timestamps with each feed's fixed format; both yield NULL instead of an
// error. Every row is stamped with the load timestamp and every raw table
// is overwritten, so a rerun gives the same result.
package normalize

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

const metricsJob = "load-raw"

// Statement is one rendered raw-table projection.
type Statement struct {
	Table storage.TableName
	Query string
}

type projection struct {
	table storage.TableName
	tmpl  *template.Template
}

var projections = []projection{
	{model.RawIndiaOrders, indiaOrders},
	{model.RawIndiaOrderDetails, indiaOrderDetails},
	{model.RawIndiaSalesTargets, indiaSalesTargets},
	{model.RawUSAOrders, usaOrders},
	{model.RawUKOrders, ukOrders},
}

// Statements renders the projections for d in execution order.
func Statements(d storage.Dialect) ([]Statement, error) {
	out := make([]Statement, 0, len(projections))
	for _, p := range projections {
		q, err := storage.Render(d, p.tmpl, nil)
		if err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
		out = append(out, Statement{Table: p.table, Query: q})
	}
	return out, nil
}

// Run overwrites every raw table from staging and returns the tables
// written, in order.
func Run(ctx context.Context, s storage.Store) ([]string, error) {
	stmts, err := Statements(s.Dialect())
	if err != nil {
		return nil, err
	}
	written := make([]string, 0, len(stmts))
	for _, st := range stmts {
		start := time.Now()
		err := s.CreateOrReplaceTable(ctx, st.Table, st.Query)
		metrics.RecordStep(metricsJob, st.Table.Name, err, time.Since(start))
		if err != nil {
			return written, fmt.Errorf("normalize: %s: %w", st.Table, err)
		}
		log.Printf("normalize: table=%s elapsed=%s", st.Table, time.Since(start).Truncate(time.Millisecond))
		written = append(written, st.Table.String())
	}
	return written, nil
}
