// Package unify reshapes the per-country raw tables into the shared sales
// record and replaces TRANSFORMED.GLOBAL_SALES_ORDER with their union.
package unify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/metrics"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/model"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// ErrSchemaMismatch is returned when an adapter does not produce exactly
// the canonical column set.
var ErrSchemaMismatch = errors.New("schema mismatch")

const metricsJob = "transform"

// CheckAdapters verifies every adapter yields exactly the canonical
// columns, in any order.
func CheckAdapters(adapters []Adapter) error {
	want := make(map[string]bool, len(model.GlobalSaleColumns))
	for _, c := range model.GlobalSaleColumns {
		want[c.Name] = true
	}
	for _, a := range adapters {
		var missing, extra []string
		for name := range want {
			if _, ok := a.Fields[name]; !ok {
				missing = append(missing, name)
			}
		}
		for name := range a.Fields {
			if !want[name] {
				extra = append(extra, name)
			}
		}
		if len(missing) > 0 || len(extra) > 0 {
			sort.Strings(missing)
			sort.Strings(extra)
			return fmt.Errorf("unify: %w: %s: missing=%v unexpected=%v", ErrSchemaMismatch, a.Source, missing, extra)
		}
	}
	return nil
}

// Query renders the union of every adapter for d.
func Query(d storage.Dialect) (string, error) { return build(d, Adapters) }

func build(d storage.Dialect, adapters []Adapter) (string, error) {
	if err := CheckAdapters(adapters); err != nil {
		return "", err
	}
	branches := make([]string, 0, len(adapters))
	for _, a := range adapters {
		sel := make([]string, len(model.GlobalSaleColumns))
		for i, c := range model.GlobalSaleColumns {
			sel[i] = a.Fields[c.Name] + " AS " + storage.QuoteIdent(c.Name)
		}
		text := "SELECT\n\t" + strings.Join(sel, ",\n\t") + "\nFROM " + a.From
		t, err := storage.ParseTemplate(a.Source, text)
		if err != nil {
			return "", fmt.Errorf("unify: %s: %w", a.Source, err)
		}
		q, err := storage.Render(d, t, nil)
		if err != nil {
			return "", fmt.Errorf("unify: %w", err)
		}
		branches = append(branches, q)
	}
	return strings.Join(branches, "\nUNION ALL\n"), nil
}

// Run replaces the unified table and returns its name.
func Run(ctx context.Context, s storage.Store) (string, error) { return run(ctx, s, Adapters) }

func run(ctx context.Context, s storage.Store, adapters []Adapter) (string, error) {
	q, err := build(s.Dialect(), adapters)
	if err != nil {
		return "", err
	}
	start := time.Now()
	err = s.CreateOrReplaceTable(ctx, model.GlobalSalesOrder, q)
	metrics.RecordStep(metricsJob, model.GlobalSalesOrder.Name, err, time.Since(start))
	if err != nil {
		return "", fmt.Errorf("unify: %s: %w", model.GlobalSalesOrder, err)
	}
	log.Printf("unify: table=%s sources=%d elapsed=%s", model.GlobalSalesOrder, len(adapters), time.Since(start).Truncate(time.Millisecond))
	return model.GlobalSalesOrder.String(), nil
}

// ReadAll loads the unified table ordered by country and order id.
func ReadAll(ctx context.Context, s storage.Store) ([]model.GlobalSale, error) {
	d := s.Dialect()
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s, %s",
		storage.ColumnList(storage.Names(model.GlobalSaleColumns)),
		d.Table(model.GlobalSalesOrder),
		storage.QuoteIdent("COUNTRY"), storage.QuoteIdent("ORDER_ID"))
	rows, err := s.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("unify: read: %w", err)
	}
	out := make([]model.GlobalSale, 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		g, err := model.GlobalSaleFromRow(rows, i)
		if err != nil {
			return nil, fmt.Errorf("unify: read row %d: %w", i, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// CountrySummary totals the unified rows of one country.
type CountrySummary struct {
	Country string
	Rows    int
	Sales   decimal.Decimal
	Profit  decimal.Decimal
}

// Summarize reads the unified table and totals it per country, sorted by
// country. NULL measures count as zero.
func Summarize(ctx context.Context, s storage.Store) ([]CountrySummary, error) {
	sales, err := ReadAll(ctx, s)
	if err != nil {
		return nil, err
	}
	byCountry := map[string]*CountrySummary{}
	var out []*CountrySummary
	for _, g := range sales {
		cs, ok := byCountry[g.Country]
		if !ok {
			cs = &CountrySummary{Country: g.Country}
			byCountry[g.Country] = cs
			out = append(out, cs)
		}
		cs.Rows++
		if g.SalesAmount.Valid {
			cs.Sales = cs.Sales.Add(g.SalesAmount.Decimal)
		}
		if g.Profit.Valid {
			cs.Profit = cs.Profit.Add(g.Profit.Decimal)
		}
	}
	res := make([]CountrySummary, len(out))
	for i, cs := range out {
		res[i] = *cs
	}
	return res, nil
}
