package jobs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/fingerprint"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/model"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	_ "github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/sqlite" // register "sqlite"
)

/*
Fixtures
*/

func writeFile(tb testing.TB, dir, name string, data []byte) string {
	tb.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		tb.Fatalf("write %s: %v", p, err)
	}
	return p
}

func usaParquet(tb testing.TB) []byte {
	tb.Helper()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "Order ID", Type: arrow.BinaryTypes.String},
		{Name: "Order Date", Type: arrow.FixedWidthTypes.Date32},
		{Name: "Country", Type: arrow.BinaryTypes.String},
		{Name: "State", Type: arrow.BinaryTypes.String},
		{Name: "City", Type: arrow.BinaryTypes.String},
		{Name: "Product ID", Type: arrow.BinaryTypes.String},
		{Name: "Category", Type: arrow.BinaryTypes.String},
		{Name: "Sub-Category", Type: arrow.BinaryTypes.String},
		{Name: "Product Name", Type: arrow.BinaryTypes.String},
		{Name: "Sales", Type: arrow.PrimitiveTypes.Float64},
		{Name: "Quantity", Type: arrow.PrimitiveTypes.Int64},
		{Name: "Profit", Type: arrow.PrimitiveTypes.Float64},
	}, nil)
	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	str := func(i int, v ...string) { b.Field(i).(*array.StringBuilder).AppendValues(v, nil) }
	str(0, "CA-1", "CA-2")
	b.Field(1).(*array.Date32Builder).AppendValues([]arrow.Date32{17113, 17114}, nil) // 2016-11-08, 2016-11-09
	str(2, "USA", "United States")
	str(3, "Kentucky", "California")
	str(4, "Henderson", "Los Angeles")
	str(5, "FUR-BO-1", "OFF-LA-2")
	str(6, "Furniture", "Office Supplies")
	str(7, "Bookcases", "Labels")
	str(8, "Bush Bookcase", "Self-Adhesive Labels")
	b.Field(9).(*array.Float64Builder).AppendValues([]float64{261.96, 14.62}, nil)
	b.Field(10).(*array.Int64Builder).AppendValues([]int64{2, 2}, nil)
	b.Field(11).(*array.Float64Builder).AppendValues([]float64{41.91, 6.87}, nil)
	rec := b.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	var buf bytes.Buffer
	if err := pqarrow.WriteTable(tbl, &buf, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()); err != nil {
		tb.Fatalf("write parquet: %v", err)
	}
	return buf.Bytes()
}

// feeds writes one file per feed and returns the location map.
func feeds(tb testing.TB) map[string]string {
	tb.Helper()
	dir := tb.TempDir()
	return map[string]string{
		"india_orders": writeFile(tb, dir, "orders.csv", []byte(
			"Order ID,Order Date,CustomerName,State,City\n"+
				"B-25601,01-04-2018,Bharat,Gujarat,Ahmedabad\n"+
				"B-25602,15-05-2018,Pearl,Maharashtra,Pune\n")),
		"india_order_details": writeFile(tb, dir, "details.csv", []byte(
			"Order ID,Amount,Profit,Quantity,Category,Sub-Category\n"+
				"B-25601,\"1,275\",-1148,7,Furniture,Bookcases\n"+
				"B-25601,66,-12,5,Clothing,Stole\n"+
				"B-25602,168,-111,2,Electronics,Phones\n"+
				"B-99999,10,1,1,Clothing,Orphan\n")),
		"india_sales_targets": writeFile(tb, dir, "targets.csv", []byte(
			"Month of Order Date,Category,Target\n"+
				"Apr-18,Furniture,10400\n"+
				"May-18,Electronics,9000\n")),
		"usa_orders": writeFile(tb, dir, "usa.parquet", usaParquet(tb)),
		"uk_orders": writeFile(tb, dir, "uk.csv", []byte(
			"InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country\n"+
				"536365,85123A,WHITE HANGING HEART,6,12/1/2010 8:26,2.55,17850,United Kingdom\n"+
				"536366,22633,short,row\n"+
				"536368,22960,JAM MAKING SET,6,12/1/2010 8:34,4.25,13047,EIRE\n")),
	}
}

func fileConfig(tb testing.TB) storage.Config {
	tb.Helper()
	return storage.Config{Kind: "sqlite", DSN: filepath.Join(tb.TempDir(), "sales.db")}
}

func query(tb testing.TB, cfg storage.Config, sql func(storage.Dialect) string) *storage.Rows {
	tb.Helper()
	var rows *storage.Rows
	err := WithStore(context.Background(), cfg, func(ctx context.Context, s storage.Store) error {
		var err error
		rows, err = s.Query(ctx, sql(s.Dialect()))
		return err
	})
	if err != nil {
		tb.Fatalf("query: %v", err)
	}
	return rows
}

func fingerprints(tb testing.TB, cfg storage.Config) map[string]fingerprint.Result {
	tb.Helper()
	tables := []storage.TableName{
		model.GlobalSalesOrder,
		model.SalesByCountry,
		model.CategoryPerformance,
		model.MonthlySalesTrend,
		model.IndiaSalesVsTarget,
		model.TopProductsByRevenue,
	}
	out := map[string]fingerprint.Result{}
	err := WithStore(context.Background(), cfg, func(ctx context.Context, s storage.Store) error {
		for _, t := range tables {
			r, err := fingerprint.Table(ctx, s, t, fingerprint.DefaultExclude...)
			if err != nil {
				return err
			}
			out[t.String()] = r
		}
		return nil
	})
	if err != nil {
		tb.Fatalf("fingerprint: %v", err)
	}
	return out
}

/*
End-to-end
*/

func TestRunAll_EndToEnd(t *testing.T) {
	t.Parallel()

	cfg := fileConfig(t)
	locs := feeds(t)

	msgs, err := RunAll(context.Background(), cfg, locs)
	if err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	want := []string{LoadRawDone, TransformDone, CurateDone}
	if len(msgs) != len(want) {
		t.Fatalf("messages = %v", msgs)
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Errorf("messages[%d] = %q, want %q", i, msgs[i], want[i])
		}
	}

	// 3 joined India rows (orphan dropped), 2 USA, 2 UK (bad row skipped).
	rows := query(t, cfg, func(d storage.Dialect) string {
		return `SELECT "COUNTRY", COUNT(*) FROM ` + d.Table(model.GlobalSalesOrder) + ` GROUP BY "COUNTRY" ORDER BY "COUNTRY"`
	})
	got := map[string]int64{}
	for _, r := range rows.Values {
		got[r[0].(string)] = r[1].(int64)
	}
	if got["India"] != 3 || got["USA"] != 1 || got["United States"] != 1 || got["United Kingdom"] != 1 || got["EIRE"] != 1 {
		t.Fatalf("unified counts = %v", got)
	}

	rows = query(t, cfg, func(d storage.Dialect) string {
		return `SELECT "COUNTRY" FROM ` + d.Table(model.SalesByCountry) + ` ORDER BY "COUNTRY"`
	})
	var countries []string
	for _, r := range rows.Values {
		countries = append(countries, r[0].(string))
	}
	wantCountries := []string{"India", "Ireland", "United Kingdom", "United States"}
	if len(countries) != len(wantCountries) {
		t.Fatalf("curated countries = %v, want %v", countries, wantCountries)
	}
	for i := range wantCountries {
		if countries[i] != wantCountries[i] {
			t.Fatalf("curated countries = %v, want %v", countries, wantCountries)
		}
	}
}

func TestRunAll_RerunIsStable(t *testing.T) {
	t.Parallel()

	cfg := fileConfig(t)
	locs := feeds(t)
	ctx := context.Background()

	if _, err := RunAll(ctx, cfg, locs); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := fingerprints(t, cfg)

	if _, err := RunAll(ctx, cfg, locs); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := fingerprints(t, cfg)

	for table, a := range first {
		b := second[table]
		if a.Rows == 0 {
			t.Errorf("%s is empty", table)
		}
		if a.Rows != b.Rows || a.Sum != b.Sum {
			t.Errorf("%s changed across reruns: %s vs %s", table, a, b)
		}
	}
}

func TestRunAll_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	cfg := fileConfig(t)
	locs := feeds(t)
	locs["uk_orders"] = filepath.Join(t.TempDir(), "missing.csv")

	msgs, err := RunAll(context.Background(), cfg, locs)
	if err == nil {
		t.Fatalf("expected error for missing feed")
	}
	if len(msgs) != 0 {
		t.Fatalf("messages = %v, want none", msgs)
	}
}

func TestTransform_BeforeLoadFails(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), fileConfig(t), "transform", Transform)
	if err == nil {
		t.Fatalf("expected error when the raw layer is missing")
	}
}

/*
WithStore
*/

type closeCounter struct {
	storage.Store
	closed int
}

func (c *closeCounter) Close() { c.closed++ }

// Not parallel: swaps the newStore seam.
func TestWithStore_ClosesOnError(t *testing.T) {
	fake := &closeCounter{}
	orig := newStore
	newStore = func(context.Context, storage.Config) (storage.Store, error) { return fake, nil }
	t.Cleanup(func() { newStore = orig })

	boom := errors.New("boom")
	err := WithStore(context.Background(), storage.Config{Kind: "fake"}, func(context.Context, storage.Store) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if fake.closed != 1 {
		t.Fatalf("closed %d times, want 1", fake.closed)
	}
}

func TestWithStore_UnknownBackend(t *testing.T) {
	t.Parallel()

	called := false
	err := WithStore(context.Background(), storage.Config{Kind: "nope"}, func(context.Context, storage.Store) error {
		called = true
		return nil
	})
	if !errors.Is(err, storage.ErrUnknownBackend) {
		t.Fatalf("err = %v, want ErrUnknownBackend", err)
	}
	if called {
		t.Fatalf("fn ran without a store")
	}
}
