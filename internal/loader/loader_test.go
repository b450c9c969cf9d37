package loader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/model"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/sqlite"
)

/*
Test helpers
*/

func newStore(tb testing.TB) storage.Store {
	tb.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })
	s := sqlite.New(db)
	if err := EnsureStaging(context.Background(), s); err != nil {
		tb.Fatalf("EnsureStaging: %v", err)
	}
	return s
}

func writeFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	p := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		tb.Fatalf("write %s: %v", p, err)
	}
	return p
}

func count(tb testing.TB, s storage.Store, t storage.TableName) int64 {
	tb.Helper()
	rows, err := s.Query(context.Background(), "SELECT COUNT(*) FROM "+s.Dialect().Table(t))
	if err != nil {
		tb.Fatalf("count %s: %v", t, err)
	}
	return rows.Values[0][0].(int64)
}

func feed(tb testing.TB, name string) Feed {
	tb.Helper()
	f, ok := Lookup(name)
	if !ok {
		tb.Fatalf("no feed %s", name)
	}
	return f
}

// usaParquet writes a Parquet file whose column names differ from the
// staging table only in case, plus one column staging does not have.
func usaParquet(tb testing.TB) []byte {
	tb.Helper()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "ORDER ID", Type: arrow.BinaryTypes.String},
		{Name: "order date", Type: arrow.FixedWidthTypes.Date32},
		{Name: "sales", Type: arrow.PrimitiveTypes.Float64},
		{Name: "Internal Note", Type: arrow.BinaryTypes.String},
	}, nil)
	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()
	b.Field(0).(*array.StringBuilder).AppendValues([]string{"CA-1", "CA-2"}, nil)
	b.Field(1).(*array.Date32Builder).AppendValues([]arrow.Date32{17113, 17114}, nil)
	b.Field(2).(*array.Float64Builder).AppendValues([]float64{261.96, 731.94}, nil)
	b.Field(3).(*array.StringBuilder).AppendValues([]string{"a", "b"}, nil)
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

/*
Tests
*/

func TestEnsureStaging_Idempotent(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if err := EnsureStaging(context.Background(), s); err != nil {
		t.Fatalf("second EnsureStaging: %v", err)
	}
	for _, tbl := range model.StagingTables {
		if n := count(t, s, tbl); n != 0 {
			t.Fatalf("%s rows = %d", tbl, n)
		}
	}
}

func TestLoad_StrictCSVReplacesContents(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	ctx := context.Background()
	path := writeFile(t, "orders.csv", []byte(
		"\uFEFFOrder ID,Order Date,CustomerName,State,City\n"+
			"B-25601,01-04-2018,Bharat,Gujarat,Ahmedabad\n"+
			"\"B-25602\",01-04-2018,\"Pearl, Jr\",Maharashtra,\n"))
	f := feed(t, "india_orders")

	for i := 0; i < 2; i++ {
		res, err := Load(ctx, s, f, path)
		if err != nil {
			t.Fatalf("Load #%d: %v", i, err)
		}
		if res.Loaded != 2 || res.Skipped != 0 {
			t.Fatalf("Load #%d = %+v", i, res)
		}
	}
	if n := count(t, s, model.StagingIndiaOrders); n != 2 {
		t.Fatalf("rows after reload = %d, want 2", n)
	}

	rows, err := s.Query(ctx, `SELECT "CUSTOMER_NAME", "CITY" FROM `+s.Dialect().Table(model.StagingIndiaOrders)+` WHERE "ORDER_ID" = 'B-25602'`)
	if err != nil {
		t.Fatal(err)
	}
	if rows.Values[0][0] != "Pearl, Jr" || rows.Values[0][1] != nil {
		t.Fatalf("row = %#v", rows.Values[0])
	}
}

func TestLoad_StrictCSVAbortsOnMalformedRow(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	path := writeFile(t, "targets.csv", []byte(
		"Month of Order Date,Category,Target\n"+
			"Apr-18,Furniture,10400\n"+
			"May-18,Furniture\n"))

	_, err := Load(context.Background(), s, feed(t, "india_sales_targets"), path)
	if !errors.Is(err, ErrMalformedRow) {
		t.Fatalf("err = %v, want ErrMalformedRow", err)
	}
}

func TestLoad_SkipPolicyCountsBadRows(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	path := writeFile(t, "uk.csv", []byte(
		"InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country\n"+
			"536365,85123A,WHITE HANGING HEART,6,12/1/2010 8:26,2.55,17850,United Kingdom\n"+
			"536366,22633,too,few\n"+
			"536367,84879,\"bad \"quote\",32,12/1/2010 8:34,1.69,13047,United Kingdom\n"+
			"536368,22960,JAM MAKING SET,6,12/1/2010 8:34,4.25,13047,EIRE\n"))

	res, err := Load(context.Background(), s, feed(t, "uk_orders"), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Loaded != 2 || res.Skipped != 2 {
		t.Fatalf("Load = %+v, want loaded=2 skipped=2", res)
	}
}

func TestLoad_ParquetMatchesColumnsByName(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	path := writeFile(t, "usa.parquet", usaParquet(t))

	res, err := Load(context.Background(), s, feed(t, "usa_orders"), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.Loaded != 2 {
		t.Fatalf("Loaded = %d", res.Loaded)
	}
	rows, err := s.Query(context.Background(),
		`SELECT "Order ID", "Order Date", "Sales", "Profit" FROM `+s.Dialect().Table(model.StagingUSAOrders)+` ORDER BY "Order ID"`)
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"CA-1", "2016-11-08", "261.96", nil}
	for i, v := range want {
		if rows.Values[0][i] != v {
			t.Errorf("col %s = %#v, want %#v", rows.Columns[i], rows.Values[0][i], v)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	_, err := Load(context.Background(), s, feed(t, "india_orders"), filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadAll_RequiresEveryLocation(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	_, err := LoadAll(context.Background(), s, map[string]string{"india_orders": "x.csv"})
	if err == nil {
		t.Fatalf("expected error for missing locations")
	}
}

func TestLoadAll_RejectsUnknownFeed(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	path := writeFile(t, "targets.csv", []byte("Month of Order Date,Category,Target\nApr-18,Furniture,10400\n"))
	if _, err := Load(context.Background(), s, feed(t, "india_sales_targets"), path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	locs := map[string]string{"mexico_orders": "mx.csv"}
	for _, f := range Feeds {
		locs[f.Name] = path
	}
	_, err := LoadAll(context.Background(), s, locs)
	if err == nil || !strings.Contains(err.Error(), "mexico_orders") {
		t.Fatalf("err = %v, want unknown feed", err)
	}
	// Nothing was truncated.
	if n := count(t, s, model.StagingIndiaSalesTargets); n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	if _, ok := Lookup("usa_orders"); !ok {
		t.Fatalf("usa_orders not found")
	}
	if _, ok := Lookup("mexico_orders"); ok {
		t.Fatalf("unexpected feed")
	}
	for _, f := range Feeds {
		if len(f.Columns()) == 0 {
			t.Errorf("%s: no columns", f.Name)
		}
	}
}

// Not parallel: swaps the openLocation seam.
func TestLoad_TruncatesBeforeOpening(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	f := feed(t, "india_sales_targets")
	path := writeFile(t, "targets.csv", []byte("Month of Order Date,Category,Target\nApr-18,Furniture,10400\n"))
	if _, err := Load(ctx, s, f, path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	orig := openLocation
	t.Cleanup(func() { openLocation = orig })
	unreachable := errors.New("connection refused")
	openLocation = func(context.Context, string) (io.ReadCloser, error) { return nil, unreachable }

	if _, err := Load(ctx, s, f, "https://feeds.example.com/targets.csv"); !errors.Is(err, unreachable) {
		t.Fatalf("err = %v, want %v", err, unreachable)
	}
	if n := count(t, s, model.StagingIndiaSalesTargets); n != 0 {
		t.Fatalf("rows after failed reload = %d, want 0", n)
	}
}
