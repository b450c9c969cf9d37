package normalize

import (
	"context"
	"strings"
	"testing"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/loader"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/model"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/mssql"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/postgres"
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
	if err := loader.EnsureStaging(context.Background(), s); err != nil {
		tb.Fatalf("EnsureStaging: %v", err)
	}
	return s
}

func seed(tb testing.TB, s storage.Store, t storage.TableName, rows ...[]any) {
	tb.Helper()
	cols := storage.Names(model.StagingColumns[t])
	for _, r := range rows {
		for len(r) < len(cols) {
			r = append(r, nil)
		}
		if _, err := s.CopyFrom(context.Background(), t, cols, [][]any{r}); err != nil {
			tb.Fatalf("seed %s: %v", t, err)
		}
	}
}

func query(tb testing.TB, s storage.Store, sql string) *storage.Rows {
	tb.Helper()
	rows, err := s.Query(context.Background(), sql)
	if err != nil {
		tb.Fatalf("query %q: %v", sql, err)
	}
	return rows
}

/*
Tests
*/

func TestStatements_RenderEveryRawTable(t *testing.T) {
	t.Parallel()

	for _, d := range []storage.Dialect{sqlite.Dialect{}, postgres.Dialect{}, mssql.Dialect{}} {
		stmts, err := Statements(d)
		if err != nil {
			t.Fatalf("%s: Statements: %v", d.Name(), err)
		}
		if len(stmts) != 5 {
			t.Fatalf("%s: %d statements", d.Name(), len(stmts))
		}
		for _, st := range stmts {
			if st.Table.Schema != model.Raw {
				t.Errorf("%s: %s not in RAW", d.Name(), st.Table)
			}
			if !strings.HasPrefix(st.Query, "SELECT") || !strings.Contains(st.Query, "INSERT_DTS") {
				t.Errorf("%s: %s query = %s", d.Name(), st.Table, st.Query)
			}
		}
	}
}

func TestRun_CoercesValues(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	ctx := context.Background()

	seed(t, s, model.StagingIndiaOrders,
		[]any{"B-1", "05-11-2020", "Bharat", "Gujarat", "Ahmedabad"},
		[]any{"B-2", "not a date", "Pearl", nil, nil},
	)
	seed(t, s, model.StagingIndiaOrderDetails,
		[]any{"B-1", "1,275", "-12.5", "7", "Furniture", "Bookcases"},
		[]any{"B-2", "n/a", nil, "", "Electronics", "Phones"},
	)
	seed(t, s, model.StagingIndiaSalesTargets, []any{"Apr-18", "Furniture", "10,400"})
	seed(t, s, model.StagingUSAOrders, []any{
		"1", "CA-1", "2016-11-08", "2016-11-11 00:00:00", "Second Class", "CG-12520", "Claire Gute",
		"Consumer", "United States", "Henderson", "Kentucky", "42420", "South", "FUR-BO-10001798",
		"Furniture", "Bookcases", "Bush Somerset", "261.96", "2", "0", "41.9136",
	})
	seed(t, s, model.StagingUKOrders,
		[]any{"536365", "85123A", "WHITE HANGING HEART", "6", "12/1/2010 8:26", "2.55", "17850", "United Kingdom"},
	)

	written, err := Run(ctx, s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(written) != 5 || written[0] != "RAW.INDIA_ORDERS" || written[4] != "RAW.UK_SALES_ORDER" {
		t.Fatalf("written = %v", written)
	}

	d := s.Dialect()
	rows := query(t, s, `SELECT "ORDER_ID", "ORDER_DATE", "INSERT_DTS" FROM `+d.Table(model.RawIndiaOrders)+` ORDER BY "ORDER_ID"`)
	if rows.Values[0][1] != "2020-11-05 00:00:00" {
		t.Errorf("India ORDER_DATE = %#v", rows.Values[0][1])
	}
	if rows.Values[1][1] != nil {
		t.Errorf("unparseable date = %#v, want NULL", rows.Values[1][1])
	}
	if rows.Values[0][2] == nil {
		t.Errorf("INSERT_DTS not stamped")
	}

	rows = query(t, s, `SELECT "AMOUNT", "PROFIT", "QUANTITY" FROM `+d.Table(model.RawIndiaOrderDetails)+` ORDER BY "ORDER_ID"`)
	if rows.Values[0][0] != 1275.0 || rows.Values[0][1] != -12.5 || rows.Values[0][2] != 7.0 {
		t.Errorf("B-1 numbers = %#v", rows.Values[0])
	}
	for i, v := range rows.Values[1] {
		if v != nil {
			t.Errorf("B-2 col %d = %#v, want NULL", i, v)
		}
	}

	rows = query(t, s, `SELECT "TARGET_AMOUNT" FROM `+d.Table(model.RawIndiaSalesTargets))
	if rows.Values[0][0] != 10400.0 {
		t.Errorf("TARGET_AMOUNT = %#v", rows.Values[0][0])
	}

	rows = query(t, s, `SELECT "ROW_ID", "ORDER_DATE", "SHIP_DATE", "SUB_CATEGORY", "SALES", "PROFIT" FROM `+d.Table(model.RawUSAOrders))
	want := []any{"1", "2016-11-08 00:00:00", "2016-11-11 00:00:00", "Bookcases", 261.96, 41.9136}
	for i, v := range want {
		if rows.Values[0][i] != v {
			t.Errorf("USA %s = %#v, want %#v", rows.Columns[i], rows.Values[0][i], v)
		}
	}

	rows = query(t, s, `SELECT "ORDER_ID", "PRODUCT_ID", "PRODUCT_DESCRIPTION", "ORDER_DATE", "UNIT_PRICE" FROM `+d.Table(model.RawUKOrders))
	want = []any{"536365", "85123A", "WHITE HANGING HEART", "2010-12-01 08:26:00", 2.55}
	for i, v := range want {
		if rows.Values[0][i] != v {
			t.Errorf("UK %s = %#v, want %#v", rows.Columns[i], rows.Values[0][i], v)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	seed(t, s, model.StagingUKOrders,
		[]any{"536365", "85123A", "X", "6", "12/1/2010 8:26", "2.55", "17850", "United Kingdom"},
	)
	for i := 0; i < 2; i++ {
		if _, err := Run(context.Background(), s); err != nil {
			t.Fatalf("Run #%d: %v", i, err)
		}
	}
	rows := query(t, s, `SELECT COUNT(*) FROM `+s.Dialect().Table(model.RawUKOrders))
	if rows.Values[0][0] != int64(1) {
		t.Fatalf("rows = %#v, want 1", rows.Values[0][0])
	}
}
