package loader

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage/sqlite"
)

// discardStore accepts every statement and reports copied rows without
// writing them, isolating parse and batching cost from the warehouse.
type discardStore struct {
	storage.Store
}

func (discardStore) Dialect() storage.Dialect { return sqlite.Dialect{} }

func (discardStore) Exec(context.Context, string) error { return nil }

func (discardStore) CopyFrom(_ context.Context, _ storage.TableName, _ []string, rows [][]any) (int64, error) {
	return int64(len(rows)), nil
}

// BenchmarkLoad_UKFeed measures the CSV reader to batcher hand-off for the
// lenient UK feed, one malformed row in every hundred.
//
//	go test -run=^$ -bench ^BenchmarkLoad_UKFeed$ -benchmem ./internal/loader
func BenchmarkLoad_UKFeed(b *testing.B) {
	const rows = 50_000
	var sb strings.Builder
	sb.WriteString("InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country\n")
	for i := 0; i < rows; i++ {
		if i%100 == 99 {
			sb.WriteString("536999,broken\n")
			continue
		}
		fmt.Fprintf(&sb, "%d,85123A,WHITE HANGING HEART T-LIGHT HOLDER,6,12/1/2010 8:26,2.55,17850,United Kingdom\n", 536365+i)
	}
	path := writeFile(b, "uk.csv", []byte(sb.String()))
	f := feed(b, "uk_orders")

	log.SetOutput(io.Discard)
	b.Cleanup(func() { log.SetOutput(os.Stderr) })

	b.SetBytes(int64(sb.Len()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := Load(context.Background(), discardStore{}, f, path)
		if err != nil {
			b.Fatalf("Load: %v", err)
		}
		if res.Loaded+res.Skipped != rows {
			b.Fatalf("Load = %+v", res)
		}
	}
}
