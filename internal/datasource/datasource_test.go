package datasource

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/datasource/file"
)

type stubSource struct{ name string }

func (s stubSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.name)), nil
}

// TestForURI covers scheme dispatch. Remote constructors are replaced so no
// network access happens.
func TestForURI(t *testing.T) {
	origHTTP, origS3, origGCS := newHTTPSource, newS3Source, newGCSSource
	defer func() { newHTTPSource, newS3Source, newGCSSource = origHTTP, origS3, origGCS }()

	newHTTPSource = func(u string) Source { return stubSource{"http " + u} }
	newS3Source = func(b, k string) Source { return stubSource{"s3 " + b + " " + k} }
	newGCSSource = func(b, o string) Source { return stubSource{"gs " + b + " " + o} }

	tests := []struct {
		in        string
		wantStub  string
		wantLocal string
		wantErrIs error
		wantErr   bool
	}{
		{in: "data/india_orders.csv", wantLocal: "data/india_orders.csv"},
		{in: "/abs/uk.csv", wantLocal: "/abs/uk.csv"},
		{in: "file:///abs/uk.csv", wantLocal: "/abs/uk.csv"},
		{in: `C:\feeds\uk.csv`, wantLocal: `C:\feeds\uk.csv`},
		{in: "https://example.com/usa.parquet", wantStub: "http https://example.com/usa.parquet"},
		{in: "s3://sales/india/orders.csv", wantStub: "s3 sales india/orders.csv"},
		{in: "gs://feeds/uk.csv", wantStub: "gs feeds uk.csv"},
		{in: "s3://only-bucket", wantErr: true},
		{in: "ftp://host/file.csv", wantErrIs: ErrUnsupportedScheme},
		{in: "  ", wantErr: true},
	}
	for _, tt := range tests {
		src, err := ForURI(tt.in)
		switch {
		case tt.wantErrIs != nil:
			if !errors.Is(err, tt.wantErrIs) {
				t.Errorf("ForURI(%q) err = %v, want %v", tt.in, err, tt.wantErrIs)
			}
			continue
		case tt.wantErr:
			if err == nil {
				t.Errorf("ForURI(%q): want error", tt.in)
			}
			continue
		case err != nil:
			t.Errorf("ForURI(%q): %v", tt.in, err)
			continue
		}
		if tt.wantLocal != "" {
			l, ok := src.(*file.Local)
			if !ok || l.Path() != tt.wantLocal {
				t.Errorf("ForURI(%q) = %#v, want local %q", tt.in, src, tt.wantLocal)
			}
			continue
		}
		if s, ok := src.(stubSource); !ok || s.name != tt.wantStub {
			t.Errorf("ForURI(%q) = %#v, want %q", tt.in, src, tt.wantStub)
		}
	}
}

// TestOpenLocalFile reads a file through the URI entry point.
func TestOpenLocalFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "targets.csv")
	if err := os.WriteFile(p, []byte("Month of Order Date,Category,Target\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rc, err := Open(context.Background(), "file://"+p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if !strings.HasPrefix(string(b), "Month of Order Date") {
		t.Fatalf("content = %q", b)
	}
}

// TestOpenMissingFile keeps os.ErrNotExist matchable.
func TestOpenMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}
