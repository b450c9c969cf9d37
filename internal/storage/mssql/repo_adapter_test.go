package mssql

import (
	"context"
	"errors"
	"testing"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// Not parallel: swaps the newRepository hook.
func TestRegisteredFactory(t *testing.T) {
	orig := newRepository
	t.Cleanup(func() { newRepository = orig })

	boom := errors.New("login failed")
	tests := []struct {
		name    string
		hookErr error
	}{
		{"wraps repository", nil},
		{"propagates connect error", boom},
	}
	for _, tt := range tests {
		var gotDSN string
		closed := 0
		fake := &Repository{}
		newRepository = func(_ context.Context, cfg Config) (*Repository, func(), error) {
			gotDSN = cfg.DSN
			if tt.hookErr != nil {
				return nil, nil, tt.hookErr
			}
			return fake, func() { closed++ }, nil
		}

		s, err := storage.New(context.Background(), storage.Config{Kind: "mssql", DSN: "sqlserver://sa@warehouse?database=SALES"})
		if gotDSN != "sqlserver://sa@warehouse?database=SALES" {
			t.Errorf("%s: hook DSN = %q", tt.name, gotDSN)
		}
		if tt.hookErr != nil {
			if !errors.Is(err, tt.hookErr) {
				t.Errorf("%s: err = %v", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: storage.New: %v", tt.name, err)
		}
		if w, ok := s.(*wrappedRepo); !ok || w.Repository != fake {
			t.Fatalf("%s: store = %T", tt.name, s)
		}
		if s.Dialect().Name() != "mssql" {
			t.Errorf("%s: dialect = %q", tt.name, s.Dialect().Name())
		}
		s.Close()
		if closed != 1 {
			t.Errorf("%s: closeFn called %d times", tt.name, closed)
		}
	}
}

// TestNewRepositoryRejectsBadDSN checks that msdsn validation runs before any
// network activity.
func TestNewRepositoryRejectsBadDSN(t *testing.T) {
	t.Parallel()

	if _, _, err := NewRepository(context.Background(), Config{DSN: "sqlserver://host?connection+timeout=abc"}); err == nil {
		t.Fatalf("NewRepository with malformed DSN: want error")
	}
}
