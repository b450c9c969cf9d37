// Package sqlrunner executes ad hoc SQL scripts against a store, one
// statement at a time. Execution stops at the first failing statement;
// statements already run are not rolled back.
package sqlrunner

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/datasource"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/storage"
)

// RunFile reads the script at location (a path or any datasource URI) and
// runs it. It returns the number of statements executed successfully.
func RunFile(ctx context.Context, s storage.Store, location string) (int, error) {
	rc, err := datasource.Open(ctx, location)
	if err != nil {
		return 0, fmt.Errorf("sqlrunner: %w", err)
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		return 0, fmt.Errorf("sqlrunner: read %s: %w", location, err)
	}
	return Run(ctx, s, string(b))
}

// Run executes every statement of script in order.
func Run(ctx context.Context, s storage.Store, script string) (int, error) {
	stmts := Split(script)
	for i, stmt := range stmts {
		start := time.Now()
		if err := s.Exec(ctx, stmt); err != nil {
			return i, fmt.Errorf("sqlrunner: statement %d: %w", i+1, err)
		}
		log.Printf("sqlrunner: statement=%d/%d elapsed=%s", i+1, len(stmts), time.Since(start).Truncate(time.Millisecond))
	}
	return len(stmts), nil
}
