// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct{ path string }

// NewLocal returns a new Local data source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the bound filesystem path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading. The returned value is an
// *os.File, so readers needing random access (Parquet) can use it directly.
//
// A canceled context is reported without touching the filesystem. Filesystem
// errors are wrapped with the path and still match errors.Is(err, os.ErrNotExist).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
