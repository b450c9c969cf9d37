// Package datasource opens feed locations. A location is a URI whose scheme
// selects the backend: a plain path or file:// for local disk, http(s)://,
// s3://bucket/key and gs://bucket/object.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/datasource/file"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/datasource/gcsds"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/datasource/httpds"
	"github.com/hariharan-sabapathi/Global-Sales-Project/internal/datasource/s3ds"
)

// ErrUnsupportedScheme is returned for locations no backend can open.
var ErrUnsupportedScheme = errors.New("unsupported location scheme")

// Source is anything that can be opened for a single sequential read.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Test seams for the remote backends.
var (
	newHTTPSource = func(u string) Source { return httpds.NewSource(httpds.NewClient(httpds.Config{}), u) }
	newS3Source   = func(bucket, key string) Source { return s3ds.NewSource(bucket, key) }
	newGCSSource  = func(bucket, object string) Source { return gcsds.NewSource(bucket, object) }
)

// ForURI resolves location to a Source without opening it.
func ForURI(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("datasource: empty location")
	}
	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path (including Windows drive letters).
		return file.NewLocal(location), nil
	}
	switch strings.ToLower(u.Scheme) {
	case "file":
		return file.NewLocal(u.Path), nil
	case "http", "https":
		return newHTTPSource(location), nil
	case "s3":
		if u.Host == "" || strings.Trim(u.Path, "/") == "" {
			return nil, fmt.Errorf("datasource: %q: want s3://bucket/key", location)
		}
		return newS3Source(u.Host, strings.TrimPrefix(u.Path, "/")), nil
	case "gs":
		if u.Host == "" || strings.Trim(u.Path, "/") == "" {
			return nil, fmt.Errorf("datasource: %q: want gs://bucket/object", location)
		}
		return newGCSSource(u.Host, strings.TrimPrefix(u.Path, "/")), nil
	default:
		return nil, fmt.Errorf("datasource: %w %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// Open resolves and opens location.
func Open(ctx context.Context, location string) (io.ReadCloser, error) {
	src, err := ForURI(location)
	if err != nil {
		return nil, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("datasource: %w", err)
	}
	return rc, nil
}
