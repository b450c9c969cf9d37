// Package gcsds reads feed files from Google Cloud Storage. Credentials come
// from Application Default Credentials.
package gcsds

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// openObject is a test hook returning a reader for bucket/object.
var openObject = func(ctx context.Context, bucket, object string) (io.ReadCloser, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcsds: client: %w", err)
	}
	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	return &objectReader{Reader: r, client: client}, nil
}

// objectReader closes the client together with the object reader.
type objectReader struct {
	*storage.Reader
	client *storage.Client
}

func (o *objectReader) Close() error {
	err := o.Reader.Close()
	if cerr := o.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// Source is one GCS object.
type Source struct {
	bucket, object string
}

// NewSource binds a GCS object.
func NewSource(bucket, object string) *Source { return &Source{bucket: bucket, object: object} }

// Open streams the object.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	rc, err := openObject(ctx, s.bucket, s.object)
	if err != nil {
		return nil, fmt.Errorf("gcsds: open gs://%s/%s: %w", s.bucket, s.object, err)
	}
	return rc, nil
}
