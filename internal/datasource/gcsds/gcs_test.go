package gcsds

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
)

// TestOpenUsesHook routes bucket and object through the reader hook.
func TestOpenUsesHook(t *testing.T) {
	orig := openObject
	defer func() { openObject = orig }()

	var gotBucket, gotObject string
	openObject = func(_ context.Context, bucket, object string) (io.ReadCloser, error) {
		gotBucket, gotObject = bucket, object
		return io.NopCloser(strings.NewReader("payload")), nil
	}

	rc, err := NewSource("feeds", "usa/orders.parquet").Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	if gotBucket != "feeds" || gotObject != "usa/orders.parquet" {
		t.Fatalf("bucket=%q object=%q", gotBucket, gotObject)
	}
}

// TestOpenMissingObject keeps storage.ErrObjectNotExist matchable.
func TestOpenMissingObject(t *testing.T) {
	orig := openObject
	defer func() { openObject = orig }()

	openObject = func(context.Context, string, string) (io.ReadCloser, error) {
		return nil, storage.ErrObjectNotExist
	}
	_, err := NewSource("feeds", "missing").Open(context.Background())
	if !errors.Is(err, storage.ErrObjectNotExist) {
		t.Fatalf("err = %v, want ErrObjectNotExist", err)
	}
}
