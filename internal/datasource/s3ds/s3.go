// Package s3ds reads feed files from Amazon S3 using the AWS SDK. Credentials
// and region come from the SDK's default chain (environment, shared config,
// instance role).
package s3ds

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// objectGetter is the subset of *s3.S3 used here.
type objectGetter interface {
	GetObjectWithContext(ctx aws.Context, in *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

var (
	clientOnce sync.Once
	client     objectGetter
	clientErr  error
)

// newClient is a test hook; by default it builds one shared client.
var newClient = func() (objectGetter, error) {
	clientOnce.Do(func() {
		sess, err := session.NewSessionWithOptions(session.Options{SharedConfigState: session.SharedConfigEnable})
		if err != nil {
			clientErr = fmt.Errorf("s3ds: session: %w", err)
			return
		}
		client = s3.New(sess)
	})
	return client, clientErr
}

// Source is one S3 object.
type Source struct {
	bucket, key string
}

// NewSource binds an S3 object.
func NewSource(bucket, key string) *Source { return &Source{bucket: bucket, key: key} }

// Open streams the object body.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	c, err := newClient()
	if err != nil {
		return nil, err
	}
	out, err := c.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3ds: get s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return out.Body, nil
}
