package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSSink writes artifacts as objects of one bucket. Without Overwrite an
// object is only created if it does not exist yet.
type GCSSink struct {
	client    *storage.Client
	bucket    *storage.BucketHandle
	name      string
	Overwrite bool
}

// NewGCSSink opens a client for bucket.
func NewGCSSink(ctx context.Context, bucket string, overwrite bool, opts ...option.ClientOption) (*GCSSink, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSSink{client: client, bucket: client.Bucket(bucket), name: bucket, Overwrite: overwrite}, nil
}

func (s *GCSSink) Write(ctx context.Context, name, contentType string, data []byte) (string, error) {
	obj := s.bucket.Object(name)
	if !s.Overwrite {
		obj = obj.If(storage.Conditions{DoesNotExist: true})
	}

	writer := obj.NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := io.Copy(writer, bytes.NewReader(data)); err != nil {
		_ = writer.Close()
		return "", s.writeError(name, err)
	}
	if err := writer.Close(); err != nil {
		return "", s.writeError(name, err)
	}
	return fmt.Sprintf("gs://%s/%s", s.name, name), nil
}

func (s *GCSSink) writeError(name string, err error) error {
	if preconditionFailed(err) {
		return fmt.Errorf("%w: gs://%s/%s", ErrExists, s.name, name)
	}
	return fmt.Errorf("failed to write to GCS: %w", err)
}

func (s *GCSSink) Close() error {
	return s.client.Close()
}

// preconditionFailed reports whether a conditional write lost to an
// existing object.
func preconditionFailed(err error) bool {
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed
}
