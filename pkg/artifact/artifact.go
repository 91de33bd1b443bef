// Package artifact stores finished documents on the local disk or in a
// Google Cloud Storage bucket.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
)

// ErrExists is returned when the target already exists and overwriting is
// not allowed.
var ErrExists = errors.New("artifact already exists")

// Sink stores a finished artifact under a name and returns its location.
type Sink interface {
	Write(ctx context.Context, name, contentType string, data []byte) (string, error)
	Close() error
}

// ParseGCSURL splits gs://bucket/object into bucket and object name.
func ParseGCSURL(url string) (bucket, object string, ok bool) {
	rest, found := strings.CutPrefix(url, "gs://")
	if !found {
		return "", "", false
	}
	bucket, object, found = strings.Cut(rest, "/")
	if !found || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}

// Open returns the sink for target and the name to write under. A gs://
// target opens a bucket sink with opts; anything else is a file path.
func Open(ctx context.Context, target string, overwrite bool, opts ...option.ClientOption) (Sink, string, error) {
	if strings.HasPrefix(target, "gs://") {
		bucket, object, ok := ParseGCSURL(target)
		if !ok {
			return nil, "", fmt.Errorf("invalid GCS URL %q, want gs://bucket/object", target)
		}
		sink, err := NewGCSSink(ctx, bucket, overwrite, opts...)
		if err != nil {
			return nil, "", err
		}
		return sink, object, nil
	}
	if target == "" {
		return nil, "", fmt.Errorf("output path is required")
	}
	return &FileSink{Overwrite: overwrite}, target, nil
}
