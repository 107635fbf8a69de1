package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS stores each key as an object of a Google Cloud Storage bucket. It relies on Application
// Default Credentials.
type GCS struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

// NewGCS creates a storage client for bucket. Object names are prefixed with prefix, if any.
// Extra client options, such as option.WithCredentialsFile, override the default credentials.
func NewGCS(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCS, error) {
	opts = append([]option.ClientOption{option.WithUserAgent("subwise")}, opts...)
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{client: client, bucket: client.Bucket(bucket), prefix: prefix}, nil
}

func (g *GCS) object(key string) *storage.ObjectHandle {
	return g.bucket.Object(path.Join(g.prefix, key+".json"))
}

func (g *GCS) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := g.object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	return data, nil
}

func (g *GCS) Put(ctx context.Context, key string, value []byte) error {
	w := g.object(key).NewWriter(ctx)
	if _, err := w.Write(value); err != nil {
		_ = w.Close()
		return fmt.Errorf("write GCS object: %w", err)
	}
	// Close finalizes the upload
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}

func (g *GCS) Close() error { return g.client.Close() }
