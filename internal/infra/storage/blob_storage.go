// Package storage implements document blob storage on top of gocloud.dev,
// so local file buckets and GCS buckets are interchangeable via the bucket URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"vendorwatch/config"
	"vendorwatch/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // local development buckets
	_ "gocloud.dev/blob/gcsblob"  // production buckets
	_ "gocloud.dev/blob/memblob"  // in-memory buckets for tests
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// StorageParams holds dependencies for DocumentStorage, injected by Fx
type StorageParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
}

// NewDocumentStorage opens the configured bucket and registers its close hook.
func NewDocumentStorage(params StorageParams) (service.DocumentStorage, error) {
	cfg := params.Config.Storage
	if cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be provided")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", cfg.BucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return NewBlobStorage(bucket, cfg.PublicBaseURL), nil
}

// NewBlobStorage wraps an already-open bucket. Used directly by tests with a
// memblob bucket.
func NewBlobStorage(bucket *blob.Bucket, publicBaseURL string) service.DocumentStorage {
	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Upload writes the blob and returns its public URL.
func (s *blobStorage) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {
	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, path, data, opts); err != nil {
		return "", errors.Wrapf(err, "write blob %s", path)
	}

	return fmt.Sprintf("%s/%s", s.publicBaseURL, path), nil
}

// Open returns a reader for the blob at the given path.
func (s *blobStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	reader, err := s.bucket.NewReader(ctx, path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open blob %s", path)
	}

	return reader, nil
}

// Delete removes the blob at the given path.
func (s *blobStorage) Delete(ctx context.Context, path string) error {
	if err := s.bucket.Delete(ctx, path); err != nil {
		return errors.Wrapf(err, "delete blob %s", path)
	}

	return nil
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewDocumentStorage),
)
