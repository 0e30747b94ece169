package service

import (
	"context"
	"io"
)

// DocumentStorage defines the interface for contract document blob storage.
// Implementations are addressed by storage path; public URLs are derived by
// the caller.
type DocumentStorage interface {
	// Upload writes the blob at the given path, replacing any existing
	// object, and returns the publicly reachable URL.
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)

	// Open returns a reader for the blob at the given path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at the given path.
	Delete(ctx context.Context, path string) error
}
