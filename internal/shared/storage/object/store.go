package object

import (
	"context"
	"io"
)

// Store defines the contract for writing and reading named blobs. Keys are
// chosen by the caller; a put to an existing key replaces the object.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}
