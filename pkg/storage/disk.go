// Package storage is the file store for menu images.
//
// Three drivers implement Disk:
//   - "local"      files under STORAGE_LOCAL_ROOT (default)
//   - "s3"         S3-compatible object storage (AWS S3, MinIO, R2)
//   - "cloudinary" Cloudinary media library
//
// Boot once, then hand the default disk to whatever needs it:
//
//	if err := storage.Connect(ctx); err != nil { ... }
//	disk, err := storage.Default()
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by GetStream when nothing is stored at path.
var ErrNotFound = errors.New("storage: file not found")

// Disk is the driver interface. Paths are slash separated and relative to the
// disk root.
type Disk interface {
	Put(ctx context.Context, path string, content []byte) error
	PutStream(ctx context.Context, path string, r io.Reader) error

	// GetStream opens path for reading. The caller closes it.
	GetStream(ctx context.Context, path string) (io.ReadCloser, error)

	Exists(ctx context.Context, path string) bool

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes path. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error
}
