package ports

import (
	"context"
	"io"
)

// ObjectStorage bucket de archivos (logos de empresa).
type ObjectStorage interface {
	// Upload guarda r en bucket/path y devuelve la URL pública del objeto.
	Upload(ctx context.Context, bucket, path string, r io.Reader) (string, error)
	Remove(ctx context.Context, bucket, path string) error
}
