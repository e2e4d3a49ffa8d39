// Package storage implementa los buckets de archivos (logos de empresa) sobre un
// sistema de archivos afero: el disco local en producción, memoria en tests.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/jhoicas/fedrita-api/internal/application/ports"
	"github.com/jhoicas/fedrita-api/internal/domain"
)

var _ ports.ObjectStorage = (*BucketStore)(nil)

// MaxObjectSize tamaño máximo de un objeto subido (5 MiB).
const MaxObjectSize = 5 << 20

// BucketStore guarda cada objeto en <raíz>/<bucket>/<path> y lo publica bajo
// <publicBase>/<bucket>/<path>.
type BucketStore struct {
	fs         afero.Fs
	publicBase string
}

// NewBucketStore construye el almacén sobre fs.
func NewBucketStore(fs afero.Fs, publicBase string) *BucketStore {
	return &BucketStore{fs: fs, publicBase: strings.TrimRight(publicBase, "/")}
}

// NewDiskBucketStore almacén sobre el directorio dir del disco local.
func NewDiskBucketStore(dir, publicBase string) (*BucketStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return NewBucketStore(afero.NewBasePathFs(afero.NewOsFs(), dir), publicBase), nil
}

// FS sistema de archivos subyacente (para servir los objetos por HTTP).
func (s *BucketStore) FS() afero.Fs { return s.fs }

// Upload escribe r en bucket/objectPath. Falla si el objeto ya existe o supera MaxObjectSize.
func (s *BucketStore) Upload(ctx context.Context, bucket, objectPath string, r io.Reader) (string, error) {
	key, err := objectKey(bucket, objectPath)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	f, err := s.fs.OpenFile(key, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("storage: abrir %s: %w", key, err)
	}
	n, err := io.Copy(f, io.LimitReader(r, MaxObjectSize+1))
	closeErr := f.Close()
	if err == nil && n > MaxObjectSize {
		err = domain.Invalid("logo", "el archivo supera 5 MB")
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fs.Remove(key)
		return "", err
	}
	return s.publicBase + "/" + key, nil
}

// Remove borra bucket/objectPath; no falla si ya no existe.
func (s *BucketStore) Remove(_ context.Context, bucket, objectPath string) error {
	key, err := objectKey(bucket, objectPath)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", key, err)
	}
	return nil
}

// objectKey une bucket y path rechazando rutas que escapen del bucket.
func objectKey(bucket, objectPath string) (string, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) {
		return "", domain.Invalid("bucket", "bucket inválido")
	}
	clean := path.Clean("/" + filepath.ToSlash(objectPath))
	if clean == "/" || strings.Contains(objectPath, "..") {
		return "", domain.Invalid("path", "ruta de objeto inválida")
	}
	return bucket + clean, nil
}
