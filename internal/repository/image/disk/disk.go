package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	image_repo "imgopt/internal/repository/image"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// FileRepository stores images on the local filesystem.
type FileRepository struct{}

func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

func (r *FileRepository) GetObject(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", image_repo.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", image_repo.ErrStorageError, err)
	}
	return f, nil
}

func (r *FileRepository) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", image_repo.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", image_repo.ErrStorageError, err)
	}
	return info, nil
}

func (r *FileRepository) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("%w: create %s: %w", image_repo.ErrStorageError, dir, err)
	}
	return nil
}

// SaveProcessed writes data to path, replacing any existing file, and
// returns the number of bytes written.
func (r *FileRepository) SaveProcessed(ctx context.Context, path string, data io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %w", image_repo.ErrStorageError, path, err)
	}

	n, err := io.Copy(f, data)
	if err != nil {
		f.Close()
		return n, fmt.Errorf("%w: write %s: %w", image_repo.ErrStorageError, path, err)
	}

	if err := f.Close(); err != nil {
		return n, fmt.Errorf("%w: close %s: %w", image_repo.ErrStorageError, path, err)
	}
	return n, nil
}

// ListDir returns the regular files directly inside dir, in lexical order.
func (r *FileRepository) ListDir(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", image_repo.ErrFileNotFound, dir)
		}
		return nil, fmt.Errorf("%w: %w", image_repo.ErrStorageError, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
