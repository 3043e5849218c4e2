package optimizer

import (
	"context"
	"image"
	"io"
	"io/fs"

	"imgopt/internal/domain"
)

type imageProcessor interface {
	Load(ctx context.Context, path string) (image.Image, error)
	Resize(img image.Image, width int) image.Image
	Encode(ctx context.Context, img image.Image, format domain.ImageFormat, quality int) (io.Reader, error)
}

type fileRepository interface {
	Stat(ctx context.Context, path string) (fs.FileInfo, error)
	EnsureDir(ctx context.Context, dir string) error
	SaveProcessed(ctx context.Context, path string, data io.Reader) (int64, error)
	ListDir(ctx context.Context, dir string) ([]string, error)
}

type manifestRepository interface {
	Save(ctx context.Context, path string, m *domain.Manifest) error
	Load(ctx context.Context, path string) (*domain.Manifest, error)
}
