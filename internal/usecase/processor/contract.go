package processor

import (
	"context"
	"io"
)

type fileRepository interface {
	GetObject(ctx context.Context, path string) (io.ReadCloser, error)
}
