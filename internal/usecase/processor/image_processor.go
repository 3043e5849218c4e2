package processor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"imgopt/internal/domain"
	"imgopt/internal/usecase/processor/operations"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
)

type ImageProcessor struct {
	resizer  *operations.Resizer
	encoder  *operations.Encoder
	fileRepo fileRepository
	logger   *zlog.Zerolog
}

func NewImageProcessor(fileRepo fileRepository, resampler operations.Resampler, logger *zlog.Zerolog) *ImageProcessor {
	return &ImageProcessor{
		resizer:  operations.NewResizer(resampler),
		encoder:  operations.NewEncoder(),
		fileRepo: fileRepo,
		logger:   logger,
	}
}

// Load decodes the image at path, applies its orientation tag (EXIF for JPEG,
// the first IFD for TIFF) and flattens it onto white.
func (p *ImageProcessor) Load(ctx context.Context, path string) (image.Image, error) {
	reader, err := p.fileRepo.GetObject(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSource, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSource, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if operations.IsTIFF(data) {
		img = operations.Orient(img, operations.TIFFOrientation(data))
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}

	p.logger.Debug().
		Str("path", path).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Msg("Image decoded")

	return operations.Flatten(img, color.White), nil
}

func (p *ImageProcessor) Resize(img image.Image, width int) image.Image {
	return p.resizer.ToWidth(img, width)
}

func (p *ImageProcessor) Encode(ctx context.Context, img image.Image, format domain.ImageFormat, quality int) (io.Reader, error) {
	data, err := p.encoder.Process(ctx, img, format, quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}
