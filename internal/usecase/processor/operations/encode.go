package operations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"imgopt/internal/domain"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	bimg "gopkg.in/h2non/bimg.v1"
)

var ErrUnsupportedOutput = errors.New("unsupported output format")

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Process(ctx context.Context, img image.Image, format domain.ImageFormat, quality int) (io.Reader, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	var err error

	switch format {
	case domain.FormatJPEG, domain.FormatJPG:
		err = encodeProgressiveJPEG(buf, img, quality)
	case domain.FormatWebP:
		err = webp.Encode(buf, img, &webp.Options{Quality: float32(quality)})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOutput, format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}

	return buf, nil
}

// encodeProgressiveJPEG hands a lossless PNG of img to libvips, which writes
// an interlaced (progressive) JPEG at the given quality.
func encodeProgressiveJPEG(w io.Writer, img image.Image, quality int) error {
	var lossless bytes.Buffer
	if err := imaging.Encode(&lossless, img, imaging.PNG, imaging.PNGCompressionLevel(png.NoCompression)); err != nil {
		return fmt.Errorf("failed to prepare jpeg input: %w", err)
	}

	out, err := bimg.NewImage(lossless.Bytes()).Process(bimg.Options{
		Type:      bimg.JPEG,
		Quality:   quality,
		Interlace: true,
	})
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}
