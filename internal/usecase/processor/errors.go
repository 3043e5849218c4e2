package processor

import "errors"

var (
	ErrReadSource        = errors.New("failed to read source image")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDecode            = errors.New("failed to decode image")
	ErrEncode            = errors.New("failed to encode image")
)
