package domain

import (
	"path/filepath"
	"strings"
)

type ImageFormat string

const (
	FormatJPEG ImageFormat = "jpeg"
	FormatJPG  ImageFormat = "jpg"
	FormatPNG  ImageFormat = "png"
	FormatWebP ImageFormat = "webp"
	FormatBMP  ImageFormat = "bmp"
	FormatTIFF ImageFormat = "tiff"
	FormatTIF  ImageFormat = "tif"
)

// Extension returns the file extension written for an output of this format.
func (f ImageFormat) Extension() string {
	if f == FormatJPEG {
		return string(FormatJPG)
	}
	return string(f)
}

var supportedExtensions = map[string]struct{}{
	"." + string(FormatJPG):  {},
	"." + string(FormatJPEG): {},
	"." + string(FormatPNG):  {},
	"." + string(FormatBMP):  {},
	"." + string(FormatTIFF): {},
	"." + string(FormatTIF):  {},
}

// IsSupportedImage reports whether name carries one of the input extensions
// picked up by directory scans. Matching ignores case.
func IsSupportedImage(name string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

type Options struct {
	Quality       QualityPreset
	GenerateWebP  bool
	GenerateSizes bool
}

func DefaultOptions() Options {
	return Options{
		Quality:       DefaultQuality,
		GenerateWebP:  true,
		GenerateSizes: true,
	}
}

// OptimizationResult holds the outputs written for one source image. A failed
// result has an empty, non-nil Paths slice and Err set.
type OptimizationResult struct {
	Source string
	Paths  []string
	Err    error
}

func NewFailedResult(source string, err error) OptimizationResult {
	return OptimizationResult{
		Source: source,
		Paths:  []string{},
		Err:    err,
	}
}

func (r OptimizationResult) Failed() bool {
	return r.Err != nil
}
