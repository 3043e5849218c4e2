package optimizer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"imgopt/internal/domain"
	image_repo "imgopt/internal/repository/image"

	"github.com/dustin/go-humanize"
	"github.com/wb-go/wbf/zlog"
)

type Optimizer struct {
	processor    imageProcessor
	fileRepo     fileRepository
	manifestRepo manifestRepository
	logger       *zlog.Zerolog
	workDir      func() (string, error)
}

func NewOptimizer(processor imageProcessor, fileRepo fileRepository, manifestRepo manifestRepository, logger *zlog.Zerolog) *Optimizer {
	return &Optimizer{
		processor:    processor,
		fileRepo:     fileRepo,
		manifestRepo: manifestRepo,
		logger:       logger,
		workDir:      func() (string, error) { return filepath.Abs(".") },
	}
}

// OptimizePath dispatches to OptimizeImage for a file and OptimizeDirectory
// for a directory. Directory runs always generate sizes and WebP; only the
// quality is taken from opts.
func (o *Optimizer) OptimizePath(ctx context.Context, input, outDir string, opts domain.Options) ([]domain.OptimizationResult, error) {
	info, err := o.fileRepo.Stat(ctx, input)
	if err != nil {
		if errors.Is(err, image_repo.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, input)
		}
		return nil, err
	}

	if info.IsDir() {
		o.logger.Info().Str("path", input).Msg("Optimizing directory")
		return o.OptimizeDirectory(ctx, input, outDir, opts.Quality)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, input)
	}

	o.logger.Info().Str("path", input).Msg("Optimizing single image")
	return []domain.OptimizationResult{o.OptimizeImage(ctx, input, outDir, opts)}, nil
}

// OptimizeImage writes the sized and full-resolution variants of src into
// outDir. Failures are logged and reported through the result, never
// returned.
func (o *Optimizer) OptimizeImage(ctx context.Context, src, outDir string, opts domain.Options) domain.OptimizationResult {
	paths, err := o.safeOptimize(ctx, src, outDir, opts)
	if err != nil {
		o.logger.Error().Err(err).Str("path", src).Msg("Error processing image")
		return domain.NewFailedResult(src, err)
	}

	o.logger.Info().
		Str("path", src).
		Int("outputs", len(paths)).
		Msg("Image optimized")

	return domain.OptimizationResult{Source: src, Paths: paths}
}

// safeOptimize turns a codec panic on a malformed file into an error so the
// batch can move on.
func (o *Optimizer) safeOptimize(ctx context.Context, src, outDir string, opts domain.Options) (paths []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().
				Str("path", src).
				Interface("panic", r).
				Msg("Panic recovered while processing image")
			paths = nil
			err = fmt.Errorf("%w: %v", ErrImagePanic, r)
		}
	}()
	return o.optimize(ctx, src, outDir, opts)
}

func (o *Optimizer) optimize(ctx context.Context, src, outDir string, opts domain.Options) ([]string, error) {
	if err := o.fileRepo.EnsureDir(ctx, outDir); err != nil {
		return nil, err
	}

	img, err := o.processor.Load(ctx, src)
	if err != nil {
		return nil, err
	}

	stem := domain.Stem(src)
	quality := opts.Quality.Value()
	formats := []domain.ImageFormat{domain.FormatJPEG}
	if opts.GenerateWebP {
		formats = append(formats, domain.FormatWebP)
	}

	var paths []string

	if opts.GenerateSizes {
		srcWidth := img.Bounds().Dx()
		for _, preset := range domain.SizePresets() {
			if preset.Width >= srcWidth {
				continue
			}

			resized := o.processor.Resize(img, preset.Width)
			for _, format := range formats {
				path, err := o.write(ctx, resized, outDir, stem, preset.Width, format, quality)
				if err != nil {
					return nil, err
				}
				paths = append(paths, path)
			}
		}
	}

	for _, format := range formats {
		path, err := o.write(ctx, img, outDir, stem, 0, format, quality)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func (o *Optimizer) write(ctx context.Context, img image.Image, outDir, stem string, width int, format domain.ImageFormat, quality int) (string, error) {
	data, err := o.processor.Encode(ctx, img, format, quality)
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, domain.VariantName(stem, width, format))
	n, err := o.fileRepo.SaveProcessed(ctx, path, data)
	if err != nil {
		return "", err
	}

	o.logger.Debug().
		Str("path", path).
		Int("width", img.Bounds().Dx()).
		Str("size", humanize.Bytes(uint64(n))).
		Msg("Variant written")

	return path, nil
}

// OptimizeDirectory optimizes every supported image directly inside dir, one
// at a time in lexical order. Each discovered file gets a result; failed
// files carry an empty path list.
func (o *Optimizer) OptimizeDirectory(ctx context.Context, dir, outDir string, quality domain.QualityPreset) ([]domain.OptimizationResult, error) {
	names, err := o.fileRepo.ListDir(ctx, dir)
	if err != nil {
		if errors.Is(err, image_repo.ErrFileNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, dir)
		}
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	var images []string
	for _, name := range names {
		if domain.IsSupportedImage(name) {
			images = append(images, name)
		}
	}

	total := len(images)
	o.logger.Info().Str("dir", dir).Int("count", total).Msg("Found images to optimize")

	opts := domain.Options{
		Quality:       quality,
		GenerateWebP:  true,
		GenerateSizes: true,
	}

	results := make([]domain.OptimizationResult, 0, total)
	for i, name := range images {
		if err := ctx.Err(); err != nil {
			o.logger.Warn().Int("processed", i).Int("total", total).Msg("Directory run interrupted")
			return results, err
		}

		o.logger.Info().Msgf("Processing %d/%d: %s", i+1, total, name)
		results = append(results, o.OptimizeImage(ctx, filepath.Join(dir, name), outDir, opts))
	}

	return results, nil
}

// GenerateImageManifest writes the manifest for results to path, replacing
// any previous file. generated_at records the absolute working directory of
// the run.
func (o *Optimizer) GenerateImageManifest(ctx context.Context, results []domain.OptimizationResult, path string) error {
	generatedAt, err := o.workDir()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrManifestWrite, err)
	}

	m := domain.NewManifest(generatedAt, results)
	if err := o.manifestRepo.Save(ctx, path, m); err != nil {
		return fmt.Errorf("%w: %w", ErrManifestWrite, err)
	}

	o.logger.Info().Str("path", path).Int("images", len(m.OptimizedImages)).Msg("Manifest saved")
	return nil
}

func (o *Optimizer) ReadManifest(ctx context.Context, path string) (*domain.Manifest, error) {
	m, err := o.manifestRepo.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifestRead, err)
	}
	return m, nil
}
