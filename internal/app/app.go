package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"imgopt/internal/config"
	"imgopt/internal/domain"
	"imgopt/internal/repository/image/disk"
	"imgopt/internal/repository/manifest"
	"imgopt/internal/usecase/optimizer"
	"imgopt/internal/usecase/processor"
	"imgopt/internal/usecase/processor/operations"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/zlog"
)

type App struct {
	cfg       *config.Config
	logger    *zlog.Zerolog
	optimizer *optimizer.Optimizer
	validate  *validator.Validate
}

// RunRequest carries one optimizer invocation as given on the command line.
type RunRequest struct {
	Input        string `validate:"required"`
	OutputDir    string `validate:"required"`
	Quality      string `validate:"oneof=thumbnail gallery hero print"`
	NoWebP       bool
	NoSizes      bool
	ManifestPath string
}

func NewApp(cfg *config.Config, logger *zlog.Zerolog) (*App, error) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	resampler, err := operations.ParseResampler(cfg.Optimizer.Resampler)
	if err != nil {
		return nil, err
	}

	fileRepo := disk.NewFileRepository()
	manifestRepo := manifest.NewRepository()
	imageProcessor := processor.NewImageProcessor(fileRepo, resampler, logger)

	logger.Debug().
		Str("env", cfg.Env).
		Str("resampler", string(resampler)).
		Str("output_dir", cfg.Optimizer.OutputDir).
		Msg("Optimizer configuration")

	return &App{
		cfg:       cfg,
		logger:    logger,
		optimizer: optimizer.NewOptimizer(imageProcessor, fileRepo, manifestRepo, logger),
		validate:  validator.New(),
	}, nil
}

// Run optimizes req.Input, writes the manifest when requested and prints a
// summary to out. Per-image failures are not errors; a missing input is.
func (a *App) Run(ctx context.Context, req RunRequest, out io.Writer) (int, error) {
	if err := a.validate.Struct(req); err != nil {
		return 0, fmt.Errorf("invalid arguments: %w", err)
	}

	opts := domain.Options{
		Quality:       domain.QualityPreset(req.Quality),
		GenerateWebP:  !req.NoWebP,
		GenerateSizes: !req.NoSizes,
	}

	results, err := a.optimizer.OptimizePath(ctx, req.Input, req.OutputDir, opts)
	if err != nil {
		return 0, err
	}

	if req.ManifestPath != "" {
		if err := a.optimizer.GenerateImageManifest(ctx, results, req.ManifestPath); err != nil {
			return 0, err
		}
		fmt.Fprintf(out, "Manifest saved to: %s\n", req.ManifestPath)
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	if failed > 0 {
		color.New(color.FgYellow).Fprintf(out, "%d of %d images could not be optimized.\n", failed, len(results))
	}

	total := domain.CountOutputs(results)
	color.New(color.FgGreen).Fprintf(out, "\nOptimization complete! Generated %d optimized images.\n", total)
	return total, nil
}

// SrcSet prints one "source: srcset" line per manifest entry, sorted by
// source path. Entries without sized variants are skipped.
func (a *App) SrcSet(ctx context.Context, manifestPath string, format domain.ImageFormat, out io.Writer) error {
	m, err := a.optimizer.ReadManifest(ctx, manifestPath)
	if err != nil {
		return err
	}

	sources := make([]string, 0, len(m.OptimizedImages))
	for src := range m.OptimizedImages {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	for _, src := range sources {
		set := domain.SrcSet(m.OptimizedImages[src], format)
		if set == "" {
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", src, set)
	}
	return nil
}
