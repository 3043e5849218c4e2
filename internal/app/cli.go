package app

import (
	"fmt"

	"imgopt/internal/config"
	"imgopt/internal/domain"

	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

type rootFlags struct {
	configPath string
	output     string
	quality    string
	noWebP     bool
	noSizes    bool
	manifest   string
}

// NewRootCommand builds the imgopt command tree. Config is loaded before any
// command runs; flags given explicitly override it.
func NewRootCommand(logger *zlog.Zerolog) *cobra.Command {
	var (
		flags rootFlags
		app   *App
	)

	cmd := &cobra.Command{
		Use:   "imgopt <input>",
		Short: "Optimize images into sized JPEG and WebP variants",
		Long: `imgopt compresses a single image, or every jpg/jpeg/png/bmp/tiff image
in a directory, into JPEG and WebP variants at several widths for the web.

Example usage:
  imgopt photo.png                       # writes ./optimized/photo-320w.jpg ...
  imgopt ./assets -q hero -o ./public    # whole directory at hero quality
  imgopt photo.png --no-webp --no-sizes  # one full-size JPEG only
  imgopt ./assets --manifest images.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}

			app, err = NewApp(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to create app: %w", err)
			}

			if !cmd.Flags().Changed("output") {
				flags.output = cfg.Optimizer.OutputDir
			}
			if !cmd.Flags().Changed("quality") {
				flags.quality = cfg.Optimizer.Quality
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.Run(cmd.Context(), RunRequest{
				Input:        args[0],
				OutputDir:    flags.output,
				Quality:      flags.quality,
				NoWebP:       flags.noWebP,
				NoSizes:      flags.noSizes,
				ManifestPath: flags.manifest,
			}, cmd.OutOrStdout())
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default from CONFIG_PATH, else environment)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", domain.DefaultOutputDir, "output directory")
	cmd.Flags().StringVarP(&flags.quality, "quality", "q", string(domain.DefaultQuality), "quality preset: thumbnail, gallery, hero or print")
	cmd.Flags().BoolVar(&flags.noWebP, "no-webp", false, "skip WebP generation")
	cmd.Flags().BoolVar(&flags.noSizes, "no-sizes", false, "skip multiple size generation")
	cmd.Flags().StringVar(&flags.manifest, "manifest", "", "write a manifest file at the given path")

	cmd.AddCommand(newSrcSetCommand(func() *App { return app }))

	return cmd
}

func newSrcSetCommand(getApp func() *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "srcset <manifest>",
		Short: "Print HTML srcset values for the images in a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := domain.ImageFormat(format)
			if f != domain.FormatWebP && f != domain.FormatJPEG && f != domain.FormatJPG {
				return fmt.Errorf("unsupported srcset format %q", format)
			}
			return getApp().SrcSet(cmd.Context(), args[0], f, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&format, "format", string(domain.FormatWebP), "variant format: webp or jpg")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.MustLoad()
	}
	return config.Load(path)
}
