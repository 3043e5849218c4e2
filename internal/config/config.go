package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const configPathEnv = "CONFIG_PATH"

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local" validate:"required"`
	Log       LogConfig       `yaml:"log"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=trace debug info warn error fatal disabled"`
}

type OptimizerConfig struct {
	OutputDir string `yaml:"output_dir" env:"OPTIMIZER_OUTPUT_DIR" env-default:"./optimized" validate:"required"`
	Quality   string `yaml:"quality" env:"OPTIMIZER_QUALITY" env-default:"gallery" validate:"oneof=thumbnail gallery hero print"`
	Resampler string `yaml:"resampler" env:"OPTIMIZER_RESAMPLER" env-default:"lanczos" validate:"oneof=lanczos catmullrom"`
}

// MustLoad reads the config file named by CONFIG_PATH, or the environment
// alone when the variable is unset.
func MustLoad() (*Config, error) {
	return Load(os.Getenv(configPathEnv))
}

// Load reads path (YAML, overridden by environment variables) or, when path
// is empty, the environment with defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
