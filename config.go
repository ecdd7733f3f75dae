package tilemosaic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wbrown/tilemosaic/imageutil"
)

// DefaultIterations is the iteration count when none is configured.
const DefaultIterations = 100

// Config holds the options of a mosaic run.
type Config struct {
	Reference   string   `yaml:"reference"`
	Tiles       string   `yaml:"tiles"`
	Output      string   `yaml:"output"`
	Iterations  int      `yaml:"iterations"`
	Interactive bool     `yaml:"interactive"`
	Seed        int64    `yaml:"seed"`
	TileSize    int      `yaml:"tileSize"`
	Extensions  []string `yaml:"extensions"`
	FramesDir   string   `yaml:"framesDir"`
	LoadWorkers int      `yaml:"loadWorkers"`
	JPEGQuality int      `yaml:"jpegQuality"`
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Iterations:  DefaultIterations,
		Extensions:  append([]string(nil), DefaultExtensions...),
		LoadWorkers: DefaultLoadWorkers,
		JPEGQuality: imageutil.DefaultJPEGQuality,
	}
}

// LoadConfig reads a YAML config file over DefaultConfig and validates
// the option values. Paths are not required here since the command line
// may still supply them.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := config.validateOptions(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks that the config describes a complete run.
func (c *Config) Validate() error {
	if c.Reference == "" {
		return fmt.Errorf("%w: reference is required", ErrInvalidConfig)
	}
	if c.Tiles == "" {
		return fmt.Errorf("%w: tiles is required", ErrInvalidConfig)
	}
	return c.validateOptions()
}

func (c *Config) validateOptions() error {
	if c.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Iterations)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("%w: tileSize must not be negative, got %d", ErrInvalidConfig, c.TileSize)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("%w: jpegQuality must be in 1..100, got %d", ErrInvalidConfig, c.JPEGQuality)
	}
	return nil
}

// Options translates the config into Initialize options.
func (c *Config) Options() []Option {
	opts := []Option{
		WithSeed(c.Seed),
		WithLoadWorkers(c.LoadWorkers),
	}
	if c.TileSize > 0 {
		opts = append(opts, WithTileSize(c.TileSize))
	}
	if len(c.Extensions) > 0 {
		opts = append(opts, WithExtensions(c.Extensions...))
	}
	return opts
}
