package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Kosikowski/swift-zlib-sub001/internal/core/domain"
)

// Config drives the zpipe CLI.
type Config struct {
	Codec Codec `yaml:"codec"`
	File  File  `yaml:"file"`
}

// Codec holds the session parameters.
type Codec struct {
	Format      string `yaml:"format"`       // raw | zlib | gzip | auto
	Level       int    `yaml:"level"`        // -1 (default) or 0-9
	WindowSize  int    `yaml:"window_size"`  // Window exponent, 8-15
	MemoryLevel int    `yaml:"memory_level"` // 1-9
}

// File holds the chunked processor parameters.
type File struct {
	ChunkSize        int           `yaml:"chunk_size"`        // Bytes per chunk
	ProgressInterval time.Duration `yaml:"progress_interval"` // Time between progress reports
}

// DefaultConfig returns a Config with reasonable default values.
func DefaultConfig() *Config {
	return &Config{
		Codec: Codec{
			Format:      "gzip",
			Level:       domain.DefaultCompression,
			WindowSize:  domain.MaxWindowBits,
			MemoryLevel: domain.DefaultMemLevel,
		},
		File: File{
			ChunkSize:        domain.DefaultChunkSize,
			ProgressInterval: time.Second,
		},
	}
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Format resolves the configured format name.
func (c *Codec) FormatVariant() (domain.FormatVariant, error) {
	switch c.Format {
	case "raw":
		return domain.FormatRaw, nil
	case "zlib":
		return domain.FormatZlib, nil
	case "gzip":
		return domain.FormatGzip, nil
	case "auto":
		return domain.FormatAuto, nil
	default:
		return 0, fmt.Errorf("unknown format %q", c.Format)
	}
}

func validateConfig(config *Config) error {
	if _, err := config.Codec.FormatVariant(); err != nil {
		return err
	}
	if config.Codec.Level != domain.DefaultCompression &&
		(config.Codec.Level < domain.NoCompression || config.Codec.Level > domain.BestCompression) {
		return fmt.Errorf("level must be %d or %d-%d", domain.DefaultCompression, domain.NoCompression, domain.BestCompression)
	}
	if config.Codec.WindowSize < domain.MinWindowBits || config.Codec.WindowSize > domain.MaxWindowBits {
		return fmt.Errorf("window_size must be between %d and %d", domain.MinWindowBits, domain.MaxWindowBits)
	}
	if config.Codec.MemoryLevel < domain.MinMemLevel || config.Codec.MemoryLevel > domain.MaxMemLevel {
		return fmt.Errorf("memory_level must be between %d and %d", domain.MinMemLevel, domain.MaxMemLevel)
	}
	if config.File.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be greater than 0")
	}
	if config.File.ProgressInterval < 0 {
		return fmt.Errorf("progress_interval must not be negative")
	}
	return nil
}
