// Package models defines configuration and shared data structures.
package models

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultOutput is where the fingerprint goes when no output path is given.
const DefaultOutput = "output.png"

// Config holds runtime configuration. Values come from an optional YAML file
// and are then overridden by CLI flags.
type Config struct {
	Input          string        `yaml:"-"`
	Output         string        `yaml:"output"`
	ChunkSize      int           `yaml:"chunk_size"`
	WorkerCount    int           `yaml:"workers"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	Scale          int           `yaml:"scale"`
	Tokenizer      string        `yaml:"tokenizer"`
	DetectLanguage bool          `yaml:"detect_language"`
	Database       string        `yaml:"database"`
	CacheDir       string        `yaml:"cache_dir"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	TopN           int           `yaml:"top_n"`
	Manifest       bool          `yaml:"manifest"`
	Quiet          bool          `yaml:"quiet"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Output:         DefaultOutput,
		ChunkSize:      4,
		PollInterval:   500 * time.Millisecond,
		Scale:          1,
		Tokenizer:      "prose",
		DetectLanguage: true,
		CacheTTL:       7 * 24 * time.Hour,
		TopN:           25,
	}
}

// LoadConfig reads path over the defaults. Keys missing from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks the values the pipeline cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("no input file given"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path is empty"))
	}
	if c.ChunkSize < 2 {
		errs = append(errs, fmt.Errorf("chunk_size must be at least 2, got %d", c.ChunkSize))
	}
	if c.WorkerCount < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.WorkerCount))
	}
	if c.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale must be at least 1, got %d", c.Scale))
	}
	if c.TopN < 0 {
		errs = append(errs, fmt.Errorf("top_n must not be negative, got %d", c.TopN))
	}
	return errors.Join(errs...)
}
