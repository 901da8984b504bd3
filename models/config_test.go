package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
output: fingerprints/moby.png
chunk_size: 8
workers: 3
poll_interval: 250ms
tokenizer: simple
detect_language: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "fingerprints/moby.png", cfg.Output)
	assert.Equal(t, 8, cfg.ChunkSize)
	assert.Equal(t, 3, cfg.WorkerCount)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, "simple", cfg.Tokenizer)
	assert.False(t, cfg.DetectLanguage)

	// untouched keys keep defaults
	assert.Equal(t, 1, cfg.Scale)
	assert.Equal(t, 25, cfg.TopN)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: [1, 2"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input = "book.txt"
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no input", func(c *Config) { c.Input = "" }, "no input file"},
		{"chunk size one", func(c *Config) { c.ChunkSize = 1 }, "chunk_size"},
		{"negative workers", func(c *Config) { c.WorkerCount = -1 }, "workers"},
		{"zero scale", func(c *Config) { c.Scale = 0 }, "scale"},
		{"empty output", func(c *Config) { c.Output = "" }, "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			tt.mutate(&c)
			assert.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
