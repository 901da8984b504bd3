package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache provides a simple file-based cache with a TTL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// Key derives a cache key from the corpus bytes and the tokenizer that
// counted them.
func Key(content []byte, tokenizerName string) string {
	h := sha256.New()
	h.Write([]byte(tokenizerName))
	h.Write([]byte{0})
	h.Write(content)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (c *Cache) file(key string) string {
	return filepath.Join(c.path, key+".yaml")
}

// Get retrieves an item from the cache.
// It returns the data and true if the item is found and not expired.
// A zero TTL never expires.
func (c *Cache) Get(key string) ([]byte, bool) {
	filePath := c.file(key)

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false // Cache miss
	}

	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false // Cache miss (expired)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false // Cache miss (read error)
	}

	return data, true // Cache hit
}

// Set adds an item to the cache.
func (c *Cache) Set(key string, data []byte) error {
	if err := os.WriteFile(c.file(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// GetCounts loads a cached frequency table.
func (c *Cache) GetCounts(key string) (map[string]int, bool) {
	data, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	var counts map[string]int
	if err := yaml.Unmarshal(data, &counts); err != nil || counts == nil {
		return nil, false
	}
	return counts, true
}

// SetCounts stores a frequency table under key.
func (c *Cache) SetCounts(key string, counts map[string]int) error {
	data, err := yaml.Marshal(counts)
	if err != nil {
		return fmt.Errorf("failed to marshal counts: %w", err)
	}
	return c.Set(key, data)
}
