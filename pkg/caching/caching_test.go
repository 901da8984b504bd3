package caching

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	a := Key([]byte("the cat"), "simple")
	assert.Equal(t, a, Key([]byte("the cat"), "simple"))
	assert.NotEqual(t, a, Key([]byte("the cat"), "prose"))
	assert.NotEqual(t, a, Key([]byte("the dog"), "simple"))
	assert.Len(t, a, 64)
}

func TestCountsRoundTrip(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	key := Key([]byte("corpus"), "simple")
	_, ok := c.GetCounts(key)
	assert.False(t, ok)

	counts := map[string]int{"the": 2, "cat": 1, "yes": 4, "null": 1}
	require.NoError(t, c.SetCounts(key, counts))

	got, ok := c.GetCounts(key)
	require.True(t, ok)
	assert.Equal(t, counts, got)
}

func TestExpiredEntryMisses(t *testing.T) {
	dir := t.TempDir()
	c, err := NewCache(dir, time.Minute)
	require.NoError(t, err)

	require.NoError(t, c.Set("k", []byte("a: 1\n")))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "k.yaml"), old, old))

	_, ok := c.Get("k")
	assert.False(t, ok)

	forever, err := NewCache(dir, 0)
	require.NoError(t, err)
	_, ok = forever.Get("k")
	assert.True(t, ok)
}
