package storage

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	lines, err := SplitLines([]byte("first line\r\n\nthird\nlast without newline"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "", "third", "last without newline"}, lines)

	lines, err = SplitLines(nil)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestSaveAndReadFile(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "book.txt")

	assert.False(t, s.HasFile(path))
	require.NoError(t, s.SaveFile(path, []byte("hello")))
	assert.True(t, s.HasFile(path))

	data, err := s.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	stats, err := s.GetFileStats(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.SizeBytes)

	_, err = s.ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveImage(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "out.png")

	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	require.NoError(t, s.SaveImage(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
