package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppRendersFingerprint(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "book.txt")
	output := filepath.Join(dir, "fingerprint.png")
	require.NoError(t, os.WriteFile(input, []byte("the cat sat. the dog sat!\nand then the cat ran.\n"), 0644))

	err := newApp().Run([]string{
		"book-fingerprint",
		"--tokenizer", "simple",
		"--detect-language=false",
		"--quiet",
		"--poll-interval", "1ms",
		"-o", output,
		input,
	})
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	// the, cat, sat, dog, and, then, ran -> 7 tokens -> 3x3
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}
