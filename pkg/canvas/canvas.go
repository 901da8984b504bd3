// Package canvas renders a frequency table as a square grayscale image.
//
// Tokens are ordered by length and laid out row-major, one pixel per token.
// Intensity grows with count; cells no token occupies stay white.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sort"

	"github.com/dtnitsch/book-fingerprint/pkg/progress"
	"github.com/nfnt/resize"
)

// ErrEmptyCorpus is returned when there is no token to draw.
var ErrEmptyCorpus = errors.New("no tokens to draw: corpus is empty")

// Background is the color of cells not backed by a token.
var Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// dampening keeps the scale finite and tames saturation for tiny means.
const dampening = 2.0

// ResolveDimension returns the side of the smallest square grid with at
// least count cells.
func ResolveDimension(count int) int {
	if count <= 0 {
		return 0
	}
	d := isqrt(count)
	if d*d < count {
		d++
	}
	return d
}

func isqrt(n int) int {
	d := int(math.Sqrt(float64(n)))
	for d*d > n {
		d--
	}
	for (d+1)*(d+1) <= n {
		d++
	}
	return d
}

// Step is the factor that maps a count to an intensity:
// 255 / (mean count + 2).
func Step(counts map[string]int) float64 {
	if len(counts) == 0 {
		return 255 / dampening
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	mean := float64(total) / float64(len(counts))
	return 255 / (mean + dampening)
}

// Order returns the tokens sorted by length. Equal lengths keep
// lexicographic order so the layout is reproducible.
func Order(counts map[string]int) []string {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Strings(words)
	sort.SliceStable(words, func(i, j int) bool {
		return len(words[i]) < len(words[j])
	})
	return words
}

// Intensities scales every count, in Order, to a gray level in [0, 255].
func Intensities(counts map[string]int) []uint8 {
	step := Step(counts)
	words := Order(counts)
	values := make([]uint8, len(words))
	for i, w := range words {
		values[i] = clamp(float64(counts[w]) * step)
	}
	return values
}

func clamp(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Encode draws counts onto a dimension x dimension canvas. Cell i lives at
// row i/dimension, column i%dimension; cells past the last token keep the
// background. Every visited cell is reported to sink.
func Encode(counts map[string]int, sink progress.Sink) (*image.RGBA, error) {
	if len(counts) == 0 {
		return nil, ErrEmptyCorpus
	}
	if sink == nil {
		sink = progress.Nop{}
	}

	dimension := ResolveDimension(len(counts))
	values := Intensities(counts)

	img := image.NewRGBA(image.Rect(0, 0, dimension, dimension))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	sink.SetTotal(dimension * dimension)
	for row := 0; row < dimension; row++ {
		for col := 0; col < dimension; col++ {
			index := row*dimension + col
			if index < len(values) {
				v := values[index]
				img.SetRGBA(col, row, color.RGBA{R: v, G: v, B: v, A: 255})
			}
			sink.Advance(1)
		}
	}

	return img, nil
}

// Scale enlarges img by factor with nearest-neighbour sampling so each cell
// becomes a factor x factor block. Factors below 2 return img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	return resize.Resize(uint(b.Dx()*factor), uint(b.Dy()*factor), img, resize.NearestNeighbor)
}

// WritePNG encodes img as PNG. Opaque RGBA images are written as 3-channel RGB.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
