package interpolate

import (
	"fmt"
)

// Image is a batch of N images with C channels each, stored NCHW.
type Image struct {
	Vals []float64
	N, C, H, W int
}

// NewImage creates an image batch with the given dimensions. If vals is nil a
// zeroed buffer is allocated.
func NewImage(vals []float64, n, c, h, w int) *Image {
	if n <= 0 || c <= 0 || h <= 0 || w <= 0 {
		panic(fmt.Sprintf(
			"Image dimensions %d x %d x %d x %d must be positive.", n, c, h, w,
		))
	}

	if vals == nil {
		vals = make([]float64, n*c*h*w)
	} else if len(vals) != n*c*h*w {
		panic(fmt.Sprintf(
			"len(vals) = %d, but image is %d x %d x %d x %d.",
			len(vals), n, c, h, w,
		))
	}

	return &Image{Vals: vals, N: n, C: c, H: h, W: w}
}

func (img *Image) idx(i, c, row, col int) int {
	return ((i*img.C + c)*img.H + row)*img.W + col
}

func (img *Image) At(i, c, row, col int) float64 {
	return img.Vals[img.idx(i, c, row, col)]
}

func (img *Image) Set(i, c, row, col int, val float64) {
	img.Vals[img.idx(i, c, row, col)] = val
}

// Plane returns the row-major pixels of one channel of one image. The slice
// shares memory with img.
func (img *Image) Plane(i, c int) []float64 {
	start := img.idx(i, c, 0, 0)
	return img.Vals[start: start + img.H*img.W]
}
