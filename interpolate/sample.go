/*package interpolate resamples image batches at arbitrary source locations.

Source locations are given as a tps.SampleGrid in [-1, 1] device coordinates,
with -1 and +1 at the centres of the first and last pixels along each axis.
*/
package interpolate

import (
	"fmt"
	"math"
	"strings"

	"github.com/phil-mansfield/gotps/mat"
	"github.com/phil-mansfield/gotps/tps"
)

// Padding decides what is sampled outside the [-1, 1] range.
type Padding int

const (
	// Zeros treats every pixel outside the image as 0.
	Zeros Padding = iota
	// Border clamps locations to the nearest edge pixel.
	Border
	// Reflection mirrors locations back into the image at its edges.
	Reflection
)

var paddingNames = []string{"zeros", "border", "reflection"}

func (p Padding) String() string {
	if p < 0 || int(p) >= len(paddingNames) {
		return fmt.Sprintf("Padding(%d)", int(p))
	}
	return paddingNames[p]
}

// ParsePadding converts a padding mode name ("zeros", "border", or
// "reflection", case insensitive) to a Padding.
func ParsePadding(name string) (Padding, error) {
	for i, s := range paddingNames {
		if strings.ToLower(name) == s { return Padding(i), nil }
	}
	return 0, fmt.Errorf(
		"Unknown padding mode '%s'. Accepted modes are %s.",
		name, strings.Join(paddingNames, ", "),
	)
}

// Filter selects how pixel values are combined at a source location.
type Filter int

const (
	Bilinear Filter = iota
	Nearest
)

// GridSample returns an image with the height and width of grid whose pixel
// (i, c, row, col) is img's channel c of instance i sampled at
// grid.At(i, row, col).
func GridSample(
	img *Image, grid *tps.SampleGrid, pad Padding, filter Filter,
) *Image {
	if img.N != grid.N {
		panic(fmt.Sprintf(
			"Image batch has length %d, but grid batch has length %d.",
			img.N, grid.N,
		))
	}

	out := NewImage(nil, img.N, img.C, grid.H, grid.W)
	mat.Parallel(img.N*grid.H, func(job int) {
		i, row := job / grid.H, job % grid.H
		for col := 0; col < grid.W; col++ {
			x, y := grid.At(i, row, col)
			ix := source(x, img.W, pad)
			iy := source(y, img.H, pad)

			for c := 0; c < img.C; c++ {
				plane := img.Plane(i, c)
				var val float64
				if filter == Nearest {
					val = nearest(plane, img.W, img.H, ix, iy)
				} else {
					val = bilinear(plane, img.W, img.H, ix, iy)
				}
				out.Set(i, c, row, col, val)
			}
		}
	})

	return out
}

// source converts a device coordinate to a pixel coordinate along an axis
// with n pixels and applies the padding policy. Zeros padding leaves the
// coordinate unchanged.
func source(x float64, n int, pad Padding) float64 {
	ix := (x + 1) / 2 * float64(n - 1)
	switch pad {
	case Border:
		ix = clamp(ix, 0, float64(n - 1))
	case Reflection:
		ix = clamp(reflect(ix, 0, float64(n - 1)), 0, float64(n - 1))
	}
	return ix
}

func clamp(x, lo, hi float64) float64 {
	if x < lo { return lo }
	if x > hi { return hi }
	return x
}

// reflect mirrors x into [lo, hi] as many times as needed.
func reflect(x, lo, hi float64) float64 {
	span := hi - lo
	if span == 0 { return lo }

	x = math.Abs(x - lo)
	flips := math.Floor(x / span)
	extra := math.Mod(x, span)
	if math.Mod(flips, 2) == 0 { return lo + extra }
	return hi - extra
}

// pixel returns the pixel at (col, row), or 0 if it lies outside the plane.
func pixel(plane []float64, w, h, col, row int) float64 {
	if col < 0 || col >= w || row < 0 || row >= h { return 0 }
	return plane[row*w + col]
}

func nearest(plane []float64, w, h int, ix, iy float64) float64 {
	if math.IsNaN(ix) || math.IsNaN(iy) { return 0 }
	return pixel(plane, w, h,
		int(math.RoundToEven(ix)), int(math.RoundToEven(iy)))
}

func bilinear(plane []float64, w, h int, ix, iy float64) float64 {
	if math.IsNaN(ix) || math.IsNaN(iy) { return 0 }

	x0, y0 := math.Floor(ix), math.Floor(iy)
	dx, dy := ix - x0, iy - y0
	c0, r0 := int(x0), int(y0)

	return pixel(plane, w, h, c0, r0)*(1 - dx)*(1 - dy) +
		pixel(plane, w, h, c0 + 1, r0)*dx*(1 - dy) +
		pixel(plane, w, h, c0, r0 + 1)*(1 - dx)*dy +
		pixel(plane, w, h, c0 + 1, r0 + 1)*dx*dy
}
