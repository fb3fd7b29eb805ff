/*package io reads and writes the files used by the gotps command line tool:
configuration files, text tables of points and TPS parameters, and PNG
images.
*/
package io

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/phil-mansfield/table"
	"github.com/pkg/errors"

	"github.com/phil-mansfield/gotps/interpolate"
	"github.com/phil-mansfield/gotps/tps"
)

// ReadPoints reads a shared point list from the first two columns (x and y)
// of a text table.
func ReadPoints(fname string) (*tps.Points, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read points from %s", fname)
	}

	xs, ys := cols[0], cols[1]
	if len(xs) == 0 {
		return nil, fmt.Errorf("Point table %s is empty.", fname)
	}

	vals := make([]float64, 2*len(xs))
	for i := range xs {
		vals[2*i], vals[2*i + 1] = xs[i], ys[i]
	}
	return tps.NewSharedPoints(vals), nil
}

// ReadTheta reads the parameters of a single TPS instance from the first two
// columns (dx and dy) of a text table. Each line is one row of theta.
func ReadTheta(fname string) (*tps.Theta, error) {
	cols, err := table.ReadTable(fname, []int{0, 1}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read theta from %s", fname)
	}

	dxs, dys := cols[0], cols[1]
	if len(dxs) == 0 {
		return nil, fmt.Errorf("Theta table %s is empty.", fname)
	}

	theta := tps.NewTheta(nil, 1, len(dxs))
	for row := range dxs { theta.Set(0, row, dxs[row], dys[row]) }
	return theta, nil
}

// WritePoints writes the warped points of every instance to a text table
// with columns instance, x, y.
func WritePoints(fname string, wp *tps.WarpedPoints) error {
	f, err := os.Create(fname)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", fname)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# instance x y")
	for i := 0; i < wp.N; i++ {
		for j := 0; j < wp.M; j++ {
			x, y := wp.At(i, j)
			fmt.Fprintf(w, "%d %.10g %.10g\n", i, x, y)
		}
	}

	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "cannot write %s", fname)
	}
	return f.Close()
}

// ReadImage reads a PNG file into a single-instance RGB image batch with
// values in [0, 1].
func ReadImage(fname string) (*interpolate.Image, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open %s", fname)
	}
	defer f.Close()

	im, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode %s", fname)
	}

	return FromImage(im), nil
}

// FromImage converts an image to a single-instance RGB image batch with
// values in [0, 1].
func FromImage(im image.Image) *interpolate.Image {
	b := im.Bounds()
	h, w := b.Dy(), b.Dx()
	img := interpolate.NewImage(nil, 1, 3, h, w)

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := color.NRGBA64Model.Convert(
				im.At(b.Min.X + col, b.Min.Y + row),
			).(color.NRGBA64)
			img.Set(0, 0, row, col, float64(c.R) / math.MaxUint16)
			img.Set(0, 1, row, col, float64(c.G) / math.MaxUint16)
			img.Set(0, 2, row, col, float64(c.B) / math.MaxUint16)
		}
	}
	return img
}

// ToImage converts instance i of an image batch with 1 (grey) or 3 (RGB)
// channels to an image. Values are clamped to [0, 1].
func ToImage(img *interpolate.Image, i int) image.Image {
	if img.C != 1 && img.C != 3 {
		panic(fmt.Sprintf("Cannot convert %d-channel image.", img.C))
	}

	out := image.NewNRGBA64(image.Rect(0, 0, img.W, img.H))
	for row := 0; row < img.H; row++ {
		for col := 0; col < img.W; col++ {
			var r, g, b uint16
			if img.C == 1 {
				r = toUint16(img.At(i, 0, row, col))
				g, b = r, r
			} else {
				r = toUint16(img.At(i, 0, row, col))
				g = toUint16(img.At(i, 1, row, col))
				b = toUint16(img.At(i, 2, row, col))
			}
			out.SetNRGBA64(col, row, color.NRGBA64{r, g, b, math.MaxUint16})
		}
	}
	return out
}

func toUint16(x float64) uint16 {
	if math.IsNaN(x) || x <= 0 { return 0 }
	if x >= 1 { return math.MaxUint16 }
	return uint16(math.Round(x * math.MaxUint16))
}

// WriteImage writes instance i of an image batch to a PNG file.
func WriteImage(fname string, img *interpolate.Image, i int) error {
	f, err := os.Create(fname)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", fname)
	}
	defer f.Close()

	if err := png.Encode(f, ToImage(img, i)); err != nil {
		return errors.Wrapf(err, "cannot encode %s", fname)
	}
	return f.Close()
}
