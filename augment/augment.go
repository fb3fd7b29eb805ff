/*package augment contains composable image batch transforms built on the tps
and interpolate packages: random thin-plate-spline warps and rotations.
*/
package augment

import (
	"github.com/phil-mansfield/gotps/interpolate"
	"github.com/phil-mansfield/gotps/tps"
)

const (
	DefaultNumControl = 4
	DefaultVariance = 0.05
	DefaultMaxAngle = 0.2
)

// Transform maps an image batch to a new image batch of the same shape.
type Transform interface {
	Apply(img *interpolate.Image) (*interpolate.Image, error)
}

var (
	_ Transform = &RandomTPS{}
	_ Transform = &FixedTPS{}
	_ Transform = &Rotate{}
	_ Transform = &RotateMulti{}
	_ Transform = &RandRotate{}
	_ Transform = Sequence{}
)

func size(img *interpolate.Image) tps.Size {
	return tps.Size{N: img.N, C: img.C, H: img.H, W: img.W}
}

// TPSTransform warps img with the given TPS parameters using bilinear
// sampling.
func TPSTransform(
	img *interpolate.Image, theta *tps.Theta, ctrl *tps.Points,
	pad interpolate.Padding,
) (*interpolate.Image, error) {
	grid, err := tps.DenseGrid(theta, ctrl, size(img))
	if err != nil { return nil, err }
	return interpolate.GridSample(img, grid, pad, interpolate.Bilinear), nil
}

// RandomTPS warps every image in a batch with its own randomly drawn TPS.
// Its configuration is fixed at construction.
type RandomTPS struct {
	numControl int
	variance float64
	pad interpolate.Padding
	gen *tps.Generator
}

// NewRandomTPS creates a RandomTPS. If gen is nil a time-seeded generator is
// used.
func NewRandomTPS(
	numControl int, variance float64, pad interpolate.Padding,
	gen *tps.Generator,
) *RandomTPS {
	if numControl <= 0 {
		panic("numControl must be positive.")
	}
	if gen == nil { gen = tps.NewTimeSeedGenerator() }
	return &RandomTPS{
		numControl: numControl, variance: variance, pad: pad, gen: gen,
	}
}

// DefaultRandomTPS returns a RandomTPS with 4 control points, a variance of
// 0.05, and zero padding.
func DefaultRandomTPS(gen *tps.Generator) *RandomTPS {
	return NewRandomTPS(
		DefaultNumControl, DefaultVariance, interpolate.Zeros, gen,
	)
}

// Apply draws new parameters and control points for each image in img and
// warps it.
func (r *RandomTPS) Apply(img *interpolate.Image) (*interpolate.Image, error) {
	theta, ctrl := tps.SampleParams(r.gen, img.N, r.numControl, r.variance)
	return TPSTransform(img, theta, ctrl, r.pad)
}

// FixedTPS warps images with known parameters. A Theta with a single
// instance is applied to every image in the batch.
type FixedTPS struct {
	Theta *tps.Theta
	Ctrl *tps.Points
	Padding interpolate.Padding
}

func (f *FixedTPS) Apply(img *interpolate.Image) (*interpolate.Image, error) {
	theta := f.Theta
	if theta.N == 1 && img.N > 1 {
		size := theta.Rows*2
		theta = tps.NewTheta(make([]float64, img.N*size), img.N, theta.Rows)
		for i := 0; i < img.N; i++ {
			copy(theta.Vals[i*size: (i+1)*size], f.Theta.Vals)
		}
	}
	return TPSTransform(img, theta, f.Ctrl, f.Padding)
}

// Sequence applies its transforms in order.
type Sequence []Transform

func (seq Sequence) Apply(img *interpolate.Image) (*interpolate.Image, error) {
	var err error
	for _, t := range seq {
		img, err = t.Apply(img)
		if err != nil { return nil, err }
	}
	return img, nil
}
