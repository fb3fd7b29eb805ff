package augment

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/gotps/interpolate"
	"github.com/phil-mansfield/gotps/mat"
	"github.com/phil-mansfield/gotps/tps"
)

// RotationMatrix returns the 2x3 affine matrix
//
//     [  cos(angle), sin(angle), 0 ]
//     [ -sin(angle), cos(angle), 0 ]
//
// which rotates device coordinates about the image centre.
func RotationMatrix(angle float64) *mat.Matrix {
	sin, cos := math.Sincos(angle)
	return mat.NewMatrix([]float64{
		cos, sin, 0,
		-sin, cos, 0,
	}, 3, 2)
}

// AffineGrid returns the sampling grid obtained by applying each 2x3 affine
// matrix in mats to the [-1, 1] device coordinates of every output pixel.
func AffineGrid(mats *mat.Batch, size tps.Size) *tps.SampleGrid {
	if mats.Width != 3 || mats.Height != 2 {
		panic(fmt.Sprintf(
			"Affine matrices must be 2 x 3, not %d x %d.",
			mats.Height, mats.Width,
		))
	} else if mats.N != size.N {
		panic(fmt.Sprintf(
			"Given %d affine matrices for a batch of %d.", mats.N, size.N,
		))
	}

	// Homogeneous device coordinates of every pixel, shared by all
	// instances.
	id := tps.IdentityGrid(1, size.H, size.W)
	q := id.Len()
	base := mat.NewMatrix(make([]float64, q*3), 3, q)
	for j := 0; j < q; j++ {
		base.Vals[3*j] = id.Vals[3*j + 1]*2 - 1
		base.Vals[3*j + 1] = id.Vals[3*j + 2]*2 - 1
		base.Vals[3*j + 2] = 1
	}

	sg := &tps.SampleGrid{
		Vals: make([]float64, size.N*q*2), N: size.N, H: size.H, W: size.W,
	}
	mat.Parallel(size.N, func(i int) {
		t := mats.At(i).Dense().T()
		out := mat.NewMatrix(sg.Vals[i*q*2: (i+1)*q*2], 2, q)
		out.Dense().Mul(base.Dense(), t)
	})

	return sg
}

func rotateBatch(
	img *interpolate.Image, angles []float64, pad interpolate.Padding,
) *interpolate.Image {
	mats := mat.NewBatch(nil, img.N, 3, 2)
	for i, angle := range angles {
		copy(mats.At(i).Vals, RotationMatrix(angle).Vals)
	}
	grid := AffineGrid(mats, size(img))
	return interpolate.GridSample(img, grid, pad, interpolate.Bilinear)
}

// Rotate rotates every image in a batch by the same fixed angle.
type Rotate struct {
	Angle float64
	Padding interpolate.Padding
}

func (r *Rotate) Apply(img *interpolate.Image) (*interpolate.Image, error) {
	mats := mat.NewBatch(nil, img.N, 3, 2)
	rot := RotationMatrix(r.Angle)
	for i := 0; i < img.N; i++ { copy(mats.At(i).Vals, rot.Vals) }

	grid := AffineGrid(mats, size(img))
	return interpolate.GridSample(img, grid, r.Padding, interpolate.Bilinear), nil
}

// RotateMulti rotates every image in a batch by a fixed angle, building a
// separate rotation matrix for each instance.
type RotateMulti struct {
	Angle float64
	Padding interpolate.Padding
}

func (r *RotateMulti) Apply(img *interpolate.Image) (*interpolate.Image, error) {
	angles := make([]float64, img.N)
	for i := range angles { angles[i] = r.Angle }
	return rotateBatch(img, angles, r.Padding), nil
}

// RandRotate rotates each image in a batch by an angle drawn uniformly from
// [-Max, Max).
type RandRotate struct {
	Max float64
	Padding interpolate.Padding
	Gen *tps.Generator
}

func (r *RandRotate) Apply(img *interpolate.Image) (*interpolate.Image, error) {
	if r.Gen == nil { r.Gen = tps.NewTimeSeedGenerator() }

	angles := make([]float64, img.N)
	for i := range angles {
		angles[i] = (r.Gen.Uniform()*2 - 1) * r.Max
	}
	return rotateBatch(img, angles, r.Padding), nil
}
