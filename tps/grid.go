package tps

import (
	"gonum.org/v1/gonum/floats"
)

// Size is the NxCxHxW shape of an image batch. C is unused by the grid
// builders.
type Size struct {
	N, C, H, W int
}

// linspace returns n evenly spaced values over [0, 1]. A single value is
// placed at 0.
func linspace(n int) []float64 {
	xs := make([]float64, n)
	if n == 1 { return xs }
	return floats.Span(xs, 0, 1)
}

// IdentityGrid returns the homogeneous query grid [1, x, y] for n instances
// of an h x w image. x is evenly spaced over [0, 1] across the columns and y
// across the rows.
func IdentityGrid(n, h, w int) *Grid {
	if n <= 0 || h <= 0 || w <= 0 {
		panic("Grid dimensions must be positive.")
	}

	xs, ys := linspace(w), linspace(h)
	vals := make([]float64, n*h*w*3)
	for i := 0; i < n; i++ {
		for row := 0; row < h; row++ {
			for col := 0; col < w; col++ {
				idx := 3*((i*h + row)*w + col)
				vals[idx] = 1
				vals[idx + 1] = xs[col]
				vals[idx + 2] = ys[row]
			}
		}
	}

	return &Grid{Vals: vals, N: n, H: h, W: w}
}

// DenseGrid computes the sampling grid for an output image batch of the
// given size. Each output pixel's identity location is displaced by the TPS
// and the result is rescaled from [0, 1] to the [-1, 1] convention of
// SampleGrid.
func DenseGrid(theta *Theta, ctrl *Points, size Size) (*SampleGrid, error) {
	grid := IdentityGrid(size.N, size.H, size.W)
	z, err := Eval(theta, ctrl, grid)
	if err != nil { return nil, err }

	q := grid.N * grid.Len()
	vals := z.Vals
	for i := 0; i < q; i++ {
		vals[2*i] = (grid.Vals[3*i + 1] + vals[2*i])*2 - 1
		vals[2*i + 1] = (grid.Vals[3*i + 2] + vals[2*i + 1])*2 - 1
	}

	return &SampleGrid{Vals: vals, N: z.N, H: z.H, W: z.W}, nil
}

// SparseGrid warps an arbitrary list of points. A shared point list is
// applied to every instance of theta. The warped points are returned in the
// same [0, 1] coordinates as xy, without the rescaling done by DenseGrid.
func SparseGrid(theta *Theta, ctrl, xy *Points) (*WarpedPoints, error) {
	xy = xy.Expand(theta.N)
	n, m := xy.N, xy.Len

	grid := &Grid{Vals: make([]float64, n*m*3), N: n, H: m, W: 1}
	for j := 0; j < n*m; j++ {
		grid.Vals[3*j] = 1
		grid.Vals[3*j + 1] = xy.Vals[2*j]
		grid.Vals[3*j + 2] = xy.Vals[2*j + 1]
	}

	z, err := Eval(theta, ctrl, grid)
	if err != nil { return nil, err }
	floats.Add(z.Vals, xy.Vals)

	return &WarpedPoints{Vals: z.Vals, N: n, M: m}, nil
}

// UniformGrid places h*w control points on a regular lattice over the
// normalized image range. Points are ordered row by row with x varying
// fastest. The result is shared.
func UniformGrid(h, w int) *Points {
	grid := IdentityGrid(1, h, w)
	vals := make([]float64, h*w*2)
	for j := 0; j < h*w; j++ {
		vals[2*j] = grid.Vals[3*j + 1]
		vals[2*j + 1] = grid.Vals[3*j + 2]
	}
	return NewSharedPoints(vals)
}
