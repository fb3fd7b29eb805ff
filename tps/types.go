package tps

import (
	"fmt"
)

// Points is a batch of 2D point lists in normalized [0, 1] coordinates,
// stored as N x Len x 2. A Shared list has N == 1 and is broadcast across
// whatever batch it is combined with.
type Points struct {
	Vals []float64
	N, Len int
	Shared bool
}

// NewPoints creates a per-instance batch of n lists of length points each.
func NewPoints(vals []float64, n, length int) *Points {
	if n <= 0 {
		panic("n must be positive.")
	} else if length <= 0 {
		panic("length must be positive.")
	} else if len(vals) != n*length*2 {
		panic(fmt.Sprintf(
			"len(vals) = %d, but n = %d and length = %d", len(vals), n, length,
		))
	}
	return &Points{Vals: vals, N: n, Len: length}
}

// NewSharedPoints creates a single point list which is broadcast across a
// batch. vals holds x0, y0, x1, y1, ...
func NewSharedPoints(vals []float64) *Points {
	if len(vals) == 0 || len(vals)%2 != 0 {
		panic(fmt.Sprintf("len(vals) = %d is not a positive even number.",
			len(vals)))
	}
	return &Points{Vals: vals, N: 1, Len: len(vals) / 2, Shared: true}
}

// Expand returns a per-instance batch of n lists. A shared list is
// replicated n times. A per-instance batch must already have N == n and is
// returned as is.
func (p *Points) Expand(n int) *Points {
	if !p.Shared {
		if p.N != n {
			panic(fmt.Sprintf(
				"Point batch has length %d, but %d instances were requested.",
				p.N, n,
			))
		}
		return p
	}

	size := p.Len * 2
	vals := make([]float64, n*size)
	for i := 0; i < n; i++ {
		copy(vals[i*size: (i+1)*size], p.Vals[:size])
	}
	return &Points{Vals: vals, N: n, Len: p.Len}
}

// At returns the j-th point of the i-th list.
func (p *Points) At(i, j int) (x, y float64) {
	if p.Shared { i = 0 }
	idx := 2*(i*p.Len + j)
	return p.Vals[idx], p.Vals[idx + 1]
}

// Theta holds TPS model parameters for N instances as N x Rows x 2 values.
// Rows is T+3 for the full form and T+2 for the reduced form, where T is the
// number of control points. Column 0 drives dx and column 1 drives dy.
type Theta struct {
	Vals []float64
	N, Rows int
}

func NewTheta(vals []float64, n, rows int) *Theta {
	if n <= 0 {
		panic("n must be positive.")
	} else if rows <= 0 {
		panic("rows must be positive.")
	}

	if vals == nil {
		vals = make([]float64, n*rows*2)
	} else if len(vals) != n*rows*2 {
		panic(fmt.Sprintf(
			"len(vals) = %d, but n = %d and rows = %d", len(vals), n, rows,
		))
	}
	return &Theta{Vals: vals, N: n, Rows: rows}
}

// Set sets the parameters for one row of one instance.
func (th *Theta) Set(i, row int, dx, dy float64) {
	idx := 2*(i*th.Rows + row)
	th.Vals[idx], th.Vals[idx + 1] = dx, dy
}

// At returns the parameters for one row of one instance.
func (th *Theta) At(i, row int) (dx, dy float64) {
	idx := 2*(i*th.Rows + row)
	return th.Vals[idx], th.Vals[idx + 1]
}

// Grid is a batch of homogeneous query locations, [1, x, y], stored as
// N x H x W x 3. Sparse point lists use H = M and W = 1.
type Grid struct {
	Vals []float64
	N, H, W int
}

// Len returns the number of query locations per instance.
func (g *Grid) Len() int { return g.H * g.W }

// Field is a displacement field, (dx, dy) per query location, stored as
// N x H x W x 2.
type Field struct {
	Vals []float64
	N, H, W int
}

func (f *Field) At(i, row, col int) (dx, dy float64) {
	idx := 2*((i*f.H + row)*f.W + col)
	return f.Vals[idx], f.Vals[idx + 1]
}

// SampleGrid holds the source location of every output pixel, stored as
// N x H x W x 2, in the [-1, 1] device coordinates consumed by
// interpolate.GridSample: -1 is the centre of the first pixel along an axis
// and +1 is the centre of the last.
type SampleGrid struct {
	Vals []float64
	N, H, W int
}

func (sg *SampleGrid) At(i, row, col int) (x, y float64) {
	idx := 2*((i*sg.H + row)*sg.W + col)
	return sg.Vals[idx], sg.Vals[idx + 1]
}

// WarpedPoints holds warped point locations, N x M x 2, in the same
// normalized [0, 1] coordinates as the input points. They are not rescaled.
type WarpedPoints struct {
	Vals []float64
	N, M int
}

func (wp *WarpedPoints) At(i, j int) (x, y float64) {
	idx := 2*(i*wp.M + j)
	return wp.Vals[idx], wp.Vals[idx + 1]
}
