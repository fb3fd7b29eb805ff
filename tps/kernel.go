package tps

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/gotps/mat"
)

const (
	// KernelEpsilon is added to distances before taking the log so that a
	// query sitting exactly on a control point evaluates to 0*log(eps) = 0
	// instead of NaN. The true limit of r^2 log(r) at r = 0 is also 0, so
	// the error is O(eps).
	KernelEpsilon = 1e-6

	// kernelChunk is the number of query locations handed to a worker at
	// once.
	kernelChunk = 1 << 12
)

// U evaluates the TPS radial basis function r^2 log(r + KernelEpsilon).
func U(r float64) float64 {
	return r * r * math.Log(r + KernelEpsilon)
}

// Kernel computes the radial basis response between every query location in
// grid and every control point in ctrl. The result is an N x Q x T batch
// where Q = grid.H * grid.W.
//
// ctrl must be per-instance with the same batch length as grid; see
// Points.Expand.
func Kernel(grid *Grid, ctrl *Points) *mat.Batch {
	if ctrl.N != grid.N || (ctrl.Shared && grid.N != 1) {
		panic(fmt.Sprintf(
			"Grid batch has length %d, but control point batch has length %d.",
			grid.N, ctrl.N,
		))
	}

	n, q, t := grid.N, grid.Len(), ctrl.Len
	u := mat.NewBatch(nil, n, t, q)

	chunks := (q + kernelChunk - 1) / kernelChunk
	mat.Parallel(n*chunks, func(job int) {
		i, chunk := job / chunks, job % chunks
		start, end := chunk*kernelChunk, (chunk + 1)*kernelChunk
		if end > q { end = q }

		pts := ctrl.Vals[i*t*2: (i+1)*t*2]
		qs := grid.Vals[i*q*3: (i+1)*q*3]
		out := u.Vals[i*q*t: (i+1)*q*t]

		for j := start; j < end; j++ {
			x, y := qs[3*j + 1], qs[3*j + 2]
			row := out[j*t: (j+1)*t]
			for k := range row {
				dx, dy := x - pts[2*k], y - pts[2*k + 1]
				row[k] = U(math.Sqrt(dx*dx + dy*dy))
			}
		}
	})

	return u
}
