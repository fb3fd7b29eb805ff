/*mat contains routines for operating on batches of small dense matrices.
A Batch is N independent matrices of identical shape stored back to back in a
single slice, which is the layout every TPS operation works in.

Individual products are delegated to gonum. The batch dimension is split
across NumCores worker goroutines.
*/
package mat

import (
	"runtime"

	gomat "gonum.org/v1/gonum/mat"
)

var (
	// NumCores is the number of worker goroutines used by batched
	// operations.
	NumCores = runtime.NumCPU()
)

// Matrix represents a single row-major matrix of float64 values.
type Matrix struct {
	Vals []float64
	Width, Height int
}

// Batch represents N row-major matrices, each Height x Width, stored
// contiguously.
type Batch struct {
	Vals []float64
	N, Width, Height int
}

// NewMatrix creates a matrix with the specified values and dimensions.
func NewMatrix(vals []float64, width, height int) *Matrix {
	if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	} else if width * height != len(vals) {
		panic("height * width must equal len(vals).")
	}

	return &Matrix{Vals: vals, Width: width, Height: height}
}

// NewBatch creates a batch with the specified values and dimensions. If vals
// is nil, a zeroed buffer is allocated.
func NewBatch(vals []float64, n, width, height int) *Batch {
	if n <= 0 {
		panic("n must be positive.")
	} else if width <= 0 {
		panic("width must be positive.")
	} else if height <= 0 {
		panic("height must be positive.")
	}

	if vals == nil {
		vals = make([]float64, n*width*height)
	} else if n * width * height != len(vals) {
		panic("n * height * width must equal len(vals).")
	}

	return &Batch{Vals: vals, N: n, Width: width, Height: height}
}

// Size returns the number of values in a single matrix of the batch.
func (b *Batch) Size() int { return b.Width * b.Height }

// At returns the i-th matrix of the batch. The returned Matrix shares memory
// with b.
func (b *Batch) At(i int) *Matrix {
	size := b.Size()
	return &Matrix{
		Vals: b.Vals[i*size: (i+1)*size], Width: b.Width, Height: b.Height,
	}
}

// Dense returns a gonum view of the matrix. The view shares memory with m.
func (m *Matrix) Dense() *gomat.Dense {
	return gomat.NewDense(m.Height, m.Width, m.Vals)
}

// Mult multiplies two matrices together.
func (m1 *Matrix) Mult(m2 *Matrix) *Matrix {
	h, w := m1.Height, m2.Width
	out := NewMatrix(make([]float64, h*w), w, h)
	return m1.MultAt(m2, out)
}

// MultAt multiplies two matrices together and writes the result to the
// specified matrix.
func (m1 *Matrix) MultAt(m2, out *Matrix) *Matrix {
	if m1.Width != m2.Height {
		panic("Multiplication of incompatible matrix sizes.")
	} else if out.Height != m1.Height || out.Width != m2.Width {
		panic("Output matrix has the wrong dimensions.")
	}

	out.Dense().Mul(m1.Dense(), m2.Dense())
	return out
}

// BatchMult multiplies each matrix in b1 by the matching matrix in b2.
func BatchMult(b1, b2 *Batch) *Batch {
	out := NewBatch(nil, b1.N, b2.Width, b1.Height)
	return BatchMultAt(b1, b2, out)
}

// BatchMultAt multiplies each matrix in b1 by the matching matrix in b2 and
// writes the products to out. The N products are split across NumCores
// workers.
func BatchMultAt(b1, b2, out *Batch) *Batch {
	if b1.N != b2.N || b1.N != out.N {
		panic("Multiplication of batches with different lengths.")
	} else if b1.Width != b2.Height {
		panic("Multiplication of incompatible matrix sizes.")
	} else if out.Height != b1.Height || out.Width != b2.Width {
		panic("Output batch has the wrong dimensions.")
	}

	Parallel(b1.N, func(i int) {
		b1.At(i).MultAt(b2.At(i), out.At(i))
	})
	return out
}

// Parallel calls f(i) for every i in [0, n), spreading the calls over at most
// NumCores goroutines. It returns once every call has finished.
func Parallel(n int, f func(i int)) {
	workers := NumCores
	if workers > n { workers = n }
	if workers <= 1 {
		for i := 0; i < n; i++ { f(i) }
		return
	}

	out := make(chan int, workers)
	for id := 0; id < workers; id++ {
		go func(worker int) {
			for i := worker; i < n; i += workers { f(i) }
			out <- worker
		}(id)
	}

	for i := 0; i < workers; i++ { <-out }
}
