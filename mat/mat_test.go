package mat

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	gomat "gonum.org/v1/gonum/mat"
)

func TestMult(t *testing.T) {
	m1 := NewMatrix([]float64{
		1, 3, 5,
		2, 4, 7,
	}, 3, 2)
	m2 := NewMatrix([]float64{
		1, 0,
		0, 1,
		2, -1,
	}, 2, 3)

	out := m1.Mult(m2)
	assert.Equal(t, 2, out.Height)
	assert.Equal(t, 2, out.Width)
	assert.Equal(t, []float64{11, -2, 16, -3}, out.Vals)
}

func TestBatchMult(t *testing.T) {
	defer func(n int) { NumCores = n }(NumCores)

	b1 := NewBatch([]float64{
		1, 2,
		3, 4,

		0, 1,
		1, 0,

		2, 0,
		0, 2,
	}, 3, 2, 2)
	b2 := NewBatch([]float64{
		1, 1,
		1, 1,

		5, 6,
		7, 8,

		1, -1,
		-1, 1,
	}, 3, 2, 2)

	for _, cores := range []int{1, 2, 8} {
		NumCores = cores
		out := BatchMult(b1, b2)
		for i := 0; i < 3; i++ {
			var ref gomat.Dense
			ref.Mul(b1.At(i).Dense(), b2.At(i).Dense())
			assert.True(t, gomat.Equal(&ref, out.At(i).Dense()), "batch %d", i)
		}
	}
}

func TestBatchAtSharesMemory(t *testing.T) {
	b := NewBatch(nil, 2, 2, 1)
	b.At(1).Vals[0] = 3
	assert.Equal(t, []float64{0, 0, 3, 0}, b.Vals)
}

func TestNewBatchPanics(t *testing.T) {
	assert.Panics(t, func() { NewBatch(make([]float64, 3), 1, 2, 2) })
	assert.Panics(t, func() { NewBatch(nil, 0, 2, 2) })
}

func TestParallel(t *testing.T) {
	defer func(n int) { NumCores = n }(NumCores)

	for _, cores := range []int{1, 3, 16} {
		NumCores = cores
		var sum int64
		seen := make([]int32, 100)
		Parallel(len(seen), func(i int) {
			atomic.AddInt64(&sum, int64(i))
			atomic.AddInt32(&seen[i], 1)
		})
		assert.Equal(t, int64(99*100/2), sum)
		for i := range seen {
			assert.Equal(t, int32(1), seen[i])
		}
	}
}
