package tps

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Generator draws the random numbers used by SampleParams. A Generator is
// not safe for concurrent use.
type Generator struct {
	normal distuv.Normal
	unif distuv.Uniform
}

// NewGenerator creates a Generator with a fixed seed.
func NewGenerator(seed uint64) *Generator {
	src := rand.NewPCG(seed, seed ^ 0x9e3779b97f4a7c15)
	return &Generator{
		normal: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		unif: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// NewTimeSeedGenerator creates a Generator seeded from the current time.
func NewTimeSeedGenerator() *Generator {
	return NewGenerator(uint64(time.Now().UnixNano()))
}

// Normal returns a draw from the unit normal distribution.
func (gen *Generator) Normal() float64 { return gen.normal.Rand() }

// Uniform returns a draw from U[0, 1).
func (gen *Generator) Uniform() float64 { return gen.unif.Rand() }

// SampleParams draws random full form parameters and per-instance control
// points for n instances with t control points each. Every theta entry is a
// unit normal draw scaled by variance and every control point coordinate is
// uniform over [0, 1).
func SampleParams(
	gen *Generator, n, t int, variance float64,
) (*Theta, *Points) {
	theta := NewTheta(nil, n, t + 3)
	for i := range theta.Vals {
		theta.Vals[i] = gen.Normal() * variance
	}

	ctrl := NewPoints(make([]float64, n*t*2), n, t)
	for i := range ctrl.Vals {
		ctrl.Vals[i] = gen.Uniform()
	}

	return theta, ctrl
}
