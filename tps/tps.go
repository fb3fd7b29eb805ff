/*package tps evaluates thin-plate-spline deformation fields.

A TPS instance with T control points c_t is described by T radial weights w_t
and three affine coefficients a = [bias, x-coeff, y-coeff] for each of the two
output dimensions. Its value at (x, y) is

    TPS(x, y) = a_0 + a_1 x + a_2 y + sum_t w_t U(|(x, y) - c_t|)

with U(r) = r^2 log(r). Everything in this package is batched over N
independent instances.
*/
package tps

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/gotps/mat"
)

// ParamForm identifies how the radial weights of a Theta are stored.
type ParamForm int

const (
	// Full stores all T radial weights: T+3 rows.
	Full ParamForm = iota
	// Reduced omits the zeroth radial weight, which is implied by the
	// constraint that the weights sum to zero: T+2 rows.
	Reduced
)

func (f ParamForm) String() string {
	switch f {
	case Full:
		return "Full"
	case Reduced:
		return "Reduced"
	}
	return fmt.Sprintf("ParamForm(%d)", int(f))
}

// InvalidParameterShapeError is returned when a Theta's row count matches
// neither the full nor the reduced form for the given number of control
// points.
type InvalidParameterShapeError struct {
	Rows, ControlPoints int
}

func (e *InvalidParameterShapeError) Error() string {
	return fmt.Sprintf(
		"theta has %d rows, but %d control points require %d (full form) " +
			"or %d (reduced form).",
		e.Rows, e.ControlPoints, e.ControlPoints + 3, e.ControlPoints + 2,
	)
}

// Form returns the parameter form of th for t control points.
func (th *Theta) Form(t int) (ParamForm, error) {
	switch th.Rows {
	case t + 3:
		return Full, nil
	case t + 2:
		return Reduced, nil
	}
	return 0, &InvalidParameterShapeError{Rows: th.Rows, ControlPoints: t}
}

// Canonical returns th in full form. A full form Theta is returned as is. A
// reduced form Theta is copied into a new full form Theta whose zeroth
// weight is the negated sum of the remaining weights.
func (th *Theta) Canonical(t int) (*Theta, error) {
	form, err := th.Form(t)
	if err != nil { return nil, err }
	if form == Full { return th, nil }

	full := NewTheta(nil, th.N, t + 3)
	in, out := th.Rows*2, full.Rows*2
	w := make([]float64, t - 1)
	for i := 0; i < th.N; i++ {
		src := th.Vals[i*in: (i+1)*in]
		dst := full.Vals[i*out: (i+1)*out]
		copy(dst[2:], src)

		for dim := 0; dim < 2; dim++ {
			for k := range w { w[k] = src[2*k + dim] }
			dst[dim] = -floats.Sum(w)
		}
	}

	return full, nil
}

// split separates a full form Theta into its radial weights (N x T x 2) and
// its affine coefficients (N x 3 x 2).
func (th *Theta) split(t int) (w, a *mat.Batch) {
	w = mat.NewBatch(nil, th.N, 2, t)
	a = mat.NewBatch(nil, th.N, 2, 3)

	size := th.Rows*2
	for i := 0; i < th.N; i++ {
		src := th.Vals[i*size: (i+1)*size]
		copy(w.At(i).Vals, src[:2*t])
		copy(a.At(i).Vals, src[2*t:])
	}
	return w, a
}

// Eval evaluates the TPS surfaces described by theta and ctrl at every
// homogeneous query location in grid and returns the displacement at each.
//
// ctrl may be shared, in which case it is used for every instance. theta
// may be in either full or reduced form. An InvalidParameterShapeError is
// returned if theta's row count fits neither. Batch length mismatches
// between theta, ctrl, and grid cause a panic.
func Eval(theta *Theta, ctrl *Points, grid *Grid) (*Field, error) {
	n, q := grid.N, grid.Len()
	if theta.N != n {
		panic(fmt.Sprintf(
			"theta batch has length %d, but grid batch has length %d.",
			theta.N, n,
		))
	} else if len(grid.Vals) != n*q*3 {
		panic(fmt.Sprintf(
			"len(grid.Vals) = %d, but grid is %d x %d x %d x 3.",
			len(grid.Vals), grid.N, grid.H, grid.W,
		))
	}

	ctrl = ctrl.Expand(n)
	t := ctrl.Len

	full, err := theta.Canonical(t)
	if err != nil { return nil, err }
	w, a := full.split(t)

	u := Kernel(grid, ctrl)
	radial := mat.BatchMult(u, w)
	affine := mat.BatchMult(mat.NewBatch(grid.Vals, n, 3, q), a)
	floats.Add(affine.Vals, radial.Vals)

	return &Field{Vals: affine.Vals, N: n, H: grid.H, W: grid.W}, nil
}
