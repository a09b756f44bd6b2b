// Package simplex implements the revised primal simplex main iteration
// (spec §4.7): reduced-cost computation, Bland's-rule entering/leaving
// column choice, and the pivot/update step, driven against a
// basis.Maintainer and a colset.Set the caller owns across phases.
package simplex

import (
	"errors"

	"github.com/dualphase/simplex/basis"
	"github.com/dualphase/simplex/colset"
	"github.com/dualphase/simplex/densemat"
	"github.com/dualphase/simplex/scalar"
)

// Status classifies how a solve ended.
type Status int

const (
	// Optimal means every reduced cost is >= -TOL_FEAS.
	Optimal Status = iota
	// Unbounded means an entering column had no positive entry in its
	// direction vector (step 8).
	Unbounded
	// Singular means the factorizer failed to refactor the basis; the
	// caller (the two-phase driver) surfaces this as NeedsFixup.
	Singular
	// Timeout means the iteration cap was exceeded; Result still carries
	// the last feasible x.
	Timeout
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case Singular:
		return "singular"
	case Timeout:
		return "timeout"
	default:
		return "?"
	}
}

// ErrNoInitialBasis is returned by Run if Options.Basis is nil or has
// the wrong size.
var ErrNoInitialBasis = errors.New("simplex: initial basis missing or wrong size")

// Options configures one Run call.
type Options[S scalar.Field[S]] struct {
	// Basis is the initial basis, claimed feasible by the caller (§4.7
	// "Inputs"). Run mutates it in place as the pivot sequence
	// progresses; the caller's copy reflects the final basis on return.
	Basis *colset.Set

	// RefactorEvery is the cadence K passed to the basis.Maintainer this
	// Run creates internally. Zero means "use basis.DefaultOptions".
	RefactorEvery int

	// MaxIterations caps the main loop; 0 selects the spec's default of
	// 200*(m+n).
	MaxIterations int

	// Tolerances overrides the backend's default pivot/feasibility
	// tolerances. Only consulted when HasTolerances is true -- the zero
	// Go value of S is not a usable sentinel in general (BigFloat's zero
	// value wraps a nil *big.Float), so "use the default" is a separate
	// flag rather than inferred from Tolerances being empty.
	HasTolerances bool
	Tolerances    scalar.Tolerances[S]
}

// Result is what Run returns.
type Result[S scalar.Field[S]] struct {
	Status     Status
	X          []S // full n-vector, basic entries from x_B, else zero
	Objective  S
	Dual       []S // y, length m
	Iterations int
}

// Run executes §4.7's main iteration against A (m x n), b (length m),
// c (length n), starting from opts.Basis. The basis is required to
// already be feasible; Run does not check this beyond the invariant
// that x_B stays >= -TOL_FEAS as a byproduct of the ratio test -- it is
// the two-phase driver's job to hand Run a feasible basis.
func Run[S scalar.Field[S]](a *densemat.Dense[S], b, c []S, opts Options[S]) (Result[S], error) {
	m := a.Rows()
	n := a.Cols()
	if opts.Basis == nil || opts.Basis.Len() != m {
		return Result[S]{}, ErrNoInitialBasis
	}
	if len(b) != m || len(c) != n {
		return Result[S]{}, errors.New("simplex: dimension mismatch among a, b, c")
	}

	proto := c[0]
	tol := opts.Tolerances
	if !opts.HasTolerances {
		tol = proto.Tolerances()
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = 200 * (m + n)
	}
	refactorEvery := opts.RefactorEvery
	bOpts := basis.Options[S]{RefactorEvery: refactorEvery, PivotTol: tol.Pivot}
	if refactorEvery <= 0 {
		bOpts = basis.DefaultOptions[S](proto)
		bOpts.PivotTol = tol.Pivot
	}
	mt := basis.New[S](bOpts)

	basisSet := opts.Basis
	var cachedAP []S
	var cachedQPos int
	haveCache := false

	zero := proto.Zero()

	for t := 0; ; t++ {
		if t >= maxIter {
			// The last pivot changed basisSet; rebuild B^-1 for it so x
			// and y describe the basis actually recorded.
			if err := mt.Refactor(a, basisSet); err != nil {
				return Result[S]{Status: Singular, Iterations: t}, nil
			}
			x, _ := assembleX(a, basisSet, mt.Inverse(), b, zero)
			cB := gather(c, basisSet)
			y := dual(cB, mt.Inverse())
			return Result[S]{
				Status:     Timeout,
				X:          x,
				Objective:  dot(c, x),
				Dual:       y,
				Iterations: t,
			}, nil
		}

		// Step 1: basis inverse refactor-or-update decision.
		if mt.ShouldRefactor(t) || !haveCache {
			if err := mt.Refactor(a, basisSet); err != nil {
				return Result[S]{Status: Singular, Iterations: t}, nil
			}
		} else {
			if err := mt.Update(cachedAP, cachedQPos); err != nil {
				if err2 := mt.Refactor(a, basisSet); err2 != nil {
					return Result[S]{Status: Singular, Iterations: t}, nil
				}
			}
		}

		// Step 2: basic solution x_B = Binv*b.
		xB := mt.Inverse().MulVec(b)

		// Step 3: dual y = c_B * Binv.
		cB := gather(c, basisSet)
		y := dual(cB, mt.Inverse())

		// Step 4: reduced costs r = c - y*A.
		r := reducedCosts(c, y, a)

		// Step 5: optimality test.
		enter := -1
		for j := 0; j < n; j++ {
			if basisSet.Contains(j) {
				continue
			}
			if scalar.LessThanNeg[S](r[j], tol.Feas) {
				enter = j
				break // Step 6: Bland picks the least such j.
			}
		}
		if enter == -1 {
			x, _ := assembleXFromXB(n, basisSet, xB, zero)
			return Result[S]{
				Status:     Optimal,
				X:          x,
				Objective:  dot(c, x),
				Dual:       y,
				Iterations: t,
			}, nil
		}

		// Step 7: direction atilde = Binv * A[:,p].
		aP := a.Col(enter)
		aTilde := mt.Inverse().MulVec(aP)

		// Step 8: unboundedness test.
		unbounded := true
		for i := 0; i < m; i++ {
			if aTilde[i].Cmp(tol.Feas) > 0 {
				unbounded = false
				break
			}
		}
		if unbounded {
			return Result[S]{Status: Unbounded, Iterations: t}, nil
		}

		// Step 9: leaving row by Bland's minimum ratio, ties broken by
		// least basis column index.
		qPos := -1
		var bestRatio S
		for i := 0; i < m; i++ {
			if aTilde[i].Cmp(tol.Feas) <= 0 {
				continue
			}
			ratio := xB[i].Quo(aTilde[i])
			if qPos == -1 {
				qPos, bestRatio = i, ratio
				continue
			}
			cmp := ratio.Cmp(bestRatio)
			if cmp < 0 || (cmp == 0 && basisSet.At(i) < basisSet.At(qPos)) {
				qPos, bestRatio = i, ratio
			}
		}

		// Degeneracy/numerical safety: a too-small pivot flags the
		// inverse dirty so the next iteration refactors.
		if scalar.AbsLT[S](aTilde[qPos], tol.Pivot) {
			mt.MarkDirty()
		}

		// Step 10: pivot.
		basisSet.SubstituteAt(qPos, enter)
		cachedAP, cachedQPos, haveCache = aTilde, qPos, true
	}
}

func gather[S scalar.Field[S]](v []S, idx *colset.Set) []S {
	out := make([]S, idx.Len())
	for i := 0; i < idx.Len(); i++ {
		out[i] = v[idx.At(i)]
	}
	return out
}

// dual computes y = cB * Binv, a 1xm row, as Binv^T * cB via the
// columns of Binv (Binv is m x m). The Float64 instantiation takes a
// gonum/floats.Dot fast path per column instead of the generic
// Add/Mul reduction.
func dual[S scalar.Field[S]](cB []S, binv *densemat.Dense[S]) []S {
	m := binv.Rows()
	if cBf, ok := any(cB).([]scalar.Float64); ok {
		y := make([]scalar.Float64, m)
		for j := 0; j < m; j++ {
			colf := any(binv.Col(j)).([]scalar.Float64)
			y[j] = scalar.DotFloat64(cBf, colf)
		}
		return any(y).([]S)
	}

	zero := cB[0].Zero()
	y := make([]S, m)
	for j := 0; j < m; j++ {
		acc := zero
		for i := 0; i < m; i++ {
			acc = acc.Add(cB[i].Mul(binv.At(i, j)))
		}
		y[j] = acc
	}
	return y
}

// reducedCosts computes r = c - y*A, a 1xn row. Same Float64 fast path
// as dual: each entry is a dot product of y against a column of A.
func reducedCosts[S scalar.Field[S]](c, y []S, a *densemat.Dense[S]) []S {
	n := a.Cols()
	if yf, ok := any(y).([]scalar.Float64); ok {
		cf := any(c).([]scalar.Float64)
		r := make([]scalar.Float64, n)
		for j := 0; j < n; j++ {
			colf := any(a.Col(j)).([]scalar.Float64)
			r[j] = cf[j] - scalar.DotFloat64(yf, colf)
		}
		return any(r).([]S)
	}

	m := a.Rows()
	zero := c[0].Zero()
	r := make([]S, n)
	for j := 0; j < n; j++ {
		acc := zero
		for i := 0; i < m; i++ {
			acc = acc.Add(y[i].Mul(a.At(i, j)))
		}
		r[j] = c[j].Sub(acc)
	}
	return r
}

func dot[S scalar.Field[S]](c, x []S) S {
	if cf, ok := any(c).([]scalar.Float64); ok {
		xf := any(x).([]scalar.Float64)
		return any(scalar.DotFloat64(cf, xf)).(S)
	}
	acc := c[0].Zero()
	for j := range c {
		acc = acc.Add(c[j].Mul(x[j]))
	}
	return acc
}

func assembleXFromXB[S scalar.Field[S]](n int, basisSet *colset.Set, xB []S, zero S) ([]S, []S) {
	x := make([]S, n)
	for j := range x {
		x[j] = zero
	}
	for i := 0; i < basisSet.Len(); i++ {
		x[basisSet.At(i)] = xB[i]
	}
	return x, xB
}

func assembleX[S scalar.Field[S]](a *densemat.Dense[S], basisSet *colset.Set, binv *densemat.Dense[S], b []S, zero S) ([]S, []S) {
	xB := binv.MulVec(b)
	x, _ := assembleXFromXB(a.Cols(), basisSet, xB, zero)
	return x, xB
}
