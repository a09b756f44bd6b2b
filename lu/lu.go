// Package lu implements LU factorization with partial pivoting (spec
// §3.3/§4.3): a square matrix M factors as P*M = L*U, with L unit
// lower-triangular and U upper-triangular. The permutation is kept as a
// row-index vector internally; PermutationMatrix materializes it only
// on request.
package lu

import (
	"errors"

	"github.com/dualphase/simplex/densemat"
	"github.com/dualphase/simplex/scalar"
)

// ErrSingular is returned by Factor when a column's pivot magnitude
// falls below the backend's pivot tolerance.
var ErrSingular = errors.New("lu: matrix is singular to working precision")

// Factorization holds the in-place L/U storage (packed into a single
// n*n buffer, as is conventional for LU), the row permutation, and the
// determinant computed as a by-product of elimination.
type Factorization[S scalar.Field[S]] struct {
	n   int
	lu  *densemat.Dense[S] // L below diagonal (implicit unit diagonal), U on/above
	piv []int
	sign int // +1, or -1 per row swap
	det S
}

// N returns the dimension of the factored matrix.
func (f *Factorization[S]) N() int { return f.n }

// Factor computes P*M = L*U via Gaussian elimination with partial
// pivoting, per §4.3's numbered procedure. It copies M and leaves the
// original untouched (value semantics, §9).
func Factor[S scalar.Field[S]](m *densemat.Dense[S], tol Tolerance[S]) (*Factorization[S], error) {
	n := m.Rows()
	if n != m.Cols() {
		panic("lu: matrix must be square")
	}

	work := m.Clone()
	piv := make([]int, n)
	for i := range piv {
		piv[i] = i
	}
	sign := 1

	for j := 0; j < n; j++ {
		// 2a: find the row with the largest-magnitude entry in column j.
		k := j
		best := work.At(j, j).Abs()
		for i := j + 1; i < n; i++ {
			v := work.At(i, j).Abs()
			if v.Cmp(best) > 0 {
				best = v
				k = i
			}
		}
		// 2b: singular if the best pivot available is too small.
		if !scalar.AbsGE[S](work.At(k, j), tol.Pivot) {
			return nil, ErrSingular
		}
		// 2c: swap rows j,k of U (work); swap "columns" of L, i.e. the
		// already-computed multiplier entries in rows j,k of columns
		// < j; swap piv[j],piv[k]; flip sign.
		if k != j {
			work.SwapRows(j, k)
			piv[j], piv[k] = piv[k], piv[j]
			sign = -sign
		}
		// 2d: eliminate below the pivot, recording multipliers in the
		// lower triangle of work (this is where L is packed).
		pivot := work.At(j, j)
		for i := j + 1; i < n; i++ {
			mult := work.At(i, j).Quo(pivot)
			work.Set(i, j, mult)
			for c := j + 1; c < n; c++ {
				work.Set(i, c, work.At(i, c).Sub(mult.Mul(work.At(j, c))))
			}
		}
	}

	det := determinantOf(work, sign)
	return &Factorization[S]{n: n, lu: work, piv: piv, sign: sign, det: det}, nil
}

func determinantOf[S scalar.Field[S]](work *densemat.Dense[S], sign int) S {
	n := work.Rows()
	det := work.At(0, 0).One()
	if sign < 0 {
		det = det.Neg()
	}
	for i := 0; i < n; i++ {
		det = det.Mul(work.At(i, i))
	}
	return det
}

// Tolerance carries just the pivot tolerance Factor needs; lu doesn't
// need the feasibility tolerance, so it takes the narrower type rather
// than a full scalar.Tolerances[S].
type Tolerance[S any] struct {
	Pivot S
}

// Det returns the determinant computed during factorization.
func (f *Factorization[S]) Det() S { return f.det }

// Permutation returns the row-permutation vector p such that row i of
// P*M equals row p[i] of M.
func (f *Factorization[S]) Permutation() []int {
	out := make([]int, len(f.piv))
	copy(out, f.piv)
	return out
}

// PermutationMatrix materializes P as an explicit n x n 0/1 matrix. Only
// built on demand, per the "matrix form is only materialized on
// external request" invariant in §3.3.
func (f *Factorization[S]) PermutationMatrix(proto S) *densemat.Dense[S] {
	p := densemat.New[S](f.n, f.n, proto)
	one := proto.One()
	for i, src := range f.piv {
		p.Set(i, src, one)
	}
	return p
}

// Solve solves M*x = b using the cached factors: forward substitution
// on L*y = P*b, then back substitution on U*x = y.
func (f *Factorization[S]) Solve(b []S) []S {
	n := f.n
	if len(b) != n {
		panic("lu: dimension mismatch")
	}

	// Apply the row permutation: x[i] = b[piv[i]].
	x := make([]S, n)
	for i := 0; i < n; i++ {
		x[i] = b[f.piv[i]]
	}

	// Forward solve L*y = Pb; L has an implicit unit diagonal.
	for i := 0; i < n; i++ {
		sum := x[i]
		for j := 0; j < i; j++ {
			sum = sum.Sub(f.lu.At(i, j).Mul(x[j]))
		}
		x[i] = sum
	}

	// Back solve U*x = y.
	for i := n - 1; i >= 0; i-- {
		sum := x[i]
		for j := i + 1; j < n; j++ {
			sum = sum.Sub(f.lu.At(i, j).Mul(x[j]))
		}
		x[i] = sum.Quo(f.lu.At(i, i))
	}

	return x
}

// Inverse extracts M^-1 by solving for each standard basis vector in
// turn -- n right-hand sides reusing the one factorization.
func (f *Factorization[S]) Inverse(proto S) *densemat.Dense[S] {
	n := f.n
	zero := proto.Zero()
	one := proto.One()
	out := densemat.New[S](n, n, proto)
	e := make([]S, n)
	for j := 0; j < n; j++ {
		for i := range e {
			e[i] = zero
		}
		e[j] = one
		col := f.Solve(e)
		for i := 0; i < n; i++ {
			out.Set(i, j, col[i])
		}
	}
	return out
}

// Inverse is a convenience wrapper: factor M and extract M^-1 in one
// call. Returns ErrSingular if M is singular to working precision.
func Inverse[S scalar.Field[S]](m *densemat.Dense[S], tol Tolerance[S]) (*densemat.Dense[S], error) {
	f, err := Factor(m, tol)
	if err != nil {
		return nil, err
	}
	return f.Inverse(m.At(0, 0)), nil
}

// Solve is a convenience wrapper around Factor+Solve for a one-off
// linear solve A*x = b.
func Solve[S scalar.Field[S]](a *densemat.Dense[S], b []S, tol Tolerance[S]) ([]S, error) {
	f, err := Factor(a, tol)
	if err != nil {
		return nil, err
	}
	return f.Solve(b), nil
}
