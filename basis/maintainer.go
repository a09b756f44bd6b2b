// Package basis implements the basis-inverse maintainer (spec
// §3.6/§4.4): it holds B^-1 for the current basis and updates it either
// by a full refactorization through lu, or by a cheap rank-one
// product-form step after a single column swap.
package basis

import (
	"github.com/dualphase/simplex/colset"
	"github.com/dualphase/simplex/densemat"
	"github.com/dualphase/simplex/lu"
	"github.com/dualphase/simplex/scalar"
)

// Options configures the maintainer: RefactorEvery is the cadence K
// between forced full refactorizations (§4.4: "every K iterations,
// K >= 1, default 10", matching the source solver's
// inverse_recalculation_rate).
type Options[S any] struct {
	RefactorEvery int
	PivotTol      S
}

// DefaultOptions returns K=10 and the backend's default pivot
// tolerance, read off a prototype scalar.
func DefaultOptions[S scalar.Field[S]](proto S) Options[S] {
	return Options[S]{RefactorEvery: 10, PivotTol: proto.Tolerances().Pivot}
}

// Maintainer holds the current B^-1 and the bookkeeping needed to
// decide whether the next request for it should come from a full
// refactorization or a rank-one update.
type Maintainer[S scalar.Field[S]] struct {
	opts  Options[S]
	binv  *densemat.Dense[S]
	iter  int
	dirty bool
}

// New constructs a maintainer with no inverse yet computed; call
// Refactor before first use.
func New[S scalar.Field[S]](opts Options[S]) *Maintainer[S] {
	return &Maintainer[S]{opts: opts, dirty: true}
}

// Inverse returns the current B^-1. Only valid after Refactor or Update
// has been called at least once.
func (mt *Maintainer[S]) Inverse() *densemat.Dense[S] { return mt.binv }

// Dirty reports whether the next ShouldRefactor call (or the caller's
// own cadence check) must force a full refactorization.
func (mt *Maintainer[S]) Dirty() bool { return mt.dirty }

// MarkDirty flags the inverse as stale, forcing the next Refactor call
// regardless of cadence. Used when an Update's pivot is too small to
// trust (§4.4's precondition) or when LU factorization reports
// singularity on the refreshed basis.
func (mt *Maintainer[S]) MarkDirty() { mt.dirty = true }

// ShouldRefactor reports whether iteration t should refactor from
// scratch rather than apply an incremental update: either the cadence
// K has been reached, or a prior step flagged the inverse dirty.
func (mt *Maintainer[S]) ShouldRefactor(t int) bool {
	if mt.dirty {
		return true
	}
	if mt.opts.RefactorEvery <= 0 {
		return false
	}
	return t%mt.opts.RefactorEvery == 0
}

// Refactor rebuilds B by gathering A's columns named by basis, then
// sets B^-1 := inverse(B) via a fresh LU factorization.
func (mt *Maintainer[S]) Refactor(a *densemat.Dense[S], basis *colset.Set) error {
	b := a.Columns(basis.Slice())
	inv, err := lu.Inverse(b, lu.Tolerance[S]{Pivot: mt.opts.PivotTol})
	if err != nil {
		return err
	}
	mt.binv = inv
	mt.dirty = false
	return nil
}

// ErrPivotTooSmall is returned by Update when the incremental step's
// pivot entry falls below tolerance; callers must fall back to
// Refactor, per §4.4's stated precondition.
type ErrPivotTooSmall struct{}

func (ErrPivotTooSmall) Error() string {
	return "basis: pivot entry too small for incremental update, refactor required"
}

// Update applies the explicit product-form rank-one step after column
// qPos of the basis is replaced by the entering column's A-coordinates
// aP (already multiplied through, i.e. aP = A[:,enter] -- callers pass
// the pivot vector pivotVec = B^-1 * aP directly since it's already
// computed by the caller's ratio test).
//
//	if i != qPos: Binv'[i,j] = Binv[i,j] - Binv[qPos,j]*pivotVec[i]/pivotVec[qPos]
//	if i == qPos: Binv'[i,j] = Binv[qPos,j] / pivotVec[qPos]
func (mt *Maintainer[S]) Update(pivotVec []S, qPos int) error {
	if mt.binv == nil {
		panic("basis: Update called before any Refactor")
	}
	piv := pivotVec[qPos]
	if !scalar.AbsGE[S](piv, mt.opts.PivotTol) {
		mt.dirty = true
		return ErrPivotTooSmall{}
	}

	m := mt.binv.Rows()
	qRow := mt.binv.Row(qPos)
	newBinv := mt.binv.Clone()

	newQRow := make([]S, m)
	for j := 0; j < m; j++ {
		newQRow[j] = qRow[j].Quo(piv)
	}
	newBinv.SetRow(qPos, newQRow)

	for i := 0; i < m; i++ {
		if i == qPos {
			continue
		}
		factor := pivotVec[i].Quo(piv)
		row := mt.binv.Row(i)
		for j := 0; j < m; j++ {
			row[j] = row[j].Sub(qRow[j].Mul(factor))
		}
		newBinv.SetRow(i, row)
	}

	mt.binv = newBinv
	mt.iter++
	return nil
}
