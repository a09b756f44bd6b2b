// Package twophase implements the two-phase driver (spec §4.8): it
// builds a phase-1 artificial problem to find a feasible starting
// basis, hands that basis off to the phase-2 solve of the real
// objective, and lifts the standard-form solution back into the
// caller's original variable space.
package twophase

import (
	"github.com/dualphase/simplex/colset"
	"github.com/dualphase/simplex/densemat"
	"github.com/dualphase/simplex/lu"
	"github.com/dualphase/simplex/problem"
	"github.com/dualphase/simplex/scalar"
	"github.com/dualphase/simplex/simplex"
)

// Status classifies how a two-phase solve ended, a superset of
// simplex.Status covering the driver's own diagnoses (Infeasible,
// NeedsFixup).
type Status int

const (
	Optimal Status = iota
	Unbounded
	Infeasible
	// NeedsFixup means an artificial variable remained in the basis
	// after phase 1 and could not be driven out: its row is linearly
	// dependent on the others. The caller may drop that row and retry.
	// It is also returned when phase 1 ends Singular or Unbounded, or
	// phase 2 ends Singular.
	NeedsFixup
	Timeout
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Unbounded:
		return "unbounded"
	case Infeasible:
		return "infeasible"
	case NeedsFixup:
		return "needs-fixup"
	case Timeout:
		return "timeout"
	default:
		return "?"
	}
}

// Options configures a Solve call.
type Options[S scalar.Field[S]] struct {
	RefactorEvery int
	MaxIterations int
}

// Result is the lifted, original-variable-space outcome of a two-phase
// solve.
type Result[S scalar.Field[S]] struct {
	Status        Status
	X             []S // length = original problem's NumVars()
	Objective     S
	Phase1Iters   int
	Phase2Iters   int
	NeedsFixupRow int // set only when the hand-off could not drive an artificial out
}

// Solve runs §4.8 end to end against the caller's original-space
// problem p: it standardizes p, runs phase 1 to find a feasible basis,
// hands off to phase 2 against the real objective, and lifts the
// result back through p's variable tags.
func Solve[S scalar.Field[S]](p *problem.Problem[S], opts Options[S]) Result[S] {
	std := problem.StandardForm(p)
	a := densemat.NewFromRows(std.A())
	b := std.B()
	realC := std.C()

	m := a.Rows()
	n := a.Cols()
	zero := realC[0].Zero()
	one := realC[0].One()

	// Negate any row with a negative RHS so b >= 0 throughout -- a
	// precondition phase 1's unit-column scan and artificial basis both
	// assume (§4.7's "all entries of x_B >= -TOL_FEAS" invariant has to
	// hold from the first iteration, not just be restored by it).
	for i := 0; i < m; i++ {
		if b[i].Cmp(zero) < 0 {
			b[i] = b[i].Neg()
			negRow := a.Row(i)
			for j := range negRow {
				negRow[j] = negRow[j].Neg()
			}
			a.SetRow(i, negRow)
		}
	}

	// Phase 1 construction (§4.8 step 2): for each row, reuse an
	// existing unit-vector column if one exists, otherwise mint an
	// artificial.
	basisIdx := make([]int, m)
	artificialRows := []int{}
	extraCols := [][]S{}
	usedNatural := make(map[int]bool, m)
	for i := 0; i < m; i++ {
		col := findUnitColumn(a, i, usedNatural)
		if col >= 0 {
			basisIdx[i] = col
			usedNatural[col] = true
			continue
		}
		artCol := make([]S, m)
		for r := range artCol {
			artCol[r] = zero
		}
		artCol[i] = one
		extraCols = append(extraCols, artCol)
		basisIdx[i] = n + len(extraCols) - 1
		artificialRows = append(artificialRows, i)
	}

	n1 := n + len(extraCols)
	aug := augmentColumns(a, extraCols, zero)

	phase1C := make([]S, n1)
	for j := 0; j < n1; j++ {
		phase1C[j] = zero
	}
	for _, col := range basisIdxArtificialCols(basisIdx, n) {
		phase1C[col] = one
	}

	basisSet := colset.New(basisIdx...)
	res1, err := simplex.Run(aug, b, phase1C, simplex.Options[S]{
		Basis:         basisSet,
		RefactorEvery: opts.RefactorEvery,
		MaxIterations: opts.MaxIterations,
	})
	if err != nil {
		panic(err) // dimension mismatch here is an internal construction bug
	}
	switch res1.Status {
	case simplex.Singular, simplex.Unbounded:
		// Phase 1's objective (a sum of non-negative artificials) is
		// bounded below by zero; reaching either of these here means
		// the constructed artificial basis was bad, not a genuine
		// result -- treat both as needing a fixup from the caller.
		return Result[S]{Status: NeedsFixup, Phase1Iters: res1.Iterations}
	case simplex.Timeout:
		return Result[S]{Status: Timeout, Phase1Iters: res1.Iterations}
	}
	if res1.Objective.Cmp(realC[0].Tolerances().Feas) > 0 {
		return Result[S]{Status: Infeasible, Phase1Iters: res1.Iterations}
	}

	// Basis hand-off: drive any remaining artificial out of the basis.
	artificialSet := make(map[int]bool, len(artificialRows))
	for j := n; j < n1; j++ {
		artificialSet[j] = true
	}
	for qPos := 0; qPos < basisSet.Len(); qPos++ {
		col := basisSet.At(qPos)
		if !artificialSet[col] {
			continue
		}
		// Recomputed fresh for the basis as it stands right now: an
		// earlier substitution in this same loop changes every row of
		// B^-1, not just row qPos, so a stale inverse would test later
		// rows against a basis that no longer matches basisSet.
		binv := refreshInverse(aug, basisSet, realC[0].Tolerances())
		replaced := false
		row := binv.Row(qPos)
		for j := 0; j < n1; j++ {
			if artificialSet[j] || basisSet.Contains(j) {
				continue
			}
			dotv := dotProduct(row, aug.Col(j), zero)
			if scalar.AbsGE[S](dotv, realC[0].Tolerances().Pivot) {
				basisSet.SubstituteAt(qPos, j)
				replaced = true
				break
			}
		}
		if !replaced {
			return Result[S]{Status: NeedsFixup, Phase1Iters: res1.Iterations, NeedsFixupRow: qPos}
		}
	}

	// Phase 2: restore the real objective over the original n columns,
	// zero over any artificial columns still present structurally (none
	// should remain basic, but the engine still needs a value for every
	// column of aug).
	phase2C := make([]S, n1)
	copy(phase2C, realC)
	for j := n; j < n1; j++ {
		phase2C[j] = zero
	}

	res2, err := simplex.Run(aug, b, phase2C, simplex.Options[S]{
		Basis:         basisSet,
		RefactorEvery: opts.RefactorEvery,
		MaxIterations: opts.MaxIterations,
	})
	if err != nil {
		panic(err)
	}
	if res2.Status == simplex.Singular {
		return Result[S]{Status: NeedsFixup, Phase1Iters: res1.Iterations}
	}
	if res2.Status == simplex.Unbounded {
		return Result[S]{Status: Unbounded, Phase1Iters: res1.Iterations, Phase2Iters: res2.Iterations}
	}
	if res2.Status == simplex.Timeout {
		return Result[S]{Status: Timeout, Phase1Iters: res1.Iterations, Phase2Iters: res2.Iterations}
	}

	x := Lift(std, res2.X[:n], zero)
	obj := res2.Objective
	if std.Flipped {
		obj = obj.Neg()
	}
	return Result[S]{
		Status:      Optimal,
		X:           x,
		Objective:   obj,
		Phase1Iters: res1.Iterations,
		Phase2Iters: res2.Iterations,
	}
}

// Lift walks the standard-form problem's variables in order and
// collapses each back to the original space per its Origin tag (§4.8
// Lifting): Original copies, Slack is discarded, and a Splitted/
// Auxiliary pair combines as x+ - x-. stdX is the standard-form
// solution restricted to std's first n (non-artificial) columns.
func Lift[S scalar.Field[S]](std *problem.Problem[S], stdX []S, zero S) []S {
	out := make([]S, 0, len(stdX))
	for i, vr := range std.Variables {
		switch vr.Origin {
		case problem.Original:
			out = append(out, stdX[i].Add(std.Shift(i, zero)))
		case problem.Splitted:
			out = append(out, stdX[i].Sub(stdX[vr.PairedIndex]).Add(std.Shift(i, zero)))
		case problem.Slack, problem.Auxiliary:
			// discarded / folded into its Splitted partner above
		}
	}
	return out
}

func findUnitColumn[S scalar.Field[S]](a *densemat.Dense[S], row int, used map[int]bool) int {
	m := a.Rows()
	n := a.Cols()
	zero := a.At(0, 0).Zero()
	one := zero.One()
	for j := 0; j < n; j++ {
		if used[j] {
			continue
		}
		ok := true
		for i := 0; i < m; i++ {
			want := zero
			if i == row {
				want = one
			}
			if a.At(i, j).Sub(want).Abs().Cmp(zero.Tolerances().Feas) > 0 {
				ok = false
				break
			}
		}
		if ok {
			return j
		}
	}
	return -1
}

func augmentColumns[S scalar.Field[S]](a *densemat.Dense[S], extra [][]S, zero S) *densemat.Dense[S] {
	m := a.Rows()
	n := a.Cols()
	out := densemat.New[S](m, n+len(extra), zero)
	for j := 0; j < n; j++ {
		out.SetCol(j, a.Col(j))
	}
	for k, col := range extra {
		out.SetCol(n+k, col)
	}
	return out
}

func basisIdxArtificialCols(basisIdx []int, n int) []int {
	out := []int{}
	for _, b := range basisIdx {
		if b >= n {
			out = append(out, b)
		}
	}
	return out
}

// dotProduct reduces two equal-length vectors, taking the Float64
// gonum/floats fast path when S is the binary64 backend (mirroring
// simplex's dual/reducedCosts reductions).
func dotProduct[S scalar.Field[S]](a, b []S, zero S) S {
	if af, ok := any(a).([]scalar.Float64); ok {
		bf := any(b).([]scalar.Float64)
		return any(scalar.DotFloat64(af, bf)).(S)
	}
	acc := zero
	for i := range a {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	return acc
}

func refreshInverse[S scalar.Field[S]](a *densemat.Dense[S], basisSet *colset.Set, tol scalar.Tolerances[S]) *densemat.Dense[S] {
	b := a.Columns(basisSet.Slice())
	inv, err := lu.Inverse(b, lu.Tolerance[S]{Pivot: tol.Pivot})
	if err != nil {
		panic(err) // basisSet was just handed back by a successful phase-1 solve
	}
	return inv
}
