package problem

import "github.com/dualphase/simplex/scalar"

// StandardForm applies §4.6's transform to p and returns a new problem
// (p is left untouched, matching the rest of this module's
// clone-then-mutate value semantics): every variable gets an explicit
// lower bound of 0, every structural row becomes an equality, and the
// objective is minimized.
//
// Two details are decided here where §4.6 is silent, recorded per the
// "Open Question" convention: a finite, non-zero lower bound is handled
// by a shift (x = x' + L, x' >= 0) rather than a split, since splitting
// a bounded variable would double the columns needlessly; a finite
// upper bound becomes an explicit "x <= u" row ahead of the general
// sense-conversion pass, so it flows through step 2 like any other
// LessEqual constraint. See DESIGN.md.
func StandardForm[S scalar.Field[S]](p *Problem[S]) *Problem[S] {
	n := p.NumVars()
	if n == 0 {
		panic("problem: cannot standardize a problem with no variables")
	}
	zero := p.Objective.Costs[0].Zero()

	out := &Problem[S]{
		Name:      p.Name,
		Variables: append([]Variable(nil), p.Variables...),
		Objective: Objective[S]{Direction: p.Objective.Direction, Costs: append([]S(nil), p.Objective.Costs...)},
		shifts:    make([]S, n),
	}
	for i := range out.shifts {
		out.shifts[i] = zero
	}
	out.Constraints = make([]Constraint[S], len(p.Constraints))
	for i, c := range p.Constraints {
		out.Constraints[i] = Constraint[S]{Coeffs: append([]S(nil), c.Coeffs...), Sense: c.Sense, RHS: c.RHS}
	}

	// Step 0 (upper bounds -> explicit rows, ahead of the spec's
	// numbered procedure; see doc comment).
	for i := 0; i < n; i++ {
		if i >= len(p.RawBounds) || !p.RawBounds[i].HasUpper {
			continue
		}
		row := make([]S, len(out.Variables))
		for j := range row {
			row[j] = zero
		}
		row[i] = zero.One()
		out.Constraints = append(out.Constraints, Constraint[S]{Coeffs: row, Sense: LessEqual, RHS: p.RawBounds[i].Upper})
	}

	// Step shift: finite, non-zero lower bounds shift to 0.
	for i := 0; i < n; i++ {
		if i >= len(p.RawBounds) || !p.RawBounds[i].HasLower {
			continue
		}
		lb := p.RawBounds[i].Lower
		if lb.IsZeroExact() {
			continue
		}
		out.shifts[i] = lb
		for r := range out.Constraints {
			coeff := out.Constraints[r].Coeffs[i]
			out.Constraints[r].RHS = out.Constraints[r].RHS.Sub(coeff.Mul(lb))
		}
	}

	// Step 1: free variables (no lower bound) split into x+ - x-.
	for i := 0; i < n; i++ {
		if i < len(p.RawBounds) && p.RawBounds[i].HasLower {
			continue
		}
		negIdx := len(out.Variables)
		for r := range out.Constraints {
			out.Constraints[r].Coeffs = append(out.Constraints[r].Coeffs, out.Constraints[r].Coeffs[i].Neg())
		}
		out.Objective.Costs = append(out.Objective.Costs, out.Objective.Costs[i].Neg())
		out.Variables[i].Origin = Splitted
		out.Variables[i].PairedIndex = negIdx
		out.Variables = append(out.Variables, Variable{
			Name:        out.Variables[i].Name + "$neg",
			Origin:      Auxiliary,
			PairedIndex: i,
		})
		out.shifts = append(out.shifts, zero)
		out.NonNegativeCols = append(out.NonNegativeCols, i, negIdx)
	}

	// Step 2: senses other than Equal get a slack column and become
	// equality rows. Two passes: first assign each inequality row its
	// slack column index and grow the variable/objective lists, then
	// build every row's coefficients at the final, common width -- a
	// single-pass append (as in the teacher's column-at-a-time style)
	// would leave earlier rows short by however many slacks came after
	// them.
	baseWidth := len(out.Variables)
	slackIdx := make([]int, len(out.Constraints))
	for i := range slackIdx {
		slackIdx[i] = -1
	}
	numSlack := 0
	for i, c := range out.Constraints {
		if c.Sense == Equal {
			continue
		}
		slackIdx[i] = baseWidth + numSlack
		numSlack++
		out.Objective.Costs = append(out.Objective.Costs, zero)
		out.Variables = append(out.Variables, Variable{Name: "slack", Origin: Slack, PairedIndex: -1})
		out.shifts = append(out.shifts, zero)
		out.NonNegativeCols = append(out.NonNegativeCols, baseWidth+numSlack-1)
	}
	totalWidth := baseWidth + numSlack

	rows := make([]Constraint[S], len(out.Constraints))
	for i, c := range out.Constraints {
		row := make([]S, totalWidth)
		for j := range row {
			row[j] = zero
		}
		copy(row, c.Coeffs)
		sense := c.Sense
		if slackIdx[i] >= 0 {
			coeff := zero.One()
			if c.Sense == GreaterEqual {
				coeff = coeff.Neg()
			}
			row[slackIdx[i]] = coeff
			sense = Equal
		}
		rows[i] = Constraint[S]{Coeffs: row, Sense: sense, RHS: c.RHS}
	}
	out.Constraints = rows

	// Step 3: normalize to Minimize.
	if out.Objective.Direction == Maximize {
		for i := range out.Objective.Costs {
			out.Objective.Costs[i] = out.Objective.Costs[i].Neg()
		}
		out.Objective.Direction = Minimize
		out.Flipped = true
	}

	return out
}
