// Package problem implements the LP problem model (spec §3.5) and its
// standard-form transform (§4.6): variables with arbitrary bounds and
// constraints of any sense become an equality-constrained, all-variables
// non-negative problem the simplex engine can consume directly.
package problem

import "github.com/dualphase/simplex/scalar"

// Sense classifies a structural constraint row.
type Sense int

const (
	LessEqual Sense = iota
	Equal
	GreaterEqual
)

func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case Equal:
		return "="
	case GreaterEqual:
		return ">="
	default:
		return "?"
	}
}

// Origin tags how a standard-form column relates to the caller's
// original problem, so a solution can be lifted back (§4.8 Lifting).
// Modeled as a tagged variant rather than virtual dispatch, per §9: the
// only polymorphic behavior a tag needs is "collapse this component
// back to the original solution", which Lift implements with a switch
// on the tag instead of a method table.
type Origin int

const (
	// Original is a variable present in the caller's problem whose
	// lower bound was already 0 (or was shifted to 0).
	Original Origin = iota
	// Slack is a column added to turn a LessEqual/GreaterEqual row into
	// an equality; it is discarded when lifting.
	Slack
	// Splitted is the positive half (x+) of a free variable split into
	// x+ - x-; PairedIndex names the Auxiliary column holding x-.
	Splitted
	// Auxiliary is the negative half (x-) of a split free variable.
	Auxiliary
)

func (o Origin) String() string {
	switch o {
	case Original:
		return "original"
	case Slack:
		return "slack"
	case Splitted:
		return "splitted"
	case Auxiliary:
		return "auxiliary"
	default:
		return "?"
	}
}

// Variable names one column and records how it relates to the caller's
// original variable space.
type Variable struct {
	Name        string
	Origin      Origin
	PairedIndex int // index of the paired Splitted/Auxiliary column, or -1
}

// Bounds describes a variable's admissible range before the
// standard-form transform. HasLower/HasUpper false mean "unbounded in
// that direction" (-inf / +inf).
type Bounds[S scalar.Field[S]] struct {
	HasLower bool
	Lower    S
	HasUpper bool
	Upper    S
}

// Constraint is one structural row: a coefficient vector, a sense, and
// a right-hand side.
type Constraint[S scalar.Field[S]] struct {
	Coeffs []S
	Sense  Sense
	RHS    S
}

// Direction is the caller-facing optimization sense. The engine always
// minimizes internally; Maximize problems are negated on the way in and
// restored on the way out (Problem.Flipped records this).
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// Objective is the direction plus a cost row.
type Objective[S scalar.Field[S]] struct {
	Direction Direction
	Costs     []S
}

// Problem is the full LP model: named variables (with pre-transform
// bounds), structural constraints, and an objective. RawBounds is
// consulted only by StandardForm; once transformed, every variable's
// effective bound is 0 <= x, enforced structurally rather than tracked
// here.
type Problem[S scalar.Field[S]] struct {
	Name        string
	Variables   []Variable
	RawBounds   []Bounds[S] // parallel to Variables, pre-transform only
	Constraints []Constraint[S]
	Objective   Objective[S]

	// Flipped records whether Objective's sign was inverted to convert
	// an original Maximize problem to the engine's Minimize convention.
	Flipped bool

	// NonNegativeCols lists columns added purely to satisfy the x>=0
	// bookkeeping the source tracks as separate "NonNegative" rows
	// (§3.5): slack, splitted and auxiliary columns. The engine does
	// not consult this list to run -- every standard-form column is
	// implicitly >=0 by construction -- it exists for diagnostics and
	// the round-trip checks in §8.
	NonNegativeCols []int

	// shifts[i] records the amount variable i was shifted by (x = x' +
	// shift) to bring a finite, nonzero lower bound to zero. Populated
	// only by StandardForm; consulted by twophase.Lift.
	shifts []S
}

// NumVars reports how many columns the problem currently has.
func (p *Problem[S]) NumVars() int { return len(p.Variables) }

// A returns the constraint coefficient matrix, one row per
// Constraint, as plain [][]S (no densemat dependency here -- the
// simplex engine assembles densemat.Dense itself from this and from b).
func (p *Problem[S]) A() [][]S {
	out := make([][]S, len(p.Constraints))
	for i, c := range p.Constraints {
		out[i] = c.Coeffs
	}
	return out
}

// B returns the constraint right-hand sides.
func (p *Problem[S]) B() []S {
	out := make([]S, len(p.Constraints))
	for i, c := range p.Constraints {
		out[i] = c.RHS
	}
	return out
}

// C returns the objective cost row.
func (p *Problem[S]) C() []S { return p.Objective.Costs }

// Shift returns the recorded shift for variable i (0 if none/unset).
func (p *Problem[S]) Shift(i int, zero S) S {
	if i >= len(p.shifts) {
		return zero
	}
	return p.shifts[i]
}
