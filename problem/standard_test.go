package problem_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualphase/simplex/problem"
	"github.com/dualphase/simplex/scalar"
)

func f(v float64) scalar.Float64 { return scalar.Float64(v) }

// Maximize 0.6x1 + 0.5x2 s.t. x1+2x2<=1, 3x1+x2<=2, x1,x2>=0 (spec §8 scenario 1).
func simpleProblem() *problem.Problem[scalar.Float64] {
	return &problem.Problem[scalar.Float64]{
		Name: "simple",
		Variables: []problem.Variable{
			{Name: "x1"},
			{Name: "x2"},
		},
		RawBounds: []problem.Bounds[scalar.Float64]{
			{HasLower: true, Lower: 0},
			{HasLower: true, Lower: 0},
		},
		Constraints: []problem.Constraint[scalar.Float64]{
			{Coeffs: []scalar.Float64{1, 2}, Sense: problem.LessEqual, RHS: 1},
			{Coeffs: []scalar.Float64{3, 1}, Sense: problem.LessEqual, RHS: 2},
		},
		Objective: problem.Objective[scalar.Float64]{Direction: problem.Maximize, Costs: []scalar.Float64{0.6, 0.5}},
	}
}

func TestStandardFormAddsSlacksAndFlips(t *testing.T) {
	p := simpleProblem()
	std := problem.StandardForm(p)

	require.Equal(t, 4, std.NumVars())
	require.True(t, std.Flipped)
	require.Equal(t, problem.Minimize, std.Objective.Direction)
	assert.Equal(t, f(-0.6), std.Objective.Costs[0])
	assert.Equal(t, f(-0.5), std.Objective.Costs[1])

	for _, c := range std.Constraints {
		assert.Equal(t, problem.Equal, c.Sense)
	}
	assert.Equal(t, problem.Slack, std.Variables[2].Origin)
	assert.Equal(t, problem.Slack, std.Variables[3].Origin)
	assert.ElementsMatch(t, []int{2, 3}, std.NonNegativeCols)

	// Original p is untouched.
	assert.Equal(t, 2, p.NumVars())
}

func TestStandardFormSplitsFreeVariables(t *testing.T) {
	p := &problem.Problem[scalar.Float64]{
		Variables: []problem.Variable{{Name: "x"}, {Name: "y"}},
		RawBounds: []problem.Bounds[scalar.Float64]{
			{}, // free
			{HasLower: true, Lower: 0},
		},
		Constraints: []problem.Constraint[scalar.Float64]{
			{Coeffs: []scalar.Float64{1, -1}, Sense: problem.Equal, RHS: 1},
		},
		Objective: problem.Objective[scalar.Float64]{Direction: problem.Minimize, Costs: []scalar.Float64{1, 0}},
	}
	std := problem.StandardForm(p)

	require.Equal(t, 3, std.NumVars())
	assert.Equal(t, problem.Splitted, std.Variables[0].Origin)
	assert.Equal(t, 2, std.Variables[0].PairedIndex)
	assert.Equal(t, problem.Auxiliary, std.Variables[2].Origin)
	assert.Equal(t, 0, std.Variables[2].PairedIndex)
	assert.Equal(t, f(-1), std.Constraints[0].Coeffs[2])
	assert.Equal(t, f(-1), std.Objective.Costs[2])
}

func TestStandardFormShiftsNonzeroLowerBound(t *testing.T) {
	p := &problem.Problem[scalar.Float64]{
		Variables: []problem.Variable{{Name: "x"}},
		RawBounds: []problem.Bounds[scalar.Float64]{
			{HasLower: true, Lower: 2},
		},
		Constraints: []problem.Constraint[scalar.Float64]{
			{Coeffs: []scalar.Float64{1}, Sense: problem.LessEqual, RHS: 5},
		},
		Objective: problem.Objective[scalar.Float64]{Direction: problem.Minimize, Costs: []scalar.Float64{1}},
	}
	std := problem.StandardForm(p)
	assert.Equal(t, f(2), std.Shift(0, 0))
	// x<=5 becomes x'<=3 (5-2) after the shift, before the slack is added.
	assert.Equal(t, f(3), std.Constraints[0].RHS)
}

func TestStandardFormUpperBoundBecomesRow(t *testing.T) {
	p := &problem.Problem[scalar.Float64]{
		Variables: []problem.Variable{{Name: "x"}},
		RawBounds: []problem.Bounds[scalar.Float64]{
			{HasLower: true, Lower: 0, HasUpper: true, Upper: 4},
		},
		Constraints: []problem.Constraint[scalar.Float64]{
			{Coeffs: []scalar.Float64{1}, Sense: problem.Equal, RHS: 1},
		},
		Objective: problem.Objective[scalar.Float64]{Direction: problem.Minimize, Costs: []scalar.Float64{1}},
	}
	std := problem.StandardForm(p)
	require.Len(t, std.Constraints, 2)
	assert.Equal(t, problem.Equal, std.Constraints[1].Sense)
	assert.Equal(t, f(4), std.Constraints[1].RHS)
}
