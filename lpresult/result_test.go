package lpresult_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualphase/simplex/lpresult"
	"github.com/dualphase/simplex/problem"
	"github.com/dualphase/simplex/scalar"
	"github.com/dualphase/simplex/twophase"
)

func nonNeg(n int) []problem.Bounds[scalar.Float64] {
	out := make([]problem.Bounds[scalar.Float64], n)
	for i := range out {
		out[i] = problem.Bounds[scalar.Float64]{HasLower: true, Lower: 0}
	}
	return out
}

func integerSnapProblem() *problem.Problem[scalar.Float64] {
	return &problem.Problem[scalar.Float64]{
		Variables: []problem.Variable{{Name: "x"}, {Name: "y"}},
		RawBounds: nonNeg(2),
		Constraints: []problem.Constraint[scalar.Float64]{
			{Coeffs: []scalar.Float64{1, 2}, Sense: problem.LessEqual, RHS: 4},
			{Coeffs: []scalar.Float64{3, 1}, Sense: problem.LessEqual, RHS: 6},
		},
		Objective: problem.Objective[scalar.Float64]{Direction: problem.Maximize, Costs: []scalar.Float64{1, 1}},
	}
}

// Spec §8 scenario 6: continuous optimum (1.6, 1.2) obj 2.8 snaps to
// the best feasible integer corner (1, 1) obj 2.
func TestShapeIntegerSnap(t *testing.T) {
	p := integerSnapProblem()
	res := twophase.Solve(p, twophase.Options[scalar.Float64]{})
	require.Equal(t, twophase.Optimal, res.Status)

	shaped := lpresult.Shape(p, res, lpresult.Options{TryIntegerSnap: true})
	require.True(t, shaped.IntegerSolution)
	assert.Equal(t, "1", shaped.Solution[0])
	assert.Equal(t, "1", shaped.Solution[1])
	assert.Equal(t, "2", shaped.ObjectiveValue)
}

func TestShapeWithoutSnapReportsContinuousOptimum(t *testing.T) {
	p := integerSnapProblem()
	res := twophase.Solve(p, twophase.Options[scalar.Float64]{})
	shaped := lpresult.Shape(p, res, lpresult.Options{})
	assert.False(t, shaped.IntegerSolution)
	obj, err := strconv.ParseFloat(shaped.ObjectiveValue, 64)
	require.NoError(t, err)
	assert.InDelta(t, 2.8, obj, 1e-9)
}
