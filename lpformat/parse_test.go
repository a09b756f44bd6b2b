package lpformat_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualphase/simplex/lpformat"
	"github.com/dualphase/simplex/problem"
)

const simpleLP = `
[METADATA]
name simple // a comment
vars 2

[VARIABLES]
0 x1 inf
0 x2 inf

[CONSTRAINTS]
1 2 <= 1
3 1 <= 2

[OBJECTIVE]
maximize 0.6 0.5
`

func TestParseFloat64SimpleLP(t *testing.T) {
	p, err := lpformat.ParseFloat64(strings.NewReader(simpleLP))
	require.NoError(t, err)

	assert.Equal(t, "simple", p.Name)
	require.Len(t, p.Variables, 2)
	assert.Equal(t, "x1", p.Variables[0].Name)
	require.Len(t, p.Constraints, 2)
	assert.Equal(t, problem.LessEqual, p.Constraints[0].Sense)
	assert.Equal(t, problem.Maximize, p.Objective.Direction)
	assert.InDelta(t, 0.6, float64(p.Objective.Costs[0]), 1e-12)
}

func TestParseFloat64TwoSidedVariableBound(t *testing.T) {
	src := `
[METADATA]
vars 1
[VARIABLES]
0 <= x <= 4
[CONSTRAINTS]
1 = 2
[OBJECTIVE]
minimize 1
`
	p, err := lpformat.ParseFloat64(strings.NewReader(src))
	require.NoError(t, err)
	require.True(t, p.RawBounds[0].HasUpper)
	assert.InDelta(t, 4, float64(p.RawBounds[0].Upper), 1e-12)
}

func TestParseFloat64TwoSidedConstraintEmitsBothBounds(t *testing.T) {
	src := `
[METADATA]
vars 2
[VARIABLES]
0 x1 inf
0 x2 inf
[CONSTRAINTS]
1 <= 1 1 <= 5
[OBJECTIVE]
minimize 1 1
`
	p, err := lpformat.ParseFloat64(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, p.Constraints, 2)

	assert.Equal(t, problem.GreaterEqual, p.Constraints[0].Sense)
	assert.InDelta(t, 1, float64(p.Constraints[0].RHS), 1e-12)
	assert.Equal(t, problem.LessEqual, p.Constraints[1].Sense)
	assert.InDelta(t, 5, float64(p.Constraints[1].RHS), 1e-12)
	for _, c := range p.Constraints {
		assert.InDelta(t, 1, float64(c.Coeffs[0]), 1e-12)
		assert.InDelta(t, 1, float64(c.Coeffs[1]), 1e-12)
	}
}

func TestParseFloat64RejectsWrongVarsCount(t *testing.T) {
	src := "[METADATA]\nvars 2\n[VARIABLES]\n0 x inf\n[CONSTRAINTS]\n[OBJECTIVE]\nminimize 1\n"
	_, err := lpformat.ParseFloat64(strings.NewReader(src))
	assert.Error(t, err)
}
