package simplex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualphase/simplex/colset"
	"github.com/dualphase/simplex/densemat"
	"github.com/dualphase/simplex/scalar"
	"github.com/dualphase/simplex/simplex"
)

func v(xs ...float64) []scalar.Float64 {
	out := make([]scalar.Float64, len(xs))
	for i, x := range xs {
		out[i] = scalar.Float64(x)
	}
	return out
}

// Standard form of spec §8 scenario 1: maximize 0.6x1+0.5x2 s.t.
// x1+2x2<=1, 3x1+x2<=2 becomes, after negating for minimize,
// min -0.6x1-0.5x2 s.t. x1+2x2+s1=1, 3x1+x2+s2=2.
func TestRunFindsKnownOptimum(t *testing.T) {
	a := densemat.NewFromRows([][]scalar.Float64{
		{1, 2, 1, 0},
		{3, 1, 0, 1},
	})
	b := v(1, 2)
	c := v(-0.6, -0.5, 0, 0)
	basisSet := colset.New(2, 3)

	res, err := simplex.Run(a, b, c, simplex.Options[scalar.Float64]{Basis: basisSet})
	require.NoError(t, err)
	require.Equal(t, simplex.Optimal, res.Status)
	assert.InDelta(t, 0.6, float64(res.X[0]), 1e-9)
	assert.InDelta(t, 0.2, float64(res.X[1]), 1e-9)
	assert.InDelta(t, -0.46, float64(res.Objective), 1e-9)
}

func TestRunDetectsUnbounded(t *testing.T) {
	a := densemat.NewFromRows([][]scalar.Float64{
		{1, 0},
	})
	b := v(5)
	c := v(0, -1)
	basisSet := colset.New(0)

	res, err := simplex.Run(a, b, c, simplex.Options[scalar.Float64]{Basis: basisSet})
	require.NoError(t, err)
	assert.Equal(t, simplex.Unbounded, res.Status)
}

func TestRunRejectsWrongSizedBasis(t *testing.T) {
	a := densemat.NewFromRows([][]scalar.Float64{{1, 0}})
	b := v(1)
	c := v(0, 0)
	_, err := simplex.Run(a, b, c, simplex.Options[scalar.Float64]{Basis: colset.New(0, 1)})
	assert.ErrorIs(t, err, simplex.ErrNoInitialBasis)
}

func TestRunHonorsIterationCap(t *testing.T) {
	a := densemat.NewFromRows([][]scalar.Float64{
		{1, 2, 1, 0},
		{3, 1, 0, 1},
	})
	b := v(1, 2)
	c := v(-0.6, -0.5, 0, 0)
	basisSet := colset.New(2, 3)

	res, err := simplex.Run(a, b, c, simplex.Options[scalar.Float64]{Basis: basisSet, MaxIterations: 1})
	require.NoError(t, err)
	assert.Equal(t, simplex.Timeout, res.Status)
}
