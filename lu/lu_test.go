package lu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualphase/simplex/densemat"
	"github.com/dualphase/simplex/lu"
	"github.com/dualphase/simplex/scalar"
)

func tol() lu.Tolerance[scalar.Float64] { return lu.Tolerance[scalar.Float64]{Pivot: 1e-10} }

func TestFactorSolveRoundTrip(t *testing.T) {
	a := densemat.NewFromRows([][]scalar.Float64{
		{2, 1, 1},
		{4, 3, 3},
		{8, 7, 9},
	})
	f, err := lu.Factor(a, tol())
	require.NoError(t, err)

	x, err := lu.Solve(a, []scalar.Float64{4, 10, 24}, tol())
	require.NoError(t, err)

	// A*x should reproduce b.
	got := a.MulVec(x)
	for i, v := range []scalar.Float64{4, 10, 24} {
		assert.InDelta(t, float64(v), got[i].Float64(), 1e-8)
	}

	// P*A == L*U (reconstruct L and U from the packed factorization by
	// solving columns of identity is overkill here; instead verify
	// A*inverse(A) == I, which exercises L, U and P together).
	inv := f.Inverse(scalar.Float64(0))
	prod := a.Mul(inv)
	id := densemat.Identity[scalar.Float64](3, 0)
	assert.True(t, prod.EqualApprox(id, 1e-8))
}

func TestDeterminant(t *testing.T) {
	a := densemat.NewFromRows([][]scalar.Float64{
		{2, 0},
		{0, 3},
	})
	f, err := lu.Factor(a, tol())
	require.NoError(t, err)
	assert.InDelta(t, 6.0, f.Det().Float64(), 1e-9)
}

func TestSingularReturnsErrSingular(t *testing.T) {
	a := densemat.NewFromRows([][]scalar.Float64{
		{1, 2},
		{2, 4},
	})
	_, err := lu.Factor(a, tol())
	assert.ErrorIs(t, err, lu.ErrSingular)
}

func TestPermutationRecordsRowSwap(t *testing.T) {
	a := densemat.NewFromRows([][]scalar.Float64{
		{0, 1},
		{1, 0},
	})
	f, err := lu.Factor(a, tol())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, f.Permutation())

	p := f.PermutationMatrix(scalar.Float64(0))
	assert.Equal(t, scalar.Float64(1), p.At(0, 1))
	assert.Equal(t, scalar.Float64(1), p.At(1, 0))
}
