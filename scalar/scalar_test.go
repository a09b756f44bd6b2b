package scalar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dualphase/simplex/scalar"
)

func TestFloat64Field(t *testing.T) {
	a, b := scalar.Float64(3), scalar.Float64(2)
	assert.Equal(t, scalar.Float64(5), a.Add(b))
	assert.Equal(t, scalar.Float64(1), a.Sub(b))
	assert.Equal(t, scalar.Float64(6), a.Mul(b))
	assert.Equal(t, scalar.Float64(1.5), a.Quo(b))
	assert.Equal(t, scalar.Float64(-3), a.Neg())
	assert.Equal(t, scalar.Float64(3), a.Neg().Abs())
	assert.Equal(t, 1, a.Cmp(b))
	assert.True(t, scalar.Float64(0).IsZeroExact())
	assert.False(t, a.IsZeroExact())

	tol := a.Tolerances()
	assert.Equal(t, scalar.Float64(1e-10), tol.Pivot)
	assert.Equal(t, scalar.Float64(1e-10), tol.Feas)
}

func TestBigFloatField(t *testing.T) {
	a := scalar.NewBigFloat(3)
	b := scalar.NewBigFloat(2)

	assert.Equal(t, 0, a.Add(b).Cmp(scalar.NewBigFloat(5)))
	assert.Equal(t, 0, a.Sub(b).Cmp(scalar.NewBigFloat(1)))
	assert.Equal(t, 0, a.Mul(b).Cmp(scalar.NewBigFloat(6)))
	assert.Equal(t, 0, a.Neg().Cmp(scalar.NewBigFloat(-3)))
	assert.True(t, a.Zero().IsZeroExact())
	assert.False(t, a.IsZeroExact())

	parsed, err := scalar.ParseBigFloat("1.5")
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.Cmp(a.Quo(b)))

	tol := a.Tolerances()
	assert.True(t, scalar.AbsLT[scalar.BigFloat](tol.Pivot, scalar.NewBigFloat(1e-20)))
}

func TestHelpers(t *testing.T) {
	tol := scalar.Float64(1e-9)
	assert.True(t, scalar.LessThanNeg[scalar.Float64](-1, tol))
	assert.False(t, scalar.LessThanNeg[scalar.Float64](0, tol))
	assert.True(t, scalar.AbsGE[scalar.Float64](1e-8, tol))
	assert.True(t, scalar.AbsLT[scalar.Float64](1e-11, tol))
}
