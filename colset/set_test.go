package colset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dualphase/simplex/colset"
)

func TestBasicOps(t *testing.T) {
	s := colset.New(3, 1, 4)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(9))
	assert.Equal(t, 1, s.IndexOf(1))
	assert.Equal(t, -1, s.IndexOf(9))
}

func TestSubstitutePreservesPosition(t *testing.T) {
	s := colset.New(3, 1, 4)
	s.Substitute(1, 9)
	assert.Equal(t, []int{3, 9, 4}, s.Slice())

	s.SubstituteAt(0, 7)
	assert.Equal(t, []int{7, 9, 4}, s.Slice())
}

func TestComplement(t *testing.T) {
	s := colset.New(1, 3)
	comp := colset.Complement(s, 5)
	assert.Equal(t, []int{0, 2, 4}, comp.Slice())
}

func TestPlaceholderSentinel(t *testing.T) {
	s := colset.New(colset.Placeholder, colset.Placeholder)
	assert.True(t, s.Contains(colset.Placeholder))
	s.SubstituteAt(0, 2)
	assert.Equal(t, []int{2, colset.Placeholder}, s.Slice())
}
