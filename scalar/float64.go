package scalar

import (
	"math"
	"strconv"
)

// Float64 is the binary64 scalar backend. It is a defined type over
// float64 so Field's methods attach without boxing; arithmetic compiles
// down to the same instructions as plain float64 math.
type Float64 float64

const (
	float64PivotTol = 1e-10
	float64FeasTol  = 1e-10
)

func (a Float64) Add(b Float64) Float64 { return a + b }
func (a Float64) Sub(b Float64) Float64 { return a - b }
func (a Float64) Mul(b Float64) Float64 { return a * b }
func (a Float64) Quo(b Float64) Float64 { return a / b }
func (a Float64) Neg() Float64          { return -a }
func (a Float64) Abs() Float64          { return Float64(math.Abs(float64(a))) }

func (a Float64) Cmp(b Float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (a Float64) IsZeroExact() bool { return a == 0 }
func (a Float64) Zero() Float64     { return 0 }
func (a Float64) One() Float64      { return 1 }

func (a Float64) Tolerances() Tolerances[Float64] {
	return Tolerances[Float64]{Pivot: float64PivotTol, Feas: float64FeasTol}
}

func (a Float64) Float64() float64 { return float64(a) }
func (a Float64) String() string   { return strconv.FormatFloat(float64(a), 'g', -1, 64) }

// MustFloat64 parses s as a binary64 scalar, panicking on malformed
// input. It exists for test fixtures and constant tables; production
// parsing paths (lpformat) use strconv directly and return an error.
func MustFloat64(s string) Float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	return Float64(v)
}
