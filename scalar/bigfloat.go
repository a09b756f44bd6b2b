package scalar

import "math/big"

// bigPrecisionBits gives big.Float roughly 100 decimal digits of
// precision (log2(10) * 100 =~ 332.2 bits), matching the "S has >=100
// decimal digits" condition that selects the 1e-28 tolerance default.
const bigPrecisionBits = 360

// BigFloat is the arbitrary-precision scalar backend, backed by the
// standard library's math/big.Float. No third-party arbitrary-precision
// decimal package appears anywhere in the retrieved corpus, so the
// standard library carries this concern; see DESIGN.md.
//
// The zero Go value of BigFloat is not usable directly (its inner
// *big.Float is nil) -- callers obtain working values exclusively via
// Zero()/One() on an existing BigFloat, or via NewBigFloat, matching the
// "prototype" pattern used throughout this module's generic code.
type BigFloat struct {
	v *big.Float
}

// NewBigFloat builds a BigFloat at the module's fixed precision from a
// float64 literal. Intended for tests and constant tables.
func NewBigFloat(v float64) BigFloat {
	return BigFloat{v: new(big.Float).SetPrec(bigPrecisionBits).SetFloat64(v)}
}

// ParseBigFloat parses a decimal string at the module's fixed precision.
func ParseBigFloat(s string) (BigFloat, error) {
	f, _, err := big.ParseFloat(s, 10, bigPrecisionBits, big.ToNearestEven)
	if err != nil {
		return BigFloat{}, err
	}
	return BigFloat{v: f}, nil
}

func (a BigFloat) fresh() *big.Float { return new(big.Float).SetPrec(bigPrecisionBits) }

func (a BigFloat) Add(b BigFloat) BigFloat { return BigFloat{v: a.fresh().Add(a.v, b.v)} }
func (a BigFloat) Sub(b BigFloat) BigFloat { return BigFloat{v: a.fresh().Sub(a.v, b.v)} }
func (a BigFloat) Mul(b BigFloat) BigFloat { return BigFloat{v: a.fresh().Mul(a.v, b.v)} }
func (a BigFloat) Quo(b BigFloat) BigFloat { return BigFloat{v: a.fresh().Quo(a.v, b.v)} }
func (a BigFloat) Neg() BigFloat           { return BigFloat{v: a.fresh().Neg(a.v)} }
func (a BigFloat) Abs() BigFloat           { return BigFloat{v: a.fresh().Abs(a.v)} }

func (a BigFloat) Cmp(b BigFloat) int { return a.v.Cmp(b.v) }

func (a BigFloat) IsZeroExact() bool { return a.v.Sign() == 0 }

func (a BigFloat) Zero() BigFloat { return BigFloat{v: a.fresh()} }
func (a BigFloat) One() BigFloat  { return BigFloat{v: a.fresh().SetInt64(1)} }

func (a BigFloat) Tolerances() Tolerances[BigFloat] {
	pivot, _ := ParseBigFloat("1e-28")
	feas, _ := ParseBigFloat("1e-28")
	return Tolerances[BigFloat]{Pivot: pivot, Feas: feas}
}

func (a BigFloat) Float64() float64 {
	f, _ := a.v.Float64()
	return f
}

func (a BigFloat) String() string { return a.v.Text('g', 40) }
