// Package scalar abstracts the field operations the simplex core needs
// over a numeric backend, so the same factorization and pivoting code
// runs over binary64 or an arbitrary-precision binary float without
// duplication. See Float64 and BigFloat for the two shipped backends.
package scalar

// Field is the contract every scalar backend must satisfy: the four
// arithmetic operations, unary negation, absolute value, a three-way
// comparison, an exact-zero test, and a pair of Zero/One constructors
// so generic code never needs a literal of type S. Implementations must
// not allocate for Add/Sub/Mul/Quo/Neg/Abs/Cmp/IsZeroExact when S is
// Float64; BigFloat is free to allocate.
//
// Field is deliberately self-referential (S must itself satisfy
// Field[S]) so Dense[S], LU[S] and the simplex engine can be written
// once and instantiated per backend without interface boxing.
type Field[S any] interface {
	Add(S) S
	Sub(S) S
	Mul(S) S
	Quo(S) S
	Neg() S
	Abs() S

	// Cmp returns -1, 0 or +1 as the receiver is less than, equal to,
	// or greater than other.
	Cmp(other S) int

	// IsZeroExact reports whether the receiver is the exact field zero.
	// Used only where the spec requires an exact structural-zero test
	// (e.g. inside LU); isZero-within-tolerance is expressed with Cmp
	// against Tolerances().Feas instead.
	IsZeroExact() bool

	// Zero and One construct fresh field elements of the correct shape
	// (precision, in BigFloat's case) without requiring a package-level
	// constant of type S.
	Zero() S
	One() S

	// Tolerances returns the default pivot and feasibility tolerances
	// for this backend (§3.1: 1e-10 for binary64, 1e-28 for a backend
	// carrying >=100 decimal digits).
	Tolerances() Tolerances[S]

	Float64() float64
	String() string
}

// Tolerances bundles the two named tolerances the core compares against:
// TOL_PIVOT guards LU/simplex pivot selection against near-singular
// divisors, TOL_FEAS guards feasibility and optimality tests against
// floating noise.
type Tolerances[S any] struct {
	Pivot S
	Feas  S
}

// LessThanNeg reports a < -tol, the comparison the engine repeats at
// every reduced-cost and feasibility test.
func LessThanNeg[S Field[S]](a, tol S) bool {
	return a.Cmp(tol.Neg()) < 0
}

// AbsGE reports |a| >= tol.
func AbsGE[S Field[S]](a, tol S) bool {
	return a.Abs().Cmp(tol) >= 0
}

// AbsLT reports |a| < tol.
func AbsLT[S Field[S]](a, tol S) bool {
	return a.Abs().Cmp(tol) < 0
}
