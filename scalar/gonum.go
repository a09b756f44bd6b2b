package scalar

import "gonum.org/v1/gonum/floats"

// DotFloat64 computes the dot product of two binary64 vectors via
// gonum/floats, the vector-reduction library this module's domain
// stack carries for the Float64 instantiation's hot paths (simplex's
// dual and reduced-cost computations are both dot products). The
// generic core stays backend-agnostic; callers that already know they
// are running the Float64 backend take this fast path instead of the
// generic Add/Mul loop.
func DotFloat64(a, b []Float64) Float64 {
	return Float64(floats.Dot(toPlainFloat64(a), toPlainFloat64(b)))
}

func toPlainFloat64(s []Float64) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}
