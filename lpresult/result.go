// Package lpresult shapes a twophase.Solve outcome into the §6.2
// result structure: decimal-string rendering at a requested precision,
// unbounded/infeasibility ray placeholders, and the bounded
// integer-snap enumeration for small problems.
package lpresult

import (
	"math"
	"strconv"

	"github.com/dualphase/simplex/problem"
	"github.com/dualphase/simplex/scalar"
	"github.com/dualphase/simplex/twophase"
)

// Result is the JSON-shaped output §6.2 describes. Field names match
// the spec's JSON keys via struct tags so encoding/json round-trips
// without renaming.
type Result struct {
	Variables        []string `json:"variables"`
	Solution         []string `json:"solution"`
	UnboundedRay     []string `json:"unboundedRay"`
	InfeasibilityRay []string `json:"infeasibilityRay"`
	IntegerSolution  bool     `json:"integerSolution"`
	ObjectiveValue   string   `json:"objectiveValue"`
}

// Options configures Shape.
type Options struct {
	// Precision is the requested decimal precision for Solution and
	// ObjectiveValue; 'g'-style shortest round-trip when <= 0.
	Precision int
	// TryIntegerSnap enables the §6.2 integer-snap procedure. It only
	// ever fires when n <= 8 and Precision <= 0, per spec.
	TryIntegerSnap bool
}

// Shape renders a twophase.Result for the binary64 backend into the
// §6.2 result shape, running the integer-snap enumeration when
// requested and eligible.
func Shape(p *problem.Problem[scalar.Float64], res twophase.Result[scalar.Float64], opts Options) Result {
	names := make([]string, len(p.Variables))
	for i, v := range p.Variables {
		names[i] = v.Name
	}

	out := Result{
		Variables:        names,
		Solution:         []string{},
		UnboundedRay:     []string{},
		InfeasibilityRay: []string{},
	}

	switch res.Status {
	case twophase.Optimal:
		x := res.X
		obj := res.Objective
		if opts.TryIntegerSnap && len(x) <= 8 && opts.Precision <= 0 {
			if snapped, snappedObj, ok := integerSnap(p, x); ok {
				x, obj = snapped, snappedObj
				out.IntegerSolution = true
			}
		}
		out.Solution = renderAll(x, opts.Precision)
		out.ObjectiveValue = render(obj, opts.Precision)
	case twophase.Unbounded:
		out.UnboundedRay = renderAll(res.X, opts.Precision)
	case twophase.Infeasible, twophase.NeedsFixup:
		out.InfeasibilityRay = renderAll(res.X, opts.Precision)
	}
	return out
}

func render(v scalar.Float64, precision int) string {
	if precision <= 0 {
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	}
	return strconv.FormatFloat(float64(v), 'f', precision, 64)
}

func renderAll(xs []scalar.Float64, precision int) []string {
	out := make([]string, len(xs))
	for i, v := range xs {
		out[i] = render(v, precision)
	}
	return out
}

// integerSnap implements §6.2's procedure: enumerate the 2^n
// combinations of (floor(x_i), ceil(x_i)), test each against the
// original problem's constraints within TOL_FEAS, and keep the
// feasible candidate with the best original-sense objective. floor
// here is sign-independent (math.Floor/math.Ceil), unlike the source's
// toward-zero truncation the Open Questions flag as backend-dependent.
func integerSnap(p *problem.Problem[scalar.Float64], x []scalar.Float64) ([]scalar.Float64, scalar.Float64, bool) {
	n := len(x)
	if n > 8 {
		return nil, 0, false
	}
	feasTol := scalar.Float64(0).Tolerances().Feas

	floorCeil := make([][2]scalar.Float64, n)
	for i, v := range x {
		floorCeil[i] = [2]scalar.Float64{
			scalar.Float64(math.Floor(float64(v))),
			scalar.Float64(math.Ceil(float64(v))),
		}
	}

	bestFound := false
	var best []scalar.Float64
	var bestObjOriginalSense scalar.Float64

	a := p.A()
	b := p.B()
	senses := make([]problem.Sense, len(p.Constraints))
	for i, c := range p.Constraints {
		senses[i] = c.Sense
	}
	c := p.C()
	maximize := p.Objective.Direction == problem.Maximize

	for mask := 0; mask < (1 << n); mask++ {
		cand := make([]scalar.Float64, n)
		for i := 0; i < n; i++ {
			bit := (mask >> i) & 1
			cand[i] = floorCeil[i][bit]
		}
		if !feasible(a, b, senses, cand, feasTol) {
			continue
		}
		obj := scalar.Float64(0)
		for j := range c {
			obj = obj.Add(c[j].Mul(cand[j]))
		}
		if !bestFound {
			bestFound, best, bestObjOriginalSense = true, cand, obj
			continue
		}
		better := obj.Cmp(bestObjOriginalSense) > 0
		if !maximize {
			better = obj.Cmp(bestObjOriginalSense) < 0
		}
		if better {
			best, bestObjOriginalSense = cand, obj
		}
	}
	return best, bestObjOriginalSense, bestFound
}

func feasible(a [][]scalar.Float64, b []scalar.Float64, senses []problem.Sense, x []scalar.Float64, tol scalar.Float64) bool {
	for i, row := range a {
		lhs := scalar.Float64(0)
		for j, coeff := range row {
			lhs = lhs.Add(coeff.Mul(x[j]))
		}
		diff := lhs.Sub(b[i])
		switch senses[i] {
		case problem.LessEqual:
			if diff.Cmp(tol) > 0 {
				return false
			}
		case problem.GreaterEqual:
			if diff.Neg().Cmp(tol) > 0 {
				return false
			}
		case problem.Equal:
			if diff.Abs().Cmp(tol) > 0 {
				return false
			}
		}
	}
	for _, v := range x {
		if v.Cmp(tol.Neg()) < 0 {
			return false
		}
	}
	return true
}
