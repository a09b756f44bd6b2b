package lpformat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/dualphase/simplex/problem"
	"github.com/dualphase/simplex/scalar"
)

// ConstraintMatrix exposes a parsed binary64 problem's constraint rows
// as a gonum mat.Matrix, for callers that already depend on gonum and
// want to run their own diagnostics (rank checks, condition number,
// plotting) over the same coefficients the solver sees. The solver
// itself never takes this path -- densemat.Dense is assembled directly
// from p.A()/p.B() -- this is purely a boundary convenience.
func ConstraintMatrix(p *problem.Problem[scalar.Float64]) mat.Matrix {
	rows := p.A()
	m := len(rows)
	if m == 0 {
		return mat.NewDense(0, 0, nil)
	}
	n := len(rows[0])
	data := make([]float64, 0, m*n)
	for _, row := range rows {
		for _, v := range row {
			data = append(data, float64(v))
		}
	}
	return mat.NewDense(m, n, data)
}
