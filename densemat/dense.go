// Package densemat implements the row-major dense matrix storage the
// simplex core factors and pivots over (spec §3.2/§4.2). It has no
// caching flags -- per §9's redesign note, "is determinant/inverse
// current" caches are dropped; callers that need L/U/det/inverse ask
// the lu package explicitly.
package densemat

import "github.com/dualphase/simplex/scalar"

// Dense is a row-major r*c matrix of S. The zero value is not usable;
// build one with New or NewFilled.
type Dense[S scalar.Field[S]] struct {
	r, c int
	data []S
}

// New allocates an r*c matrix with every entry set to zero.Zero().
func New[S scalar.Field[S]](r, c int, zero S) *Dense[S] {
	if r <= 0 || c <= 0 {
		panic("densemat: invalid shape")
	}
	data := make([]S, r*c)
	z := zero.Zero()
	for i := range data {
		data[i] = z
	}
	return &Dense[S]{r: r, c: c, data: data}
}

// NewFilled allocates an r*c matrix with every entry set to v.
func NewFilled[S scalar.Field[S]](r, c int, v S) *Dense[S] {
	if r <= 0 || c <= 0 {
		panic("densemat: invalid shape")
	}
	data := make([]S, r*c)
	for i := range data {
		data[i] = v
	}
	return &Dense[S]{r: r, c: c, data: data}
}

// NewFromRows builds a Dense from a slice of row slices, all of equal
// length. It copies the rows.
func NewFromRows[S scalar.Field[S]](rows [][]S) *Dense[S] {
	r := len(rows)
	if r == 0 {
		panic("densemat: invalid shape")
	}
	c := len(rows[0])
	if c == 0 {
		panic("densemat: invalid shape")
	}
	data := make([]S, 0, r*c)
	for _, row := range rows {
		if len(row) != c {
			panic("densemat: ragged rows")
		}
		data = append(data, row...)
	}
	return &Dense[S]{r: r, c: c, data: data}
}

// Rows and Cols report the matrix dimensions.
func (m *Dense[S]) Rows() int { return m.r }
func (m *Dense[S]) Cols() int { return m.c }

func (m *Dense[S]) index(i, j int) int {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		panic("densemat: index out of range")
	}
	return i*m.c + j
}

// At returns the (i,j) entry, 0-indexed.
func (m *Dense[S]) At(i, j int) S { return m.data[m.index(i, j)] }

// Set writes the (i,j) entry.
func (m *Dense[S]) Set(i, j int, v S) { m.data[m.index(i, j)] = v }

// AtVec and SetVec address a 1xn or nx1 matrix by a single index, per
// §3.2's "also addressable by a single index" invariant.
func (m *Dense[S]) AtVec(i int) S {
	if m.r == 1 {
		return m.At(0, i)
	}
	if m.c == 1 {
		return m.At(i, 0)
	}
	panic("densemat: AtVec requires a row or column vector")
}

func (m *Dense[S]) SetVec(i int, v S) {
	if m.r == 1 {
		m.Set(0, i, v)
		return
	}
	if m.c == 1 {
		m.Set(i, 0, v)
		return
	}
	panic("densemat: SetVec requires a row or column vector")
}

// Row copies row i into a fresh slice.
func (m *Dense[S]) Row(i int) []S {
	out := make([]S, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])
	return out
}

// SetRow overwrites row i from v.
func (m *Dense[S]) SetRow(i int, v []S) {
	if len(v) != m.c {
		panic("densemat: dimension mismatch")
	}
	copy(m.data[i*m.c:(i+1)*m.c], v)
}

// Col copies column j into a fresh slice.
func (m *Dense[S]) Col(j int) []S {
	out := make([]S, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.At(i, j)
	}
	return out
}

// SetCol overwrites column j from v.
func (m *Dense[S]) SetCol(j int, v []S) {
	if len(v) != m.r {
		panic("densemat: dimension mismatch")
	}
	for i := 0; i < m.r; i++ {
		m.Set(i, j, v[i])
	}
}

// SwapRows exchanges rows i and j, O(c).
func (m *Dense[S]) SwapRows(i, j int) {
	if i == j {
		return
	}
	ri := m.data[i*m.c : (i+1)*m.c]
	rj := m.data[j*m.c : (j+1)*m.c]
	for k := range ri {
		ri[k], rj[k] = rj[k], ri[k]
	}
}

// SwapCols exchanges columns i and j, O(r).
func (m *Dense[S]) SwapCols(i, j int) {
	if i == j {
		return
	}
	for row := 0; row < m.r; row++ {
		base := row * m.c
		m.data[base+i], m.data[base+j] = m.data[base+j], m.data[base+i]
	}
}

// Transpose returns the transpose as a new matrix, leaving the receiver
// untouched (value semantics, no hidden aliasing per §9).
func (m *Dense[S]) Transpose() *Dense[S] {
	out := &Dense[S]{r: m.c, c: m.r, data: make([]S, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.Set(j, i, m.At(i, j))
		}
	}
	return out
}

// Clone returns an independent deep copy.
func (m *Dense[S]) Clone() *Dense[S] {
	out := &Dense[S]{r: m.r, c: m.c, data: make([]S, len(m.data))}
	copy(out.data, m.data)
	return out
}

// Columns extracts the columns named by idx into a new r x len(idx)
// matrix, in order. Used throughout problem/simplex/twophase to build
// the basic and non-basic column blocks.
func (m *Dense[S]) Columns(idx []int) *Dense[S] {
	out := &Dense[S]{r: m.r, c: len(idx), data: make([]S, m.r*len(idx))}
	for j, src := range idx {
		out.SetCol(j, m.Col(src))
	}
	return out
}

// Mul computes m*other.
func (m *Dense[S]) Mul(other *Dense[S]) *Dense[S] {
	if m.c != other.r {
		panic("densemat: dimension mismatch")
	}
	zero := m.data[0].Zero()
	out := New[S](m.r, other.c, zero)
	for i := 0; i < m.r; i++ {
		for k := 0; k < m.c; k++ {
			aik := m.At(i, k)
			if aik.IsZeroExact() {
				continue
			}
			for j := 0; j < other.c; j++ {
				out.Set(i, j, out.At(i, j).Add(aik.Mul(other.At(k, j))))
			}
		}
	}
	return out
}

// MulVec computes m*v for a column vector v of length m.c.
func (m *Dense[S]) MulVec(v []S) []S {
	if len(v) != m.c {
		panic("densemat: dimension mismatch")
	}
	zero := v[0].Zero()
	out := make([]S, m.r)
	for i := range out {
		out[i] = zero
	}
	for i := 0; i < m.r; i++ {
		acc := zero
		base := i * m.c
		for j := 0; j < m.c; j++ {
			acc = acc.Add(m.data[base+j].Mul(v[j]))
		}
		out[i] = acc
	}
	return out
}

// EqualApprox reports whether m and other have the same shape and every
// entry differs by less than tol.
func (m *Dense[S]) EqualApprox(other *Dense[S], tol S) bool {
	if m.r != other.r || m.c != other.c {
		return false
	}
	for i := range m.data {
		if scalar.AbsGE[S](m.data[i].Sub(other.data[i]), tol) {
			return false
		}
	}
	return true
}

// Identity builds an n x n identity matrix using zero/one from a
// prototype scalar.
func Identity[S scalar.Field[S]](n int, proto S) *Dense[S] {
	m := New[S](n, n, proto)
	one := proto.One()
	for i := 0; i < n; i++ {
		m.Set(i, i, one)
	}
	return m
}
