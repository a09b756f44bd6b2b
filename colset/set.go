// Package colset implements the ordered column-index container the
// simplex engine uses as its basis (spec §3.4/§4.5). Position inside
// the set is meaningful: the i-th entry corresponds to row i of the
// basis inverse, so this is kept distinct from a general-purpose set.
package colset

// Placeholder is the sentinel value legal only while an initial
// artificial basis is under construction (§3.4).
const Placeholder = -1

// Set is an ordered, duplicate-free (by construction) list of column
// indices.
type Set struct {
	idx []int
}

// New builds a Set from the given column indices, in order.
func New(idx ...int) *Set {
	s := &Set{idx: make([]int, len(idx))}
	copy(s.idx, idx)
	return s
}

// Len reports the number of columns in the set.
func (s *Set) Len() int { return len(s.idx) }

// At returns the column index stored at position i.
func (s *Set) At(i int) int { return s.idx[i] }

// Slice returns a copy of the underlying index list, in order.
func (s *Set) Slice() []int {
	out := make([]int, len(s.idx))
	copy(out, s.idx)
	return out
}

// Insert appends a column index to the end of the set.
func (s *Set) Insert(col int) { s.idx = append(s.idx, col) }

// Contains reports whether col is present, O(n).
func (s *Set) Contains(col int) bool { return s.IndexOf(col) != -1 }

// IndexOf returns the position of col in the set, or -1 if absent.
func (s *Set) IndexOf(col int) int {
	for i, v := range s.idx {
		if v == col {
			return i
		}
	}
	return -1
}

// Substitute replaces the first occurrence of out with in, preserving
// its position (and therefore the row of the basis inverse it
// corresponds to). It panics if out is not present -- callers always
// know the position instead (see SubstituteAt) except during the
// initial handoff from placeholders.
func (s *Set) Substitute(out, in int) {
	pos := s.IndexOf(out)
	if pos == -1 {
		panic("colset: substitute of absent column")
	}
	s.idx[pos] = in
}

// SubstituteAt replaces the column at position pos with in. This is the
// form the simplex engine's pivot step actually uses, since it already
// knows the leaving row position from the ratio test.
func (s *Set) SubstituteAt(pos, in int) { s.idx[pos] = in }

// Complement returns, in ascending order, every column in [0,n) that is
// not present in s. Used to derive the non-basic set from the basis.
func Complement(s *Set, n int) *Set {
	in := make(map[int]struct{}, s.Len())
	for _, v := range s.idx {
		in[v] = struct{}{}
	}
	out := &Set{idx: make([]int, 0, n-s.Len())}
	for i := 0; i < n; i++ {
		if _, ok := in[i]; !ok {
			out.idx = append(out.idx, i)
		}
	}
	return out
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set { return New(s.idx...) }
