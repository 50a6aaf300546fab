package sop

import (
	"github.com/go-sop/gosop/expr"
	"github.com/go-sop/gosop/literal"
	"github.com/go-sop/gosop/tvfunc"
)

// Cover is a disjunction of cubes over a fixed variable count, stored
// canonicalised: sorted in strictly descending word-lexicographic order
// with duplicates removed. Value semantics: copying a Cover shares its
// chunk, but no method modifies the chunk of an existing cover (the *Into
// methods replace the whole Cover value), so copies behave as independent
// values.
type Cover struct {
	v     int
	n     int
	chunk []uint64
}

// NewCover returns the empty cover (the constant 0) over v variables.
func NewCover(v int) Cover {
	return Cover{v: v}
}

// NewCoverFromCube returns the single-cube cover {cube}.
func NewCoverFromCube(cube Cube) Cover {
	w := wordCount(cube.v)
	chunk := make([]uint64, w)
	cubeCopy(chunk, cube.chunk)
	return Cover{v: cube.v, n: 1, chunk: chunk}
}

// NewCoverFromCubes returns the canonicalised cover containing cube_list.
// Returns ErrInvalidArgument if any cube's variable count differs from v.
func NewCoverFromCubes(v int, cubeList []Cube) (Cover, error) {
	w := wordCount(v)
	chunk := make([]uint64, w*len(cubeList))
	for i, cube := range cubeList {
		if cube.v != v {
			return Cover{}, invalidArgument("sop: variable_num of cube %d mismatch (%d vs %d)", i, cube.v, v)
		}
		cubeCopy(chunk[i*w:i*w+w], cube.chunk)
	}
	c := Cover{v: v, n: len(cubeList), chunk: chunk}
	c.canonicalize()
	return c, nil
}

// NewCoverFromLiteralLists returns the canonicalised cover whose i-th cube
// is formed by conjoining cubeList[i]'s literals. Returns ErrOutOfRange if
// any literal's variable is out of bounds.
func NewCoverFromLiteralLists(v int, cubeList [][]literal.Literal) (Cover, error) {
	cubes := make([]Cube, len(cubeList))
	for i, lits := range cubeList {
		cube, err := NewCubeFromLiterals(v, lits)
		if err != nil {
			return Cover{}, err
		}
		cubes[i] = cube
	}
	return NewCoverFromCubes(v, cubes)
}

// VariableNum returns the fixed variable count V.
func (c Cover) VariableNum() int { return c.v }

// CubeNum returns N, the number of cubes stored.
func (c Cover) CubeNum() int { return c.n }

func (c Cover) w() int { return wordCount(c.v) }

func (c Cover) cubeAt(i int) []uint64 {
	w := c.w()
	return c.chunk[i*w : i*w+w]
}

// canonicalize sorts c's cubes into strictly descending word-lexicographic
// order and removes duplicates, updating n downward. This is a plain
// top-down recursive merge sort rather than the hand-coded n<=4 decision
// trees of the original (see DESIGN.md): correctness-equivalent, simpler.
func (c *Cover) canonicalize() {
	w := c.w()
	if c.n <= 1 {
		return
	}
	sorted := mergeSortCubes(c.chunk[:c.n*w], w)
	copy(c.chunk, sorted)
	// dedup: walk once, collapsing equal runs (descending order, so equal
	// cubes are adjacent).
	out := 0
	for i := 0; i < c.n; i++ {
		cube := c.chunk[i*w : i*w+w]
		if out > 0 && cubeCompare(c.chunk[(out-1)*w:out*w], cube) == 0 {
			continue
		}
		if out != i {
			copy(c.chunk[out*w:out*w+w], cube)
		}
		out++
	}
	c.n = out
}

// mergeSortCubes returns a freshly sorted copy of chunk (a sequence of
// W-word cubes, descending order) using top-down merge sort.
func mergeSortCubes(chunk []uint64, w int) []uint64 {
	n := len(chunk) / w
	if n <= 1 {
		out := make([]uint64, len(chunk))
		copy(out, chunk)
		return out
	}
	mid := n / 2
	left := mergeSortCubes(chunk[:mid*w], w)
	right := mergeSortCubes(chunk[mid*w:], w)
	// Trivial-case short-circuit: if the last cube of left already
	// compares strictly greater than the first cube of right, no merge
	// step is needed.
	if cubeCompare(left[len(left)-w:], right[:w]) > 0 {
		out := make([]uint64, len(chunk))
		copy(out, left)
		copy(out[len(left):], right)
		return out
	}
	out := make([]uint64, 0, len(chunk))
	li, ri := 0, 0
	for li < len(left) && ri < len(right) {
		cmp := cubeCompare(left[li:li+w], right[ri:ri+w])
		switch {
		case cmp > 0:
			out = append(out, left[li:li+w]...)
			li += w
		case cmp < 0:
			out = append(out, right[ri:ri+w]...)
			ri += w
		default:
			// Tie: both sides consumed; the dedup pass in canonicalize
			// collapses the resulting adjacent duplicate.
			out = append(out, left[li:li+w]...)
			out = append(out, right[ri:ri+w]...)
			li += w
			ri += w
		}
	}
	out = append(out, left[li:]...)
	out = append(out, right[ri:]...)
	return out
}

// LiteralNum returns the total number of literals across all cubes.
func (c Cover) LiteralNum() int {
	return literalNum(c.chunk, c.n, c.w())
}

// LiteralNumOf returns the number of cubes carrying the exact literal lit.
func (c Cover) LiteralNumOf(lit literal.Literal) int {
	return literalNumOf(c.chunk, c.n, c.w(), int(lit.Var), lit.Inv)
}

// GetCube returns a fresh copy of the i-th cube. Returns ErrOutOfRange if
// i is out of bounds.
func (c Cover) GetCube(i int) (Cube, error) {
	if i < 0 || i >= c.n {
		return Cube{}, outOfRange("sop: cube index %d out of range [0,%d)", i, c.n)
	}
	w := c.w()
	chunk := make([]uint64, w)
	cubeCopy(chunk, c.cubeAt(i))
	return Cube{v: c.v, chunk: chunk}, nil
}

// GetPat returns the pattern of variable v in cube i. Returns
// ErrOutOfRange if either index is invalid.
func (c Cover) GetPat(i, v int) (byte, error) {
	if i < 0 || i >= c.n {
		return 0, outOfRange("sop: cube index %d out of range [0,%d)", i, c.n)
	}
	if v < 0 || v >= c.v {
		return 0, outOfRange("sop: variable %d out of range [0,%d)", v, c.v)
	}
	word := c.cubeAt(i)[block(v)] & doubleMask(v)
	switch word {
	case 0:
		return 'X', nil
	case litMask(v, false):
		return '1', nil
	default:
		return '0', nil
	}
}

// LiteralList returns, for each cube in canonical order, its literals in
// increasing-variable order.
func (c Cover) LiteralList() [][]literal.Literal {
	out := make([][]literal.Literal, c.n)
	for i := 0; i < c.n; i++ {
		cube := Cube{v: c.v, chunk: c.cubeAt(i)}
		out[i] = cube.LiteralList()
	}
	return out
}

// Expr converts c to an OR-of-ANDs expression (Zero() if c is empty).
func (c Cover) Expr() expr.Expr {
	if c.n == 0 {
		return expr.Zero()
	}
	terms := make([]expr.Expr, c.n)
	for i := 0; i < c.n; i++ {
		cube := Cube{v: c.v, chunk: c.cubeAt(i)}
		terms[i] = cube.Expr()
	}
	return expr.Or(terms...)
}

// TvFunc converts c to a truth table over c.v inputs by OR-ing the
// per-cube minterm masks (the Sop2Tv bridge of spec.md's supplemented
// features, §4 SPEC_FULL.md).
func (c Cover) TvFunc() tvfunc.TvFunc {
	f := tvfunc.Zero(c.v)
	for i := 0; i < c.n; i++ {
		cube := Cube{v: c.v, chunk: c.cubeAt(i)}
		f = f.Or(cube.TvFunc())
	}
	return f
}

// Hash returns c's canonical hash value, a function of (V, N, chunk) only.
func (c Cover) Hash() uint64 {
	return hashFold(c.chunk, c.n, c.w())
}

// Compare returns -1, 0, +1 comparing c and other cube-by-cube in
// canonical order; the shorter cover is smaller at a common prefix.
// Returns ErrInvalidArgument if variable counts mismatch.
func (c Cover) Compare(other Cover) (int, error) {
	if c.v != other.v {
		return 0, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	for i := 0; i < c.n && i < other.n; i++ {
		if cmp := cubeCompare(c.cubeAt(i), other.cubeAt(i)); cmp != 0 {
			return cmp, nil
		}
	}
	switch {
	case c.n > other.n:
		return 1, nil
	case c.n < other.n:
		return -1, nil
	}
	return 0, nil
}

// Equal reports whether c and other are byte-equal: same variable_num,
// same cube_num, and word-equal chunks.
func (c Cover) Equal(other Cover) bool {
	if c.v != other.v || c.n != other.n {
		return false
	}
	w := c.w()
	for i := 0; i < c.n*w; i++ {
		if c.chunk[i] != other.chunk[i] {
			return false
		}
	}
	return true
}
