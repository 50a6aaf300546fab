package sop

import (
	"sort"
	"strings"

	"github.com/go-sop/gosop/expr"
	"github.com/go-sop/gosop/literal"
	"github.com/go-sop/gosop/tvfunc"
)

// Cube is a conjunction of literals over a fixed variable count, stored as
// a packed bitvector. Value semantics: copying a Cube shares its chunk, but
// no method modifies a chunk once the cube is built, so copies behave as
// independent values.
type Cube struct {
	v     int
	chunk []uint64
}

// invalidTag, written into a cube's first word's low lane whenever a
// product/cofactor detects a contradiction, distinguishes the invalid
// cube from every well-formed cube without needing an out-of-band flag.
// Spec.md allows either representation; this repo tags void with the
// reserved 0b11 pattern on variable 0, which cannot otherwise occur in a
// valid cube.
const invalidTag = uint64(3) // 0b11 at shift(0) == 0

// NewCube returns the tautology cube (all-X) over v variables.
func NewCube(v int) Cube {
	return Cube{v: v, chunk: make([]uint64, wordCount(v))}
}

// invalidCube returns the distinguished "no element" sentinel over v
// variables.
func invalidCube(v int) Cube {
	c := NewCube(v)
	c.chunk[0] |= invalidTag
	return c
}

// NewCubeFromLiteral returns the single-literal cube {lit} over v
// variables. Returns ErrOutOfRange if lit.Var is out of bounds.
func NewCubeFromLiteral(v int, lit literal.Literal) (Cube, error) {
	if int(lit.Var) >= v || lit.Var < 0 {
		return Cube{}, outOfRange("sop: literal var %d out of range [0,%d)", int(lit.Var), v)
	}
	c := NewCube(v)
	c.chunk[block(int(lit.Var))] |= litMask(int(lit.Var), lit.Inv)
	return c, nil
}

// NewCubeFromLiterals returns the cube formed by conjoining lits,
// discarding exact duplicates. Returns ErrOutOfRange if any literal's
// variable is out of bounds. Returns the invalid cube (no error) if two
// literals in the list contradict, per spec.md §4.2.
func NewCubeFromLiterals(v int, lits []literal.Literal) (Cube, error) {
	c := NewCube(v)
	for _, lit := range lits {
		if int(lit.Var) >= v || lit.Var < 0 {
			return Cube{}, outOfRange("sop: literal var %d out of range [0,%d)", int(lit.Var), v)
		}
		b := block(int(lit.Var))
		m := litMask(int(lit.Var), lit.Inv)
		dm := doubleMask(int(lit.Var))
		existing := c.chunk[b] & dm
		if existing != 0 && existing != m {
			return invalidCube(v), nil
		}
		c.chunk[b] |= m
	}
	return c, nil
}

// VariableNum returns the fixed variable count V.
func (c Cube) VariableNum() int { return c.v }

// IsInvalid reports whether c is the distinguished invalid-cube sentinel.
func (c Cube) IsInvalid() bool {
	return c.v > 0 && c.chunk[0]&doubleMask(0) == invalidTag
}

// IsTautology reports whether c is the all-X cube (the constant 1).
func (c Cube) IsTautology() bool {
	if c.IsInvalid() {
		return false
	}
	for _, w := range c.chunk {
		if w != 0 {
			return false
		}
	}
	return true
}

// LiteralNum returns the number of literals in c.
func (c Cube) LiteralNum() int {
	if c.IsInvalid() {
		return 0
	}
	return literalNum(c.chunk, 1, len(c.chunk))
}

// GetPat returns 'X', '1', or '0' reflecting variable v's pattern.
// Returns ErrOutOfRange if v is out of bounds.
func (c Cube) GetPat(v int) (byte, error) {
	if v < 0 || v >= c.v {
		return 0, outOfRange("sop: variable %d out of range [0,%d)", v, c.v)
	}
	w := c.chunk[block(v)] & doubleMask(v)
	switch w {
	case 0:
		return 'X', nil
	case litMask(v, false):
		return '1', nil
	case litMask(v, true):
		return '0', nil
	default:
		return 0, outOfRange("sop: variable %d holds void pattern", v)
	}
}

// CheckLiteral reports whether c carries the exact literal lit.
func (c Cube) CheckLiteral(lit literal.Literal) bool {
	v := int(lit.Var)
	if v < 0 || v >= c.v {
		return false
	}
	return c.chunk[block(v)]&doubleMask(v) == litMask(v, lit.Inv)
}

// LiteralList enumerates c's literals in increasing variable order,
// positive before negative within the same variable (which cannot both
// occur in a single well-formed cube, but the ordering rule is stated for
// completeness and matches Cover.LiteralList's per-cube ordering).
func (c Cube) LiteralList() []literal.Literal {
	var out []literal.Literal
	for v := 0; v < c.v; v++ {
		w := c.chunk[block(v)] & doubleMask(v)
		switch w {
		case litMask(v, false):
			out = append(out, literal.Positive(literal.Variable(v)))
		case litMask(v, true):
			out = append(out, literal.Negative(literal.Variable(v)))
		}
	}
	return out
}

// CheckContainment reports whether every literal of other is also a
// literal of c. Returns ErrInvalidArgument if variable counts mismatch.
func (c Cube) CheckContainment(other Cube) (bool, error) {
	if c.v != other.v {
		return false, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	return cubeCheckContainment(c.chunk, other.chunk), nil
}

// CheckIntersect reports whether c and other share a literal with the
// same polarity. Returns ErrInvalidArgument if variable counts mismatch.
func (c Cube) CheckIntersect(other Cube) (bool, error) {
	if c.v != other.v {
		return false, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	return cubeCheckIntersect(c.chunk, other.chunk), nil
}

// Product returns c * other: the conjunction of both literal sets, or the
// invalid cube if they contradict. Returns ErrInvalidArgument if variable
// counts mismatch.
func (c Cube) Product(other Cube) (Cube, error) {
	if c.v != other.v {
		return Cube{}, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	if c.IsInvalid() || other.IsInvalid() {
		return invalidCube(c.v), nil
	}
	dst := NewCube(c.v)
	if !cubeProduct(dst.chunk, c.chunk, other.chunk) {
		return invalidCube(c.v), nil
	}
	return dst, nil
}

// ProductLiteral returns c * lit, or the invalid cube on contradiction.
func (c Cube) ProductLiteral(lit literal.Literal) (Cube, error) {
	other, err := NewCubeFromLiteral(c.v, lit)
	if err != nil {
		return Cube{}, err
	}
	return c.Product(other)
}

// Quotient returns c / other (a \ b): the invalid cube if other's literal
// set is not a subset of c's. Returns ErrInvalidArgument if variable
// counts mismatch.
func (c Cube) Quotient(other Cube) (Cube, error) {
	if c.v != other.v {
		return Cube{}, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	if c.IsInvalid() || other.IsInvalid() {
		return invalidCube(c.v), nil
	}
	dst := NewCube(c.v)
	if !cubeQuotient(dst.chunk, c.chunk, other.chunk) {
		return invalidCube(c.v), nil
	}
	return dst, nil
}

// Compare returns -1, 0, +1 comparing c and other in canonical
// word-lexicographic order. Returns ErrInvalidArgument if variable counts
// mismatch.
func (c Cube) Compare(other Cube) (int, error) {
	if c.v != other.v {
		return 0, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	return cubeCompare(c.chunk, other.chunk), nil
}

// Equal reports whether c and other are word-equal. Differing variable
// counts compare unequal rather than erroring (matching spec.md §3.3's
// "two cubes compare equal iff their chunks are word-equal").
func (c Cube) Equal(other Cube) bool {
	if c.v != other.v {
		return false
	}
	return cubeCompare(c.chunk, other.chunk) == 0
}

// Hash returns c's canonical hash value.
func (c Cube) Hash() uint64 {
	return hashFold(c.chunk, 1, len(c.chunk))
}

// Expr converts c to an AND-expression of its literals (One() if c is the
// tautology cube, Zero() if c is invalid).
func (c Cube) Expr() expr.Expr {
	if c.IsInvalid() {
		return expr.Zero()
	}
	lits := c.LiteralList()
	if len(lits) == 0 {
		return expr.One()
	}
	leaves := make([]expr.Expr, len(lits))
	for i, l := range lits {
		leaves[i] = expr.NewLiteral(l)
	}
	return expr.And(leaves...)
}

// TvFunc converts c to a truth table over c.v inputs.
func (c Cube) TvFunc() tvfunc.TvFunc {
	if c.IsInvalid() {
		return tvfunc.Zero(c.v)
	}
	return tvfunc.Cube(c.v, c.LiteralList())
}

// String renders c as space-separated literals ("v0 v1'"), "1" for the
// tautology cube, or "---" for the invalid cube.
func (c Cube) String() string {
	if c.IsInvalid() {
		return "---"
	}
	lits := c.LiteralList()
	if len(lits) == 0 {
		return "1"
	}
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ")
}

// sortLiterals orders lits by LiteralList's rule (increasing variable,
// positive before negative). Nothing in this module calls it: the cube
// constructors accept literals in any order.
func sortLiterals(lits []literal.Literal) {
	sort.Slice(lits, func(i, j int) bool {
		if lits[i].Var != lits[j].Var {
			return lits[i].Var < lits[j].Var
		}
		return !lits[i].Inv && lits[j].Inv
	})
}
