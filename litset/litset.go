// Package litset implements LitSet, the one-cube-width bitvector used only
// by kernel enumeration (package kernel) to track "literals already used
// along this recursion path". Unlike sop.Cube, a LitSet may hold both
// polarities of the same variable at once — it is a set, not a
// conjunction — so it cannot reuse sop.Cube's invalid-cube convention and
// is grounded directly on LitSet.cc's own bit layout instead.
package litset

import (
	"errors"
	"fmt"

	"github.com/go-sop/gosop/literal"
)

// ErrInvalidArgument mirrors sop.ErrInvalidArgument for the one failure
// mode LitSet has: a variable_num mismatch between two sets, or between a
// set and a cube it is tested against.
var ErrInvalidArgument = errors.New("litset: invalid argument")

const varsPerWord = 32

func wordCount(v int) int { return (v + varsPerWord - 1) / varsPerWord }

func block(v int) int { return v / varsPerWord }

func shift(v int) uint { return uint(2 * (v % varsPerWord)) }

func litMask(v int, inv bool) uint64 {
	if inv {
		return 2 << shift(v)
	}
	return 1 << shift(v)
}

// LitSet is a set of literals (both polarities of a variable may coexist)
// over a fixed variable count. Value semantics: copying shares the chunk,
// but Add and Union build a fresh one, so copies behave as independent
// values.
type LitSet struct {
	v     int
	chunk []uint64
}

// New returns the empty LitSet over v variables.
func New(v int) LitSet {
	return LitSet{v: v, chunk: make([]uint64, wordCount(v))}
}

// VariableNum returns the fixed variable count V.
func (s LitSet) VariableNum() int { return s.v }

// Add returns s with lit's bit set (s itself is left unmodified; LitSet is
// a value type, so this follows sop's copy-on-write convention).
func (s LitSet) Add(lit literal.Literal) LitSet {
	out := s.clone()
	out.chunk[block(int(lit.Var))] |= litMask(int(lit.Var), lit.Inv)
	return out
}

// Union returns the word-wise OR of s and other. Returns
// ErrInvalidArgument if variable counts mismatch.
func (s LitSet) Union(other LitSet) (LitSet, error) {
	if s.v != other.v {
		return LitSet{}, fmt.Errorf("litset: variable_num mismatch (%d vs %d): %w", s.v, other.v, ErrInvalidArgument)
	}
	out := s.clone()
	for i := range out.chunk {
		out.chunk[i] |= other.chunk[i]
	}
	return out, nil
}

// CheckLiteral reports whether s contains the exact literal lit.
func (s LitSet) CheckLiteral(lit literal.Literal) bool {
	v := int(lit.Var)
	if v < 0 || v >= s.v {
		return false
	}
	return s.chunk[block(v)]&litMask(v, lit.Inv) != 0
}

// CheckIntersect reports whether s and cube share any variable with the
// same-polarity bit set in both — cube is described by its packed chunk
// via the getPat callback so this package need not import sop (kernel,
// which imports both, is the only caller). Returns ErrInvalidArgument if
// variable counts mismatch.
func (s LitSet) CheckIntersect(v int, getPat func(variable int) (positive, negative bool)) (bool, error) {
	if s.v != v {
		return false, fmt.Errorf("litset: variable_num mismatch (%d vs %d): %w", s.v, v, ErrInvalidArgument)
	}
	for vi := 0; vi < v; vi++ {
		pos, neg := getPat(vi)
		if pos && s.CheckLiteral(literal.Positive(literal.Variable(vi))) {
			return true, nil
		}
		if neg && s.CheckLiteral(literal.Negative(literal.Variable(vi))) {
			return true, nil
		}
	}
	return false, nil
}

func (s LitSet) clone() LitSet {
	chunk := make([]uint64, len(s.chunk))
	copy(chunk, s.chunk)
	return LitSet{v: s.v, chunk: chunk}
}
