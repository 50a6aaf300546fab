// Package tvfunc implements TvFunc, the truth-table value type used as the
// input to BCF/MWC conversion (package bcf) and as the export target of
// Cube.TvFunc/Cover.TvFunc in package sop. Like package expr, TvFunc is an
// external collaborator from the algebra engine's point of view — its
// contract is fixed by spec.md §6.1, its internal representation is not.
package tvfunc

import (
	"fmt"
	"math/bits"

	"github.com/go-sop/gosop/literal"
)

const wordBits = 64

// TvFunc is a truth table over n Boolean inputs, stored as one bit per
// minterm (bit i of the table is the function's value on minterm i, where
// bit v of i selects the polarity of input v). Value semantics: copying a
// TvFunc shares its backing words, but every operation returns a fresh
// TvFunc, so copies behave as independent values.
type TvFunc struct {
	n     int
	words []uint64
}

func wordsFor(n int) int {
	minterms := 1 << uint(n)
	return (minterms + wordBits - 1) / wordBits
}

// Zero returns the constant-0 function of n inputs.
func Zero(n int) TvFunc {
	return TvFunc{n: n, words: make([]uint64, wordsFor(n))}
}

// One returns the constant-1 function of n inputs.
func One(n int) TvFunc {
	f := Zero(n)
	for i := range f.words {
		f.words[i] = ^uint64(0)
	}
	f.maskTail()
	return f
}

// maskTail clears any bits beyond the 2^n-th minterm in the final word.
func (f *TvFunc) maskTail() {
	total := 1 << uint(f.n)
	if total%wordBits == 0 {
		return
	}
	last := len(f.words) - 1
	if last < 0 {
		return
	}
	valid := total % wordBits
	f.words[last] &= (uint64(1) << uint(valid)) - 1
}

// PosiLiteral returns the function that is true exactly when input v is 1.
func PosiLiteral(n int, v literal.Variable) TvFunc {
	return literalFunc(n, v, false)
}

// NegaLiteral returns the function that is true exactly when input v is 0.
func NegaLiteral(n int, v literal.Variable) TvFunc {
	return literalFunc(n, v, true)
}

func literalFunc(n int, v literal.Variable, inv bool) TvFunc {
	f := Zero(n)
	for m := 0; m < 1<<uint(n); m++ {
		bitSet := (m>>uint(v))&1 == 1
		if bitSet != inv {
			f.setBit(m)
		}
	}
	return f
}

// Cube returns the conjunction of the given literals as a truth table,
// mirroring TvFunc::cube(n, lits).
func Cube(n int, lits []literal.Literal) TvFunc {
	f := One(n)
	for _, lit := range lits {
		if lit.IsPositive() {
			f = f.And(PosiLiteral(n, lit.Var))
		} else {
			f = f.And(NegaLiteral(n, lit.Var))
		}
	}
	return f
}

// Cover returns the disjunction of cubes (each a literal list), mirroring
// TvFunc::cover(n, lits_of_lits).
func Cover(n int, cubes [][]literal.Literal) TvFunc {
	f := Zero(n)
	for _, lits := range cubes {
		f = f.Or(Cube(n, lits))
	}
	return f
}

// InputNum returns the number of Boolean inputs.
func (f TvFunc) InputNum() int { return f.n }

func (f TvFunc) setBit(m int) {
	f.words[m/wordBits] |= uint64(1) << uint(m%wordBits)
}

// Value returns the function's value (0 or 1) on the given minterm index.
func (f TvFunc) Value(minterm int) int {
	if (f.words[minterm/wordBits]>>uint(minterm%wordBits))&1 == 1 {
		return 1
	}
	return 0
}

// IsZero reports whether f is the constant-0 function.
func (f TvFunc) IsZero() bool {
	for _, w := range f.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// IsOne reports whether f is the constant-1 function.
func (f TvFunc) IsOne() bool {
	return f.Equal(One(f.n))
}

// Equal reports whether f and g agree on every minterm.
func (f TvFunc) Equal(g TvFunc) bool {
	if f.n != g.n {
		return false
	}
	for i := range f.words {
		if f.words[i] != g.words[i] {
			return false
		}
	}
	return true
}

func (f TvFunc) clone() TvFunc {
	w := make([]uint64, len(f.words))
	copy(w, f.words)
	return TvFunc{n: f.n, words: w}
}

// And returns the bitwise AND (Boolean conjunction) of f and g.
func (f TvFunc) And(g TvFunc) TvFunc {
	checkSameArity(f, g)
	out := f.clone()
	for i := range out.words {
		out.words[i] &= g.words[i]
	}
	return out
}

// Or returns the bitwise OR (Boolean disjunction) of f and g.
func (f TvFunc) Or(g TvFunc) TvFunc {
	checkSameArity(f, g)
	out := f.clone()
	for i := range out.words {
		out.words[i] |= g.words[i]
	}
	return out
}

// Xor returns the bitwise XOR of f and g.
func (f TvFunc) Xor(g TvFunc) TvFunc {
	checkSameArity(f, g)
	out := f.clone()
	for i := range out.words {
		out.words[i] ^= g.words[i]
	}
	return out
}

// Not returns the Boolean complement of f.
func (f TvFunc) Not() TvFunc {
	out := f.clone()
	for i := range out.words {
		out.words[i] = ^out.words[i]
	}
	out.maskTail()
	return out
}

func checkSameArity(f, g TvFunc) {
	if f.n != g.n {
		panic(fmt.Sprintf("tvfunc: input_num mismatch (%d vs %d)", f.n, g.n))
	}
}

// Cofactor returns f restricted to input v fixed at the polarity implied by
// inv (inv==true fixes v to 0, inv==false fixes v to 1), re-expanded back
// over all n inputs (the cofactor is itself an n-input function, constant
// in v).
func (f TvFunc) Cofactor(v literal.Variable, inv bool) TvFunc {
	lit := PosiLiteral(f.n, v)
	if inv {
		lit = NegaLiteral(f.n, v)
	}
	restricted := f.And(lit)
	// Expand restricted (non-zero only where v matches the fixed
	// polarity) across both polarities of v so the result is constant
	// in v, i.e. move the other half's bits to match.
	out := Zero(f.n)
	stride := 1 << uint(v)
	total := 1 << uint(f.n)
	for base := 0; base < total; base += 2 * stride {
		for off := 0; off < stride; off++ {
			var src int
			if inv {
				src = base + off // v=0 half
			} else {
				src = base + stride + off // v=1 half
			}
			if restricted.Value(src) == 1 {
				out.setBit(base + off)
				out.setBit(base + stride + off)
			}
		}
	}
	return out
}

// PopCount returns the number of minterms on which f is true.
func (f TvFunc) PopCount() int {
	n := 0
	for _, w := range f.words {
		n += bits.OnesCount64(w)
	}
	return n
}
