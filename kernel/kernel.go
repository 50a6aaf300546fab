// Package kernel implements kernel/co-kernel enumeration over a cover:
// KernelGen's recursive division-and-common-cube algorithm, memoised by
// cover value (never by pointer, which the original source does and which
// a garbage-collected language makes meaningless anyway), and best-kernel
// selection under a pluggable value function. Grounded on
// c++-srcs/sop/KernelGen.cc / .h.
package kernel

import (
	"context"
	"log/slog"
	"sort"

	"github.com/go-sop/gosop/literal"
	"github.com/go-sop/gosop/litset"
	"github.com/go-sop/gosop/sop"
)

// Pair is one (kernel, co-kernel cover) result of enumeration.
type Pair struct {
	Kernel    sop.Cover
	CoKernels sop.Cover
}

// ValueFunc scores a kernel candidate for best-kernel selection. The
// default, Value, implements spec.md §4.5's formula; callers may supply
// their own (SPEC_FULL.md §3's JSON-schema-validated weight file feeds a
// ValueFunc built from user weights).
type ValueFunc func(kernel, coKernels sop.Cover) int

// Value is the default value function:
// (|K|_cubes-1)*|C|_literals + (|C|_cubes-1)*|K|_literals.
func Value(kernel, coKernels sop.Cover) int {
	return (kernel.CubeNum()-1)*coKernels.LiteralNum() + (coKernels.CubeNum()-1)*kernel.LiteralNum()
}

// Generator enumerates kernels, memoising recursive sub-results by cover
// value. A Generator is reusable across calls to AllKernels for a single
// top-level cover but is not safe for concurrent use (the algebra is
// synchronous per spec.md §5).
type Generator struct {
	// Logger, if non-nil, receives debug-level trace of enumerated
	// kernels, mirroring opal-lang-opal's lexer logging wiring.
	Logger *slog.Logger

	memo map[uint64][]*memoEntry
}

type memoEntry struct {
	kernel    sop.Cover
	coKernels sop.Cover
}

// NewGenerator returns a Generator with a no-op logger.
func NewGenerator() *Generator {
	return &Generator{Logger: slog.New(slog.NewTextHandler(discard{}, nil))}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// AllKernels returns every (kernel, co-kernel cover) pair of f.
func (g *Generator) AllKernels(ctx context.Context, f sop.Cover) ([]Pair, error) {
	g.memo = make(map[uint64][]*memoEntry)
	candidates := g.generate(f)
	plits := litset.New(f.VariableNum())
	if err := g.kernSub(f, candidates, 0, sop.NewCube(f.VariableNum()), plits); err != nil {
		return nil, err
	}
	// Degenerate kernel: F itself, if F is cube-free. For two or more cubes
	// CommonCube reports "no common literal" as the invalid cube.
	cc := f.CommonCube()
	if cc.IsInvalid() || cc.IsTautology() {
		tautCover := sop.NewCoverFromCube(sop.NewCube(f.VariableNum()))
		g.hashAdd(f, tautCover)
	}
	return g.pairs(), nil
}

// candidate is one literal eligible for division: a literal occurring in
// at least two cubes, ordered ascending by occurrence count per spec.md
// §4.5 step 1 (a heuristic for recursion breadth).
type candidate struct {
	lit   literal.Literal
	count int
}

func (g *Generator) generate(f sop.Cover) []candidate {
	v := f.VariableNum()
	var cands []candidate
	for vi := 0; vi < v; vi++ {
		for _, inv := range []bool{false, true} {
			lit := literal.New(literal.Variable(vi), inv)
			count := f.LiteralNumOf(lit)
			if count >= 2 {
				cands = append(cands, candidate{lit: lit, count: count})
			}
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].count < cands[j].count })
	return cands
}

// kernSub is the recursive core of spec.md §4.5 step 3.
func (g *Generator) kernSub(f sop.Cover, candidates []candidate, pos int, ccube sop.Cube, plits litset.LitSet) error {
	for i := pos; i < len(candidates); i++ {
		lit := candidates[i].lit
		if f.LiteralNumOf(lit) < 2 {
			continue
		}
		fPrime, err := f.AlgDivLiteral(lit)
		if err != nil {
			return err
		}
		ccPrime := fPrime.CommonCube()
		if ccPrime.IsInvalid() {
			// No common literal: treat as the empty (all-X) constraint,
			// per SPEC_FULL.md's decided resolution of the CommonCube
			// Open Question — this is "no further common factor", not
			// "no constraint", so division below is by the tautology
			// cube (a no-op) rather than skipped.
			ccPrime = sop.NewCube(f.VariableNum())
		}
		intersects, err := plits.CheckIntersect(f.VariableNum(), cubeGetPat(ccPrime))
		if err != nil {
			return err
		}
		if intersects {
			continue
		}
		fDoublePrime, err := fPrime.AlgDivCube(ccPrime)
		if err != nil {
			return err
		}
		ccNext, err := ccube.Product(ccPrime)
		if err != nil {
			return err
		}
		if !ccNext.IsInvalid() {
			ccNext, err = ccNext.ProductLiteral(lit)
			if err != nil {
				return err
			}
		}
		plitsNext := plits.Add(lit)
		if err := g.kernSub(fDoublePrime, candidates, i+1, ccNext, plitsNext); err != nil {
			return err
		}
		g.hashAdd(fDoublePrime, sop.NewCoverFromCube(ccNext))
		if g.Logger != nil {
			g.Logger.Debug("kernel candidate", "literal", lit.String(), "cube_num", fDoublePrime.CubeNum())
		}
	}
	return nil
}

func cubeGetPat(c sop.Cube) func(int) (bool, bool) {
	return func(v int) (bool, bool) {
		pos := c.CheckLiteral(literal.Positive(literal.Variable(v)))
		neg := c.CheckLiteral(literal.Negative(literal.Variable(v)))
		return pos, neg
	}
}

// hashAdd records (kernel, coKernelCube) in the memo table, keyed by the
// kernel cover's canonical value — never by pointer/address, per spec.md
// §9's re-architecture note. On collision, co-kernels accumulate into the
// matching entry's union.
func (g *Generator) hashAdd(kernel, coKernelCube sop.Cover) {
	h := kernel.Hash()
	for _, e := range g.memo[h] {
		if e.kernel.Equal(kernel) {
			// UnionInto computes into a fresh chunk before assigning, so
			// this is safe even when coKernelCube happens to alias
			// e.coKernels' backing array (spec.md §5's aliasing contract).
			_ = e.coKernels.UnionInto(coKernelCube)
			return
		}
	}
	g.memo[h] = append(g.memo[h], &memoEntry{kernel: kernel, coKernels: coKernelCube})
}

func (g *Generator) pairs() []Pair {
	var out []Pair
	for _, entries := range g.memo {
		for _, e := range entries {
			out = append(out, Pair{Kernel: e.kernel, CoKernels: e.coKernels})
		}
	}
	return out
}

// BestKernel selects the kernel maximising value among all kernels of f,
// using vf (Value if nil). Special case: if the only kernel is f itself
// with the tautology co-kernel, returns the empty cover, per spec.md
// §4.5's special case.
func (g *Generator) BestKernel(ctx context.Context, f sop.Cover, vf ValueFunc) (sop.Cover, error) {
	if vf == nil {
		vf = Value
	}
	pairs, err := g.AllKernels(ctx, f)
	if err != nil {
		return sop.Cover{}, err
	}
	if len(pairs) == 0 {
		return sop.NewCover(f.VariableNum()), nil
	}
	if len(pairs) == 1 && pairs[0].Kernel.Equal(f) {
		taut := sop.NewCoverFromCube(sop.NewCube(f.VariableNum()))
		if pairs[0].CoKernels.Equal(taut) {
			return sop.NewCover(f.VariableNum()), nil
		}
	}
	best := pairs[0]
	bestVal := vf(best.Kernel, best.CoKernels)
	for _, p := range pairs[1:] {
		val := vf(p.Kernel, p.CoKernels)
		if val > bestVal {
			best, bestVal = p, val
		}
	}
	return best.Kernel, nil
}
