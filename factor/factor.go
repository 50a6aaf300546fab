// Package factor implements the factoring drivers of spec.md §4.6: weak
// division and the quick/good/bool factor recursive procedures that turn
// a cover into an Expr factorisation. Grounded on WeakDivision.cc (a free
// function in the original, kept that way here) and on the recursive
// literal-division shape described in spec.md's own prose (the original's
// kernel-based good/bool factor is not ported verbatim — see DESIGN.md).
package factor

import (
	"github.com/go-sop/gosop/expr"
	"github.com/go-sop/gosop/literal"
	"github.com/go-sop/gosop/sop"
)

// WeakDivision returns Q = F algdiv D and R = F - (Q & D), the two halves
// of spec.md §4.6's weak division.
func WeakDivision(f, d sop.Cover) (q, r sop.Cover, err error) {
	q, err = f.AlgDiv(d)
	if err != nil {
		return sop.Cover{}, sop.Cover{}, err
	}
	qd, err := q.Product(d)
	if err != nil {
		return sop.Cover{}, sop.Cover{}, err
	}
	r, err = f.Diff(qd)
	if err != nil {
		return sop.Cover{}, sop.Cover{}, err
	}
	return q, r, nil
}

// picker selects the next literal to divide by, or reports false when no
// literal occurs at least twice (the recursion's base case).
type picker func(f sop.Cover) (literal.Literal, bool)

// QuickFactor picks the first literal occurring at least twice in scan
// order — the cheapest possible choice, hence "quick".
func QuickFactor(f sop.Cover) (expr.Expr, error) {
	return factorRec(f, firstRepeatedLiteral)
}

// GoodFactor picks, among literals occurring at least twice, the one
// whose division maximises the post-division literal-count reduction
// (spec.md §4.6's named example heuristic).
func GoodFactor(f sop.Cover) (expr.Expr, error) {
	return factorRec(f, bestReductionLiteral)
}

// BoolFactor runs GoodFactor, then applies Boolean (not merely algebraic)
// simplification via expr.Simplify, the one place spec.md permits
// non-algebraic equivalence.
func BoolFactor(f sop.Cover) (expr.Expr, error) {
	e, err := GoodFactor(f)
	if err != nil {
		return expr.Expr{}, err
	}
	return expr.Simplify(e), nil
}

func factorRec(f sop.Cover, pick picker) (expr.Expr, error) {
	switch f.CubeNum() {
	case 0:
		return expr.Zero(), nil
	case 1:
		cube, err := f.GetCube(0)
		if err != nil {
			return expr.Expr{}, err
		}
		return cube.Expr(), nil
	}
	lit, ok := pick(f)
	if !ok {
		// Cube-free: no further literal division helps, render directly.
		return f.Expr(), nil
	}
	d := sop.NewCoverFromCube(mustLiteralCube(f.VariableNum(), lit))
	q, r, err := WeakDivision(f, d)
	if err != nil {
		return expr.Expr{}, err
	}
	qExpr, err := factorRec(q, pick)
	if err != nil {
		return expr.Expr{}, err
	}
	litExpr := expr.NewLiteral(lit)
	term := expr.And(litExpr, qExpr)
	if r.CubeNum() == 0 {
		return term, nil
	}
	rExpr, err := factorRec(r, pick)
	if err != nil {
		return expr.Expr{}, err
	}
	return expr.Or(term, rExpr), nil
}

func mustLiteralCube(v int, lit literal.Literal) sop.Cube {
	c, err := sop.NewCubeFromLiteral(v, lit)
	if err != nil {
		// lit was drawn from f's own literal scan, so its variable is
		// always in range; a failure here is a programming error.
		panic(err)
	}
	return c
}

func candidateLiterals(f sop.Cover) []literal.Literal {
	var out []literal.Literal
	for vi := 0; vi < f.VariableNum(); vi++ {
		for _, inv := range []bool{false, true} {
			lit := literal.New(literal.Variable(vi), inv)
			if f.LiteralNumOf(lit) >= 2 {
				out = append(out, lit)
			}
		}
	}
	return out
}

func firstRepeatedLiteral(f sop.Cover) (literal.Literal, bool) {
	cands := candidateLiterals(f)
	if len(cands) == 0 {
		return literal.Literal{}, false
	}
	return cands[0], true
}

func bestReductionLiteral(f sop.Cover) (literal.Literal, bool) {
	cands := candidateLiterals(f)
	if len(cands) == 0 {
		return literal.Literal{}, false
	}
	total := f.LiteralNum()
	best := cands[0]
	bestReduction := -1 << 62
	for _, lit := range cands {
		d := sop.NewCoverFromCube(mustLiteralCube(f.VariableNum(), lit))
		q, r, err := WeakDivision(f, d)
		if err != nil {
			continue
		}
		reduction := total - (q.LiteralNum() + r.LiteralNum() + 1)
		if reduction > bestReduction {
			bestReduction = reduction
			best = lit
		}
	}
	return best, true
}
