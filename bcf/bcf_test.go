package bcf

import (
	"testing"

	"github.com/go-sop/gosop/literal"
	"github.com/go-sop/gosop/tvfunc"
)

// TestBCFPreservesFunction is BCF's soundness invariant (spec.md §8's
// universal invariants): the prime-implicant cover must represent exactly
// the function it was derived from.
func TestBCFPreservesFunction(t *testing.T) {
	f := tvfunc.Cube(3, []literal.Literal{literal.Positive(0)}).
		Or(tvfunc.Cube(3, []literal.Literal{literal.Positive(1), literal.Negative(2)}))

	got := BCF(f).TvFunc()
	if !got.Equal(f) {
		t.Errorf("BCF(f).TvFunc() != f: BCF did not preserve the Boolean function")
	}
}

func TestMWCPreservesFunction(t *testing.T) {
	f := tvfunc.Cube(3, []literal.Literal{literal.Positive(0)}).
		Or(tvfunc.Cube(3, []literal.Literal{literal.Positive(1), literal.Negative(2)}))

	got := MWC(f).TvFunc()
	if !got.Equal(f) {
		t.Errorf("MWC(f).TvFunc() != f: MWC did not preserve the Boolean function")
	}
}

func TestBCFZeroAndOne(t *testing.T) {
	zero := tvfunc.Zero(2)
	if n := BCF(zero).CubeNum(); n != 0 {
		t.Errorf("BCF(Zero()) has %d cubes, want 0", n)
	}
	one := tvfunc.One(2)
	c := BCF(one)
	if c.CubeNum() != 1 {
		t.Fatalf("BCF(One()) has %d cubes, want 1 (the tautology cube)", c.CubeNum())
	}
	cube, err := c.GetCube(0)
	if err != nil {
		t.Fatal(err)
	}
	if !cube.IsTautology() {
		t.Errorf("BCF(One())'s sole cube should be the tautology cube")
	}
}

func TestBCFExprAndMWCExprNonZero(t *testing.T) {
	f := tvfunc.Cube(2, []literal.Literal{literal.Positive(0), literal.Positive(1)})
	bcfExpr := BCFExpr(f)
	mwcExpr := MWCExpr(f)
	if bcfExpr.IsZero() || mwcExpr.IsZero() {
		t.Errorf("a non-zero function should not factor to Zero()")
	}
}
