package tvfunc

import (
	"testing"

	"github.com/go-sop/gosop/literal"
)

func TestLiteralValues(t *testing.T) {
	f := PosiLiteral(2, 0)
	for m := 0; m < 4; m++ {
		want := 0
		if m&1 == 1 {
			want = 1
		}
		if got := f.Value(m); got != want {
			t.Errorf("PosiLiteral(2,0).Value(%d) = %d, want %d", m, got, want)
		}
	}
}

func TestCubeAndCover(t *testing.T) {
	// v0 & v1 should be true only on minterm 3 (both bits set).
	cube := Cube(2, []literal.Literal{literal.Positive(0), literal.Positive(1)})
	for m := 0; m < 4; m++ {
		want := 0
		if m == 3 {
			want = 1
		}
		if got := cube.Value(m); got != want {
			t.Errorf("Cube.Value(%d) = %d, want %d", m, got, want)
		}
	}

	cover := Cover(2, [][]literal.Literal{
		{literal.Positive(0)},
		{literal.Positive(1)},
	})
	if !cover.Equal(PosiLiteral(2, 0).Or(PosiLiteral(2, 1))) {
		t.Errorf("Cover did not match the OR of its per-cube literal functions")
	}
}

func TestCofactor(t *testing.T) {
	// f = v0 & v1 (2 inputs). Cofactor on v0=1 should be constant-in-v0,
	// equal to v1 everywhere.
	f := Cube(2, []literal.Literal{literal.Positive(0), literal.Positive(1)})
	c := f.Cofactor(0, false) // fix v0=1
	want := PosiLiteral(2, 1)
	if !c.Equal(want) {
		t.Errorf("Cofactor(v0=1) = %+v, want %+v", c, want)
	}
}

func TestBooleanOps(t *testing.T) {
	one := One(3)
	zero := Zero(3)
	if !one.Not().Equal(zero) {
		t.Errorf("One().Not() != Zero()")
	}
	if !one.IsOne() || !zero.IsZero() {
		t.Errorf("IsOne/IsZero reported incorrectly")
	}
	if one.PopCount() != 8 {
		t.Errorf("One(3).PopCount() = %d, want 8", one.PopCount())
	}
}
