package expr

import (
	"testing"

	"github.com/go-sop/gosop/literal"
)

// TestRoundTrip is spec.md §8 scenario S7: ((0 & 1) | ~2) in V=3.
func TestRoundTrip(t *testing.T) {
	ab := And(NewLiteral(literal.Positive(0)), NewLiteral(literal.Positive(1)))
	notC := NewLiteral(literal.Negative(2))
	got := Or(ab, notC).String()
	want := "( ( 0 & 1 ) | ~2 )"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestWriterCustomStrings(t *testing.T) {
	w := &Writer{NotStr: "!", AndStr: "*", OrStr: "+", VarNames: map[literal.Variable]string{0: "a"}}
	e := And(NewLiteral(literal.Positive(0)), NewLiteral(literal.Negative(1)))
	got := w.ToString(e)
	want := "( a * !1 )"
	if got != want {
		t.Errorf("ToString() = %q, want %q", got, want)
	}
}

func TestNaryIdentities(t *testing.T) {
	if !And().IsOne() {
		t.Errorf("And() with no operands should be the identity One()")
	}
	if !Or().IsZero() {
		t.Errorf("Or() with no operands should be the identity Zero()")
	}
	single := NewLiteral(literal.Positive(5))
	if got := And(single); !got.IsLiteral() || got.VarID() != 5 {
		t.Errorf("And(single) = %+v, want the operand unchanged", got)
	}
}

func TestSimplifyFlattenAndDedup(t *testing.T) {
	a := NewLiteral(literal.Positive(0))
	nested := Or(a, Or(a, NewLiteral(literal.Positive(1))))
	got := Simplify(nested)
	if !got.IsOr() {
		t.Fatalf("Simplify() = %+v, want an OR node", got)
	}
	if len(got.OperandList()) != 2 {
		t.Errorf("Simplify() produced %d operands, want 2 (duplicate collapsed)", len(got.OperandList()))
	}
}

func TestSimplifyConstantAbsorption(t *testing.T) {
	a := NewLiteral(literal.Positive(0))
	if got := Simplify(And(a, Zero())); !got.IsZero() {
		t.Errorf("Simplify(a & 0) = %+v, want 0", got)
	}
	if got := Simplify(Or(a, One())); !got.IsOne() {
		t.Errorf("Simplify(a | 1) = %+v, want 1", got)
	}
}
