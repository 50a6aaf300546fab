package sop

import (
	"testing"

	"github.com/go-sop/gosop/literal"
)

func TestNewCubeFromLiteralsContradiction(t *testing.T) {
	c, err := NewCubeFromLiterals(4, []literal.Literal{literal.Positive(0), literal.Negative(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.IsInvalid() {
		t.Errorf("contradictory literal list should produce the invalid cube")
	}
}

func TestNewCubeFromLiteralsOutOfRange(t *testing.T) {
	_, err := NewCubeFromLiterals(2, []literal.Literal{literal.Positive(5)})
	if err == nil {
		t.Fatalf("expected ErrOutOfRange for an out-of-range literal")
	}
}

// TestProductContradiction is spec.md §8 scenario S4.
func TestProductContradiction(t *testing.T) {
	c1, err := NewCubeFromLiterals(10, []literal.Literal{literal.Negative(5), literal.Negative(7)})
	if err != nil {
		t.Fatal(err)
	}
	c2, err := NewCubeFromLiterals(10, []literal.Literal{literal.Positive(0), literal.Positive(5)})
	if err != nil {
		t.Fatal(err)
	}
	prod, err := c1.Product(c2)
	if err != nil {
		t.Fatal(err)
	}
	if !prod.IsInvalid() {
		t.Errorf("Product() of contradictory cubes should be invalid")
	}
}

func TestCubeLiteralListOrdering(t *testing.T) {
	c, err := NewCubeFromLiterals(4, []literal.Literal{literal.Positive(2), literal.Positive(0)})
	if err != nil {
		t.Fatal(err)
	}
	got := c.LiteralList()
	if len(got) != 2 || got[0].Var != 0 || got[1].Var != 2 {
		t.Errorf("LiteralList() = %v, want increasing variable order", got)
	}
}

func TestCubeCheckContainment(t *testing.T) {
	c1, _ := NewCubeFromLiterals(4, []literal.Literal{literal.Positive(0), literal.Positive(1)})
	c2, _ := NewCubeFromLiterals(4, []literal.Literal{literal.Positive(0)})
	ok, err := c1.CheckContainment(c2)
	if err != nil || !ok {
		t.Errorf("CheckContainment() = (%v, %v), want (true, nil)", ok, err)
	}
	ok, err = c2.CheckContainment(c1)
	if err != nil || ok {
		t.Errorf("CheckContainment() = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestCubeTautologyAndInvalidStrings(t *testing.T) {
	if got := NewCube(3).String(); got != "1" {
		t.Errorf("tautology cube String() = %q, want \"1\"", got)
	}
	if got := invalidCube(3).String(); got != "---" {
		t.Errorf("invalid cube String() = %q, want \"---\"", got)
	}
}

func TestCubeVariableNumMismatch(t *testing.T) {
	a := NewCube(3)
	b := NewCube(4)
	if _, err := a.Product(b); err == nil {
		t.Errorf("expected ErrInvalidArgument on variable_num mismatch")
	}
}
