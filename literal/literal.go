// Package literal defines the value types shared by every layer of the
// algebra: a variable identifier and a literal (a variable together with a
// polarity).
package literal

import "fmt"

// Variable is a non-negative variable identifier. A cube or cover fixes the
// valid range to [0, V) for its own variable count V.
type Variable int

// Literal is a variable paired with a polarity: Inv == false is positive,
// Inv == true is negative.
type Literal struct {
	Var Variable
	Inv bool
}

// New returns the literal (v, inv).
func New(v Variable, inv bool) Literal {
	return Literal{Var: v, Inv: inv}
}

// Positive returns the positive literal for v.
func Positive(v Variable) Literal { return Literal{Var: v, Inv: false} }

// Negative returns the negative literal for v.
func Negative(v Variable) Literal { return Literal{Var: v, Inv: true} }

// IsPositive reports whether l has positive polarity.
func (l Literal) IsPositive() bool { return !l.Inv }

// IsNegative reports whether l has negative polarity.
func (l Literal) IsNegative() bool { return l.Inv }

// Negate returns the literal with the opposite polarity of the same
// variable.
func (l Literal) Negate() Literal {
	return Literal{Var: l.Var, Inv: !l.Inv}
}

// String renders the literal the way the rest of the codebase prints
// unnamed variables: "v<i>" for positive, "v<i>'" for negative.
func (l Literal) String() string {
	if l.Inv {
		return fmt.Sprintf("v%d'", l.Var)
	}
	return fmt.Sprintf("v%d", l.Var)
}
