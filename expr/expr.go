// Package expr implements the algebraic-expression tree used as the output
// type of the factoring drivers in package factor, together with the
// ExprWriter pretty-printer. Neither is specified by the logic-algebra
// specification itself — both are external collaborators from the engine's
// point of view — so their shape here is the author's own, grounded on the
// ExprWriter design recovered from the original source tree.
package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-sop/gosop/literal"
)

// Kind distinguishes the node types of an Expr.
type Kind int

const (
	// KindZero is the constant 0.
	KindZero Kind = iota
	// KindOne is the constant 1.
	KindOne
	// KindLiteral is a single literal leaf.
	KindLiteral
	// KindAnd is an n-ary conjunction.
	KindAnd
	// KindOr is an n-ary disjunction.
	KindOr
	// KindXor is an n-ary exclusive-or.
	KindXor
	// KindInvalid is the sentinel for "no expression" (e.g. a factoring
	// driver invoked on an invalid cover).
	KindInvalid
)

// Expr is an immutable algebraic-expression tree node. Value semantics:
// copying an Expr is cheap (it is a small struct plus a shared, never
// mutated, operand slice).
type Expr struct {
	kind     Kind
	varID    literal.Variable
	inv      bool
	operands []Expr
}

// Zero returns the constant-0 expression.
func Zero() Expr { return Expr{kind: KindZero} }

// One returns the constant-1 expression.
func One() Expr { return Expr{kind: KindOne} }

// Invalid returns the sentinel "no expression" value.
func Invalid() Expr { return Expr{kind: KindInvalid} }

// NewLiteral returns a literal leaf.
func NewLiteral(lit literal.Literal) Expr {
	return Expr{kind: KindLiteral, varID: lit.Var, inv: lit.Inv}
}

// And returns the conjunction of operands. Zero operands returns One (the
// identity of AND); one operand is returned unchanged.
func And(operands ...Expr) Expr { return nary(KindAnd, operands) }

// Or returns the disjunction of operands. Zero operands returns Zero (the
// identity of OR); one operand is returned unchanged.
func Or(operands ...Expr) Expr { return nary(KindOr, operands) }

// Xor returns the exclusive-or of operands.
func Xor(operands ...Expr) Expr { return nary(KindXor, operands) }

func nary(k Kind, operands []Expr) Expr {
	switch len(operands) {
	case 0:
		if k == KindAnd {
			return One()
		}
		return Zero()
	case 1:
		return operands[0]
	}
	cp := make([]Expr, len(operands))
	copy(cp, operands)
	return Expr{kind: k, operands: cp}
}

// IsZero reports whether e is the constant 0.
func (e Expr) IsZero() bool { return e.kind == KindZero }

// IsOne reports whether e is the constant 1.
func (e Expr) IsOne() bool { return e.kind == KindOne }

// IsInvalid reports whether e is the sentinel "no expression" value.
func (e Expr) IsInvalid() bool { return e.kind == KindInvalid }

// IsLiteral reports whether e is a single literal leaf.
func (e Expr) IsLiteral() bool { return e.kind == KindLiteral }

// IsNegativeLiteral reports whether e is a literal leaf with negative
// polarity. Meaningless unless IsLiteral() is true.
func (e Expr) IsNegativeLiteral() bool { return e.kind == KindLiteral && e.inv }

// IsAnd, IsOr, IsXor report the node's operator kind.
func (e Expr) IsAnd() bool { return e.kind == KindAnd }
func (e Expr) IsOr() bool  { return e.kind == KindOr }
func (e Expr) IsXor() bool { return e.kind == KindXor }

// VarID returns the variable of a literal leaf. Meaningless unless
// IsLiteral() is true.
func (e Expr) VarID() literal.Variable { return e.varID }

// Literal reconstructs the literal represented by a literal leaf.
func (e Expr) Literal() literal.Literal {
	return literal.Literal{Var: e.varID, Inv: e.inv}
}

// OperandList returns the operands of an AND/OR/XOR node, in construction
// order. Returns nil for leaves and constants.
func (e Expr) OperandList() []Expr {
	return e.operands
}

// String renders e using the default operator strings ("~", "&", "|", "^")
// and no variable names, matching ExprWriter's zero-value behaviour.
func (e Expr) String() string {
	return (&Writer{}).ToString(e)
}

// Writer is the pretty-printer for Expr, grounded on the original source's
// ExprWriter: configurable operator strings, an optional variable-name map,
// and a prefix/infix rendering ("( a & b )", "~c").
type Writer struct {
	// NotStr, AndStr, OrStr, XorStr override the default operator
	// strings when non-empty.
	NotStr, AndStr, OrStr, XorStr string
	// VarNames maps a variable to its printed name; variables absent
	// from the map print as their decimal index ("<i>").
	VarNames map[literal.Variable]string
}

func (w *Writer) notStr() string {
	if w.NotStr != "" {
		return w.NotStr
	}
	return "~"
}

func (w *Writer) andStr() string {
	if w.AndStr != "" {
		return w.AndStr
	}
	return "&"
}

func (w *Writer) orStr() string {
	if w.OrStr != "" {
		return w.OrStr
	}
	return "|"
}

func (w *Writer) xorStr() string {
	if w.XorStr != "" {
		return w.XorStr
	}
	return "^"
}

// ToString renders expr to its textual form.
func (w *Writer) ToString(e Expr) string {
	var b strings.Builder
	w.dump(&b, e)
	return b.String()
}

func (w *Writer) dump(b *strings.Builder, e Expr) {
	switch {
	case e.IsInvalid():
		b.WriteString("---")
	case e.IsZero():
		b.WriteString("0")
	case e.IsOne():
		b.WriteString("1")
	case e.IsLiteral():
		if e.IsNegativeLiteral() {
			b.WriteString(w.notStr())
		}
		if name, ok := w.VarNames[e.varID]; ok {
			b.WriteString(name)
		} else {
			fmt.Fprintf(b, "%d", e.varID)
		}
	default:
		var delim string
		switch {
		case e.IsAnd():
			delim = w.andStr()
		case e.IsOr():
			delim = w.orStr()
		case e.IsXor():
			delim = w.xorStr()
		default:
			panic("expr: unreachable node kind")
		}
		b.WriteString("( ")
		for i, opr := range e.operands {
			if i > 0 {
				b.WriteString(" " + delim + " ")
			}
			w.dump(b, opr)
		}
		b.WriteString(" )")
	}
}

// Simplify applies ordinary Boolean identities — idempotence, constant
// absorption, and flattening of nested same-kind AND/OR nodes — bottom-up.
// Negation exists only on literal leaves, so there is no double negation to
// remove; XOR nodes are rebuilt from their simplified operands but not
// otherwise reduced. It is the one place in this module where
// Boolean (not merely algebraic) equivalence is used, matching bool_factor's
// documented exception.
func Simplify(e Expr) Expr {
	switch {
	case e.IsLiteral(), e.IsZero(), e.IsOne(), e.IsInvalid():
		return e
	}
	kids := make([]Expr, 0, len(e.operands))
	for _, o := range e.operands {
		kids = append(kids, Simplify(o))
	}
	switch {
	case e.IsAnd():
		return simplifyAnd(kids)
	case e.IsOr():
		return simplifyOr(kids)
	default:
		return nary(KindXor, kids)
	}
}

func simplifyAnd(kids []Expr) Expr {
	flat := make([]Expr, 0, len(kids))
	for _, k := range kids {
		if k.IsZero() {
			return Zero()
		}
		if k.IsOne() {
			continue
		}
		if k.IsAnd() {
			flat = append(flat, k.operands...)
		} else {
			flat = append(flat, k)
		}
	}
	flat = dedupLiteralSafe(flat)
	return nary(KindAnd, flat)
}

func simplifyOr(kids []Expr) Expr {
	flat := make([]Expr, 0, len(kids))
	for _, k := range kids {
		if k.IsOne() {
			return One()
		}
		if k.IsZero() {
			continue
		}
		if k.IsOr() {
			flat = append(flat, k.operands...)
		} else {
			flat = append(flat, k)
		}
	}
	flat = dedupLiteralSafe(flat)
	return nary(KindOr, flat)
}

// dedupLiteralSafe removes exact-duplicate operands, comparing only leaves
// and constants structurally (deep trees are left alone — this is
// idempotence, not a general CSE pass).
func dedupLiteralSafe(operands []Expr) []Expr {
	keys := make([]string, len(operands))
	seen := make(map[string]bool, len(operands))
	out := make([]Expr, 0, len(operands))
	for i, o := range operands {
		keys[i] = leafKey(o)
		if keys[i] == "" {
			out = append(out, o)
			continue
		}
		if seen[keys[i]] {
			continue
		}
		seen[keys[i]] = true
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}

// leafKey returns a structural key for literal/constant operands, and ""
// for compound operands (which are never deduplicated here).
func leafKey(e Expr) string {
	switch {
	case e.IsLiteral():
		return fmt.Sprintf("lit:%d:%v", e.varID, e.inv)
	case e.IsZero():
		return "zero"
	case e.IsOne():
		return "one"
	default:
		return ""
	}
}

func rank(e Expr) int {
	if e.IsLiteral() {
		return int(e.varID)*2 + boolToInt(e.inv)
	}
	return -1
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
