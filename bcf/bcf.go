// Package bcf implements BCF (Blake's canonical form) and MWC
// (merge-with-containment), the truth-table-to-prime-cover conversions of
// spec.md §4.7. Both are free functions here rather than TvFunc methods:
// package tvfunc cannot import package sop (sop already imports tvfunc for
// the Cube/Cover -> TvFunc bridge), so a method-shaped API as in the
// original (TvFunc::bcf()) would require a Go import cycle. Grounded on
// c++-srcs/tvfunc/TvFunc_bcf.cc's bcf_sub/mwc_sub.
package bcf

import (
	"github.com/go-sop/gosop/expr"
	"github.com/go-sop/gosop/literal"
	"github.com/go-sop/gosop/sop"
	"github.com/go-sop/gosop/tvfunc"
)

// BCF returns the sum of all prime implicants of f.
func BCF(f tvfunc.TvFunc) sop.Cover {
	return bcfSub(f, 0)
}

// BCFExpr is BCF followed by Cover.Expr, for callers that want the
// algebraic-expression form directly.
func BCFExpr(f tvfunc.TvFunc) expr.Expr {
	return BCF(f).Expr()
}

// MWC returns a reduced, usually non-canonical SOP cover of f, computed
// faster than BCF via containment-based cube dropping.
func MWC(f tvfunc.TvFunc) sop.Cover {
	return mwcSub(f, 0)
}

// MWCExpr is MWC followed by Cover.Expr.
func MWCExpr(f tvfunc.TvFunc) expr.Expr {
	return MWC(f).Expr()
}

func tautologyCover(n int) sop.Cover {
	return sop.NewCoverFromCube(sop.NewCube(n))
}

func bcfSub(f tvfunc.TvFunc, v int) sop.Cover {
	n := f.InputNum()
	if f.IsZero() {
		return sop.NewCover(n)
	}
	if f.IsOne() || v >= n {
		return tautologyCover(n)
	}
	f0 := f.Cofactor(literal.Variable(v), true)
	f1 := f.Cofactor(literal.Variable(v), false)
	fc := f0.And(f1)

	c0 := bcfSub(f0, v+1)
	c1 := bcfSub(f1, v+1)
	cc := bcfSub(fc, v+1)

	r := fc.Not()

	var cubes []sop.Cube
	for i := 0; i < cc.CubeNum(); i++ {
		cube, _ := cc.GetCube(i)
		cubes = append(cubes, cube)
	}
	cubes = append(cubes, extendIfIntersects(c0, r, literal.Negative(literal.Variable(v)))...)
	cubes = append(cubes, extendIfIntersects(c1, r, literal.Positive(literal.Variable(v)))...)

	result, _ := sop.NewCoverFromCubes(n, cubes)
	return result
}

func extendIfIntersects(cover sop.Cover, r tvfunc.TvFunc, splitLit literal.Literal) []sop.Cube {
	var out []sop.Cube
	for i := 0; i < cover.CubeNum(); i++ {
		cube, _ := cover.GetCube(i)
		if cube.TvFunc().And(r).IsZero() {
			continue
		}
		ext, err := cube.ProductLiteral(splitLit)
		if err != nil || ext.IsInvalid() {
			continue
		}
		out = append(out, ext)
	}
	return out
}

func mwcSub(f tvfunc.TvFunc, v int) sop.Cover {
	n := f.InputNum()
	if f.IsZero() {
		return sop.NewCover(n)
	}
	if f.IsOne() || v >= n {
		return tautologyCover(n)
	}
	f0 := f.Cofactor(literal.Variable(v), true)
	f1 := f.Cofactor(literal.Variable(v), false)
	fc := f0.And(f1)

	c0 := mwcSub(f0, v+1)
	c1 := mwcSub(f1, v+1)
	cc := mwcSub(fc, v+1)

	var cubes []sop.Cube
	for i := 0; i < cc.CubeNum(); i++ {
		cube, _ := cc.GetCube(i)
		cubes = append(cubes, cube)
	}
	cubes = append(cubes, mergeWithContainment(c0, c1, literal.Negative(literal.Variable(v)))...)
	cubes = append(cubes, mergeWithContainment(c1, c0, literal.Positive(literal.Variable(v)))...)

	result, _ := sop.NewCoverFromCubes(n, cubes)
	return result
}

// mergeWithContainment handles one side (side, other) of the merge step:
// a cube of side already covered by other's cover is lifted unextended
// (it is common to both branches); otherwise it is extended with
// splitLit.
func mergeWithContainment(side, other sop.Cover, splitLit literal.Literal) []sop.Cube {
	otherF := other.TvFunc()
	notOther := otherF.Not()
	var out []sop.Cube
	for i := 0; i < side.CubeNum(); i++ {
		cube, _ := side.GetCube(i)
		if cube.TvFunc().And(notOther).IsZero() {
			out = append(out, cube)
			continue
		}
		ext, err := cube.ProductLiteral(splitLit)
		if err != nil || ext.IsInvalid() {
			continue
		}
		out = append(out, ext)
	}
	return out
}
