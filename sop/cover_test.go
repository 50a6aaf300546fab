package sop

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-sop/gosop/literal"
)

func lits(vs ...int) []literal.Literal {
	out := make([]literal.Literal, len(vs))
	for i, v := range vs {
		out[i] = literal.Positive(literal.Variable(v))
	}
	return out
}

// TestConstructionAndLiteralCounts is spec.md §8 scenario S1.
func TestConstructionAndLiteralCounts(t *testing.T) {
	cover, err := NewCoverFromLiteralLists(10, [][]literal.Literal{lits(0, 1), lits(2, 3)})
	require.NoError(t, err)
	require.Equal(t, 2, cover.CubeNum())
	require.Equal(t, 4, cover.LiteralNum())
	for _, v := range []int{0, 1, 2, 3} {
		require.Equal(t, 1, cover.LiteralNumOf(literal.Positive(literal.Variable(v))))
	}
	require.Equal(t, 0, cover.LiteralNumOf(literal.Positive(literal.Variable(4))))

	want := [][]literal.Literal{lits(0, 1), lits(2, 3)}
	if diff := cmp.Diff(want, cover.LiteralList()); diff != "" {
		t.Errorf("LiteralList() mismatch (-want +got):\n%s", diff)
	}
}

// TestSortWithDedup is spec.md §8 scenario S2 (V=3, letters a..c = var 0..2).
func TestSortWithDedup(t *testing.T) {
	notB_c := []literal.Literal{literal.Negative(1), literal.Positive(2)}
	b_notC := []literal.Literal{literal.Positive(1), literal.Negative(2)}
	notA_c := []literal.Literal{literal.Negative(0), literal.Positive(2)}
	a_notC := []literal.Literal{literal.Positive(0), literal.Negative(2)}
	a_notB := []literal.Literal{literal.Positive(0), literal.Negative(1)}

	cover, err := NewCoverFromLiteralLists(3, [][]literal.Literal{
		notB_c, b_notC, notA_c, notA_c, a_notC, a_notB,
	})
	require.NoError(t, err)
	require.Equal(t, 5, cover.CubeNum(), "the duplicate ¬a·c cube must collapse to one")

	var b stringsBuilder
	require.NoError(t, cover.Print(&b, nil))
	want := "v0 v1' + v0 v2' + v0' v2 + v1 v2' + v1' v2"
	require.Equal(t, want, b.String())
}

// TestAlgebraicDivision is spec.md §8 scenario S3.
func TestAlgebraicDivision(t *testing.T) {
	f, err := NewCoverFromLiteralLists(10, [][]literal.Literal{
		{literal.Positive(0), literal.Positive(2)},
		{literal.Positive(0), literal.Positive(3)},
		{literal.Positive(1), literal.Positive(2)},
		{literal.Positive(1), literal.Positive(3)},
	})
	require.NoError(t, err)
	g, err := NewCoverFromLiteralLists(10, [][]literal.Literal{lits(0), lits(1)})
	require.NoError(t, err)

	q, err := f.AlgDiv(g)
	require.NoError(t, err)
	want := [][]literal.Literal{lits(2), lits(3)}
	if diff := cmp.Diff(want, q.LiteralList()); diff != "" {
		t.Errorf("algdiv result mismatch (-want +got):\n%s", diff)
	}
}

// TestCommonCube is spec.md §8 scenario S5.
func TestCommonCube(t *testing.T) {
	f, err := NewCoverFromLiteralLists(10, [][]literal.Literal{
		{literal.Positive(0), literal.Positive(2)},
		{literal.Positive(0), literal.Positive(3)},
		{literal.Positive(0), literal.Negative(4)},
	})
	require.NoError(t, err)
	cc := f.CommonCube()
	require.False(t, cc.IsInvalid())
	require.Equal(t, []literal.Literal{literal.Positive(0)}, cc.LiteralList())

	fPrime, err := NewCoverFromLiteralLists(10, [][]literal.Literal{
		{literal.Positive(0), literal.Positive(2)},
		{literal.Negative(0), literal.Positive(3)},
		{literal.Positive(0), literal.Negative(4)},
	})
	require.NoError(t, err)
	ccPrime := fPrime.CommonCube()
	require.True(t, ccPrime.IsInvalid(), "no literal is common to all cubes: CommonCube must be the invalid cube")
}

func TestUnionAndDiffIdentities(t *testing.T) {
	f, err := NewCoverFromLiteralLists(4, [][]literal.Literal{lits(0), lits(1)})
	require.NoError(t, err)
	empty := NewCover(4)

	u, err := f.Union(empty)
	require.NoError(t, err)
	require.True(t, u.Equal(f), "C | empty must equal C")

	uu, err := f.Union(f)
	require.NoError(t, err)
	require.True(t, uu.Equal(f), "C | C must equal C")

	d, err := f.Diff(f)
	require.NoError(t, err)
	require.Equal(t, 0, d.CubeNum(), "C - C must be empty")
}

// TestIntoVariantsSelfAliasing exercises spec.md §5's aliasing contract for
// the in-place *Into operators: calling c.XInto(c) must behave exactly like
// the non-aliased two-value form, since each computes into a fresh chunk
// before assigning (see DESIGN.md).
func TestIntoVariantsSelfAliasing(t *testing.T) {
	f, err := NewCoverFromLiteralLists(4, [][]literal.Literal{
		{literal.Positive(0), literal.Positive(1)},
		{literal.Positive(0), literal.Positive(2)},
	})
	require.NoError(t, err)

	t.Run("UnionInto", func(t *testing.T) {
		c := f
		require.NoError(t, c.UnionInto(c))
		require.True(t, c.Equal(f), "c.UnionInto(c) must leave c unchanged (C | C == C)")
	})

	t.Run("DiffInto", func(t *testing.T) {
		c := f
		require.NoError(t, c.DiffInto(c))
		require.Equal(t, 0, c.CubeNum(), "c.DiffInto(c) must empty c (C - C == empty)")
	})

	t.Run("ProductInto", func(t *testing.T) {
		c := f
		want, err := f.Product(f)
		require.NoError(t, err)
		require.NoError(t, c.ProductInto(c))
		require.True(t, c.Equal(want), "c.ProductInto(c) must match the two-value Product(f, f)")
	})

	t.Run("AlgDivInto", func(t *testing.T) {
		c := f
		want, err := f.AlgDiv(f)
		require.NoError(t, err)
		require.NoError(t, c.AlgDivInto(c))
		require.True(t, c.Equal(want), "c.AlgDivInto(c) must match the two-value AlgDiv(f, f)")
	})
}

func TestIntoVariantsPropagateErrors(t *testing.T) {
	c, err := NewCoverFromLiteralLists(4, [][]literal.Literal{lits(0)})
	require.NoError(t, err)
	mismatched := NewCover(5)

	require.Error(t, c.UnionInto(mismatched))
	require.Error(t, c.DiffInto(mismatched))
	require.Error(t, c.ProductInto(mismatched))
	require.Error(t, c.AlgDivInto(mismatched))
}

func TestCanonicalOrderInvariant(t *testing.T) {
	cover, err := NewCoverFromLiteralLists(4, [][]literal.Literal{lits(3), lits(0), lits(1), lits(2)})
	require.NoError(t, err)
	for i := 1; i < cover.CubeNum(); i++ {
		prev, err := cover.GetCube(i - 1)
		require.NoError(t, err)
		cur, err := cover.GetCube(i)
		require.NoError(t, err)
		cmp, err := prev.Compare(cur)
		require.NoError(t, err)
		require.Equal(t, 1, cmp, "cube %d must strictly precede cube %d in canonical order", i-1, i)
	}
}

func TestHashConsistency(t *testing.T) {
	a, err := NewCoverFromLiteralLists(4, [][]literal.Literal{lits(1), lits(0)})
	require.NoError(t, err)
	b, err := NewCoverFromLiteralLists(4, [][]literal.Literal{lits(0), lits(1)})
	require.NoError(t, err)
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
}

func TestGetCubeOutOfRange(t *testing.T) {
	cover := NewCover(3)
	_, err := cover.GetCube(0)
	require.Error(t, err)
}

func TestRoundTripViaExpr(t *testing.T) {
	// spec.md §8 scenario S7: C = { a·b, ¬c } in V=3.
	cover, err := NewCoverFromLiteralLists(3, [][]literal.Literal{
		{literal.Positive(0), literal.Positive(1)},
		{literal.Negative(2)},
	})
	require.NoError(t, err)
	require.Equal(t, "( ( 0 & 1 ) | ~2 )", cover.Expr().String())
}

// stringsBuilder avoids importing strings in this file merely for the
// io.Writer adapter used by one test.
type stringsBuilder struct {
	buf []byte
}

func (b *stringsBuilder) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *stringsBuilder) String() string { return string(b.buf) }
