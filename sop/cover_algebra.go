package sop

import "github.com/go-sop/gosop/literal"

// Union returns c | other: the stream-merge of both canonical sequences,
// dropping duplicates at ties. Result has at most CubeNum(c)+CubeNum(other)
// cubes. Returns ErrInvalidArgument if variable counts mismatch.
func (c Cover) Union(other Cover) (Cover, error) {
	if c.v != other.v {
		return Cover{}, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	w := c.w()
	out := make([]uint64, 0, (c.n+other.n)*w)
	i, j := 0, 0
	for i < c.n && j < other.n {
		cmp := cubeCompare(c.cubeAt(i), other.cubeAt(j))
		switch {
		case cmp > 0:
			out = append(out, c.cubeAt(i)...)
			i++
		case cmp < 0:
			out = append(out, other.cubeAt(j)...)
			j++
		default:
			out = append(out, c.cubeAt(i)...)
			i++
			j++
		}
	}
	for ; i < c.n; i++ {
		out = append(out, c.cubeAt(i)...)
	}
	for ; j < other.n; j++ {
		out = append(out, other.cubeAt(j)...)
	}
	return Cover{v: c.v, n: len(out) / w, chunk: out}, nil
}

// Diff returns c - other: the cubes of c with no exact word-equal match in
// other. Result has at most CubeNum(c) cubes. Returns ErrInvalidArgument if
// variable counts mismatch.
func (c Cover) Diff(other Cover) (Cover, error) {
	if c.v != other.v {
		return Cover{}, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	w := c.w()
	out := make([]uint64, 0, c.n*w)
	i, j := 0, 0
	for i < c.n && j < other.n {
		cmp := cubeCompare(c.cubeAt(i), other.cubeAt(j))
		switch {
		case cmp > 0:
			out = append(out, c.cubeAt(i)...)
			i++
		case cmp < 0:
			j++
		default:
			i++
			j++
		}
	}
	for ; i < c.n; i++ {
		out = append(out, c.cubeAt(i)...)
	}
	return Cover{v: c.v, n: len(out) / w, chunk: out}, nil
}

// DiffCube returns c - {cube}: c with cube's exact word-equal match
// removed, if present.
func (c Cover) DiffCube(cube Cube) (Cover, error) {
	return c.Diff(NewCoverFromCube(cube))
}

// Product returns c & other: the pairwise product of every cube of c with
// every cube of other, dropping void results, then canonicalised. Result
// has at most CubeNum(c)*CubeNum(other) cubes. Returns ErrInvalidArgument
// if variable counts mismatch.
func (c Cover) Product(other Cover) (Cover, error) {
	if c.v != other.v {
		return Cover{}, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	w := c.w()
	out := make([]uint64, 0, c.n*other.n*w)
	tmp := make([]uint64, w)
	for i := 0; i < c.n; i++ {
		for j := 0; j < other.n; j++ {
			if cubeProduct(tmp, c.cubeAt(i), other.cubeAt(j)) {
				out = append(out, tmp...)
			}
		}
	}
	result := Cover{v: c.v, n: len(out) / w, chunk: out}
	result.canonicalize()
	return result, nil
}

// ProductLiteral returns c & lit: for each cube of c consistent with lit
// (not already carrying the opposite polarity), the cube with lit's
// pattern ORed in; inconsistent cubes are dropped. Result has at most
// CubeNum(c) cubes.
func (c Cover) ProductLiteral(lit literal.Literal) (Cover, error) {
	v := int(lit.Var)
	if v < 0 || v >= c.v {
		return Cover{}, outOfRange("sop: literal var %d out of range [0,%d)", v, c.v)
	}
	w := c.w()
	m := litMask(v, lit.Inv)
	dm := doubleMask(v)
	b := block(v)
	out := make([]uint64, 0, c.n*w)
	for i := 0; i < c.n; i++ {
		cube := c.cubeAt(i)
		existing := cube[b] & dm
		if existing != 0 && existing != m {
			continue
		}
		tmp := make([]uint64, w)
		cubeCopy(tmp, cube)
		tmp[b] |= m
		out = append(out, tmp...)
	}
	result := Cover{v: c.v, n: len(out) / w, chunk: out}
	result.canonicalize()
	return result, nil
}

// AlgDiv returns the algebraic quotient c algdiv other, the largest cover
// Q such that every q in Q times every g in other yields a cube of c with
// no literal overlap between q and g. See spec.md §4.3.3. Returns
// ErrInvalidArgument if variable counts mismatch.
func (c Cover) AlgDiv(other Cover) (Cover, error) {
	if c.v != other.v {
		return Cover{}, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, other.v)
	}
	if other.n == 0 {
		return Cover{}, invalidArgument("sop: algdiv by the empty cover")
	}
	w := c.w()
	n1, n2 := c.n, other.n
	scratch := make([]uint64, n1*w)
	marked := make([]bool, n1)
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			if cubeQuotient(scratch[i*w:i*w+w], c.cubeAt(i), other.cubeAt(j)) {
				marked[i] = true
				break
			}
		}
	}
	out := make([]uint64, 0, n1*w)
	for i := 0; i < n1; i++ {
		if !marked[i] {
			continue
		}
		count := 1
		var matched []int
		for ip := i + 1; ip < n1; ip++ {
			if marked[ip] && cubeCompare(scratch[i*w:i*w+w], scratch[ip*w:ip*w+w]) == 0 {
				count++
				matched = append(matched, ip)
			}
		}
		if count >= n2 {
			out = append(out, scratch[i*w:i*w+w]...)
			marked[i] = false
			for _, ip := range matched {
				marked[ip] = false
			}
		}
	}
	// Step 2 visits i in ascending order against an already-sorted c, so
	// the emitted sequence is already canonical; no re-sort needed.
	return Cover{v: c.v, n: len(out) / w, chunk: out}, nil
}

// AlgDivCube returns c algdiv {cube}: for each cube of c, the quotient by
// cube, keeping only the successes.
func (c Cover) AlgDivCube(cube Cube) (Cover, error) {
	if c.v != cube.v {
		return Cover{}, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, cube.v)
	}
	w := c.w()
	out := make([]uint64, 0, c.n*w)
	tmp := make([]uint64, w)
	for i := 0; i < c.n; i++ {
		if cubeQuotient(tmp, c.cubeAt(i), cube.chunk) {
			out = append(out, tmp...)
		}
	}
	result := Cover{v: c.v, n: len(out) / w, chunk: out}
	result.canonicalize()
	return result, nil
}

// AlgDivLiteral returns c algdiv {lit}: the cubes of c carrying lit, with
// lit's bit stripped.
func (c Cover) AlgDivLiteral(lit literal.Literal) (Cover, error) {
	v := int(lit.Var)
	if v < 0 || v >= c.v {
		return Cover{}, outOfRange("sop: literal var %d out of range [0,%d)", v, c.v)
	}
	w := c.w()
	m := litMask(v, lit.Inv)
	dm := doubleMask(v)
	b := block(v)
	out := make([]uint64, 0, c.n*w)
	for i := 0; i < c.n; i++ {
		cube := c.cubeAt(i)
		if cube[b]&dm != m {
			continue
		}
		tmp := make([]uint64, w)
		cubeCopy(tmp, cube)
		tmp[b] &^= dm
		out = append(out, tmp...)
	}
	result := Cover{v: c.v, n: len(out) / w, chunk: out}
	result.canonicalize()
	return result, nil
}

// Cofactor returns c restricted by divisor: cubes consistent with divisor
// are kept with divisor's literals removed; inconsistent cubes are
// dropped. See spec.md §4.3.2.
func (c Cover) Cofactor(divisor Cube) (Cover, error) {
	if c.v != divisor.v {
		return Cover{}, invalidArgument("sop: variable_num mismatch (%d vs %d)", c.v, divisor.v)
	}
	w := c.w()
	out := make([]uint64, 0, c.n*w)
	tmp := make([]uint64, w)
	for i := 0; i < c.n; i++ {
		if cubeCofactor(tmp, c.cubeAt(i), divisor.chunk) {
			out = append(out, tmp...)
		}
	}
	result := Cover{v: c.v, n: len(out) / w, chunk: out}
	result.canonicalize()
	return result, nil
}

// CofactorLiteral returns c restricted by the single literal lit.
func (c Cover) CofactorLiteral(lit literal.Literal) (Cover, error) {
	cube, err := NewCubeFromLiteral(c.v, lit)
	if err != nil {
		return Cover{}, err
	}
	return c.Cofactor(cube)
}

// CommonCube returns the word-wise AND across all of c's cubes. Returns
// the tautology cube if c has no cubes (the AND of an empty set of
// constraints). If c has two or more cubes and their intersection is
// empty (no literal common to all), returns the invalid cube — per
// spec.md §9's decided resolution of the two-call-sites disagreement (see
// DESIGN.md): the original's OR-accumulate-then-ALL1-check test only
// applies under the inverted encoding this repo does not use, so the
// AND-accumulation here is this repo's own derivation for the canonical
// encoding, not a verbatim port.
func (c Cover) CommonCube() Cube {
	if c.n == 0 {
		return NewCube(c.v)
	}
	w := c.w()
	acc := make([]uint64, w)
	cubeCopy(acc, c.cubeAt(0))
	if c.n == 1 {
		return Cube{v: c.v, chunk: acc}
	}
	for i := 1; i < c.n; i++ {
		cube := c.cubeAt(i)
		for k := 0; k < w; k++ {
			acc[k] &= cube[k]
		}
	}
	for _, word := range acc {
		if word != 0 {
			return Cube{v: c.v, chunk: acc}
		}
	}
	return invalidCube(c.v)
}

// UnionInto replaces *c with *c | other, computing into a fresh chunk
// first so aliasing (other referencing the same backing array as c) is
// safe, per spec.md §5's aliasing requirement.
func (c *Cover) UnionInto(other Cover) error {
	res, err := c.Union(other)
	if err != nil {
		return err
	}
	*c = res
	return nil
}

// DiffInto replaces *c with *c - other.
func (c *Cover) DiffInto(other Cover) error {
	res, err := c.Diff(other)
	if err != nil {
		return err
	}
	*c = res
	return nil
}

// ProductInto replaces *c with *c & other.
func (c *Cover) ProductInto(other Cover) error {
	res, err := c.Product(other)
	if err != nil {
		return err
	}
	*c = res
	return nil
}

// AlgDivInto replaces *c with *c algdiv other.
func (c *Cover) AlgDivInto(other Cover) error {
	res, err := c.AlgDiv(other)
	if err != nil {
		return err
	}
	*c = res
	return nil
}
