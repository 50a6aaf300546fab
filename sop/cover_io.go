package sop

import (
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"

	"github.com/go-sop/gosop/literal"
)

// ParseCover reads the fixed-width text format of spec.md §4.3.5/§6.2: one
// line per cube, each line exactly V characters from {'0','1','-'}. An
// empty input yields the empty cover. Every malformed line is recorded and
// returned together as a ParseErrors, in the teacher's accumulation style
// rather than failing on the first fault.
func ParseCover(text string) (Cover, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return NewCover(0), nil
	}
	v := len(lines[0])
	var errs ParseErrors
	cubeList := make([][]literal.Literal, 0, len(lines))
	for ln, line := range lines {
		if len(line) != v {
			errs = append(errs, &ParseError{Line: ln + 1, Detail: fmt.Sprintf("line length %d, want %d", len(line), v)})
			continue
		}
		var lits []literal.Literal
		for i := 0; i < len(line); i++ {
			switch line[i] {
			case '0':
				lits = append(lits, literal.Negative(literal.Variable(i)))
			case '1':
				lits = append(lits, literal.Positive(literal.Variable(i)))
			case '-':
			default:
				errs = append(errs, &ParseError{Line: ln + 1, Detail: fmt.Sprintf("invalid character %q", line[i])})
			}
		}
		cubeList = append(cubeList, lits)
	}
	if len(errs) > 0 {
		return Cover{}, errs
	}
	return NewCoverFromLiteralLists(v, cubeList)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}

// parseState is the small enum driving ParseCoverNamed's character loop,
// replacing the goto-based state machine of the legacy named-literal
// parser (AlgMgr::parse) with a data-driven loop, per spec.md §9's
// explicit re-architecture note.
type parseState int

const (
	stateSkipSpace parseState = iota
	stateInName
)

// ParseCoverNamed reads the whitespace-separated, '+'-delimited
// named-literal text format of the legacy parser: cube boundaries are
// '+', literals are variable names optionally followed by "'" for
// negation, and names are resolved through varNames. Unknown names
// produce a suggestion (via fuzzy.RankFindNormalizedFold) in the error detail when a
// close match exists.
func ParseCoverNamed(v int, text string, varNames map[string]literal.Variable) (Cover, error) {
	var cubeList [][]literal.Literal
	var cur []literal.Literal
	state := stateSkipSpace
	var name strings.Builder

	flushName := func(inv bool) error {
		n := name.String()
		name.Reset()
		id, ok := varNames[n]
		if !ok {
			return invalidArgument("sop: unknown variable name %q%s", n, suggestion(n, varNames))
		}
		cur = append(cur, literal.New(id, inv))
		return nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch state {
		case stateSkipSpace:
			switch {
			case isSpace(c):
			case c == '+':
				cubeList = append(cubeList, cur)
				cur = nil
			case isNameChar(c):
				name.WriteRune(c)
				state = stateInName
			default:
				return Cover{}, invalidArgument("sop: unexpected character %q", c)
			}
		case stateInName:
			switch {
			case isNameChar(c):
				name.WriteRune(c)
			case c == '\'':
				if err := flushName(true); err != nil {
					return Cover{}, err
				}
				state = stateSkipSpace
			default:
				if err := flushName(false); err != nil {
					return Cover{}, err
				}
				state = stateSkipSpace
				i-- // reprocess this character in stateSkipSpace
			}
		}
	}
	if state == stateInName {
		if err := flushName(false); err != nil {
			return Cover{}, err
		}
	}
	cubeList = append(cubeList, cur)
	return NewCoverFromLiteralLists(v, cubeList)
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameChar(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// suggestion returns a " (did you mean \"x\"?)" hint when a close match to
// name exists among varNames' keys, or "" otherwise.
func suggestion(name string, varNames map[string]literal.Variable) string {
	candidates := make([]string, 0, len(varNames))
	for k := range varNames {
		candidates = append(candidates, k)
	}
	matches := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(matches) == 0 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", matches[0].Target)
}

// Print writes c in the human-readable display form of spec.md §4.3.4:
// cubes separated by " + ", literals separated by spaces, using the
// supplied names (NFC-normalised, since a caller-supplied name is an
// opaque external value) or "v<i>"/"v<i>'" when varNames is nil. This is
// for display; it is not the persistent format ParseCover reads back
// (that is PrintFixed) unless the caller also threads varNames through
// ParseCoverNamed.
func (c Cover) Print(w io.Writer, varNames []string) error {
	if c.n == 0 {
		_, err := io.WriteString(w, "0")
		return err
	}
	var b strings.Builder
	for i := 0; i < c.n; i++ {
		if i > 0 {
			b.WriteString(" + ")
		}
		cube := Cube{v: c.v, chunk: c.cubeAt(i)}
		lits := cube.LiteralList()
		if len(lits) == 0 {
			b.WriteString("1")
			continue
		}
		for j, l := range lits {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(literalName(l, varNames))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// PrintFixed writes c in the fixed-width positional format of spec.md
// §6.2 — one line per cube, each line exactly VariableNum() characters
// from {'0','1','-'} — the only persistent format the core itself
// defines, and the one ParseCover reads back. Round-trips with
// ParseCover: ParseCover(printed) must reconstruct an equal Cover. The
// empty cover (zero cubes) writes zero lines.
func (c Cover) PrintFixed(w io.Writer) error {
	line := make([]byte, c.v+1)
	line[c.v] = '\n'
	for i := 0; i < c.n; i++ {
		pat, err := c.fixedLine(i, line)
		if err != nil {
			return err
		}
		if _, err := w.Write(pat); err != nil {
			return err
		}
	}
	return nil
}

func (c Cover) fixedLine(i int, line []byte) ([]byte, error) {
	for v := 0; v < c.v; v++ {
		pat, err := c.GetPat(i, v)
		if err != nil {
			return nil, err
		}
		switch pat {
		case '1':
			line[v] = '1'
		case '0':
			line[v] = '0'
		default:
			line[v] = '-'
		}
	}
	return line, nil
}

func literalName(l literal.Literal, varNames []string) string {
	if varNames != nil && int(l.Var) < len(varNames) && varNames[l.Var] != "" {
		name := norm.NFC.String(varNames[l.Var])
		if l.Inv {
			return name + "'"
		}
		return name
	}
	return l.String()
}

// cborCover is the wire shape for Cover's CBOR encoding: the variable
// count, the cube count, and the first N*W packed chunk words as stored, so
// the encoding depends on the word packing.
type cborCover struct {
	V     int      `cbor:"v"`
	N     int      `cbor:"n"`
	Chunk []uint64 `cbor:"chunk"`
}

// MarshalCBOR encodes c in the binary interchange format (an alternative
// to the text format of spec.md §6.2, per SPEC_FULL.md §3).
func (c Cover) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(cborCover{V: c.v, N: c.n, Chunk: append([]uint64(nil), c.chunk[:c.n*c.w()]...)})
}

// UnmarshalCBOR decodes c from the binary interchange format.
func (c *Cover) UnmarshalCBOR(data []byte) error {
	var wire cborCover
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return err
	}
	w := wordCount(wire.V)
	if len(wire.Chunk) != wire.N*w {
		return invalidArgument("sop: cbor chunk length %d, want %d", len(wire.Chunk), wire.N*w)
	}
	*c = Cover{v: wire.V, n: wire.N, chunk: wire.Chunk}
	return nil
}

// StrongHash returns a blake2b-256 collision-resistant hash of c's
// canonical byte sequence, for callers that persist cover identities
// across process restarts (SPEC_FULL.md §3) rather than relying on the
// in-process fold hash of Hash().
func (c Cover) StrongHash() [32]byte {
	h, _ := blake2b.New256(nil)
	buf := make([]byte, 8)
	for i := 0; i < c.n*c.w(); i++ {
		word := c.chunk[i]
		for k := 0; k < 8; k++ {
			buf[k] = byte(word >> (8 * k))
		}
		h.Write(buf)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
