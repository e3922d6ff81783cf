package sheet

import (
	"strings"

	"sheetcalc/internal/cellref"
	"sheetcalc/internal/formula"
	"sheetcalc/internal/value"
)

type contentKind uint8

const (
	kindEmpty contentKind = iota
	kindText
	kindFormula
)

// content is the tagged union CellContent variant spec.md §3/§4.3
// describes: Empty, Text(raw), or Formula(ast, cache). It is a plain
// value type operated on by total functions, never a polymorphic
// interface with per-variant implementations.
type content struct {
	kind     contentKind
	raw      string // kindText only: the exact string passed to Set
	ast      formula.Node
	hasCache bool
	cache    value.Value
}

var emptyContent = content{kind: kindEmpty}

// buildContent speculatively parses text into a detached content value
// without touching any sheet state. Building is side-effect free so the
// edit protocol can run the cycle check before committing anything.
func buildContent(text string) (content, error) {
	switch {
	case text == "":
		return emptyContent, nil
	case text[0] == '=' && len(text) > 1:
		ast, err := formula.Parse(text[1:])
		if err != nil {
			return content{}, err
		}
		return content{kind: kindFormula, ast: ast}, nil
	default:
		return content{kind: kindText, raw: text}, nil
	}
}

// text returns the exact string GetText reports: the raw text for
// Empty/Text content, or "=" followed by the formula module's
// canonical pretty-print for Formula content (not whatever the caller
// originally typed — that's what makes the short-circuit and
// round-trip properties in spec.md §8 hold).
func (c content) text() string {
	switch c.kind {
	case kindText:
		return c.raw
	case kindFormula:
		return "=" + formula.PrettyPrint(c.ast)
	default:
		return ""
	}
}

// referencedPositions returns this content's referenced positions with
// only consecutive duplicates collapsed, preserving first-occurrence
// order, per spec.md §4.4/§9. Non-formula content never references
// anything.
func (c content) referencedPositions() []cellref.Position {
	if c.kind != kindFormula {
		return nil
	}
	raw := formula.ReferencedPositions(c.ast)
	return dedupAdjacent(raw)
}

func dedupAdjacent(positions []cellref.Position) []cellref.Position {
	if len(positions) == 0 {
		return nil
	}
	out := positions[:1]
	for _, p := range positions[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// value computes this content's value. For Formula content it consults
// or populates the cache, using view to resolve cell references.
func (c *content) value(view formula.View) value.Value {
	switch c.kind {
	case kindEmpty:
		return value.Number(0)
	case kindText:
		return value.Text(stripEscape(c.raw))
	default:
		if !c.hasCache {
			num, ferr := formula.Execute(c.ast, view)
			if ferr != nil {
				c.cache = value.Error(*ferr)
			} else {
				c.cache = value.Number(num)
			}
			c.hasCache = true
		}
		return c.cache
	}
}

// deleteCache empties a formula cell's cache without touching its AST.
// It is a no-op on non-formula content.
func (c *content) deleteCache() {
	c.hasCache = false
}

// stripEscape removes a single leading apostrophe, the literal-escape
// prefix that lets text content look like a number or formula without
// being interpreted as one. The apostrophe is stripped from the
// displayed value but preserved in GetText (see content.text, which
// returns the untouched raw string).
func stripEscape(s string) string {
	return strings.TrimPrefix(s, "'")
}
