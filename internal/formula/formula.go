// Package formula is the external formula module spec.md §6 treats as
// a black box: a small arithmetic language (numbers, +, -, *, /, unary
// minus, parentheses, and cell references) that the core calls through
// four operations — Parse, Execute, the AST's pretty-printed text, and
// its referenced positions.
package formula

import (
	"fmt"

	"sheetcalc/internal/cellref"
	"sheetcalc/internal/value"
)

// ParseError is returned by Parse on malformed formula text. The core
// wraps it as FormulaException and leaves the sheet unchanged.
type ParseError struct {
	Body string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("formula: cannot parse %q: %v", e.Body, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses the formula body (the text after the leading '=') into
// an AST, or returns a *ParseError.
func Parse(body string) (Node, error) {
	l := newLexer(body)
	tokens, err := l.tokenize()
	if err != nil {
		return nil, &ParseError{Body: body, Err: err}
	}
	node, err := parse(tokens)
	if err != nil {
		return nil, &ParseError{Body: body, Err: err}
	}
	return node, nil
}

// Execute evaluates an AST against a SheetView, returning a number or
// a FormulaError — evaluation errors are always returned as values,
// never raised.
func Execute(ast Node, view View) (float64, *value.FormulaError) {
	return ast.eval(view)
}

// PrettyPrint returns the AST's canonical textual form. Parsing this
// text again and pretty-printing the result reproduces the same
// string: PrettyPrint is a fixed point of Parse.
func PrettyPrint(ast Node) string {
	return ast.text()
}

// ReferencedPositions returns the AST's cell references in
// occurrence order, with no deduplication at all (not even
// adjacent): that pass belongs to the core (see the sheet package's
// content.referencedPositions),
// which collapses only consecutive duplicates per spec.md §4.4/§9.
func ReferencedPositions(ast Node) []cellref.Position {
	var refs []cellref.Position
	ast.appendRefs(&refs)
	return refs
}
