package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetcalc/internal/cellref"
	"sheetcalc/internal/value"
)

// mapView is a trivial in-memory View for exercising formulas without
// a full Sheet.
type mapView map[cellref.Position]value.Value

func (m mapView) Lookup(pos cellref.Position) (value.Value, bool) {
	v, ok := m[pos]
	return v, ok
}

func evalText(t *testing.T, body string, view View) (float64, *value.FormulaError) {
	t.Helper()
	ast, err := Parse(body)
	require.NoError(t, err)
	return Execute(ast, view)
}

func TestArithmetic(t *testing.T) {
	n, ferr := evalText(t, "1+2", mapView{})
	require.Nil(t, ferr)
	assert.Equal(t, 3.0, n)

	n, ferr = evalText(t, "2*3+4", mapView{})
	require.Nil(t, ferr)
	assert.Equal(t, 10.0, n)

	n, ferr = evalText(t, "2+3*4", mapView{})
	require.Nil(t, ferr)
	assert.Equal(t, 14.0, n)

	n, ferr = evalText(t, "(2+3)*4", mapView{})
	require.Nil(t, ferr)
	assert.Equal(t, 20.0, n)

	n, ferr = evalText(t, "-5+2", mapView{})
	require.Nil(t, ferr)
	assert.Equal(t, -3.0, n)

	n, ferr = evalText(t, "10/2/5", mapView{})
	require.Nil(t, ferr)
	assert.Equal(t, 1.0, n)
}

func TestDivisionByZero(t *testing.T) {
	_, ferr := evalText(t, "1/0", mapView{})
	require.NotNil(t, ferr)
	assert.Equal(t, value.ErrDiv0, ferr.Kind)
}

func TestCellReferenceResolution(t *testing.T) {
	a1 := cellref.MustParse("A1")
	view := mapView{a1: value.Number(4)}
	n, ferr := evalText(t, "A1+1", view)
	require.Nil(t, ferr)
	assert.Equal(t, 5.0, n)
}

func TestAbsentReferenceIsZero(t *testing.T) {
	n, ferr := evalText(t, "B1+1", mapView{})
	require.Nil(t, ferr)
	assert.Equal(t, 1.0, n)
}

func TestNonNumericTextReferenceIsValueError(t *testing.T) {
	a1 := cellref.MustParse("A1")
	view := mapView{a1: value.Text("hello")}
	_, ferr := evalText(t, "A1+1", view)
	require.NotNil(t, ferr)
	assert.Equal(t, value.ErrValue, ferr.Kind)
}

func TestOutOfRangeReferenceIsRefError(t *testing.T) {
	_, ferr := evalText(t, "ZZZZZZ9999999+1", mapView{})
	require.NotNil(t, ferr)
	assert.Equal(t, value.ErrRef, ferr.Kind)
}

func TestParseErrorOnMalformedFormula(t *testing.T) {
	_, err := Parse("1+")
	assert.Error(t, err)

	_, err = Parse("(1+2")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)
}

func TestPrettyPrintIsFixedPoint(t *testing.T) {
	cases := []string{"1+2", "1+2*3", "(1+2)*3", "1-2-3", "10/2/5", "-1+2", "1+(2-3)"}
	for _, body := range cases {
		ast, err := Parse(body)
		require.NoError(t, err)
		first := PrettyPrint(ast)

		ast2, err := Parse(first)
		require.NoError(t, err)
		second := PrettyPrint(ast2)

		assert.Equal(t, first, second, "pretty-print should be a fixed point for %q", body)
	}
}

func TestReferencedPositionsPreservesOccurrenceOrder(t *testing.T) {
	ast, err := Parse("A1+B2+A1+A1+C3")
	require.NoError(t, err)
	refs := ReferencedPositions(ast)
	require.Len(t, refs, 5)
	assert.Equal(t, cellref.MustParse("A1"), refs[0])
	assert.Equal(t, cellref.MustParse("B2"), refs[1])
	assert.Equal(t, cellref.MustParse("A1"), refs[2])
	assert.Equal(t, cellref.MustParse("A1"), refs[3])
	assert.Equal(t, cellref.MustParse("C3"), refs[4])
}
