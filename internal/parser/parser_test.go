package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/internal/ast"
	"github.com/logicforge/logicforge/internal/printer"
	"github.com/logicforge/logicforge/internal/token"
)

func TestParseBDDRoundTrip(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"x0 & x1", "x0 & x1"},
		{"x0 | x1 & x2", "x0 | x1 & x2"},
		{"(x0 | x1) & x2", "(x0 | x1) & x2"},
		{"!x0 & x1", "!x0 & x1"},
		{"x0 -> x1 -> x2", "x0 -> (x1 -> x2)"}, // right-associative
		{"x0 = x1 ^ x2", "x0 = x1 ^ x2"},
	}
	for _, c := range cases {
		f, errs := Parse(c.input, token.BDD)
		require.Empty(t, errs, "input %q", c.input)
		assert.Equal(t, c.want, printer.Print(f, token.BDD), "input %q", c.input)
	}
}

func TestParseLTLPrecedence(t *testing.T) {
	f, errs := Parse("X p && q", token.LTL)
	require.Empty(t, errs)
	assert.Equal(t, "X(p) && q", printer.Print(f, token.LTL))
}

func TestParseLTLUntilRightAssoc(t *testing.T) {
	f, errs := Parse("p U q U r", token.LTL)
	require.Empty(t, errs)
	assert.Equal(t, "p U (q U r)", printer.Print(f, token.LTL))
}

func TestParseUnmatchedParenReportsError(t *testing.T) {
	_, errs := Parse("(x0 & x1", token.BDD)
	require.NotEmpty(t, errs)
}

func TestParseEmptyInputSynthesizesConst(t *testing.T) {
	f, errs := Parse("", token.BDD)
	require.Empty(t, errs)
	require.Equal(t, 1, f.Len())
	assert.Equal(t, ast.Const, f.Root().Kind)
	assert.False(t, f.Root().BoolValue)
}
