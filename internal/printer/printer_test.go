package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/internal/parser"
	"github.com/logicforge/logicforge/internal/token"
)

func TestPrintRestoresMinimalParens(t *testing.T) {
	f, errs := parser.Parse("(x0 & x1) | x2", token.BDD)
	require.Empty(t, errs)
	// '&' binds tighter than '|' so the original parens are redundant.
	assert.Equal(t, "x0 & x1 | x2", Print(f, token.BDD))
}

func TestPrintAddsParensWhenNeeded(t *testing.T) {
	f, errs := parser.Parse("x0 & (x1 | x2)", token.BDD)
	require.Empty(t, errs)
	assert.Equal(t, "x0 & (x1 | x2)", Print(f, token.BDD))
}

func TestPrintDebugListsKinds(t *testing.T) {
	f, errs := parser.Parse("x0 & x1", token.BDD)
	require.Empty(t, errs)
	assert.Equal(t, "Var Var And", PrintDebug(f))
}
