package ltl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/internal/parser"
	"github.com/logicforge/logicforge/internal/token"
)

func TestValidateOutputAcceptsAWellFormedAutomaton(t *testing.T) {
	f, errs := parser.Parse("G (p -> F q)", token.LTL)
	require.Empty(t, errs)
	auto, err := ToBuchi(f)
	require.NoError(t, err)
	assert.NoError(t, ValidateOutput(auto))
}

func TestValidateOutputRejectsAnOutOfRangeAcceptingState(t *testing.T) {
	f, errs := parser.Parse("G (p -> F q)", token.LTL)
	require.Empty(t, errs)
	auto, err := ToBuchi(f)
	require.NoError(t, err)

	auto.AcceptingSets = append(auto.AcceptingSets, []int{auto.NumStates + 1})
	assert.Error(t, ValidateOutput(auto))
}
