package ltl

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/internal/ast"
	"github.com/logicforge/logicforge/internal/parser"
	"github.com/logicforge/logicforge/internal/token"
)

func TestMakeAtomsExpandsEachNameUpToItsMaxXDepth(t *testing.T) {
	f := mustParse(t, "X X p && X q")
	PropagateX(f)
	atoms := MakeAtoms(f)

	want := []Atom{
		{Name: "p", XCount: 0}, {Name: "p", XCount: 1}, {Name: "p", XCount: 2},
		{Name: "q", XCount: 0}, {Name: "q", XCount: 1},
	}
	if diff := cmp.Diff(want, atoms); diff != "" {
		t.Errorf("atom set mismatch (-want +got):\n%s", diff)
	}
}

func mustParse(t *testing.T, input string) ast.Formula {
	t.Helper()
	f, errs := parser.Parse(input, token.LTL)
	require.Empty(t, errs, "input %q", input)
	return f
}

// Scenario 6: X X p -> atoms (p,0),(p,1),(p,2).
func TestMakeAtomsXDepthChain(t *testing.T) {
	f := mustParse(t, "X X p")
	PropagateX(f)
	atoms := MakeAtoms(f)
	require.Len(t, atoms, 3)
	for k, a := range atoms {
		assert.Equal(t, "p", a.Name)
		assert.Equal(t, k, a.XCount)
	}
}

func TestPropagateXIdempotence(t *testing.T) {
	f := mustParse(t, "X X p && X q")
	PropagateX(f)
	first := xCounts(f)
	PropagateX(f)
	second := xCounts(f)
	assert.Equal(t, first, second)
}

func xCounts(f ast.Formula) []int {
	var out []int
	for _, n := range f.Nodes {
		if n.Kind == ast.Atom {
			out = append(out, n.XCount)
		}
	}
	return out
}

// Scenario 6 continued: a pure X/atom formula has no F/G/U/R closure
// entries, so the automaton carries no acceptance sets.
func TestToBuchiSafetyFormulaHasNoAcceptingSets(t *testing.T) {
	f := mustParse(t, "X X p")
	auto, err := ToBuchi(f)
	require.NoError(t, err)
	assert.Empty(t, auto.AcceptingSets)
	assert.NotEmpty(t, auto.Initial)
}

// Scenario 5: G (p -> F q) has exactly one eventuality (F q), so the
// GNBA carries exactly one acceptance set.
func TestToBuchiGloballyImpliesFutureHasOneAcceptingSet(t *testing.T) {
	f := mustParse(t, "G (p -> F q)")
	auto, err := ToBuchi(f)
	require.NoError(t, err)
	assert.Len(t, auto.AcceptingSets, 1)
	assert.NotEmpty(t, auto.Initial)
	assert.NotEmpty(t, auto.Transitions)
}

// Every enumerated state must have at least one outgoing transition: the
// candidate set starts as every state and constraints only narrow it,
// and a satisfiable tableau should never narrow to empty for a formula
// with no contradictory obligations.
func TestToBuchiTransitionsCoverEveryState(t *testing.T) {
	f := mustParse(t, "p U q")
	auto, err := ToBuchi(f)
	require.NoError(t, err)

	hasOutgoing := make([]bool, auto.NumStates)
	for _, tr := range auto.Transitions {
		hasOutgoing[tr.From] = true
	}
	for i, ok := range hasOutgoing {
		assert.True(t, ok, "state %d has no outgoing transition", i)
	}
}

func TestMakeClosureCanonicalizesCommutativeOperands(t *testing.T) {
	a := mustParse(t, "p && q")
	b := mustParse(t, "q && p")

	closeA, _ := Closure(a, MakeAtoms(a))
	closeB, _ := Closure(b, MakeAtoms(b))
	// Both orderings of a commutative And must canonicalize to the same
	// (arg1, arg2) shape once the atom spaces line up (arg1 < arg2 by
	// the underlying atom index, independent of source order).
	require.Len(t, closeA, 1)
	require.Len(t, closeB, 1)
	assert.Equal(t, closeA[0].Kind, closeB[0].Kind)
	assert.Equal(t, closeA[0].Arg1, closeB[0].Arg1)
	assert.Equal(t, closeA[0].Arg2, closeB[0].Arg2)
}
