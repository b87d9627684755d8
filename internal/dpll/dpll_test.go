package dpll

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDIMACSHeaderAndClauses(t *testing.T) {
	src := "c a trivial instance\np cnf 3 2\n1 -3 0\n2 3 -1 0\n"
	cnf, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, cnf.NVars)
	assert.Len(t, cnf.Clauses, 2)
}

// Both clauses share max-abs-literal 3, so the tie is broken by ascending
// size: the two-literal clause sorts before the three.
func TestParseOrdersClausesByMaxLiteralThenSize(t *testing.T) {
	cnf, err := Parse(strings.NewReader("p cnf 3 2\n1 -3 0\n2 3 -1 0\n"))
	require.NoError(t, err)

	want := []Clause{
		{Lits: []int{1, -3}},
		{Lits: []int{2, 3, -1}},
	}
	if diff := cmp.Diff(want, cnf.Clauses); diff != "" {
		t.Errorf("clause order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRejectsClauseCountMismatch(t *testing.T) {
	_, err := Parse(strings.NewReader("p cnf 1 2\n1 0\n"))
	assert.Error(t, err)
}

// Scenario 3: p cnf 3 2 / 1 -3 0 / 2 3 -1 0 -> SAT.
func TestSolveScenarioSAT(t *testing.T) {
	cnf, err := Parse(strings.NewReader("p cnf 3 2\n1 -3 0\n2 3 -1 0\n"))
	require.NoError(t, err)

	res := Solve(cnf)
	require.True(t, res.Satisfiable)
	assertSatisfies(t, cnf, res.Assignment)
}

// Scenario 4: p cnf 1 2 / 1 0 / -1 0 -> UNSAT.
func TestSolveScenarioUNSAT(t *testing.T) {
	cnf, err := Parse(strings.NewReader("p cnf 1 2\n1 0\n-1 0\n"))
	require.NoError(t, err)

	res := Solve(cnf)
	assert.False(t, res.Satisfiable)
}

func TestSolveSoundnessAndCompletenessExhaustive(t *testing.T) {
	// (x1 | x2) & (!x1 | x3) & (!x2 | !x3): satisfiable, verify by brute
	// force over all 8 assignments that Solve's verdict matches.
	cnf, err := Parse(strings.NewReader("p cnf 3 3\n1 2 0\n-1 3 0\n-2 -3 0\n"))
	require.NoError(t, err)

	wantSAT := bruteForceSAT(cnf)
	res := Solve(cnf)
	require.Equal(t, wantSAT, res.Satisfiable)
	if res.Satisfiable {
		assertSatisfies(t, cnf, res.Assignment)
	}
}

func assertSatisfies(t *testing.T, cnf CNF, assignment []State) {
	t.Helper()
	for _, c := range cnf.Clauses {
		ok := false
		for _, lit := range c.Lits {
			v := lit
			neg := v < 0
			if neg {
				v = -v
			}
			val := assignment[v] == True
			if neg {
				val = !val
			}
			if val {
				ok = true
				break
			}
		}
		assert.True(t, ok, "clause %v not satisfied by %v", c.Lits, assignment)
	}
}

func bruteForceSAT(cnf CNF) bool {
	n := cnf.NVars
	for mask := 0; mask < (1 << n); mask++ {
		ok := true
		for _, c := range cnf.Clauses {
			clauseOK := false
			for _, lit := range c.Lits {
				v := lit
				neg := v < 0
				if neg {
					v = -v
				}
				bit := mask&(1<<(v-1)) != 0
				if neg {
					bit = !bit
				}
				if bit {
					clauseOK = true
					break
				}
			}
			if !clauseOK {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
