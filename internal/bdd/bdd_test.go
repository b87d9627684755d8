package bdd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logicforge/logicforge/internal/ast"
	"github.com/logicforge/logicforge/internal/parser"
	"github.com/logicforge/logicforge/internal/token"
)

// evalBDD walks the diagram from root under assign, terminal 0/1 are the
// fixed first two table entries.
func evalBDD(nodes []Node, root int, assign map[int]bool) bool {
	idx := root
	for {
		if idx == 0 {
			return false
		}
		if idx == 1 {
			return true
		}
		n := nodes[idx]
		if assign[n.Var] {
			idx = n.Then
		} else {
			idx = n.Else
		}
	}
}

// evalFormula is a direct postfix evaluator independent of the
// substitution machinery under test, used as the ground truth oracle.
func evalFormula(f ast.Formula, assign map[int]bool) bool {
	var stack []bool
	for _, n := range f.Nodes {
		switch n.Kind {
		case ast.Const:
			stack = append(stack, n.BoolValue)
		case ast.Var:
			stack = append(stack, assign[n.VarIndex])
		case ast.Not:
			a := stack[len(stack)-1]
			stack[len(stack)-1] = !a
		default:
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-1]
			switch n.Kind {
			case ast.And:
				stack[len(stack)-1] = a && b
			case ast.Or:
				stack[len(stack)-1] = a || b
			case ast.Xor:
				stack[len(stack)-1] = a != b
			case ast.Impl:
				stack[len(stack)-1] = !a || b
			case ast.Eq:
				stack[len(stack)-1] = a == b
			}
		}
	}
	return stack[len(stack)-1]
}

func allAssignments(vars []int, fn func(map[int]bool)) {
	n := len(vars)
	for mask := 0; mask < (1 << n); mask++ {
		assign := make(map[int]bool, n)
		for i, v := range vars {
			assign[v] = mask&(1<<i) != 0
		}
		fn(assign)
	}
}

func TestBuildAgreesWithDirectEvaluation(t *testing.T) {
	inputs := []string{
		"x0",
		"x0 & x1",
		"x0 | x1",
		"x0 ^ x1",
		"x0 -> x1",
		"x0 = x1",
		"!x0",
		"(x0 & x1) | (!x0 & x2)",
		"x0 | !x0",
		"x0 & !x0",
	}
	for _, in := range inputs {
		f, errs := parser.Parse(in, token.BDD)
		require.Empty(t, errs, "input %q", in)

		nodes, root := Build(f)
		allAssignments([]int{0, 1, 2}, func(assign map[int]bool) {
			want := evalFormula(f, assign)
			got := evalBDD(nodes, root, assign)
			assert.Equal(t, want, got, "input %q assign %v", in, assign)
		})
	}
}

func TestBuildTautologyCollapsesToTerminal(t *testing.T) {
	f, errs := parser.Parse("x0 | !x0", token.BDD)
	require.Empty(t, errs)

	nodes, root := Build(f)
	assert.Equal(t, 1, root)
	assert.Len(t, nodes, 2, "a tautology should reduce to just the terminals")
}

func TestBuildContradictionCollapsesToTerminal(t *testing.T) {
	f, errs := parser.Parse("x0 & !x0", token.BDD)
	require.Empty(t, errs)

	nodes, root := Build(f)
	assert.Equal(t, 0, root)
	assert.Len(t, nodes, 2)
}

func TestBuildEmptyInputCollapsesToFalseTerminal(t *testing.T) {
	f, errs := parser.Parse("", token.BDD)
	require.Empty(t, errs)

	nodes, root := Build(f)
	assert.Equal(t, 0, root)
	assert.Len(t, nodes, 2)
}

func TestBuildIsHashConsed(t *testing.T) {
	// x0&x1 | x0&x2 shares the "then x1 else x2 under x0" shape once
	// reduced — verify no duplicate (var,then,else) triples are emitted.
	f, errs := parser.Parse("(x0 & x1) | (x0 & x2) | (!x0 & x1 & x2)", token.BDD)
	require.Empty(t, errs)

	nodes, _ := Build(f)
	seen := map[consKey]bool{}
	for i, n := range nodes {
		if i < 2 {
			continue
		}
		k := consKey{v: n.Var, t: n.Then, e: n.Else}
		require.False(t, seen[k], "duplicate BDD node %+v at %d", n, i)
		seen[k] = true
	}
}
