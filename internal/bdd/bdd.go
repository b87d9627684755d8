// Package bdd implements the BDD engine: simplification under partial
// assignment and Shannon expansion with hash-consing, producing a
// Reduced Ordered Binary Decision Diagram. Grounded directly on the
// original Formula::substitute and Formula::apply in bdd.cpp, translated
// from its stack-of-tagged-unions substitution pass into the same
// algorithm over ast.Node.
package bdd

import (
	"strconv"

	"github.com/logicforge/logicforge/internal/ast"
)

// Node is one entry of the output BDD: position 0 is the "0"
// terminal, position 1 is the "1" terminal, both self-looping; every
// other entry decides on x[Var] with Then/Else pointing at lower or equal
// indices of already-built nodes.
type Node struct {
	Label string `json:"label" yaml:"label"`
	Then  int    `json:"then" yaml:"then"`
	Else  int    `json:"else" yaml:"else"`
	Var   int    `json:"var" yaml:"var"`
}

// Build runs Shannon expansion over f and returns the complete ROBDD node
// table plus the index of its root.
func Build(f ast.Formula) (nodes []Node, root int) {
	b := &builder{
		cons: make(map[consKey]int),
	}
	b.nodes = []Node{
		{Label: "0", Then: 0, Else: 0},
		{Label: "1", Then: 1, Else: 1},
	}
	root = b.apply(f, 0)
	return b.nodes, root
}

type consKey struct {
	v, t, e int
}

type builder struct {
	nodes []Node
	cons  map[consKey]int
}

// apply is the recursive Shannon-expansion step.
func (b *builder) apply(f ast.Formula, nextVar int) int {
	if isConstFormula(f) {
		if f.Nodes[0].BoolValue {
			return 1
		}
		return 0
	}

	t := b.apply(substitute(f, nextVar, true), nextVar+1)
	e := b.apply(substitute(f, nextVar, false), nextVar+1)
	if t == e {
		return t
	}

	key := consKey{v: nextVar, t: t, e: e}
	if idx, ok := b.cons[key]; ok {
		return idx
	}
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Label: varLabel(nextVar), Then: t, Else: e, Var: nextVar})
	b.cons[key] = idx
	return idx
}

func isConstFormula(f ast.Formula) bool {
	return len(f.Nodes) == 1 && f.Nodes[0].Kind == ast.Const
}

func varLabel(i int) string {
	return "x" + strconv.Itoa(i)
}
