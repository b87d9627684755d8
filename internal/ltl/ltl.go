// Package ltl implements the LTL-to-GNBA translator: X-propagation,
// atom and closure construction, state enumeration, and generalized
// Büchi automaton assembly. Grounded on my_ltl.cpp's
// propagate_x/make_atoms/make_closure for the first three stages; the
// state-enumeration and automaton-assembly stages are built fresh from
// the textbook tableau construction the original source's make_states
// never finished.
package ltl

import "github.com/logicforge/logicforge/internal/ast"

// Atom is one distinct (name, x-depth) pair produced by MakeAtoms.
type Atom struct {
	Name   string `json:"name" yaml:"name"`
	XCount int    `json:"x_count" yaml:"x_count"`
}

// PropagateX ensures every atom beneath k nested X operators ends with
// XCount == k. It resets every atom's count before accumulating, so a
// second call is a no-op on top of the first (PropagateX is idempotent).
func PropagateX(f ast.Formula) {
	for i := range f.Nodes {
		if f.Nodes[i].Kind == ast.Atom {
			f.Nodes[i].XCount = 0
		}
	}
	for _, n := range f.Nodes {
		if n.Kind != ast.X {
			continue
		}
		for j := n.Arg1.Start; j < n.Arg1.End; j++ {
			if f.Nodes[j].Kind == ast.Atom {
				f.Nodes[j].XCount++
			}
		}
	}
}

// MakeAtoms finds, for each distinct atom name, the maximum x-depth it
// appears at and expands into one Atom per depth 0..max, in first-seen
// name order.
func MakeAtoms(f ast.Formula) []Atom {
	var names []string
	maxCount := map[string]int{}
	for _, n := range f.Nodes {
		if n.Kind != ast.Atom {
			continue
		}
		if _, ok := maxCount[n.AtomName]; !ok {
			names = append(names, n.AtomName)
		}
		if n.XCount > maxCount[n.AtomName] {
			maxCount[n.AtomName] = n.XCount
		}
	}
	var atoms []Atom
	for _, name := range names {
		for k := 0; k <= maxCount[name]; k++ {
			atoms = append(atoms, Atom{Name: name, XCount: k})
		}
	}
	return atoms
}

func applyNeg(v, neg bool) bool {
	if neg {
		return !v
	}
	return v
}
