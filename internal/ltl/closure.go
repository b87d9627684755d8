package ltl

import "github.com/logicforge/logicforge/internal/ast"

// Entry is one closure record: a non-atom subformula
// identified by operator kind and the indices of its (up to two)
// operands in the combined atoms++closure index space, with neg flags
// absorbing any Not/X chain directly above each operand.
type Entry struct {
	Kind ast.Kind `json:"kind" yaml:"kind"`
	Arg1 int      `json:"arg1" yaml:"arg1"`
	Arg2 int      `json:"arg2" yaml:"arg2"`
	Neg1 bool     `json:"neg1" yaml:"neg1"`
	Neg2 bool     `json:"neg2" yaml:"neg2"`
}

type entryKey struct {
	kind       ast.Kind
	arg1, arg2 int
	neg1, neg2 bool
}

// Closure computes the Fischer-Ladner-style closure of f. It returns the
// deduplicated closure entries plus node2closure, a parallel array
// mapping each node of f to its index in the combined atoms++closure
// space (Not and X nodes map through to their operand's index, since
// neither gets its own entry). Grounded on LTL::make_closure, with the
// original's linear dedup scan replaced by a hash-consing map, and
// arg2's negation-chain walk widened to also skip over X (matching
// arg1's walk — the original only checked Not there, an asymmetry with
// no semantic justification).
func Closure(f ast.Formula, atoms []Atom) ([]Entry, []int) {
	nodes := f.Nodes
	node2closure := make([]int, len(nodes))
	var entries []Entry
	seen := make(map[entryKey]int)

	atomIndex := func(name string, xCount int) int {
		for j, a := range atoms {
			if a.Name == name && a.XCount == xCount {
				return j
			}
		}
		panic("ltl: closure: atom not found, propagate_x/make_atoms invariant violated")
	}

	negChain := func(lastIdx int) (origin int, neg bool) {
		i := lastIdx
		for i >= 0 && (nodes[i].Kind == ast.Not || nodes[i].Kind == ast.X) {
			if nodes[i].Kind == ast.Not {
				neg = !neg
			}
			i--
		}
		return i, neg
	}

	for i, n := range nodes {
		switch n.Kind {
		case ast.Atom:
			node2closure[i] = atomIndex(n.AtomName, n.XCount)
		case ast.Not, ast.X:
			node2closure[i] = node2closure[i-1]
		default:
			arg1Origin, neg1 := negChain(n.Arg1.End - 1)
			arg1 := node2closure[arg1Origin]

			var arg2 int
			var neg2 bool
			if n.Kind == ast.F || n.Kind == ast.G {
				arg2, neg2 = arg1, neg1
			} else {
				arg2Origin, n2 := negChain(n.Arg2.End - 1)
				arg2, neg2 = node2closure[arg2Origin], n2
			}

			if n.Kind == ast.And || n.Kind == ast.Or {
				if arg1 > arg2 {
					arg1, arg2 = arg2, arg1
					neg1, neg2 = neg2, neg1
				}
			}

			key := entryKey{kind: n.Kind, arg1: arg1, arg2: arg2, neg1: neg1, neg2: neg2}
			if idx, ok := seen[key]; ok {
				node2closure[i] = len(atoms) + idx
				continue
			}
			idx := len(entries)
			entries = append(entries, Entry{Kind: n.Kind, Arg1: arg1, Arg2: arg2, Neg1: neg1, Neg2: neg2})
			seen[key] = idx
			node2closure[i] = len(atoms) + idx
		}
	}
	return entries, node2closure
}
