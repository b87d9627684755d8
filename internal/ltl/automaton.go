package ltl

import "github.com/logicforge/logicforge/internal/ast"

// Transition is one labeled edge of an Automaton: from state From, to
// state To, labeled by the set of present-time ((_, 0)) atoms true in
// the source state.
type Transition struct {
	From  int      `json:"from" yaml:"from"`
	To    int      `json:"to" yaml:"to"`
	Label []string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Automaton is the generalized non-deterministic Büchi automaton the
// translation pipeline produces: labeled transitions, an initial state
// set, and one accepting set per F/G/U/R closure entry.
type Automaton struct {
	NumStates     int          `json:"num_states" yaml:"num_states"`
	Atoms         []Atom       `json:"atoms" yaml:"atoms"`
	Closure       []Entry      `json:"closure" yaml:"closure"`
	Initial       []int        `json:"initial" yaml:"initial"`
	Transitions   []Transition `json:"transitions" yaml:"transitions"`
	AcceptingSets [][]int      `json:"accepting_sets" yaml:"accepting_sets"` // one set of state indices per eventuality/safety closure entry
}

// ToBuchi runs the full translation pipeline (propagate_x, make_atoms,
// make_closure, make_states) and assembles the result into a GNBA. The
// original's make_buchi never got past wiring these stages together
// before its make_states was left unfinished; the assembly below is
// built fresh from the textbook tableau construction.
func ToBuchi(f ast.Formula) (Automaton, error) {
	PropagateX(f)
	atoms := MakeAtoms(f)
	closure, node2closure := Closure(f, atoms)
	states, err := MakeStates(atoms, closure)
	if err != nil {
		return Automaton{}, err
	}

	rootIdx, rootPolarity := rootPolarity(f, node2closure)

	var initial []int
	for i, s := range states {
		if s.Values[rootIdx] == rootPolarity {
			initial = append(initial, i)
		}
	}

	transitions := buildTransitions(states, atoms)
	accepting := buildAcceptingSets(states, closure, len(atoms))

	return Automaton{
		NumStates:     len(states),
		Atoms:         atoms,
		Closure:       closure,
		Initial:       initial,
		Transitions:   transitions,
		AcceptingSets: accepting,
	}, nil
}

// rootPolarity collapses the chain of outer Not/X operators above the
// formula's root into a single (closure index, required value) pair,
// the "initial states" rule: an initial state must assign the root
// node the polarity this chain resolves to.
func rootPolarity(f ast.Formula, node2closure []int) (idx int, required bool) {
	nodes := f.Nodes
	i := len(nodes) - 1
	required = true
	for i >= 0 && (nodes[i].Kind == ast.Not || nodes[i].Kind == ast.X) {
		if nodes[i].Kind == ast.Not {
			required = !required
		}
		i--
	}
	return node2closure[i], required
}

// buildTransitions builds the transition relation: from state i,
// intersect the full state set against every constraint i carries, and
// emit one transition per surviving successor.
func buildTransitions(states []StateRecord, atoms []Atom) []Transition {
	var out []Transition
	for i, s := range states {
		candidates := make([]bool, len(states))
		for j := range candidates {
			candidates[j] = true
		}
		for _, c := range s.Constraints {
			for j, other := range states {
				if !candidates[j] {
					continue
				}
				if other.Values[c.Idx] != c.Value {
					candidates[j] = false
				}
			}
		}
		label := presentAtoms(s, atoms)
		for j, ok := range candidates {
			if ok {
				out = append(out, Transition{From: i, To: j, Label: label})
			}
		}
	}
	return out
}

func presentAtoms(s StateRecord, atoms []Atom) []string {
	var label []string
	for j, a := range atoms {
		if a.XCount == 0 && s.Values[j] {
			label = append(label, a.Name)
		}
	}
	return label
}

// buildAcceptingSets applies the generalized Büchi acceptance rule: for
// each F/G/U/R closure entry c, a state is accepting for c unless it is
// "pending" — c is true while its driving argument is still false (or
// the dual for G/R) — the open-promise case a generalized Büchi
// automaton must not let persist forever.
func buildAcceptingSets(states []StateRecord, closure []Entry, atomCount int) [][]int {
	sets := [][]int{}
	for c, e := range closure {
		if e.Kind != ast.F && e.Kind != ast.G && e.Kind != ast.U && e.Kind != ast.R {
			continue
		}
		global := atomCount + c
		set := []int{}
		for i, s := range states {
			if !isPending(s, e, global) {
				set = append(set, i)
			}
		}
		sets = append(sets, set)
	}
	return sets
}

func isPending(s StateRecord, e Entry, global int) bool {
	val := s.Values[global]
	switch e.Kind {
	case ast.F:
		return val && !applyNeg(s.Values[e.Arg1], e.Neg1)
	case ast.U:
		return val && !applyNeg(s.Values[e.Arg2], e.Neg2)
	case ast.G:
		return !val && applyNeg(s.Values[e.Arg1], e.Neg1)
	case ast.R:
		return !val && applyNeg(s.Values[e.Arg2], e.Neg2)
	default:
		return false
	}
}
