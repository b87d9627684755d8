package ltl

import (
	"github.com/logicforge/logicforge/internal/ast"
	"github.com/logicforge/logicforge/internal/diag"
)

// maxAtoms bounds the state space to one machine word's worth of bits,
// matching the original's `sizeof(unsigned long) * 8` guard.
const maxAtoms = 63

// Constraint restricts which states may follow the one that produced it:
// a valid successor's column Idx (in the combined atoms++closure space)
// must equal Value.
type Constraint struct {
	Idx   int  `json:"idx" yaml:"idx"`
	Value bool `json:"value" yaml:"value"`
}

// StateRecord is one enumerated tableau state: a full truth assignment
// over atoms++closure, plus the constraints its successor must satisfy.
type StateRecord struct {
	Values      []bool       `json:"values" yaml:"values"`
	Constraints []Constraint `json:"constraints" yaml:"constraints"`
}

type workItem struct {
	values      []bool
	constraints []Constraint
	idx         int // next closure entry (local index) to resolve
}

func (w workItem) clone() workItem {
	values := make([]bool, len(w.values))
	copy(values, w.values)
	constraints := make([]Constraint, len(w.constraints))
	copy(constraints, w.constraints)
	return workItem{values: values, constraints: constraints, idx: w.idx}
}

// MakeStates enumerates every atom assignment, resolves each closure
// entry in dependency order (splitting the work stack at every F/G/U/R
// entry whose forced branch does not apply), and attaches the X-depth
// linking constraints to each finished state.
func MakeStates(atoms []Atom, closure []Entry) ([]StateRecord, error) {
	if len(atoms) > maxAtoms {
		return nil, diag.New(diag.Capacity, "atom count exceeds the supported machine-word state-space limit").
			WithContext("atoms", len(atoms))
	}

	predOf := atomXPredecessors(atoms)
	total := len(atoms) + len(closure)

	var stack []workItem
	for mask := 0; mask < (1 << len(atoms)); mask++ {
		values := make([]bool, total)
		for j := range atoms {
			values[j] = mask&(1<<j) != 0
		}
		stack = append(stack, workItem{values: values, idx: 0})
	}

	var results []StateRecord
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.idx == len(closure) {
			results = append(results, finalizeState(item, atoms, predOf))
			continue
		}

		stack = resolveEntry(stack, item, closure[item.idx], len(atoms)+item.idx)
	}
	return results, nil
}

// resolveEntry resolves one closure entry for item, pushing either the
// single deterministic continuation or both branches of a
// nondeterministic split back onto stack.
func resolveEntry(stack []workItem, item workItem, e Entry, global int) []workItem {
	arg1 := applyNeg(item.values[e.Arg1], e.Neg1)

	deterministic := func(val bool) []workItem {
		item.values[global] = val
		item.idx++
		return append(stack, item)
	}
	split := func() []workItem {
		no := item.clone()
		no.values[global] = false
		no.idx++

		yes := item.clone()
		yes.values[global] = true
		yes.constraints = append(yes.constraints, Constraint{Idx: global, Value: true})
		yes.idx++
		return append(append(stack, no), yes)
	}

	switch e.Kind {
	case ast.And:
		return deterministic(arg1 && applyNeg(item.values[e.Arg2], e.Neg2))
	case ast.Or:
		return deterministic(arg1 || applyNeg(item.values[e.Arg2], e.Neg2))
	case ast.Impl:
		return deterministic(!arg1 || applyNeg(item.values[e.Arg2], e.Neg2))
	case ast.F:
		if arg1 {
			return deterministic(true)
		}
		return split()
	case ast.G:
		if !arg1 {
			return deterministic(false)
		}
		return split()
	case ast.U:
		psi := applyNeg(item.values[e.Arg2], e.Neg2)
		if psi {
			return deterministic(true)
		}
		if !arg1 {
			return deterministic(false)
		}
		return split()
	case ast.R:
		psi := applyNeg(item.values[e.Arg2], e.Neg2)
		if !psi {
			return deterministic(false)
		}
		if arg1 {
			return deterministic(true)
		}
		return split()
	default:
		panic("ltl: resolveEntry: closure entry with unexpected kind")
	}
}

func atomXPredecessors(atoms []Atom) []int {
	pred := make([]int, len(atoms))
	for j, a := range atoms {
		pred[j] = -1
		if a.XCount == 0 {
			continue
		}
		for k, b := range atoms {
			if b.Name == a.Name && b.XCount == a.XCount-1 {
				pred[j] = k
				break
			}
		}
	}
	return pred
}

func finalizeState(item workItem, atoms []Atom, predOf []int) StateRecord {
	constraints := make([]Constraint, len(item.constraints), len(item.constraints)+len(atoms))
	copy(constraints, item.constraints)
	for j := range atoms {
		if predOf[j] < 0 {
			continue
		}
		constraints = append(constraints, Constraint{Idx: predOf[j], Value: item.values[j]})
	}
	return StateRecord{Values: item.values, Constraints: constraints}
}
