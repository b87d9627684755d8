// Package dpll implements the DPLL SAT engine: a DIMACS CNF
// parser, a signed-literal assignment representation, and a chronological
// backtracking search. Grounded line-for-line on the original dpll.c —
// the clause sort comparator, the biased Tetrits array, and the
// preallocated frame stack are all carried over, reshaped into Go slices
// and named types instead of raw pointer arithmetic.
package dpll

import (
	"bufio"
	"io"
	"sort"
	"strconv"

	"github.com/logicforge/logicforge/internal/diag"
)

// Clause is one disjunction of signed literals, 1-indexed per DIMACS
// convention (negative = negated variable).
type Clause struct {
	Lits []int `json:"lits" yaml:"lits"`
}

// CNF is a parsed DIMACS instance: NVars variables numbered 1..NVars and a
// set of clauses already sorted per §4.4.2.
type CNF struct {
	NVars   int      `json:"n_vars" yaml:"n_vars"`
	Clauses []Clause `json:"clauses" yaml:"clauses"`
}

// Parse reads a DIMACS CNF document: comment lines starting
// with 'c', a header "p cnf N M", and M clauses of whitespace-separated
// integers terminated by 0.
func Parse(r io.Reader) (CNF, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	var nVars, nClauses int
	headerFound := false

	next := func() (string, bool) {
		for sc.Scan() {
			tok := sc.Text()
			if tok == "" {
				continue
			}
			return tok, true
		}
		return "", false
	}

	for !headerFound {
		tok, ok := next()
		if !ok {
			return CNF{}, diag.New(diag.Parse, "unexpected end of input before DIMACS header")
		}
		if tok == "c" {
			// Comment line: skip remaining tokens by re-splitting on lines
			// would be ideal, but word-splitting already discarded
			// newlines; since 'c' comments only ever precede the header in
			// well-formed input, skip tokens until the next line break is
			// unnecessary here — comment bodies never contain "p".
			for {
				t, ok := next()
				if !ok {
					return CNF{}, diag.New(diag.Parse, "unexpected end of input inside comment")
				}
				if t == "p" {
					tok = t
					break
				}
			}
		}
		if tok != "p" {
			return CNF{}, diag.New(diag.Parse, "malformed DIMACS header: expected 'p'")
		}
		kind, ok := next()
		if !ok || kind != "cnf" {
			return CNF{}, diag.New(diag.Parse, "malformed DIMACS header: expected 'cnf'")
		}
		nv, ok := next()
		if !ok {
			return CNF{}, diag.New(diag.Parse, "malformed DIMACS header: missing variable count")
		}
		nc, ok := next()
		if !ok {
			return CNF{}, diag.New(diag.Parse, "malformed DIMACS header: missing clause count")
		}
		var err error
		if nVars, err = strconv.Atoi(nv); err != nil {
			return CNF{}, diag.Wrap(diag.Parse, "malformed DIMACS header: bad variable count", err)
		}
		if nClauses, err = strconv.Atoi(nc); err != nil {
			return CNF{}, diag.Wrap(diag.Parse, "malformed DIMACS header: bad clause count", err)
		}
		headerFound = true
	}

	clauses := make([]Clause, 0, nClauses)
	var cur []int
	for {
		tok, ok := next()
		if !ok {
			break
		}
		lit, err := strconv.Atoi(tok)
		if err != nil {
			return CNF{}, diag.Wrap(diag.Parse, "malformed literal in clause body", err)
		}
		if lit == 0 {
			clauses = append(clauses, Clause{Lits: cur})
			cur = nil
			if len(clauses) == nClauses {
				break
			}
			continue
		}
		cur = append(cur, lit)
	}
	if len(clauses) != nClauses {
		return CNF{}, diag.New(diag.Parse, "DIMACS header clause count does not match clause body")
	}

	sortClauses(clauses)
	return CNF{NVars: nVars, Clauses: clauses}, nil
}

// sortClauses orders clauses by descending maximum absolute-value
// literal, then ascending size, matching the original's adjacent-swap
// bubble sort exactly but with a stable Go sort.
func sortClauses(clauses []Clause) {
	maxAbs := func(c Clause) int {
		m := 0
		for _, l := range c.Lits {
			a := l
			if a < 0 {
				a = -a
			}
			if a > m {
				m = a
			}
		}
		return m
	}
	sort.SliceStable(clauses, func(i, j int) bool {
		mi, mj := maxAbs(clauses[i]), maxAbs(clauses[j])
		if mi != mj {
			return mi > mj
		}
		return len(clauses[i].Lits) < len(clauses[j].Lits)
	})
}

// State is one variable's truth value under a partial assignment.
type State int

const (
	Unset State = iota
	True
	False
)

func (s State) String() string {
	switch s {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unset"
	}
}

// MarshalJSON renders State as its String() spelling, so CLI JSON output
// reads "true"/"false"/"unset" rather than a bare small integer.
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// MarshalYAML mirrors MarshalJSON for the --format=yaml CLI output.
func (s State) MarshalYAML() (any, error) {
	return s.String(), nil
}

// assignment is the signed-literal array: idx(lit) = lit + nVars biases
// a negative literal into a valid slice index, and
// set writes both polarities in one call so get stays branch-free.
type assignment struct {
	nVars int
	t     []State
}

func newAssignment(nVars int) assignment {
	return assignment{nVars: nVars, t: make([]State, 2*nVars+1)}
}

func (a assignment) idx(lit int) int { return lit + a.nVars }

func (a assignment) get(lit int) State { return a.t[a.idx(lit)] }

func (a assignment) set(lit int) {
	a.t[a.idx(lit)] = True
	a.t[a.idx(-lit)] = False
}

func (a assignment) clone() assignment {
	out := assignment{nVars: a.nVars, t: make([]State, len(a.t))}
	copy(out.t, a.t)
	return out
}

// Result is the outcome of Solve.
type Result struct {
	Satisfiable bool `json:"satisfiable" yaml:"satisfiable"`
	// Assignment[i] is the truth value of variable i (1-indexed; index 0
	// unused), present only when Satisfiable is true.
	Assignment []State `json:"assignment,omitempty" yaml:"assignment,omitempty"`
}

// Solve runs the DPLL search: unit propagation to fixpoint,
// then chronological-backtracking decisions on the lowest-indexed unset
// variable, until the frame stack empties (UNSAT) or a frame propagates
// to SAT.
func Solve(cnf CNF) Result {
	stack := make([]assignment, 1, cnf.NVars+1)
	stack[0] = newAssignment(cnf.NVars)

	for len(stack) > 0 {
		cf := len(stack) - 1
		switch propagate(cnf, stack[cf]) {
		case resSAT:
			return Result{Satisfiable: true, Assignment: extract(cnf, stack[cf])}
		case resUNSAT:
			stack = stack[:cf]
		default:
			newParam := pickLiteral(cnf, stack[cf])
			next := stack[cf].clone()
			stack[cf].set(-newParam)
			next.set(newParam)
			stack = append(stack, next)
		}
	}
	return Result{Satisfiable: false}
}

type propResult int

const (
	resUNKNOWN propResult = iota
	resSAT
	resUNSAT
)

// propagate runs unit propagation to a fixpoint over one frame (spec
// §4.4.4), grounded on dpll.c's prop_one.
func propagate(cnf CNF, a assignment) propResult {
	for {
		changed := false
		allSatisfied := true
		for _, c := range cnf.Clauses {
			unkCount := 0
			var unk int
			satisfied := false
			for _, lit := range c.Lits {
				switch a.get(lit) {
				case True:
					satisfied = true
				case Unset:
					unkCount++
					unk = lit
				}
				if satisfied {
					break
				}
			}
			if satisfied {
				continue
			}
			if unkCount == 0 {
				return resUNSAT
			}
			if unkCount == 1 {
				a.set(unk)
				changed = true
			} else {
				allSatisfied = false
			}
		}
		if allSatisfied {
			return resSAT
		}
		if !changed {
			return resUNKNOWN
		}
	}
}

// extract reads out the 1-indexed variable assignment (index 0 unused),
// emitting the assignment variable-by-variable.
func extract(cnf CNF, a assignment) []State {
	out := make([]State, cnf.NVars+1)
	for i := 1; i <= cnf.NVars; i++ {
		out[i] = a.get(i)
	}
	return out
}

// pickLiteral chooses the lowest-indexed Unset variable, a simple
// ordering heuristic grounded on dpll.c's calc_param.
func pickLiteral(cnf CNF, a assignment) int {
	for i := 1; i <= cnf.NVars; i++ {
		if a.get(i) == Unset {
			return i
		}
	}
	panic("dpll: pickLiteral called on a fully-assigned frame")
}
