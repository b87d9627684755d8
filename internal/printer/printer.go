// Package printer implements a postfix pretty-printer: it walks a
// Formula's postfix vector rebuilding infix text with
// precedence-minimal parenthesization. Grounded node-for-node on the
// original Formula::operator<< (bdd.cpp) and LTL::operator<< (my_ltl.cpp),
// generalized into one table-driven walk per dialect.
package printer

import (
	"strconv"

	"github.com/logicforge/logicforge/internal/ast"
	"github.com/logicforge/logicforge/internal/token"
)

// entry is one frame of the printer's (text, level) stack; level is the
// precedence level the rendered text was produced at, used to decide
// whether a parent must parenthesize it.
type entry struct {
	text  string
	level int
}

// opInfo describes how one operator kind renders: its own emitted
// precedence level, the level above which an operand must be
// parenthesized, and the infix (or, for LTL's temporal unaries, call-style
// prefix) spelling.
type opInfo struct {
	level     int
	wrapAbove int
	symbol    string
	call      bool // render as "SYMBOL(operand)" unconditionally, LTL F/G/X style
}

var bddOps = map[ast.Kind]opInfo{
	ast.Not:  {level: 1, wrapAbove: 1, symbol: "!"},
	ast.And:  {level: 2, wrapAbove: 2, symbol: "&"},
	ast.Or:   {level: 3, wrapAbove: 3, symbol: "|"},
	ast.Xor:  {level: 4, wrapAbove: 4, symbol: "^"},
	ast.Impl: {level: 5, wrapAbove: 4, symbol: "->"},
	ast.Eq:   {level: 5, wrapAbove: 4, symbol: "="},
}

var ltlOps = map[ast.Kind]opInfo{
	ast.Not:  {level: 1, wrapAbove: 1, symbol: "!"},
	ast.And:  {level: 2, wrapAbove: 2, symbol: "&&"},
	ast.Or:   {level: 3, wrapAbove: 3, symbol: "||"},
	ast.Impl: {level: 4, wrapAbove: 3, symbol: "->"},
	ast.U:    {level: 4, wrapAbove: 3, symbol: "U"},
	ast.R:    {level: 4, wrapAbove: 3, symbol: "R"},
	ast.X:    {level: 1, call: true, symbol: "X"},
	ast.F:    {level: 1, call: true, symbol: "F"},
	ast.G:    {level: 1, call: true, symbol: "G"},
}

// Print renders f as infix text for the given dialect.
func Print(f ast.Formula, dialect token.Dialect) string {
	ops := bddOps
	if dialect == token.LTL {
		ops = ltlOps
	}

	var stack []entry
	for _, n := range f.Nodes {
		switch n.Kind {
		case ast.Var:
			stack = append(stack, entry{text: "x" + strconv.Itoa(n.VarIndex), level: 0})
		case ast.Atom:
			stack = append(stack, entry{text: n.AtomName, level: 0})
		case ast.Const:
			text := "False"
			if n.BoolValue {
				text = "True"
			}
			stack = append(stack, entry{text: text, level: 0})
		default:
			info := ops[n.Kind]
			if info.call {
				arg := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				stack = append(stack, entry{text: info.symbol + "(" + arg.text + ")", level: info.level})
				continue
			}
			if n.Kind.IsUnary() {
				arg := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				text := wrap(arg, info.wrapAbove)
				stack = append(stack, entry{text: info.symbol + text, level: info.level})
				continue
			}
			arg2 := stack[len(stack)-1]
			arg1 := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			text := wrap(arg1, info.wrapAbove) + " " + info.symbol + " " + wrap(arg2, info.wrapAbove)
			stack = append(stack, entry{text: text, level: info.level})
		}
	}
	if len(stack) == 0 {
		return ""
	}
	return stack[len(stack)-1].text
}

func wrap(e entry, threshold int) string {
	if e.level > threshold {
		return "(" + e.text + ")"
	}
	return e.text
}

// PrintDebug renders a Formula's raw postfix node kinds, used by CLI
// --log-level=debug traces rather than production output.
func PrintDebug(f ast.Formula) string {
	s := ""
	for i, n := range f.Nodes {
		if i > 0 {
			s += " "
		}
		s += n.Kind.String()
	}
	return s
}
