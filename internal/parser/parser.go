// Package parser implements a shunting-yard algorithm: it turns a
// dialect's token stream into a postfix ast.Formula. Grounded on
// pkgs/parser.Parse's tokenize-then-walk entry point and
// errors-collected-not-thrown discipline, with the actual algorithm
// rebuilt from the original bdd.cpp / my_ltl.cpp RPN-shunting constructors.
package parser

import (
	"strconv"

	"github.com/logicforge/logicforge/internal/ast"
	"github.com/logicforge/logicforge/internal/diag"
	"github.com/logicforge/logicforge/internal/lexer"
	"github.com/logicforge/logicforge/internal/token"
)

// opEntry is one operator-stack slot: either a '(' marker or a pending
// operator kind awaiting its operands.
type opEntry struct {
	paren bool
	kind  ast.Kind
}

// Parser holds the mutable state of one shunting-yard pass.
type Parser struct {
	dialect token.Dialect
	input   string

	nodes      []ast.Node
	valueStack []ast.Span
	opStack    []opEntry

	errors []*diag.Error
}

// Parse tokenizes and parses text under the given dialect, returning the
// resulting Formula and any diagnostics. Parsing never aborts on a
// ParseError: bad tokens are skipped and parsing resumes best-effort.
func Parse(text string, dialect token.Dialect) (ast.Formula, []*diag.Error) {
	lx := lexer.New(text, dialect)
	toks := lx.Tokenize()

	p := &Parser{dialect: dialect, input: text}
	p.errors = append(p.errors, lx.Errors...)
	p.opStack = append(p.opStack, opEntry{paren: true}) // artificial outer '('

	for _, tok := range toks {
		if tok.Type == token.EOF {
			break
		}
		p.step(tok)
	}
	p.finish()

	return ast.Formula{Nodes: p.nodes}, p.errors
}

func (p *Parser) step(tok token.Token) {
	switch tok.Type {
	case token.LPAREN:
		p.opStack = append(p.opStack, opEntry{paren: true})
	case token.RPAREN:
		p.closeParen(tok)
	case token.VARIABLE:
		idx := 0
		if len(tok.Value) > 1 {
			if n, err := strconv.Atoi(tok.Value[1:]); err == nil {
				idx = n
			}
		}
		p.pushLeaf(ast.Node{Kind: ast.Var, VarIndex: idx})
	case token.ATOM:
		p.pushLeaf(ast.Node{Kind: ast.Atom, AtomName: tok.Value})
	case token.NOT:
		p.pushPrefix(ast.Not)
	case token.NEXT:
		p.pushPrefix(ast.X)
	case token.FUTURE:
		p.pushPrefix(ast.F)
	case token.GLOBAL:
		p.pushPrefix(ast.G)
	case token.AND:
		p.pushBinary(ast.And, tok)
	case token.OR:
		p.pushBinary(ast.Or, tok)
	case token.XOR:
		p.pushBinary(ast.Xor, tok)
	case token.EQUIV:
		p.pushBinary(ast.Eq, tok)
	case token.IMPL:
		p.pushBinary(ast.Impl, tok)
	case token.UNTIL:
		p.pushBinary(ast.U, tok)
	case token.RELEASE:
		p.pushBinary(ast.R, tok)
	case token.ILLEGAL:
		// already recorded by the lexer; nothing to do here.
	}
}

// precedence returns the binding strength of a binary operator kind, per
// a seven-tier table (atoms/parens are tier 7 and never reach here;
// prefix unaries are tier 5, handled separately in pushPrefix).
func precedence(k ast.Kind) int {
	switch k {
	case ast.Impl, ast.Eq, ast.U, ast.R:
		return 1
	case ast.Xor:
		return 2
	case ast.Or:
		return 3
	case ast.And:
		return 4
	case ast.Not, ast.X, ast.F, ast.G:
		return 5
	default:
		return 0
	}
}

func isRightAssoc(k ast.Kind) bool {
	switch k {
	case ast.Impl, ast.Eq, ast.U, ast.R:
		return true
	default:
		return false
	}
}

func (p *Parser) pushLeaf(n ast.Node) {
	idx := len(p.nodes)
	n.Ind = ast.Span{Start: idx, End: idx + 1}
	p.nodes = append(p.nodes, n)
	p.valueStack = append(p.valueStack, n.Ind)
}

func (p *Parser) pushPrefix(k ast.Kind) {
	p.opStack = append(p.opStack, opEntry{kind: k})
}

// pushBinary pops operators that bind at least as tightly as k (strictly
// tighter for k's right-associative tier) before pushing k itself, the
// classic shunting-yard precedence-climbing step.
func (p *Parser) pushBinary(k ast.Kind, tok token.Token) {
	for len(p.opStack) > 0 {
		top := p.opStack[len(p.opStack)-1]
		if top.paren {
			break
		}
		topPrec, kPrec := precedence(top.kind), precedence(k)
		if topPrec > kPrec || (topPrec == kPrec && !isRightAssoc(k)) {
			p.opStack = p.opStack[:len(p.opStack)-1]
			p.resolve(top.kind)
			continue
		}
		break
	}
	if len(p.valueStack) == 0 {
		p.errorAt(tok, "binary operator with no left operand")
	}
	p.opStack = append(p.opStack, opEntry{kind: k})
}

func (p *Parser) closeParen(tok token.Token) {
	for len(p.opStack) > 0 && !p.opStack[len(p.opStack)-1].paren {
		top := p.opStack[len(p.opStack)-1]
		p.opStack = p.opStack[:len(p.opStack)-1]
		p.resolve(top.kind)
	}
	if len(p.opStack) <= 1 {
		// Only the artificial sentinel remains (or stack is empty): no
		// matching '(' for this ')'.
		p.errorAt(tok, "unmatched closing parenthesis")
		return
	}
	p.opStack = p.opStack[:len(p.opStack)-1] // discard the matched '('
}

// finish drains any remaining operators once the token stream is
// exhausted, treating end-of-input as an implicit closing of the
// artificial outer parenthesis.
func (p *Parser) finish() {
	for len(p.opStack) > 0 && !p.opStack[len(p.opStack)-1].paren {
		top := p.opStack[len(p.opStack)-1]
		p.opStack = p.opStack[:len(p.opStack)-1]
		p.resolve(top.kind)
	}
	if len(p.opStack) > 1 {
		p.errors = append(p.errors, diag.New(diag.Parse, "unmatched opening parenthesis"))
	}
	if len(p.valueStack) == 0 {
		// Empty or fully-malformed input: synthesize a harmless constant
		// so downstream engines always receive a non-empty Formula.
		p.pushLeaf(ast.Node{Kind: ast.Const, BoolValue: false})
	}
}

func (p *Parser) resolve(k ast.Kind) {
	if k.IsUnary() {
		if len(p.valueStack) < 1 {
			return
		}
		operand := p.valueStack[len(p.valueStack)-1]
		p.valueStack = p.valueStack[:len(p.valueStack)-1]
		idx := len(p.nodes)
		n := ast.Node{Kind: k, Arg1: operand, Arg2: operand, Ind: ast.Span{Start: operand.Start, End: idx + 1}}
		p.nodes = append(p.nodes, n)
		p.valueStack = append(p.valueStack, n.Ind)
		return
	}
	if len(p.valueStack) < 2 {
		return
	}
	arg2 := p.valueStack[len(p.valueStack)-1]
	arg1 := p.valueStack[len(p.valueStack)-2]
	p.valueStack = p.valueStack[:len(p.valueStack)-2]
	idx := len(p.nodes)
	n := ast.Node{Kind: k, Arg1: arg1, Arg2: arg2, Ind: ast.Span{Start: arg1.Start, End: idx + 1}}
	p.nodes = append(p.nodes, n)
	p.valueStack = append(p.valueStack, n.Ind)
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	p.errors = append(p.errors, diag.New(diag.Parse, msg).
		WithPosition(diag.Position{Line: tok.Line, Column: tok.Column}, p.input))
}
