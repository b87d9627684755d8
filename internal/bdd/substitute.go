package bdd

import "github.com/logicforge/logicforge/internal/ast"

// subVal is one entry of substitute's evaluation stack: either a folded
// boolean (isConst) or the still-symbolic span of a surviving subformula.
// Grounded on bdd.cpp's SubNode{SUBST,SUBFORMULA} tagged union.
type subVal struct {
	isConst bool
	value   bool
	span    ast.Span // half-open, valid when !isConst
}

// substitute sets variable n to b throughout f, folding every operator it
// can and leaving the rest of the postfix vector untouched, in one linear
// pass. A fully-collapsed result is returned as a
// single-node Const formula, matching Formula::substitute's own
// single-Node-vector return for that case.
func substitute(f ast.Formula, n int, b bool) ast.Formula {
	nodes := f.Nodes
	work := make([]ast.Node, len(nodes))
	copy(work, nodes)
	skip := make([]bool, len(nodes))

	var stack []subVal

	for i, orig := range nodes {
		switch {
		case orig.Kind == ast.Var:
			if orig.VarIndex == n {
				stack = append(stack, subVal{isConst: true, value: b})
				skip[i] = true
			} else {
				stack = append(stack, subVal{span: ast.Span{Start: i, End: i + 1}})
			}

		case orig.Kind == ast.Not:
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.isConst {
				stack = append(stack, subVal{isConst: true, value: !top.value})
				skip[i] = true
			} else {
				stack = append(stack, subVal{span: ast.Span{Start: top.span.Start, End: i + 1}})
			}

		default:
			arg2 := stack[len(stack)-1]
			arg1 := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, foldBinary(work, skip, i, orig.Kind, arg1, arg2))
		}
	}

	top := stack[len(stack)-1]
	if top.isConst {
		return ast.Formula{Nodes: []ast.Node{{Kind: ast.Const, BoolValue: top.value}}}
	}

	out := make([]ast.Node, 0, len(work))
	for i, n := range work {
		if !skip[i] {
			out = append(out, n)
		}
	}
	return ast.Formula{Nodes: out}
}

func markSkipped(skip []bool, span ast.Span) {
	for j := span.Start; j < span.End; j++ {
		skip[j] = true
	}
}

// foldBinary applies one binary operator's substitution rule (spec
// §4.3.1's absorption table) and returns the resulting stack entry. i is
// the operator's own index in work/skip.
func foldBinary(work []ast.Node, skip []bool, i int, k ast.Kind, arg1, arg2 subVal) subVal {
	if arg1.isConst && arg2.isConst {
		skip[i] = true
		return subVal{isConst: true, value: foldConst(k, arg1.value, arg2.value)}
	}

	if !arg1.isConst && !arg2.isConst {
		return subVal{span: ast.Span{Start: arg1.span.Start, End: i + 1}}
	}

	if k == ast.Impl {
		switch {
		case arg1.isConst && arg1.value: // Impl(True, phi) = phi
			skip[i] = true
			return arg2
		case arg1.isConst && !arg1.value: // Impl(False, phi) = True
			markSkipped(skip, arg2.span)
			skip[i] = true
			return subVal{isConst: true, value: true}
		case arg2.isConst && arg2.value: // Impl(phi, True) = True
			markSkipped(skip, arg1.span)
			skip[i] = true
			return subVal{isConst: true, value: true}
		default: // Impl(phi, False) = Not(phi)
			work[i] = ast.Node{Kind: ast.Not}
			return subVal{span: ast.Span{Start: arg1.span.Start, End: i + 1}}
		}
	}

	// Commutative operators: normalize so cst holds the constant side and
	// sym the surviving subformula side.
	cst, sym := arg1, arg2
	if !cst.isConst {
		cst, sym = arg2, arg1
	}

	switch k {
	case ast.And:
		if cst.value {
			skip[i] = true
			return sym
		}
		markSkipped(skip, sym.span)
		skip[i] = true
		return subVal{isConst: true, value: false}
	case ast.Or:
		if cst.value {
			markSkipped(skip, sym.span)
			skip[i] = true
			return subVal{isConst: true, value: true}
		}
		skip[i] = true
		return sym
	case ast.Xor:
		if cst.value { // Xor(True, phi) = Not(phi)
			work[i] = ast.Node{Kind: ast.Not}
			return subVal{span: ast.Span{Start: sym.span.Start, End: i + 1}}
		}
		skip[i] = true
		return sym
	case ast.Eq:
		if !cst.value { // Eq(False, phi) = Not(phi)
			work[i] = ast.Node{Kind: ast.Not}
			return subVal{span: ast.Span{Start: sym.span.Start, End: i + 1}}
		}
		skip[i] = true
		return sym
	}
	panic("bdd: substitute: unexpected operator kind")
}

func foldConst(k ast.Kind, a, b bool) bool {
	switch k {
	case ast.And:
		return a && b
	case ast.Or:
		return a || b
	case ast.Xor:
		return a != b
	case ast.Eq:
		return a == b
	case ast.Impl:
		return !a || b
	default:
		panic("bdd: substitute: unexpected operator kind")
	}
}
