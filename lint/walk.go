// Copyright © 2026 The elmguard authors

package lint

import "github.com/henriquecbuss/elmguard/elm"

// Walk calls fn for every expression node in the tree, depth-first, in
// source order. Only the reference variant matters to the rules in this
// package; every other variant is traversed for the references inside it.
func Walk(expr elm.Expr, fn func(elm.Expr)) {
	if expr == nil {
		return
	}
	fn(expr)
	switch e := expr.(type) {
	case *elm.Apply:
		Walk(e.Fn, fn)
		for _, a := range e.Args {
			Walk(a, fn)
		}
	case *elm.BinOp:
		Walk(e.Left, fn)
		Walk(e.Right, fn)
	case *elm.Negate:
		Walk(e.Operand, fn)
	case *elm.Lambda:
		Walk(e.Body, fn)
	case *elm.Let:
		for _, b := range e.Bindings {
			Walk(b.Body, fn)
		}
		Walk(e.Body, fn)
	case *elm.If:
		Walk(e.Cond, fn)
		Walk(e.Then, fn)
		Walk(e.Else, fn)
	case *elm.Case:
		Walk(e.Subject, fn)
		for _, b := range e.Branches {
			Walk(b.Body, fn)
		}
	case *elm.List:
		for _, el := range e.Elems {
			Walk(el, fn)
		}
	case *elm.Tuple:
		for _, el := range e.Elems {
			Walk(el, fn)
		}
	case *elm.Record:
		for _, f := range e.Fields {
			Walk(f.Value, fn)
		}
	case *elm.RecordUpdate:
		for _, f := range e.Fields {
			Walk(f.Value, fn)
		}
	case *elm.Access:
		Walk(e.Target, fn)
	}
}

// WalkModule walks every declaration body of m in source order.
func WalkModule(m *elm.Module, fn func(elm.Expr)) {
	for _, d := range m.Decls {
		Walk(d.Body, fn)
	}
}
