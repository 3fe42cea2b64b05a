package symbolic

import (
	"github.com/san-kum/odesim/internal/expr"
)

// splitLinear rewrites n as a*y + q where neither a nor q references y.
func splitLinear(n expr.Node, y string) (a, q expr.Node, ok bool) {
	if !expr.DependsOn(n, y) {
		return expr.Num(0), n, true
	}

	switch t := n.(type) {
	case *expr.VarNode:
		return expr.Num(1), expr.Num(0), true

	case *expr.UnaryNode:
		a, q, ok := splitLinear(t.Child, y)
		if !ok {
			return nil, nil, false
		}
		return expr.Neg(a), expr.Neg(q), true

	case *expr.BinaryNode:
		switch t.Op {
		case expr.OpAdd, expr.OpSub:
			la, lq, ok := splitLinear(t.Left, y)
			if !ok {
				return nil, nil, false
			}
			ra, rq, ok := splitLinear(t.Right, y)
			if !ok {
				return nil, nil, false
			}
			if t.Op == expr.OpSub {
				return expr.Sub(la, ra), expr.Sub(lq, rq), true
			}
			return expr.Add(la, ra), expr.Add(lq, rq), true

		case expr.OpMul:
			if !expr.DependsOn(t.Left, y) {
				ra, rq, ok := splitLinear(t.Right, y)
				if !ok {
					return nil, nil, false
				}
				return expr.Mul(t.Left, ra), expr.Mul(t.Left, rq), true
			}
			if !expr.DependsOn(t.Right, y) {
				la, lq, ok := splitLinear(t.Left, y)
				if !ok {
					return nil, nil, false
				}
				return expr.Mul(t.Right, la), expr.Mul(t.Right, lq), true
			}

		case expr.OpDiv:
			if !expr.DependsOn(t.Right, y) {
				la, lq, ok := splitLinear(t.Left, y)
				if !ok {
					return nil, nil, false
				}
				return expr.Div(la, t.Right), expr.Div(lq, t.Right), true
			}
		}
	}
	return nil, nil, false
}

// splitSeparable rewrites n as g * y^p where g does not reference y.
func splitSeparable(n expr.Node, y string) (g expr.Node, p float64, ok bool) {
	if !expr.DependsOn(n, y) {
		return n, 0, true
	}

	switch t := n.(type) {
	case *expr.VarNode:
		return expr.Num(1), 1, true

	case *expr.UnaryNode:
		g, p, ok := splitSeparable(t.Child, y)
		if !ok {
			return nil, 0, false
		}
		return expr.Neg(g), p, true

	case *expr.BinaryNode:
		switch t.Op {
		case expr.OpMul, expr.OpDiv:
			lg, lp, ok := splitSeparable(t.Left, y)
			if !ok {
				return nil, 0, false
			}
			rg, rp, ok := splitSeparable(t.Right, y)
			if !ok {
				return nil, 0, false
			}
			if t.Op == expr.OpDiv {
				return expr.Div(lg, rg), lp - rp, true
			}
			return expr.Mul(lg, rg), lp + rp, true

		case expr.OpPow:
			if expr.DependsOn(t.Right, y) {
				return nil, 0, false
			}
			k, ok := expr.Const(t.Right)
			if !ok {
				return nil, 0, false
			}
			bg, bp, ok := splitSeparable(t.Left, y)
			if !ok {
				return nil, 0, false
			}
			return expr.Pow(bg, expr.Num(k)), bp * k, true
		}

	case *expr.CallNode:
		if t.Fn != "sqrt" {
			return nil, 0, false
		}
		g, p, ok := splitSeparable(t.Arg, y)
		if !ok {
			return nil, 0, false
		}
		return expr.Call("sqrt", g), p / 2, true
	}
	return nil, 0, false
}
