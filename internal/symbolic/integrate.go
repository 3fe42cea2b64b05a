package symbolic

import (
	"github.com/san-kum/odesim/internal/expr"
)

// Integrate returns an antiderivative of n with respect to v. The rule set
// covers polynomials, powers and reciprocals of linear terms, exp/sin/cos
// and their hyperbolic forms of linear arguments, constant multiples and
// sums. ok is false when no rule applies.
func Integrate(n expr.Node, v string) (expr.Node, bool) {
	n = expr.Simplify(n)
	out, ok := integrate(n, v)
	if !ok {
		return nil, false
	}
	return expr.Simplify(out), true
}

func integrate(n expr.Node, v string) (expr.Node, bool) {
	if !expr.DependsOn(n, v) {
		return expr.Mul(n, expr.Var(v)), true
	}
	if p, ok := polyCoeffs(n, v); ok {
		return polyNode(integratePoly(p), v), true
	}

	switch t := n.(type) {
	case *expr.UnaryNode:
		inner, ok := integrate(t.Child, v)
		if !ok {
			return nil, false
		}
		return expr.Neg(inner), true

	case *expr.BinaryNode:
		switch t.Op {
		case expr.OpAdd, expr.OpSub:
			l, ok := integrate(t.Left, v)
			if !ok {
				return nil, false
			}
			r, ok := integrate(t.Right, v)
			if !ok {
				return nil, false
			}
			if t.Op == expr.OpSub {
				return expr.Sub(l, r), true
			}
			return expr.Add(l, r), true

		case expr.OpMul:
			if !expr.DependsOn(t.Left, v) {
				r, ok := integrate(t.Right, v)
				if !ok {
					return nil, false
				}
				return expr.Mul(t.Left, r), true
			}
			if !expr.DependsOn(t.Right, v) {
				l, ok := integrate(t.Left, v)
				if !ok {
					return nil, false
				}
				return expr.Mul(t.Right, l), true
			}

		case expr.OpDiv:
			if !expr.DependsOn(t.Right, v) {
				l, ok := integrate(t.Left, v)
				if !ok {
					return nil, false
				}
				return expr.Div(l, t.Right), true
			}
			if !expr.DependsOn(t.Left, v) {
				// c / u^k is c * u^-k.
				if pow, ok := t.Right.(*expr.BinaryNode); ok && pow.Op == expr.OpPow && !expr.DependsOn(pow.Right, v) {
					inner, ok := integrate(expr.Pow(pow.Left, expr.Neg(pow.Right)), v)
					if !ok {
						return nil, false
					}
					return expr.Mul(t.Left, inner), true
				}
				if a, _, ok := linearIn(t.Right, v); ok {
					return expr.Div(expr.Mul(t.Left, expr.Call("ln", expr.Call("abs", t.Right))), expr.Num(a)), true
				}
			}

		case expr.OpPow:
			if !expr.DependsOn(t.Right, v) {
				a, _, ok := linearIn(t.Left, v)
				if !ok {
					return nil, false
				}
				k, ok := expr.Const(t.Right)
				if !ok {
					return nil, false
				}
				if k == -1 {
					return expr.Div(expr.Call("ln", expr.Call("abs", t.Left)), expr.Num(a)), true
				}
				return expr.Div(expr.Pow(t.Left, expr.Num(k+1)), expr.Num((k+1)*a)), true
			}
			if !expr.DependsOn(t.Left, v) {
				// b^(a*v + c) integrates to b^(...) / (a ln b).
				a, _, ok := linearIn(t.Right, v)
				if !ok {
					return nil, false
				}
				return expr.Div(n, expr.Mul(expr.Num(a), expr.Call("ln", t.Left))), true
			}
		}

	case *expr.CallNode:
		a, _, ok := linearIn(t.Arg, v)
		if !ok {
			return nil, false
		}
		var anti expr.Node
		switch t.Fn {
		case "exp":
			anti = expr.Call("exp", t.Arg)
		case "sin":
			anti = expr.Neg(expr.Call("cos", t.Arg))
		case "cos":
			anti = expr.Call("sin", t.Arg)
		case "sinh":
			anti = expr.Call("cosh", t.Arg)
		case "cosh":
			anti = expr.Call("sinh", t.Arg)
		default:
			return nil, false
		}
		return expr.Div(anti, expr.Num(a)), true
	}
	return nil, false
}
