package symbolic

import (
	"math"

	"github.com/san-kum/odesim/internal/expr"
)

const maxPolyDegree = 12

// polyCoeffs returns the ascending coefficients of n as a polynomial in v.
// Coefficients must fold to numbers; any other free variable fails.
func polyCoeffs(n expr.Node, v string) ([]float64, bool) {
	if !expr.DependsOn(n, v) {
		c, ok := expr.Const(n)
		if !ok {
			return nil, false
		}
		return []float64{c}, true
	}

	switch t := n.(type) {
	case *expr.VarNode:
		return []float64{0, 1}, true

	case *expr.UnaryNode:
		p, ok := polyCoeffs(t.Child, v)
		if !ok {
			return nil, false
		}
		return scalePoly(p, -1), true

	case *expr.BinaryNode:
		switch t.Op {
		case expr.OpAdd, expr.OpSub:
			l, ok := polyCoeffs(t.Left, v)
			if !ok {
				return nil, false
			}
			r, ok := polyCoeffs(t.Right, v)
			if !ok {
				return nil, false
			}
			if t.Op == expr.OpSub {
				r = scalePoly(r, -1)
			}
			return addPoly(l, r), true

		case expr.OpMul:
			l, ok := polyCoeffs(t.Left, v)
			if !ok {
				return nil, false
			}
			r, ok := polyCoeffs(t.Right, v)
			if !ok {
				return nil, false
			}
			return mulPoly(l, r)

		case expr.OpDiv:
			if expr.DependsOn(t.Right, v) {
				return nil, false
			}
			c, ok := expr.Const(t.Right)
			if !ok || c == 0 {
				return nil, false
			}
			l, ok := polyCoeffs(t.Left, v)
			if !ok {
				return nil, false
			}
			return scalePoly(l, 1/c), true

		case expr.OpPow:
			k, ok := expr.Const(t.Right)
			if !ok || k < 0 || k != math.Trunc(k) || k > maxPolyDegree {
				return nil, false
			}
			base, ok := polyCoeffs(t.Left, v)
			if !ok {
				return nil, false
			}
			out := []float64{1}
			for i := 0; i < int(k); i++ {
				if out, ok = mulPoly(out, base); !ok {
					return nil, false
				}
			}
			return out, true
		}
	}
	return nil, false
}

func scalePoly(p []float64, s float64) []float64 {
	out := make([]float64, len(p))
	for i, c := range p {
		out[i] = c * s
	}
	return out
}

func addPoly(a, b []float64) []float64 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]float64, len(a))
	copy(out, a)
	for i, c := range b {
		out[i] += c
	}
	return out
}

func mulPoly(a, b []float64) ([]float64, bool) {
	if len(a)+len(b)-2 > maxPolyDegree {
		return nil, false
	}
	out := make([]float64, len(a)+len(b)-1)
	for i, ca := range a {
		for j, cb := range b {
			out[i+j] += ca * cb
		}
	}
	return out, true
}

func evalPoly(p []float64, x float64) float64 {
	var acc float64
	for i := len(p) - 1; i >= 0; i-- {
		acc = acc*x + p[i]
	}
	return acc
}

func integratePoly(p []float64) []float64 {
	out := make([]float64, len(p)+1)
	for k, c := range p {
		out[k+1] = c / float64(k+1)
	}
	return out
}

// linearIn reports n = a*v + b with a != 0.
func linearIn(n expr.Node, v string) (a, b float64, ok bool) {
	p, ok := polyCoeffs(n, v)
	if !ok || len(p) > 2 {
		return 0, 0, false
	}
	for len(p) < 2 {
		p = append(p, 0)
	}
	if p[1] == 0 {
		return 0, 0, false
	}
	return p[1], p[0], true
}

// polyNode builds the tree for p, highest degree first.
func polyNode(p []float64, v string) expr.Node {
	var acc expr.Node
	for k := len(p) - 1; k >= 0; k-- {
		if p[k] == 0 {
			continue
		}
		var term expr.Node
		switch k {
		case 0:
			term = expr.Num(p[k])
		case 1:
			term = expr.Mul(expr.Num(p[k]), expr.Var(v))
		default:
			term = expr.Mul(expr.Num(p[k]), expr.Pow(expr.Var(v), expr.Num(float64(k))))
		}
		if acc == nil {
			acc = term
		} else {
			acc = expr.Add(acc, term)
		}
	}
	if acc == nil {
		return expr.Num(0)
	}
	return expr.Simplify(acc)
}
