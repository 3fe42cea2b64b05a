package symbolic

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/odesim/internal/expr"
)

// ErrSolverCrashed marks a defect inside a strategy. It is never returned
// for an equation that simply has no closed form.
var ErrSolverCrashed = errors.New("symbolic: solver crashed")

// Solution is the outcome of a solve attempt. Found == false is the normal
// "no closed form" result.
type Solution struct {
	Found  bool
	Expr   *expr.Expr
	Method string
}

// Func returns y(x), or nil when nothing was found.
func (s *Solution) Func() func(x float64) (float64, error) {
	if s == nil || !s.Found {
		return nil
	}
	return func(x float64) (float64, error) {
		return s.Expr.Eval(x)
	}
}

func (s *Solution) String() string {
	if s == nil || !s.Found {
		return "no closed form found"
	}
	return "y(x) = " + s.Expr.String()
}

// Problem is one initial value problem y' = F(X, Y), y(X0) = Y0.
type Problem struct {
	F      expr.Node
	X, Y   string
	X0, Y0 float64
}

// Strategy tries to produce a closed-form y(x) for a problem.
type Strategy struct {
	Name string
	Try  func(p Problem) (expr.Node, bool)
}

func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "quadrature", Try: quadrature},
		{Name: "linear", Try: linearConstCoeff},
		{Name: "separable", Try: separable},
	}
}

type Solver struct {
	Strategies []Strategy
}

func New() *Solver {
	return &Solver{Strategies: DefaultStrategies()}
}

// Solve runs the default solver.
func Solve(f *expr.Expr, x0, y0 float64) (*Solution, error) {
	return New().Solve(f, x0, y0)
}

// Solve tries each strategy in order and returns the first candidate that
// passes numeric verification against f.
func (s *Solver) Solve(f *expr.Expr, x0, y0 float64) (sol *Solution, err error) {
	defer func() {
		if r := recover(); r != nil {
			sol = nil
			err = fmt.Errorf("%w: %v", ErrSolverCrashed, r)
		}
	}()

	vars := f.Vars()
	if len(vars) != 2 {
		return nil, fmt.Errorf("symbolic: want f(x, y), got variables %v", vars)
	}
	if math.IsNaN(x0) || math.IsInf(x0, 0) || math.IsNaN(y0) || math.IsInf(y0, 0) {
		return &Solution{}, nil
	}

	p := Problem{
		F:  expr.Simplify(f.Root()),
		X:  vars[0],
		Y:  vars[1],
		X0: x0,
		Y0: y0,
	}
	for _, st := range s.Strategies {
		node, ok := st.Try(p)
		if !ok {
			continue
		}
		candidate, err := expr.New(expr.Simplify(node), p.X)
		if err != nil {
			continue
		}
		if verify(f, candidate, x0, y0) {
			return &Solution{Found: true, Expr: candidate, Method: st.Name}, nil
		}
	}
	return &Solution{}, nil
}

func evalAt(n expr.Node, v string, at float64) (float64, bool) {
	e, err := expr.New(n, v)
	if err != nil {
		return 0, false
	}
	val, err := e.Eval(at)
	if err != nil {
		return 0, false
	}
	return val, true
}

// quadrature handles y' = g(x): y = y0 + G(x) - G(x0).
func quadrature(p Problem) (expr.Node, bool) {
	if expr.DependsOn(p.F, p.Y) {
		return nil, false
	}
	anti, ok := Integrate(p.F, p.X)
	if !ok {
		return nil, false
	}
	g0, ok := evalAt(anti, p.X, p.X0)
	if !ok {
		return nil, false
	}
	return expr.Add(anti, expr.Num(p.Y0-g0)), true
}

// linearConstCoeff handles y' = a*y + q(x) with constant a and polynomial
// q. The particular solution is a polynomial of the same degree.
func linearConstCoeff(p Problem) (expr.Node, bool) {
	a, q, ok := splitLinear(p.F, p.Y)
	if !ok {
		return nil, false
	}
	ac, ok := expr.Const(expr.Simplify(a))
	if !ok || ac == 0 {
		return nil, false
	}
	qc, ok := polyCoeffs(expr.Simplify(q), p.X)
	if !ok {
		return nil, false
	}

	// p' = a p + q, matched coefficient by coefficient from the top.
	n := len(qc) - 1
	part := make([]float64, n+1)
	part[n] = -qc[n] / ac
	for k := n - 1; k >= 0; k-- {
		part[k] = (float64(k+1)*part[k+1] - qc[k]) / ac
	}

	c := p.Y0 - evalPoly(part, p.X0)
	growth := expr.Call("exp", expr.Mul(expr.Num(ac), expr.Sub(expr.Var(p.X), expr.Num(p.X0))))
	return expr.Add(polyNode(part, p.X), expr.Mul(expr.Num(c), growth)), true
}

// separable handles y' = g(x) * y^n.
func separable(p Problem) (expr.Node, bool) {
	g, n, ok := splitSeparable(p.F, p.Y)
	if !ok || n == 0 {
		return nil, false
	}
	anti, ok := Integrate(g, p.X)
	if !ok {
		return nil, false
	}
	g0, ok := evalAt(anti, p.X, p.X0)
	if !ok {
		return nil, false
	}
	delta := expr.Sub(anti, expr.Num(g0))

	if n == 1 {
		return expr.Mul(expr.Num(p.Y0), expr.Call("exp", delta)), true
	}
	m := 1 - n
	start := math.Pow(p.Y0, m)
	if math.IsNaN(start) || math.IsInf(start, 0) {
		return nil, false
	}
	inner := expr.Add(expr.Num(start), expr.Mul(expr.Num(m), delta))
	return expr.Pow(inner, expr.Num(1/m)), true
}
