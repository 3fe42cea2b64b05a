package expr

import (
	"math"
	"strconv"
	"strings"
)

type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpNeg
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	case OpNeg:
		return "-"
	}
	return "?"
}

// Node is one vertex of the expression tree. Nodes are never mutated once
// they are part of a compiled Expr.
type Node interface {
	String() string
	eval(vals []float64) (float64, error)
}

type NumNode struct {
	Val float64
	// Name is set for named constants so they print as written.
	Name string
}

type VarNode struct {
	Name string
	Slot int
}

type UnaryNode struct {
	Op    Op
	Child Node
}

type BinaryNode struct {
	Op          Op
	Left, Right Node
}

type CallNode struct {
	Fn  string
	Arg Node
}

type mathFunc func(a float64) (float64, string)

// functions is the complete whitelist of callable names.
var functions = map[string]mathFunc{
	"sin":  func(a float64) (float64, string) { return math.Sin(a), "" },
	"cos":  func(a float64) (float64, string) { return math.Cos(a), "" },
	"tan":  func(a float64) (float64, string) { return math.Tan(a), "" },
	"asin": inUnitRange(math.Asin),
	"acos": inUnitRange(math.Acos),
	"atan": func(a float64) (float64, string) { return math.Atan(a), "" },
	"sinh": func(a float64) (float64, string) { return math.Sinh(a), "" },
	"cosh": func(a float64) (float64, string) { return math.Cosh(a), "" },
	"tanh": func(a float64) (float64, string) { return math.Tanh(a), "" },
	"exp":  func(a float64) (float64, string) { return math.Exp(a), "" },
	"log":  positive(math.Log),
	"ln":   positive(math.Log),
	"sqrt": func(a float64) (float64, string) {
		if a < 0 {
			return 0, "argument " + formatNum(a) + " is negative"
		}
		return math.Sqrt(a), ""
	},
	"abs": func(a float64) (float64, string) { return math.Abs(a), "" },
}

func positive(fn func(float64) float64) mathFunc {
	return func(a float64) (float64, string) {
		if a <= 0 {
			return 0, "argument " + formatNum(a) + " is not positive"
		}
		return fn(a), ""
	}
}

func inUnitRange(fn func(float64) float64) mathFunc {
	return func(a float64) (float64, string) {
		if a < -1 || a > 1 {
			return 0, "argument " + formatNum(a) + " outside [-1, 1]"
		}
		return fn(a), ""
	}
}

// IsFunction reports whether name is a whitelisted function.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// FunctionNames returns the whitelist in a stable order.
func FunctionNames() []string {
	return []string{"sin", "cos", "tan", "asin", "acos", "atan", "sinh", "cosh", "tanh", "exp", "log", "ln", "sqrt", "abs"}
}

func finite(op string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domainErr(op, "non-finite result")
	}
	return v, nil
}

func (n *NumNode) eval([]float64) (float64, error) { return n.Val, nil }

func (n *VarNode) eval(vals []float64) (float64, error) { return vals[n.Slot], nil }

func (n *UnaryNode) eval(vals []float64) (float64, error) {
	v, err := n.Child.eval(vals)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n *BinaryNode) eval(vals []float64) (float64, error) {
	l, err := n.Left.eval(vals)
	if err != nil {
		return 0, err
	}
	r, err := n.Right.eval(vals)
	if err != nil {
		return 0, err
	}

	switch n.Op {
	case OpAdd:
		return finite("+", l+r)
	case OpSub:
		return finite("-", l-r)
	case OpMul:
		return finite("*", l*r)
	case OpDiv:
		if r == 0 {
			return 0, domainErr("/", "division by zero")
		}
		return finite("/", l/r)
	case OpPow:
		if l == 0 && r < 0 {
			return 0, domainErr("^", "division by zero")
		}
		if l < 0 && r != math.Trunc(r) {
			return 0, domainErr("^", "negative base "+formatNum(l)+" with fractional exponent")
		}
		return finite("^", math.Pow(l, r))
	}
	return 0, domainErr(n.Op.String(), "unsupported operator")
}

func (n *CallNode) eval(vals []float64) (float64, error) {
	a, err := n.Arg.eval(vals)
	if err != nil {
		return 0, err
	}
	fn, ok := functions[n.Fn]
	if !ok {
		return 0, domainErr(n.Fn, "unknown function")
	}
	v, msg := fn(a)
	if msg != "" {
		return 0, domainErr(n.Fn, msg)
	}
	return finite(n.Fn, v)
}

// Printing. Precedence levels mirror the parser:
// 1 additive, 2 multiplicative, 3 unary, 4 power, 5 atoms.
func prec(n Node) int {
	switch v := n.(type) {
	case *NumNode:
		if v.Val < 0 {
			return 3
		}
		return 5
	case *UnaryNode:
		return 3
	case *BinaryNode:
		switch v.Op {
		case OpAdd, OpSub:
			return 1
		case OpMul, OpDiv:
			return 2
		case OpPow:
			return 4
		}
	}
	return 5
}

func wrap(n Node, paren bool) string {
	if paren {
		return "(" + n.String() + ")"
	}
	return n.String()
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *NumNode) String() string {
	if n.Name != "" {
		return n.Name
	}
	return formatNum(n.Val)
}

func (n *VarNode) String() string { return n.Name }

func (n *UnaryNode) String() string {
	return "-" + wrap(n.Child, prec(n.Child) <= 3)
}

func (n *BinaryNode) String() string {
	p := prec(n)
	var left, right string
	switch n.Op {
	case OpPow:
		left = wrap(n.Left, prec(n.Left) <= p)
		right = wrap(n.Right, prec(n.Right) < 5)
		return left + "^" + right
	case OpAdd, OpMul:
		left = wrap(n.Left, prec(n.Left) < p)
		right = wrap(n.Right, prec(n.Right) < p || (prec(n.Right) == 3 && p >= 1))
	default:
		left = wrap(n.Left, prec(n.Left) < p)
		right = wrap(n.Right, prec(n.Right) <= p || prec(n.Right) == 3)
	}
	var b strings.Builder
	b.WriteString(left)
	b.WriteByte(' ')
	b.WriteString(n.Op.String())
	b.WriteByte(' ')
	b.WriteString(right)
	return b.String()
}

func (n *CallNode) String() string {
	return n.Fn + "(" + n.Arg.String() + ")"
}

// DependsOn reports whether the subtree references the named variable.
func DependsOn(n Node, name string) bool {
	switch v := n.(type) {
	case *VarNode:
		return v.Name == name
	case *UnaryNode:
		return DependsOn(v.Child, name)
	case *BinaryNode:
		return DependsOn(v.Left, name) || DependsOn(v.Right, name)
	case *CallNode:
		return DependsOn(v.Arg, name)
	}
	return false
}

// Constructors used when building trees programmatically. Variables are
// bound to slots later by New.

func Num(v float64) Node          { return &NumNode{Val: v} }
func Var(name string) Node        { return &VarNode{Name: name} }
func Neg(a Node) Node             { return &UnaryNode{Op: OpNeg, Child: a} }
func Add(a, b Node) Node          { return &BinaryNode{Op: OpAdd, Left: a, Right: b} }
func Sub(a, b Node) Node          { return &BinaryNode{Op: OpSub, Left: a, Right: b} }
func Mul(a, b Node) Node          { return &BinaryNode{Op: OpMul, Left: a, Right: b} }
func Div(a, b Node) Node          { return &BinaryNode{Op: OpDiv, Left: a, Right: b} }
func Pow(a, b Node) Node          { return &BinaryNode{Op: OpPow, Left: a, Right: b} }
func Call(fn string, a Node) Node { return &CallNode{Fn: fn, Arg: a} }
