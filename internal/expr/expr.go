package expr

import (
	"fmt"
	"slices"
)

// DefaultVars are the free variables of y' = f(x, y).
var DefaultVars = []string{"x", "y"}

// Expr is a compiled, immutable expression over a fixed list of variables.
type Expr struct {
	src  string
	root Node
	vars []string
}

// Compile parses src into an Expr over vars (x and y when none are given).
func Compile(src string, vars ...string) (*Expr, error) {
	if len(vars) == 0 {
		vars = DefaultVars
	}
	root, err := Parse(src, vars...)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, root: root, vars: slices.Clone(vars)}, nil
}

// New wraps a programmatically built tree. The tree is copied and every
// variable is bound to its slot in vars.
func New(root Node, vars ...string) (*Expr, error) {
	slots := make(map[string]int, len(vars))
	for i, v := range vars {
		slots[v] = i
	}
	bound, err := bind(root, slots)
	if err != nil {
		return nil, err
	}
	return &Expr{src: bound.String(), root: bound, vars: slices.Clone(vars)}, nil
}

func bind(n Node, slots map[string]int) (Node, error) {
	switch v := n.(type) {
	case *NumNode:
		c := *v
		return &c, nil
	case *VarNode:
		slot, ok := slots[v.Name]
		if !ok {
			return nil, &UnknownSymbolError{Name: v.Name, Pos: -1}
		}
		return &VarNode{Name: v.Name, Slot: slot}, nil
	case *UnaryNode:
		child, err := bind(v.Child, slots)
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: v.Op, Child: child}, nil
	case *BinaryNode:
		left, err := bind(v.Left, slots)
		if err != nil {
			return nil, err
		}
		right, err := bind(v.Right, slots)
		if err != nil {
			return nil, err
		}
		return &BinaryNode{Op: v.Op, Left: left, Right: right}, nil
	case *CallNode:
		if !IsFunction(v.Fn) {
			return nil, &UnknownSymbolError{Name: v.Fn, Pos: -1, Func: true}
		}
		arg, err := bind(v.Arg, slots)
		if err != nil {
			return nil, err
		}
		return &CallNode{Fn: v.Fn, Arg: arg}, nil
	}
	return nil, fmt.Errorf("%w: unsupported node %T", ErrSyntax, n)
}

// Eval evaluates the expression with one value per declared variable.
// Failures are *DomainError annotated with the evaluation point.
func (e *Expr) Eval(vals ...float64) (float64, error) {
	if len(vals) != len(e.vars) {
		return 0, fmt.Errorf("%w: want %d, got %d", ErrArity, len(e.vars), len(vals))
	}
	v, err := e.root.eval(vals)
	if err != nil {
		if de, ok := err.(*DomainError); ok {
			de.Vars = e.vars
			de.Vals = slices.Clone(vals)
		}
		return 0, err
	}
	return v, nil
}

// Func returns f(x, y) for a two-variable expression.
func (e *Expr) Func() func(x, y float64) (float64, error) {
	return func(x, y float64) (float64, error) {
		return e.Eval(x, y)
	}
}

// Source returns the text the expression was compiled from.
func (e *Expr) Source() string { return e.src }

// String renders the tree in canonical form.
func (e *Expr) String() string { return e.root.String() }

func (e *Expr) Root() Node { return e.root }

func (e *Expr) Vars() []string { return slices.Clone(e.vars) }

// DependsOn reports whether the expression references the named variable.
func (e *Expr) DependsOn(name string) bool { return DependsOn(e.root, name) }
