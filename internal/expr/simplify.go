package expr

import "math"

// maxSimplifyPasses caps the rewrite loop; each pass is a full tree walk.
const maxSimplifyPasses = 20

// Simplify applies local rewrite rules until the tree stops changing.
// Constant folding is skipped whenever the folded value would not be finite.
func Simplify(n Node) Node {
	for i := 0; i < maxSimplifyPasses; i++ {
		next := simplifyOnce(n)
		if next.String() == n.String() {
			return next
		}
		n = next
	}
	return n
}

func isNum(n Node, v float64) bool {
	c, ok := n.(*NumNode)
	return ok && c.Val == v
}

// Const returns the value of a subtree with no variables.
func Const(n Node) (float64, bool) {
	if c, ok := n.(*NumNode); ok {
		return c.Val, true
	}
	if DependsOnAny(n) {
		return 0, false
	}
	v, err := n.eval(nil)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DependsOnAny reports whether the subtree references any variable.
func DependsOnAny(n Node) bool {
	switch v := n.(type) {
	case *VarNode:
		return true
	case *UnaryNode:
		return DependsOnAny(v.Child)
	case *BinaryNode:
		return DependsOnAny(v.Left) || DependsOnAny(v.Right)
	case *CallNode:
		return DependsOnAny(v.Arg)
	}
	return false
}

func simplifyOnce(n Node) Node {
	switch v := n.(type) {
	case *UnaryNode:
		child := simplifyOnce(v.Child)
		if inner, ok := child.(*UnaryNode); ok && inner.Op == OpNeg {
			return inner.Child
		}
		if c, ok := child.(*NumNode); ok && c.Name == "" {
			return &NumNode{Val: -c.Val}
		}
		return &UnaryNode{Op: v.Op, Child: child}

	case *BinaryNode:
		l := simplifyOnce(v.Left)
		r := simplifyOnce(v.Right)

		lc, lok := l.(*NumNode)
		rc, rok := r.(*NumNode)
		if lok && rok && lc.Name == "" && rc.Name == "" {
			if folded, err := (&BinaryNode{Op: v.Op, Left: l, Right: r}).eval(nil); err == nil {
				return &NumNode{Val: folded}
			}
		}

		switch v.Op {
		case OpAdd:
			if isNum(l, 0) {
				return r
			}
			if isNum(r, 0) {
				return l
			}
			if rc, ok := r.(*NumNode); ok && rc.Val < 0 {
				return &BinaryNode{Op: OpSub, Left: l, Right: &NumNode{Val: -rc.Val}}
			}
			if u, ok := r.(*UnaryNode); ok && u.Op == OpNeg {
				return &BinaryNode{Op: OpSub, Left: l, Right: u.Child}
			}
		case OpSub:
			if isNum(r, 0) {
				return l
			}
			if isNum(l, 0) {
				return &UnaryNode{Op: OpNeg, Child: r}
			}
			if u, ok := r.(*UnaryNode); ok && u.Op == OpNeg {
				return &BinaryNode{Op: OpAdd, Left: l, Right: u.Child}
			}
		case OpMul:
			if isNum(l, 0) || isNum(r, 0) {
				return &NumNode{Val: 0}
			}
			if isNum(l, 1) {
				return r
			}
			if isNum(r, 1) {
				return l
			}
			if isNum(l, -1) {
				return &UnaryNode{Op: OpNeg, Child: r}
			}
			if isNum(r, -1) {
				return &UnaryNode{Op: OpNeg, Child: l}
			}
			// Constants to the left: x*2 -> 2*x.
			if rok && !lok {
				return &BinaryNode{Op: OpMul, Left: r, Right: l}
			}
		case OpDiv:
			if isNum(r, 1) {
				return l
			}
			if isNum(l, 0) && !isNum(r, 0) {
				return &NumNode{Val: 0}
			}
		case OpPow:
			if isNum(r, 1) {
				return l
			}
			if isNum(r, 0) {
				return &NumNode{Val: 1}
			}
		}
		return &BinaryNode{Op: v.Op, Left: l, Right: r}

	case *CallNode:
		arg := simplifyOnce(v.Arg)
		if c, ok := arg.(*NumNode); ok && c.Name == "" {
			if folded, err := (&CallNode{Fn: v.Fn, Arg: arg}).eval(nil); err == nil && folded == math.Trunc(folded) {
				return &NumNode{Val: folded}
			}
		}
		return &CallNode{Fn: v.Fn, Arg: arg}
	}
	return n
}
