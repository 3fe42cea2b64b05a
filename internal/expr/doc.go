// Package expr compiles right-hand sides of first order ODEs into safe,
// evaluable functions.
//
// Input strings are parsed by a recursive-descent parser into a closed AST:
//
//   - [NumNode]: numeric literal or named constant (pi, e)
//   - [VarNode]: reference to a declared variable (x, y by default)
//   - [UnaryNode]: negation
//   - [BinaryNode]: + - * / ^
//   - [CallNode]: whitelisted elementary function
//
// Nothing else can be expressed, so evaluation can never reach anything but
// float64 arithmetic.
//
// # Example
//
//	f, err := expr.Compile("x + sin(y)")
//	if err != nil {
//	    // *SyntaxError or *UnknownSymbolError
//	}
//	v, err := f.Eval(0.5, 1.0) // *DomainError on log(-1), 1/0, ...
package expr
