package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrSyntax indicates an expression that does not match the grammar.
	ErrSyntax = errors.New("expr: syntax error")

	// ErrUnknownSymbol indicates an undeclared variable or a function outside the whitelist.
	ErrUnknownSymbol = errors.New("expr: unknown symbol")

	// ErrDomain indicates a math domain failure at a specific point.
	ErrDomain = errors.New("expr: domain error")

	// ErrArity indicates Eval was called with the wrong number of values.
	ErrArity = errors.New("expr: wrong number of variable values")
)

type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: syntax error at pos %d: %s", e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

type UnknownSymbolError struct {
	Name string
	Pos  int
	// Func is set when the symbol was used as a function name.
	Func bool
}

func (e *UnknownSymbolError) Error() string {
	kind := "variable"
	if e.Func {
		kind = "function"
	}
	return fmt.Sprintf("expr: unknown %s %q at pos %d", kind, e.Name, e.Pos)
}

func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// DomainError reports an evaluation that has no real, finite result.
type DomainError struct {
	Op   string
	Msg  string
	Vars []string
	Vals []float64
}

func (e *DomainError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "expr: domain error in %s: %s", e.Op, e.Msg)
	if len(e.Vars) > 0 {
		b.WriteString(" at ")
		for i, name := range e.Vars {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(strconv.FormatFloat(e.Vals[i], 'g', -1, 64))
		}
	}
	return b.String()
}

func (e *DomainError) Unwrap() error { return ErrDomain }

func domainErr(op, msg string) *DomainError {
	return &DomainError{Op: op, Msg: msg}
}
