package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a request rejected before any computation.
	ErrValidation = errors.New("sim: invalid parameters")

	// ErrParse indicates the expression could not be compiled.
	ErrParse = errors.New("sim: expression parse failed")

	// ErrUnknownVariant indicates a lookup of a variant the run did not produce.
	ErrUnknownVariant = errors.New("sim: unknown variant")
)

// ValidationError names the offending request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("sim: invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ParseError wraps the compiler error. Both ErrParse and the underlying
// expr sentinel match with errors.Is.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sim: cannot parse %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }
