package integrators

import "errors"

var (
	ErrInvalidGrid = errors.New("integrators: invalid grid")
	ErrNonFinite   = errors.New("integrators: non-finite value")
)

// Func is the right-hand side of y' = f(x, y).
type Func func(x, y float64) (float64, error)

// Stepper advances the solution from (x, y) by one step of size h.
type Stepper interface {
	Step(f Func, x, y, h float64) (float64, error)
}
