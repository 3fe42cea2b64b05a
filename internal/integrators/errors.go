package integrators

import "fmt"

// StageError says which evaluation inside a step failed. Iteration counts
// corrector passes from 1.
type StageError struct {
	Stage     string
	Iteration int
	Err       error
}

func (e *StageError) Error() string {
	if e.Iteration > 0 {
		return fmt.Sprintf("%s (pass %d): %v", e.Stage, e.Iteration, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Failure marks the first point of a trajectory that could not be produced.
type Failure struct {
	Index int
	X     float64
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("integrators: step %d at x=%g: %v", f.Index, f.X, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }
