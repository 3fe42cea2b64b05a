package integrators

// Heun is the improved Euler predictor-corrector. With Iterations > 1 the
// corrector is reapplied, each pass evaluating f at the previous estimate.
type Heun struct {
	Iterations int
}

func NewHeun(iterations int) *Heun {
	if iterations < 1 {
		iterations = 1
	}
	return &Heun{Iterations: iterations}
}

func (hn *Heun) Step(f Func, x, y, h float64) (float64, error) {
	slope, err := f(x, y)
	if err != nil {
		return 0, &StageError{Stage: "slope", Err: err}
	}

	next := y + h*slope
	for k := 1; k <= hn.Iterations; k++ {
		end, err := f(x+h, next)
		if err != nil {
			stage := "predictor"
			if k > 1 {
				stage = "corrector"
			}
			return 0, &StageError{Stage: stage, Iteration: k, Err: err}
		}
		next = y + h/2*(slope+end)
	}
	return next, nil
}
