package integrators

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f Func, x, y, h float64) (float64, error) {
	slope, err := f(x, y)
	if err != nil {
		return 0, &StageError{Stage: "slope", Err: err}
	}
	return y + h*slope, nil
}
