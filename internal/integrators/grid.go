package integrators

import (
	"fmt"
	"math"
)

// stepTolerance absorbs rounding when (xEnd-x0)/h is nearly integral.
const stepTolerance = 1e-9

// Grid is the fixed step grid X_i = X0 + i*H for i in [0, Steps].
type Grid struct {
	X0    float64
	XEnd  float64
	H     float64
	Steps int
}

// StepRatio is (xEnd-x0)/h less the rounding tolerance. It may be Inf or
// NaN for extreme bounds; callers compare it before converting to int.
func StepRatio(x0, xEnd, h float64) float64 {
	return (xEnd-x0)/h - stepTolerance
}

// StepCount returns ceil((xEnd-x0)/h) with the rounding tolerance applied,
// never less than one. The ratio must already be known to fit in an int.
func StepCount(x0, xEnd, h float64) int {
	n := int(math.Ceil(StepRatio(x0, xEnd, h)))
	if n < 1 {
		n = 1
	}
	return n
}

func NewGrid(x0, xEnd, h float64) (Grid, error) {
	for _, v := range []float64{x0, xEnd, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Grid{}, fmt.Errorf("%w: non-finite bound", ErrInvalidGrid)
		}
	}
	if h <= 0 {
		return Grid{}, fmt.Errorf("%w: step %g must be positive", ErrInvalidGrid, h)
	}
	if xEnd <= x0 {
		return Grid{}, fmt.Errorf("%w: end %g must exceed start %g", ErrInvalidGrid, xEnd, x0)
	}
	r := StepRatio(x0, xEnd, h)
	if math.IsNaN(r) || math.IsInf(r, 0) || math.Ceil(r) >= math.MaxInt {
		return Grid{}, fmt.Errorf("%w: (%g - %g) / %g steps do not fit in an int", ErrInvalidGrid, xEnd, x0, h)
	}
	return Grid{X0: x0, XEnd: xEnd, H: h, Steps: StepCount(x0, xEnd, h)}, nil
}

// X returns the i-th grid abscissa. It is computed directly, so the last
// point may overshoot XEnd by less than one step.
func (g Grid) X(i int) float64 {
	return g.X0 + float64(i)*g.H
}

func (g Grid) Len() int { return g.Steps + 1 }
