package integrators

import (
	"context"
	"math"
)

// Point is one accepted grid point. Index 0 is the initial condition.
type Point struct {
	Index int
	X     float64
	Y     float64
}

// Trajectory is the output of one method variant. When Failure is set the
// trajectory stopped there and Points holds everything before it.
type Trajectory struct {
	Method  string
	Grid    Grid
	Points  []Point
	Failure *Failure
}

func (t *Trajectory) Complete() bool {
	return t.Failure == nil && len(t.Points) == t.Grid.Len()
}

func (t *Trajectory) Last() Point {
	return t.Points[len(t.Points)-1]
}

// Integrate walks the grid with s. It halts at the first evaluation failure
// or context cancellation and records it on the trajectory.
func Integrate(ctx context.Context, f Func, s Stepper, method string, g Grid, y0 float64) *Trajectory {
	tr := &Trajectory{
		Method: method,
		Grid:   g,
		Points: make([]Point, 0, g.Len()),
	}
	tr.Points = append(tr.Points, Point{Index: 0, X: g.X0, Y: y0})

	y := y0
	for i := 0; i < g.Steps; i++ {
		select {
		case <-ctx.Done():
			tr.Failure = &Failure{Index: i + 1, X: g.X(i + 1), Err: ctx.Err()}
			return tr
		default:
		}

		next, err := s.Step(f, g.X(i), y, g.H)
		if err == nil && (math.IsNaN(next) || math.IsInf(next, 0)) {
			err = ErrNonFinite
		}
		if err != nil {
			tr.Failure = &Failure{Index: i + 1, X: g.X(i + 1), Err: err}
			return tr
		}

		y = next
		tr.Points = append(tr.Points, Point{Index: i + 1, X: g.X(i + 1), Y: y})
	}
	return tr
}
