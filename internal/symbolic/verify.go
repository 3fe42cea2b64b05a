package symbolic

import (
	"math"

	"github.com/san-kum/odesim/internal/expr"
)

const (
	verifySamples   = 5
	verifyMinPassed = 2
	residualTol     = 1e-5
	initialTol      = 1e-9
)

// verify checks y(x0) = y0 and y'(x) = f(x, y(x)) by central differences at
// a few points to the right of x0. Points where either side fails to
// evaluate are skipped.
func verify(f, y *expr.Expr, x0, y0 float64) bool {
	start, err := y.Eval(x0)
	if err != nil || math.Abs(start-y0) > initialTol*(1+math.Abs(y0)) {
		return false
	}

	spacing := 0.01 * (1 + math.Abs(x0))
	passed := 0
	for k := 1; k <= verifySamples; k++ {
		x := x0 + float64(k)*spacing
		d := 1e-6 * (1 + math.Abs(x))

		yx, err := y.Eval(x)
		if err != nil {
			continue
		}
		hi, err := y.Eval(x + d)
		if err != nil {
			continue
		}
		lo, err := y.Eval(x - d)
		if err != nil {
			continue
		}
		want, err := f.Eval(x, yx)
		if err != nil {
			continue
		}

		got := (hi - lo) / (2 * d)
		if math.Abs(got-want) > residualTol*(1+math.Abs(got)+math.Abs(want)) {
			return false
		}
		passed++
	}
	return passed >= verifyMinPassed
}
