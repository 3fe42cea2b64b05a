package metrics

import (
	"math"

	"github.com/san-kum/odesim/internal/integrators"
)

// NearZero is the magnitude below which an exact value is treated as zero
// and no relative error is computed.
const NearZero = 1e-12

type Status string

const (
	StatusOK          Status = "ok"
	StatusNearZero    Status = "near-zero"
	StatusOverflow    Status = "overflow"
	StatusNoExact     Status = "no-exact"
	StatusExactFailed Status = "exact-failed"
	StatusFailed      Status = "failed"
)

// ExactFunc evaluates a closed-form solution at x.
type ExactFunc func(x float64) (float64, error)

// Record is the comparison of one trajectory point against the exact curve.
// RelErrPct is only meaningful when Status is StatusOK.
type Record struct {
	Index     int
	X         float64
	Y         float64
	Exact     float64
	HasExact  bool
	RelErrPct float64
	Status    Status
	Err       error
}

// RelErr returns |exact - approx| / |exact| * 100, or false when exact is
// within NearZero of zero or the percentage is not finite.
func RelErr(exact, approx float64) (float64, bool) {
	if math.Abs(exact) < NearZero {
		return 0, false
	}
	pct := math.Abs(exact-approx) / math.Abs(exact) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}

// Compare produces one record per accepted point, plus a failed record for
// the point where the trajectory stopped. exact may be nil.
func Compare(tr *integrators.Trajectory, exact ExactFunc) []Record {
	n := len(tr.Points)
	if tr.Failure != nil {
		n++
	}
	records := make([]Record, 0, n)

	for _, p := range tr.Points {
		r := Record{Index: p.Index, X: p.X, Y: p.Y}
		fillExact(&r, exact)
		if r.Status == "" {
			r.classify()
		}
		records = append(records, r)
	}

	if f := tr.Failure; f != nil {
		r := Record{Index: f.Index, X: f.X}
		fillExact(&r, exact)
		r.Status = StatusFailed
		r.Err = f.Err
		records = append(records, r)
	}
	return records
}

func fillExact(r *Record, exact ExactFunc) {
	if exact == nil {
		r.Status = StatusNoExact
		return
	}
	v, err := exact(r.X)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		r.Status = StatusExactFailed
		r.Err = err
		return
	}
	r.Exact = v
	r.HasExact = true
}

func (r *Record) classify() {
	pct, ok := RelErr(r.Exact, r.Y)
	switch {
	case !ok && math.Abs(r.Exact) < NearZero:
		r.Status = StatusNearZero
		return
	case !ok:
		r.Status = StatusOverflow
		return
	}
	r.RelErrPct = pct
	r.Status = StatusOK
}
