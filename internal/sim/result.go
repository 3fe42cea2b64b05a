package sim

import (
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/odesim/internal/integrators"
	"github.com/san-kum/odesim/internal/metrics"
	"github.com/san-kum/odesim/internal/symbolic"
)

type Stage string

const (
	StageValidated      Stage = "parameters-validated"
	StageCompiled       Stage = "expression-compiled"
	StageExactAttempted Stage = "exact-solution-attempted"
	StageTrajectories   Stage = "trajectories-computed"
	StageErrors         Stage = "errors-computed"
	StageReady          Stage = "result-ready"
)

// Variant is one method's trajectory together with its comparison.
type Variant struct {
	Name       string
	Trajectory *integrators.Trajectory
	Records    []metrics.Record
	Summary    map[string]float64
}

// Result is immutable once Solve returns it. Exact is nil when no closed
// form was found; SolverErr is set only if the symbolic solver crashed.
type Result struct {
	RunID     string
	Request   Request
	Grid      integrators.Grid
	Exact     *symbolic.Solution
	SolverErr error
	Variants  []*Variant
	Stages    []Stage
}

func (r *Result) Variant(name string) (*Variant, bool) {
	for _, v := range r.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// Partial reports whether any trajectory stopped before the end of the grid.
func (r *Result) Partial() bool {
	for _, v := range r.Variants {
		if !v.Trajectory.Complete() {
			return true
		}
	}
	return false
}

// Row is one display line of a variant, rounded to the requested digits.
type Row struct {
	Index     int            `json:"index"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Exact     float64        `json:"exact"`
	HasExact  bool           `json:"has_exact"`
	RelErrPct float64        `json:"rel_err_pct"`
	Status    metrics.Status `json:"status"`
	Err       string         `json:"error,omitempty"`
}

// HasError reports whether RelErrPct carries a value.
func (r Row) HasError() bool { return r.Status == metrics.StatusOK }

// Failed reports whether the point itself could not be computed.
func (r Row) Failed() bool { return r.Status == metrics.StatusFailed }

func (r *Result) Rows(variant string) ([]Row, error) {
	v, ok := r.Variant(variant)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariant, variant)
	}
	d := r.Request.Digits
	rows := make([]Row, len(v.Records))
	for i, rec := range v.Records {
		row := Row{
			Index:    rec.Index,
			X:        RoundSig(rec.X, d),
			HasExact: rec.HasExact,
			Status:   rec.Status,
		}
		if rec.Status != metrics.StatusFailed {
			row.Y = RoundSig(rec.Y, d)
		}
		if rec.HasExact {
			row.Exact = RoundSig(rec.Exact, d)
		}
		if rec.Status == metrics.StatusOK {
			row.RelErrPct = RoundSig(rec.RelErrPct, d)
		}
		if rec.Err != nil {
			row.Err = rec.Err.Error()
		}
		rows[i] = row
	}
	return rows, nil
}

// RoundSig rounds v to digits significant digits.
func RoundSig(v float64, digits int) float64 {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) || digits < 1 {
		return v
	}
	out, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', digits, 64), 64)
	if err != nil {
		return v
	}
	return out
}
