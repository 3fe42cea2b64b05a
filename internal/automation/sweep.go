package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/odesim/internal/metrics"
	"github.com/san-kum/odesim/internal/sim"
)

// StepSweep solves the same problem for geometrically spaced step sizes
// from HMax down to HMin.
type StepSweep struct {
	Base     sim.Request
	Variant  string
	HMin     float64
	HMax     float64
	NumSteps int
}

// SweepResult is the end-of-interval outcome for one step size. ErrPct is
// only set when HasErr is true.
type SweepResult struct {
	H       float64
	Steps   int
	FinalX  float64
	FinalY  float64
	Exact   float64
	ErrPct  float64
	HasErr  bool
	Partial bool
}

func (sw *StepSweep) validate() error {
	if sw.NumSteps < 2 {
		return fmt.Errorf("sweep needs at least 2 step sizes, got %d", sw.NumSteps)
	}
	if !(sw.HMin > 0) || !(sw.HMax > sw.HMin) {
		return fmt.Errorf("sweep needs 0 < h_min < h_max, got %g and %g", sw.HMin, sw.HMax)
	}
	return nil
}

// StepSizes returns HMax, ..., HMin.
func (sw *StepSweep) StepSizes() []float64 {
	out := make([]float64, sw.NumSteps)
	ratio := sw.HMin / sw.HMax
	for i := range out {
		out[i] = sw.HMax * math.Pow(ratio, float64(i)/float64(sw.NumSteps-1))
	}
	return out
}

func RunSweep(ctx context.Context, sweep *StepSweep, s *sim.Simulator, log *slog.Logger) ([]SweepResult, error) {
	if err := sweep.validate(); err != nil {
		return nil, err
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i, h := range sweep.StepSizes() {
		req := sweep.Base
		req.H = h

		res, err := s.Solve(ctx, req)
		if err != nil {
			return results, fmt.Errorf("h=%g: %w", h, err)
		}
		v, ok := res.Variant(sweep.Variant)
		if !ok {
			return results, fmt.Errorf("h=%g: %w: %s", h, sim.ErrUnknownVariant, sweep.Variant)
		}

		// Records hold one entry per accepted point, in order, before any
		// failure record.
		final := v.Trajectory.Last()
		last := v.Records[len(v.Trajectory.Points)-1]
		out := SweepResult{
			H:       h,
			Steps:   res.Grid.Steps,
			FinalX:  final.X,
			FinalY:  final.Y,
			Exact:   last.Exact,
			Partial: !v.Trajectory.Complete(),
		}
		if last.Status == metrics.StatusOK {
			out.ErrPct = last.RelErrPct
			out.HasErr = true
		}
		results = append(results, out)

		log.Debug("sweep point", "index", i+1, "of", sweep.NumSteps, "h", h, "final_y", out.FinalY)
	}

	return results, nil
}

// ObservedOrder fits log(err) = p*log(h) + c by least squares over the
// results that carry a positive error and returns p. ok is false when
// fewer than two points qualify.
func ObservedOrder(results []SweepResult) (float64, bool) {
	var logH, logErr []float64
	for _, r := range results {
		if !r.HasErr || r.ErrPct <= 0 || r.Partial {
			continue
		}
		logH = append(logH, math.Log(r.H))
		logErr = append(logErr, math.Log(r.ErrPct))
	}
	if len(logH) < 2 {
		return 0, false
	}
	_, slope := stat.LinearRegression(logH, logErr, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0, false
	}
	return slope, true
}
