package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/odesim/internal/sim"
)

// MonteCarloConfig perturbs the initial value y0 uniformly within
// +/- Perturbation and solves each trial.
type MonteCarloConfig struct {
	Base         sim.Request
	Variant      string
	Perturbation float64
	NumTrials    int
	Seed         int64
}

type MonteCarloResult struct {
	TrialID   int
	Y0        float64
	FinalX    float64
	FinalY    float64
	Completed bool
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, s *sim.Simulator, log *slog.Logger) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial")
	}
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		req := cfg.Base
		req.Y0 = cfg.Base.Y0 + (rng.Float64()-0.5)*2*cfg.Perturbation

		res, err := s.Solve(ctx, req)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}
		v, ok := res.Variant(cfg.Variant)
		if !ok {
			return results, fmt.Errorf("trial %d: %w: %s", trial, sim.ErrUnknownVariant, cfg.Variant)
		}

		last := v.Trajectory.Last()
		results = append(results, MonteCarloResult{
			TrialID:   trial,
			Y0:        req.Y0,
			FinalX:    last.X,
			FinalY:    last.Y,
			Completed: v.Trajectory.Complete(),
		})

		if (trial+1)%10 == 0 {
			log.Info("monte carlo progress", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats counts trials that reached the end of the grid and
// summarizes the spread of their final values.
type MonteCarloStats struct {
	Completed int
	Halted    int
	MinFinal  float64
	MaxFinal  float64
	MeanFinal float64
	// StdDevFinal is the sample standard deviation, zero below two trials.
	StdDevFinal float64
}

func Summarize(results []MonteCarloResult) MonteCarloStats {
	var st MonteCarloStats
	finals := make([]float64, 0, len(results))
	for _, r := range results {
		if !r.Completed {
			st.Halted++
			continue
		}
		finals = append(finals, r.FinalY)
	}
	st.Completed = len(finals)
	if st.Completed == 0 {
		return st
	}
	st.MinFinal = floats.Min(finals)
	st.MaxFinal = floats.Max(finals)
	if st.Completed == 1 {
		st.MeanFinal = finals[0]
		return st
	}
	st.MeanFinal, st.StdDevFinal = stat.MeanStdDev(finals, nil)
	return st
}
