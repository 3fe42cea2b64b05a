package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/san-kum/odesim/internal/expr"
	"github.com/san-kum/odesim/internal/integrators"
	"github.com/san-kum/odesim/internal/logging"
	"github.com/san-kum/odesim/internal/metrics"
	"github.com/san-kum/odesim/internal/symbolic"
)

type Simulator struct {
	logger   *slog.Logger
	solver   *symbolic.Solver
	registry *integrators.Registry
	metrics  func() []metrics.Metric
	newID    func() string
}

type Option func(*Simulator)

func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

func WithSolver(solver *symbolic.Solver) Option {
	return func(s *Simulator) { s.solver = solver }
}

func WithRegistry(r *integrators.Registry) Option {
	return func(s *Simulator) { s.registry = r }
}

// WithMetrics replaces the summary metrics. fn is called once per variant
// so metric state is never shared.
func WithMetrics(fn func() []metrics.Metric) Option {
	return func(s *Simulator) { s.metrics = fn }
}

func New(opts ...Option) *Simulator {
	s := &Simulator{
		logger:   logging.Discard(),
		solver:   symbolic.New(),
		registry: integrators.NewRegistry(),
		metrics:  metrics.Defaults,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve runs one request through every stage. Parameter and parse errors
// return a nil Result. Trajectory evaluation failures do not; check
// Result.Partial.
func (s *Simulator) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		s.logger.Debug("request rejected", "error", err)
		return nil, err
	}
	if r := integrators.StepRatio(req.X0, req.XEnd, req.H); math.IsInf(r, 0) || math.Ceil(r) > float64(req.budget()) {
		return nil, &ValidationError{
			Field:  "h",
			Reason: fmt.Sprintf("needs %g steps, budget is %d", math.Ceil(r), req.budget()),
		}
	}
	grid, err := integrators.NewGrid(req.X0, req.XEnd, req.H)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	res := &Result{
		RunID:   s.newID(),
		Request: req,
		Grid:    grid,
	}
	log := s.logger.With("run", res.RunID)
	res.advance(log, StageValidated)

	f, err := expr.Compile(req.Expression)
	if err != nil {
		log.Debug("expression rejected", "expression", req.Expression, "error", err)
		return nil, &ParseError{Source: req.Expression, Err: err}
	}
	res.advance(log, StageCompiled)

	sol, err := s.solver.Solve(f, req.X0, req.Y0)
	switch {
	case err != nil:
		log.Error("symbolic solver failed", "expression", f.String(), "error", err)
		res.SolverErr = err
	case sol.Found:
		log.Debug("closed form found", "method", sol.Method, "solution", sol.Expr.String())
		res.Exact = sol
	default:
		log.Debug("no closed form found", "expression", f.String())
	}
	res.advance(log, StageExactAttempted)

	rhs := f.Func()
	for _, spec := range req.variants() {
		stepper, err := s.registry.Get(spec.method, spec.iterations)
		if err != nil {
			return nil, err
		}
		tr := integrators.Integrate(ctx, rhs, stepper, spec.name, grid, req.Y0)
		if tr.Failure != nil {
			log.Warn("trajectory halted",
				"variant", spec.name,
				"step", tr.Failure.Index,
				"x", tr.Failure.X,
				"error", tr.Failure.Err)
		}
		res.Variants = append(res.Variants, &Variant{Name: spec.name, Trajectory: tr})
	}
	res.advance(log, StageTrajectories)

	var exact metrics.ExactFunc
	if res.Exact != nil {
		exact = res.Exact.Func()
	}
	for _, v := range res.Variants {
		v.Records = metrics.Compare(v.Trajectory, exact)
		v.Summary = metrics.Summarize(v.Records, s.metrics()...)
	}
	res.advance(log, StageErrors)
	res.advance(log, StageReady)

	return res, nil
}

func (r *Result) advance(log *slog.Logger, st Stage) {
	r.Stages = append(r.Stages, st)
	log.Debug("stage", "stage", string(st))
}
