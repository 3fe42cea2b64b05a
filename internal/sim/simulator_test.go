package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/odesim/internal/expr"
	"github.com/san-kum/odesim/internal/metrics"
	"github.com/san-kum/odesim/internal/symbolic"
)

func baseRequest() Request {
	return Request{
		Expression: "x + y",
		X0:         0,
		Y0:         1,
		XEnd:       0.2,
		H:          0.1,
		Method:     MethodEuler,
		Iterations: 1,
		Digits:     6,
	}
}

func TestSolveEulerExample(t *testing.T) {
	res, err := New().Solve(context.Background(), baseRequest())
	require.NoError(t, err)

	v, ok := res.Variant(VariantEuler)
	require.True(t, ok)
	pts := v.Trajectory.Points
	require.Len(t, pts, 3)
	assert.InDelta(t, 1.0, pts[0].Y, 1e-12)
	assert.InDelta(t, 1.1, pts[1].Y, 1e-12)
	assert.InDelta(t, 1.22, pts[2].Y, 1e-12)
	assert.InDelta(t, 0.2, pts[2].X, 1e-12)

	assert.False(t, res.Partial())
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []Stage{
		StageValidated, StageCompiled, StageExactAttempted,
		StageTrajectories, StageErrors, StageReady,
	}, res.Stages)
}

func TestSolveValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"zero step", func(r *Request) { r.H = 0 }, "h"},
		{"negative step", func(r *Request) { r.H = -0.1 }, "h"},
		{"end before start", func(r *Request) { r.XEnd = -1 }, "x_end"},
		{"end equals start", func(r *Request) { r.XEnd = r.X0 }, "x_end"},
		{"heun without iterations", func(r *Request) { r.Method = MethodHeun; r.Iterations = 0 }, "iterations"},
		{"zero digits", func(r *Request) { r.Digits = 0 }, "digits"},
		{"unknown method", func(r *Request) { r.Method = "rk4" }, "method"},
		{"empty expression", func(r *Request) { r.Expression = "" }, "expression"},
		{"nan start", func(r *Request) { r.X0 = math.NaN() }, "x0"},
		{"infinite y0", func(r *Request) { r.Y0 = math.Inf(-1) }, "y0"},
		{"step budget", func(r *Request) { r.XEnd = 1; r.H = 1e-7 }, "h"},
		{"custom budget", func(r *Request) { r.MaxSteps = 1 }, "h"},
		{"step count beyond int", func(r *Request) { r.XEnd = 1e19; r.H = 1 }, "h"},
		{"interval beyond float", func(r *Request) { r.X0 = -1.5e308; r.XEnd = 1.5e308; r.H = 1 }, "h"},
		{"beyond budget with large MaxSteps", func(r *Request) { r.XEnd = 1e19; r.H = 1; r.MaxSteps = math.MaxInt }, "h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)

			res, err := New().Solve(context.Background(), req)
			assert.Nil(t, res)
			require.ErrorIs(t, err, ErrValidation)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.NotEmpty(t, ve.Reason)
		})
	}
}

func TestSolveEulerIgnoresIterations(t *testing.T) {
	req := baseRequest()
	req.Iterations = 0
	_, err := New().Solve(context.Background(), req)
	assert.NoError(t, err)
}

func TestSolveParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind error
	}{
		{"x +", expr.ErrSyntax},
		{"2x", expr.ErrSyntax},
		{"z * y", expr.ErrUnknownSymbol},
		{"system(x)", expr.ErrUnknownSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			req := baseRequest()
			req.Expression = tt.src

			res, err := New().Solve(context.Background(), req)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrParse)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestSolveSolverCrash(t *testing.T) {
	crashing := &symbolic.Solver{Strategies: []symbolic.Strategy{{
		Name: "boom",
		Try:  func(symbolic.Problem) (expr.Node, bool) { panic("bad rule") },
	}}}

	res, err := New(WithSolver(crashing)).Solve(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.ErrorIs(t, res.SolverErr, symbolic.ErrSolverCrashed)
	assert.Nil(t, res.Exact)

	v, _ := res.Variant(VariantEuler)
	for _, r := range v.Records {
		assert.Equal(t, metrics.StatusNoExact, r.Status)
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Solve(ctx, baseRequest())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRowsRounding(t *testing.T) {
	req := baseRequest()
	req.Expression = "-2*x*y"
	req.XEnd = 1
	req.Method = MethodHeun
	req.Digits = 3

	res, err := New().Solve(context.Background(), req)
	require.NoError(t, err)

	rows, err := res.Rows(VariantHeun)
	require.NoError(t, err)
	require.Len(t, rows, 11)

	last := rows[10]
	assert.Equal(t, 10, last.Index)
	assert.Equal(t, 1.0, last.X)
	assert.Equal(t, RoundSig(math.Exp(-1), 3), last.Exact)
	assert.True(t, last.HasError())
	assert.Equal(t, RoundSig(last.RelErrPct, 3), last.RelErrPct)

	_, err = res.Rows("rk4")
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestRoundSig(t *testing.T) {
	tests := []struct {
		v      float64
		digits int
		want   float64
	}{
		{1.23456, 3, 1.23},
		{0.000123456, 2, 0.00012},
		{98765, 2, 99000},
		{-2.6e-7, 1, -3e-7},
		{0, 4, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundSig(tt.v, tt.digits))
	}
	assert.True(t, math.IsInf(RoundSig(math.Inf(1), 3), 1))
}

func TestRequestVariants(t *testing.T) {
	req := baseRequest()
	req.Method = MethodBoth
	req.Iterations = 3
	assert.Equal(t, []string{VariantEuler, VariantHeun, VariantHeunIterated}, req.Variants())

	req.Iterations = 1
	assert.Equal(t, []string{VariantEuler, VariantHeun}, req.Variants())

	req.Method = MethodEuler
	req.Iterations = 5
	assert.Equal(t, []string{VariantEuler}, req.Variants())
}
