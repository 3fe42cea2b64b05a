package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/odesim/internal/integrators"
)

func trajectory(points []integrators.Point, failure *integrators.Failure) *integrators.Trajectory {
	return &integrators.Trajectory{Method: "euler", Points: points, Failure: failure}
}

func TestCompareWithExact(t *testing.T) {
	tr := trajectory([]integrators.Point{{Index: 0, X: 0, Y: 1}, {Index: 1, X: 0.5, Y: 1.5}}, nil)
	exact := func(x float64) (float64, error) { return math.Exp(x), nil }

	records := Compare(tr, exact)
	require.Len(t, records, 2)

	assert.Equal(t, StatusOK, records[0].Status)
	assert.Equal(t, 0.0, records[0].RelErrPct)

	want := math.Abs(math.Exp(0.5)-1.5) / math.Exp(0.5) * 100
	assert.Equal(t, StatusOK, records[1].Status)
	assert.InDelta(t, want, records[1].RelErrPct, 1e-12)
	assert.True(t, records[1].HasExact)
}

func TestCompareNoExact(t *testing.T) {
	tr := trajectory([]integrators.Point{{Index: 0, X: 0, Y: 1}, {Index: 1, X: 0.1, Y: 1.1}}, nil)

	for _, r := range Compare(tr, nil) {
		assert.Equal(t, StatusNoExact, r.Status)
		assert.False(t, r.HasExact)
	}
}

func TestCompareNearZero(t *testing.T) {
	tr := trajectory([]integrators.Point{{Index: 0, X: 0, Y: 1e-3}}, nil)
	exact := func(x float64) (float64, error) { return 1e-13, nil }

	records := Compare(tr, exact)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, StatusNearZero, r.Status)
	assert.False(t, math.IsInf(r.RelErrPct, 0))
	assert.False(t, math.IsNaN(r.RelErrPct))
}

func TestCompareExactFailed(t *testing.T) {
	boom := errors.New("domain")
	tr := trajectory([]integrators.Point{{Index: 0, X: -1, Y: 2}, {Index: 1, X: 1, Y: 2}}, nil)
	exact := func(x float64) (float64, error) {
		if x < 0 {
			return 0, boom
		}
		return 2, nil
	}

	records := Compare(tr, exact)
	assert.Equal(t, StatusExactFailed, records[0].Status)
	assert.ErrorIs(t, records[0].Err, boom)
	assert.Equal(t, StatusOK, records[1].Status)
}

func TestCompareFailurePoint(t *testing.T) {
	cause := errors.New("division by zero")
	tr := trajectory(
		[]integrators.Point{{Index: 0, X: 0, Y: 0}},
		&integrators.Failure{Index: 1, X: 0.1, Err: cause},
	)

	records := Compare(tr, func(x float64) (float64, error) { return math.Sqrt(2 * x), nil })
	require.Len(t, records, 2)
	assert.Equal(t, StatusNearZero, records[0].Status)
	assert.Equal(t, StatusFailed, records[1].Status)
	assert.Equal(t, 1, records[1].Index)
	assert.ErrorIs(t, records[1].Err, cause)
	assert.True(t, records[1].HasExact)
}

func TestRelErr(t *testing.T) {
	pct, ok := RelErr(2, 1.5)
	assert.True(t, ok)
	assert.InDelta(t, 25.0, pct, 1e-12)

	_, ok = RelErr(0, 1)
	assert.False(t, ok)

	for _, tt := range []struct{ exact, approx float64 }{
		{1e-11, 1e300},
		{1e308, -1e308},
	} {
		pct, ok := RelErr(tt.exact, tt.approx)
		assert.False(t, ok, "RelErr(%g, %g)", tt.exact, tt.approx)
		assert.Zero(t, pct)
	}
}

func TestCompareOverflowNeverSurfacesInf(t *testing.T) {
	tr := trajectory([]integrators.Point{{Index: 0, X: 0, Y: 1}, {Index: 1, X: 1, Y: 1e300}}, nil)
	exact := func(x float64) (float64, error) { return 1e-11 + 1 - x, nil }

	records := Compare(tr, exact)
	require.Len(t, records, 2)
	assert.Equal(t, StatusOK, records[0].Status)
	assert.Equal(t, StatusOverflow, records[1].Status)

	got := Summarize(records, Defaults()...)
	for name, v := range got {
		assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "%s = %v", name, v)
	}
	assert.InDelta(t, 0.5, got["coverage"], 1e-12)
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{Status: StatusOK, RelErrPct: 0},
		{Status: StatusOK, RelErrPct: 2},
		{Status: StatusNearZero},
		{Status: StatusOK, RelErrPct: 4},
		{Status: StatusFailed},
	}

	got := Summarize(records, append(Defaults(), NewWithinTolerance(2.5))...)
	assert.InDelta(t, 4.0, got["max_error_pct"], 1e-12)
	assert.InDelta(t, 2.0, got["mean_error_pct"], 1e-12)
	assert.InDelta(t, 4.0, got["final_error_pct"], 1e-12)
	assert.InDelta(t, 0.6, got["coverage"], 1e-12)
	assert.InDelta(t, 2.0/3.0, got["within_tolerance"], 1e-12)
}

func TestSummarizeOmitsEmptyMetrics(t *testing.T) {
	records := []Record{{Status: StatusNoExact}, {Status: StatusNoExact}}

	got := Summarize(records, Defaults()...)
	assert.NotContains(t, got, "max_error_pct")
	assert.NotContains(t, got, "mean_error_pct")
	assert.NotContains(t, got, "final_error_pct")
	assert.Equal(t, 0.0, got["coverage"])
}

func TestMetricReset(t *testing.T) {
	m := NewMaxError()
	m.Observe(Record{Status: StatusOK, RelErrPct: 7})
	require.Equal(t, 7.0, m.Value())

	m.Reset()
	assert.Equal(t, 0, m.Samples())
	assert.Equal(t, 0.0, m.Value())
}
