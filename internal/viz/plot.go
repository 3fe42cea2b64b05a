package viz

import (
	"errors"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/odesim/internal/automation"
	"github.com/san-kum/odesim/internal/metrics"
	"github.com/san-kum/odesim/internal/sim"
)

var ErrNothingToPlot = errors.New("viz: nothing to plot")

type PlotOptions struct {
	Width  int
	Height int
}

type series struct {
	name   string
	values []float64
}

// SolutionPlot draws the exact curve (when known) and every variant's y_i
// over the grid. Points a halted trajectory never reached are left blank.
func SolutionPlot(res *sim.Result, opts PlotOptions) (string, error) {
	n := res.Grid.Len()
	var all []series

	if res.Exact != nil {
		exact := blank(n)
		for _, v := range res.Variants {
			for _, r := range v.Records {
				if r.HasExact && r.Index < n {
					exact[r.Index] = r.Exact
				}
			}
		}
		all = append(all, series{name: "exact", values: exact})
	}
	for _, v := range res.Variants {
		ys := blank(n)
		for _, p := range v.Trajectory.Points {
			ys[p.Index] = p.Y
		}
		all = append(all, series{name: v.Name, values: ys})
	}

	return plot(all, opts, "y' = "+res.Request.Expression)
}

// ErrorPlot draws log10 of the relative error percentage per variant.
func ErrorPlot(res *sim.Result, opts PlotOptions) (string, error) {
	n := res.Grid.Len()
	var all []series
	for _, v := range res.Variants {
		errs := blank(n)
		for _, r := range v.Records {
			if r.Status == metrics.StatusOK && r.RelErrPct > 0 && r.Index < n {
				errs[r.Index] = math.Log10(r.RelErrPct)
			}
		}
		all = append(all, series{name: v.Name, values: errs})
	}
	return plot(all, opts, "log10 relative error (%)")
}

// ConvergencePlot draws log10 of the final error against the sweep index,
// largest step first.
func ConvergencePlot(results []automation.SweepResult, opts PlotOptions) (string, error) {
	errs := blank(len(results))
	for i, r := range results {
		if r.HasErr && r.ErrPct > 0 {
			errs[i] = math.Log10(r.ErrPct)
		}
	}
	caption := "log10 final error (%) as h shrinks"
	if p, ok := automation.ObservedOrder(results); ok {
		caption += fmt.Sprintf(", observed order %.2f", p)
	}
	return plot([]series{{name: "final error", values: errs}}, opts, caption)
}

func plot(all []series, opts PlotOptions, caption string) (string, error) {
	var (
		data    [][]float64
		legends []string
		colors  []asciigraph.AnsiColor
	)
	for _, s := range all {
		if !sanitize(s.values) {
			continue
		}
		data = append(data, s.values)
		legends = append(legends, s.name)
		colors = append(colors, CurrentTheme.seriesColor(len(colors)))
	}
	if len(data) == 0 {
		return "", ErrNothingToPlot
	}

	options := []asciigraph.Option{
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	}
	if opts.Height > 0 {
		options = append(options, asciigraph.Height(opts.Height))
	}
	if opts.Width > 0 {
		options = append(options, asciigraph.Width(opts.Width))
	}
	return asciigraph.PlotMany(data, options...), nil
}

func blank(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// sanitize replaces infinities with NaN in place and reports whether any
// finite value is left.
func sanitize(vs []float64) bool {
	ok := false
	for i, v := range vs {
		if math.IsInf(v, 0) {
			vs[i] = math.NaN()
			continue
		}
		if !math.IsNaN(v) {
			ok = true
		}
	}
	return ok
}
