package viz

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/san-kum/odesim/internal/sim"
)

// Summary renders the parameter block, the closed form panel and the error
// metrics of every variant.
func Summary(res *sim.Result) string {
	req := res.Request
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("y' = "+req.Expression) + "\n")
	row(&b, "Initial value", fmt.Sprintf("y(%s) = %s", num(req.X0), num(req.Y0)))
	row(&b, "Interval", fmt.Sprintf("[%s, %s]", num(req.X0), num(req.XEnd)))
	row(&b, "Step (h)", num(req.H))
	row(&b, "Steps", strconv.Itoa(res.Grid.Steps))
	if req.Method.UsesHeun() {
		row(&b, "Iterations", strconv.Itoa(req.Iterations))
	}
	row(&b, "Run", res.RunID)
	b.WriteString("\n")

	b.WriteString(BoxWithTitle("Exact solution", exactLine(res, 0)) + "\n")

	for _, v := range res.Variants {
		b.WriteString("\n" + Title.Render(v.Name) + "\n")
		if f := v.Trajectory.Failure; f != nil {
			b.WriteString(StatusFail.Render("halted: "+f.Error()) + "\n")
		}
		if len(v.Summary) == 0 {
			b.WriteString(Subtle.Render("  no error metrics") + "\n")
			continue
		}
		names := make([]string, 0, len(v.Summary))
		for name := range v.Summary {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			row(&b, name, formatNum(sim.RoundSig(v.Summary[name], req.Digits), req.Digits))
		}
	}
	return b.String()
}

// exactLine describes the closed form. A positive width truncates the text
// to that many terminal cells.
func exactLine(res *sim.Result, width int) string {
	fit := func(s string) string {
		if width <= 0 {
			return s
		}
		return runewidth.Truncate(s, width, "…")
	}
	switch {
	case res.SolverErr != nil:
		return StatusFail.Render(fit("solver failed: " + res.SolverErr.Error()))
	case res.Exact == nil:
		return Subtle.Render(fit("no closed form found"))
	}
	text := res.Exact.String() + "  (" + res.Exact.Method + ")"
	if width > 0 && runewidth.StringWidth(text) > width {
		return MetricValue.Render(fit(text))
	}
	return MetricValue.Render(res.Exact.String()) + Subtle.Render("  ("+res.Exact.Method+")")
}

func row(b *strings.Builder, label, value string) {
	b.WriteString("  " + MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
