package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/odesim/internal/sim"
)

var svgColors = []string{"#ff4444", "#ffcc00", "#00ccff", "#00ff88", "#ff00ff"}

const svgMargin = 40.0

type curve struct {
	name string
	xs   []float64
	ys   []float64
}

// WriteSVG draws the exact curve and every variant's points as polylines.
func WriteSVG(w io.Writer, res *sim.Result, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export: svg size must be positive, got %dx%d", width, height)
	}

	var curves []curve
	if res.Exact != nil && len(res.Variants) > 0 {
		var c curve
		c.name = "exact"
		for _, r := range res.Variants[0].Records {
			if r.HasExact {
				c.xs = append(c.xs, r.X)
				c.ys = append(c.ys, r.Exact)
			}
		}
		curves = append(curves, c)
	}
	for _, v := range res.Variants {
		c := curve{name: v.Name}
		for _, p := range v.Trajectory.Points {
			c.xs = append(c.xs, p.X)
			c.ys = append(c.ys, p.Y)
		}
		curves = append(curves, c)
	}

	xmin, xmax := res.Request.X0, res.Grid.X(res.Grid.Steps)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, c := range curves {
		for _, y := range c.ys {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
		}
	}
	if math.IsInf(ymin, 0) {
		ymin, ymax = -1, 1
	}
	if ymax == ymin {
		ymin, ymax = ymin-1, ymax+1
	}

	fw, fh := float64(width), float64(height)
	px := func(x float64) float64 { return svgMargin + (x-xmin)/(xmax-xmin)*(fw-2*svgMargin) }
	py := func(y float64) float64 { return fh - svgMargin - (y-ymin)/(ymax-ymin)*(fh-2*svgMargin) }

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#444466" stroke-width="1">
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
</g>
`, width, height, width, height,
		svgMargin, fh-svgMargin, fw-svgMargin, fh-svgMargin,
		svgMargin, svgMargin, svgMargin, fh-svgMargin))

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="20" fill="#ffffff" font-family="monospace" font-size="14">y' = %s</text>
`, svgMargin, escape(res.Request.Expression)))

	for i, c := range curves {
		color := svgColors[i%len(svgColors)]
		var pts []string
		for j := range c.xs {
			if math.IsNaN(c.ys[j]) || math.IsInf(c.ys[j], 0) {
				continue
			}
			pts = append(pts, fmt.Sprintf("%.2f,%.2f", px(c.xs[j]), py(c.ys[j])))
		}
		if len(pts) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="2" points="%s"/>
`, color, strings.Join(pts, " ")))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="12">%s</text>
`, fw-svgMargin-80, svgMargin+float64(i)*16, color, escape(c.name)))
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escape(s string) string { return escaper.Replace(s) }
