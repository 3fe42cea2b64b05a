package viz

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/odesim/internal/metrics"
	"github.com/san-kum/odesim/internal/sim"
)

const missing = "-"

type cell struct {
	text   string
	status metrics.Status
}

// Table renders every variant of res side by side: the iteration, x_i, the
// exact value, each variant's y_i, then each variant's relative error.
func Table(res *sim.Result) (string, error) {
	rows := make([][]sim.Row, len(res.Variants))
	n := 0
	for i, v := range res.Variants {
		r, err := res.Rows(v.Name)
		if err != nil {
			return "", err
		}
		rows[i] = r
		n = max(n, len(r))
	}

	headers := []string{"Iter (i)", "x_i", "exact y"}
	for _, v := range res.Variants {
		headers = append(headers, "y_i ("+v.Name+")")
	}
	for _, v := range res.Variants {
		headers = append(headers, "% err ("+v.Name+")")
	}

	digits := res.Request.Digits
	grid := make([][]cell, n)
	for i := 0; i < n; i++ {
		line := []cell{{text: strconv.Itoa(i)}, {text: missing}, {text: missing}}
		for _, vr := range rows {
			if i >= len(vr) {
				continue
			}
			line[1].text = formatNum(vr[i].X, digits)
			if vr[i].HasExact {
				line[2].text = formatNum(vr[i].Exact, digits)
			}
		}
		for _, vr := range rows {
			line = append(line, valueCell(vr, i, digits))
		}
		for _, vr := range rows {
			line = append(line, errorCell(vr, i, digits))
		}
		grid[i] = line
	}

	text := make([][]string, n)
	for i, line := range grid {
		text[i] = make([]string, len(line))
		for j, c := range line {
			text[i][j] = c.text
		}
	}

	errStart := 3 + len(res.Variants)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers(headers...).
		Rows(text...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
			switch {
			case row == table.HeaderRow:
				return base.Bold(true).Foreground(CurrentTheme.Heading)
			case col == 0:
				return base.Foreground(CurrentTheme.Label)
			case col >= errStart && row < len(grid) && grid[row][col].status != "":
				return base.Inherit(StatusStyle(grid[row][col].status))
			}
			return base
		})

	title := Title.Render("Method comparison (h=" + strconv.FormatFloat(res.Request.H, 'g', -1, 64) + ")")
	return title + "\n" + t.Render(), nil
}

// RenderTable writes Table(res) followed by a newline.
func RenderTable(w io.Writer, res *sim.Result) error {
	s, err := Table(res)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}

func valueCell(rows []sim.Row, i, digits int) cell {
	if i >= len(rows) {
		return cell{text: missing}
	}
	if rows[i].Failed() {
		return cell{text: "failed", status: metrics.StatusFailed}
	}
	return cell{text: formatNum(rows[i].Y, digits)}
}

func errorCell(rows []sim.Row, i, digits int) cell {
	if i >= len(rows) {
		return cell{text: missing}
	}
	r := rows[i]
	if r.HasError() {
		return cell{text: formatNum(r.RelErrPct, digits), status: r.Status}
	}
	if r.Status == metrics.StatusNoExact {
		return cell{text: "n/a", status: r.Status}
	}
	return cell{text: string(r.Status), status: r.Status}
}

func formatNum(v float64, digits int) string {
	return strconv.FormatFloat(v, 'g', digits, 64)
}
