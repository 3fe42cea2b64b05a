package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/odesim/internal/metrics"
)

var (
	Panel       lipgloss.Style
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	KeyHint     lipgloss.Style
	HeaderStyle lipgloss.Style
	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusFail  lipgloss.Style
)

func init() {
	applyTheme(CurrentTheme)
}

func applyTheme(t Theme) {
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Faint).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Text)

	Subtle = lipgloss.NewStyle().
		Foreground(t.Faint)

	MetricLabel = lipgloss.NewStyle().
		Foreground(t.Label).
		Width(16)

	MetricValue = lipgloss.NewStyle().
		Foreground(t.Value).
		Bold(true)

	KeyHint = lipgloss.NewStyle().
		Foreground(t.Faint).
		Italic(true)

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Heading).
		Padding(0, 1)

	StatusOK = lipgloss.NewStyle().Foreground(t.Good)
	StatusWarn = lipgloss.NewStyle().Foreground(t.Warn)
	StatusFail = lipgloss.NewStyle().Bold(true).Foreground(t.Bad)
}

// StatusStyle picks the color for a record status.
func StatusStyle(s metrics.Status) lipgloss.Style {
	switch s {
	case metrics.StatusOK:
		return StatusOK
	case metrics.StatusFailed, metrics.StatusExactFailed:
		return StatusFail
	}
	return StatusWarn
}

// SparklineChart renders a one-line sparkline, sampling values to width.
// NaN values are drawn as blanks.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width < 1 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi, seen := 0.0, 0.0, false
	for _, v := range values {
		if v != v {
			continue
		}
		if !seen || v < lo {
			lo = v
		}
		if !seen || v > hi {
			hi = v
		}
		seen = true
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if v != v {
			b.WriteRune(' ')
			continue
		}
		idx := int((v - lo) / rng * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return b.String()
}

// BoxWithTitle renders content in a rounded panel headed by title.
func BoxWithTitle(title, content string) string {
	return Panel.Render(Title.Render(title) + "\n" + content)
}

func Separator(width int) string {
	if width < 8 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
