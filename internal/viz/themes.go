package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme maps result roles to colors. Series colors plot lines in the
// order they are drawn, wrapping when there are more lines than colors.
type Theme struct {
	Name string

	Heading lipgloss.Color
	Label   lipgloss.Color
	Value   lipgloss.Color
	Text    lipgloss.Color
	Faint   lipgloss.Color

	Good lipgloss.Color
	Warn lipgloss.Color
	Bad  lipgloss.Color

	Series []asciigraph.AnsiColor
}

var (
	ThemeLab = Theme{
		Name:    "lab",
		Heading: lipgloss.Color("#7aa2f7"),
		Label:   lipgloss.Color("#9aa5ce"),
		Value:   lipgloss.Color("#e0af68"),
		Text:    lipgloss.Color("#c0caf5"),
		Faint:   lipgloss.Color("#565f89"),
		Good:    lipgloss.Color("#9ece6a"),
		Warn:    lipgloss.Color("#e0af68"),
		Bad:     lipgloss.Color("#f7768e"),
		Series:  []asciigraph.AnsiColor{asciigraph.White, asciigraph.Orange, asciigraph.DodgerBlue, asciigraph.MediumSeaGreen},
	}

	ThemeChalk = Theme{
		Name:    "chalk",
		Heading: lipgloss.Color("#f2f2f2"),
		Label:   lipgloss.Color("#a8b5a2"),
		Value:   lipgloss.Color("#f6e3a1"),
		Text:    lipgloss.Color("#e8e8e8"),
		Faint:   lipgloss.Color("#5d6b5a"),
		Good:    lipgloss.Color("#b5d99c"),
		Warn:    lipgloss.Color("#f6c177"),
		Bad:     lipgloss.Color("#eb6f92"),
		Series:  []asciigraph.AnsiColor{asciigraph.White, asciigraph.Yellow, asciigraph.Cyan, asciigraph.Pink},
	}

	// ThemePaper is for light terminal backgrounds.
	ThemePaper = Theme{
		Name:    "paper",
		Heading: lipgloss.Color("#1f3a93"),
		Label:   lipgloss.Color("#4a4a4a"),
		Value:   lipgloss.Color("#8a4b08"),
		Text:    lipgloss.Color("#1a1a1a"),
		Faint:   lipgloss.Color("#8c8c8c"),
		Good:    lipgloss.Color("#2e7d32"),
		Warn:    lipgloss.Color("#b26a00"),
		Bad:     lipgloss.Color("#c62828"),
		Series:  []asciigraph.AnsiColor{asciigraph.Black, asciigraph.DarkOrange, asciigraph.Navy, asciigraph.DarkGreen},
	}

	ThemeMono = Theme{
		Name:    "mono",
		Heading: lipgloss.Color("15"),
		Label:   lipgloss.Color("250"),
		Value:   lipgloss.Color("15"),
		Text:    lipgloss.Color("252"),
		Faint:   lipgloss.Color("242"),
		Good:    lipgloss.Color("252"),
		Warn:    lipgloss.Color("250"),
		Bad:     lipgloss.Color("15"),
		Series:  []asciigraph.AnsiColor{asciigraph.Default},
	}

	CurrentTheme = ThemeLab

	Themes = []Theme{ThemeLab, ThemeChalk, ThemePaper, ThemeMono}
)

// GetTheme returns the named theme, or lab when the name is unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeLab
}

// SetTheme switches the current theme and rebuilds the styles.
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
	applyTheme(CurrentTheme)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func nextTheme(name string) string {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)].Name
		}
	}
	return Themes[0].Name
}

// seriesColor picks the plot color for the i-th line.
func (t Theme) seriesColor(i int) asciigraph.AnsiColor {
	if len(t.Series) == 0 {
		return asciigraph.Default
	}
	return t.Series[i%len(t.Series)]
}
