package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/odesim/internal/sim"
)

type viewMode int

const (
	modeTable viewMode = iota
	modeSolution
	modeError
)

func (m viewMode) String() string {
	switch m {
	case modeSolution:
		return "solution"
	case modeError:
		return "error"
	}
	return "table"
}

const (
	defaultWidth  = 100
	defaultHeight = 30
	chromeLines   = 8
)

// Model browses one result: a row table per variant plus both plots.
type Model struct {
	res     *sim.Result
	variant int
	mode    viewMode
	tables  []table.Model
	help    help.Model
	width   int
	height  int
}

func NewModel(res *sim.Result) Model {
	m := Model{
		res:    res,
		help:   help.New(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, v := range res.Variants {
		m.tables = append(m.tables, newRowTable(res, v.Name, m.pageSize()))
	}
	m.focus()
	return m
}

func newRowTable(res *sim.Result, variant string, height int) table.Model {
	columns := []table.Column{
		{Title: "i", Width: 6},
		{Title: "x_i", Width: 12},
		{Title: "y_i", Width: 14},
		{Title: "exact y", Width: 14},
		{Title: "% err", Width: 12},
		{Title: "status", Width: 12},
	}

	var rows []table.Row
	if rs, err := res.Rows(variant); err == nil {
		d := res.Request.Digits
		for _, r := range rs {
			line := table.Row{fmt.Sprint(r.Index), formatNum(r.X, d), missing, missing, missing, string(r.Status)}
			if !r.Failed() {
				line[2] = formatNum(r.Y, d)
			}
			if r.HasExact {
				line[3] = formatNum(r.Exact, d)
			}
			if r.HasError() {
				line[4] = formatNum(r.RelErrPct, d)
			}
			rows = append(rows, line)
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(height),
	)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(CurrentTheme.Faint).
		BorderBottom(true).
		Bold(true).
		Foreground(CurrentTheme.Heading)
	s.Selected = s.Selected.
		Foreground(CurrentTheme.Text).
		Background(CurrentTheme.Faint).
		Bold(false)
	return s
}

func (m *Model) focus() {
	for i := range m.tables {
		if i == m.variant {
			m.tables[i].Focus()
		} else {
			m.tables[i].Blur()
		}
	}
}

func (m Model) pageSize() int {
	return max(m.height-chromeLines, 3)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		for i := range m.tables {
			m.tables[i].SetHeight(m.pageSize())
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			if n := len(m.tables); n > 0 {
				m.variant = (m.variant + 1) % n
				m.focus()
			}
			return m, nil
		case key.Matches(msg, keys.Prev):
			if n := len(m.tables); n > 0 {
				m.variant = (m.variant + n - 1) % n
				m.focus()
			}
			return m, nil
		case key.Matches(msg, keys.Mode):
			m.mode = (m.mode + 1) % 3
			return m, nil
		case key.Matches(msg, keys.Theme):
			SetTheme(nextTheme(CurrentTheme.Name))
			for i := range m.tables {
				m.tables[i].SetStyles(tableStyles())
			}
			return m, nil
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	if m.mode != modeTable || len(m.tables) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.tables[m.variant], cmd = m.tables[m.variant].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	tabs := make([]string, len(m.res.Variants))
	for i, v := range m.res.Variants {
		if i == m.variant {
			tabs[i] = HeaderStyle.Render("[" + v.Name + "]")
		} else {
			tabs[i] = Subtle.Render(" " + v.Name + " ")
		}
	}
	s.WriteString(Title.Render("y' = "+m.res.Request.Expression) + "  " + strings.Join(tabs, " ") + "\n")
	s.WriteString(exactLine(m.res, m.width) + "\n")
	s.WriteString(Separator(min(m.width, 80)) + "\n")

	opts := PlotOptions{Width: max(m.width-12, 20), Height: max(m.pageSize()-2, 5)}
	switch m.mode {
	case modeSolution:
		s.WriteString(orMessage(SolutionPlot(m.res, opts)))
	case modeError:
		s.WriteString(orMessage(ErrorPlot(m.res, opts)))
	default:
		s.WriteString(m.rowsView())
	}
	s.WriteString("\n")

	if len(m.res.Variants) > 0 {
		if f := m.res.Variants[m.variant].Trajectory.Failure; f != nil {
			s.WriteString(StatusFail.Render("halted: "+f.Error()) + "\n")
		}
	}
	s.WriteString(KeyHint.Render(fmt.Sprintf("mode %s, theme %s", m.mode, CurrentTheme.Name)) + "\n")
	s.WriteString(m.help.View(keys))
	return s.String()
}

func (m Model) rowsView() string {
	if len(m.tables) == 0 {
		return Subtle.Render("no variants")
	}
	t := m.tables[m.variant]
	pos := Subtle.Render(fmt.Sprintf("row %d of %d", t.Cursor()+1, len(t.Rows())))
	return t.View() + "\n" + pos
}

func orMessage(s string, err error) string {
	if err != nil {
		return Subtle.Render(err.Error())
	}
	return s
}

// Run opens the browser on the alternate screen until the user quits.
func Run(res *sim.Result) error {
	_, err := tea.NewProgram(NewModel(res), tea.WithAltScreen()).Run()
	return err
}
