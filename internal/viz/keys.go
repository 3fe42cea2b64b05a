package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Mode  key.Binding
	Theme key.Binding
	Up    key.Binding
	Down  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Mode, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Mode, k.Theme},
		{k.Up, k.Down, k.Help, k.Quit},
	}
}

// Up and Down are only listed for help; the row table handles them.
var keys = keyMap{
	Next:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next variant")),
	Prev:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous variant")),
	Mode:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "table/solution/error")),
	Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
	Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}
