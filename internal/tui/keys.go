package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PanLeft   key.Binding
	PanRight  key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	GoTo      key.Binding
	Reset     key.Binding
	Tracks    key.Binding
	Toggle    key.Binding
	Selection key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	PanLeft: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "pan left"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "pan right"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll rows up"),
	),
	ScrollDn: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll rows down"),
	),
	GoTo: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to range"),
	),
	Reset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "full extent"),
	),
	Tracks: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "tracks"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "show/hide track"),
	),
	Selection: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "selection"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear selection"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.GoTo, k.Tracks, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.Reset},
		{k.ScrollUp, k.ScrollDn, k.GoTo},
		{k.Tracks, k.Toggle, k.Selection, k.Clear},
		{k.Help, k.Quit},
	}
}
