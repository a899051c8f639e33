package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Input   key.Binding
	Palette key.Binding
	Theme   key.Binding
	Menu    key.Binding
	Copy    key.Binding
	Task    key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Input:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "type")),
		Palette: key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "jump")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Menu:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "sidebar")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy 1/4")),
		Task:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "ai mode")),
		Faster:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "bpm")),
		Slower:  key.NewBinding(key.WithKeys("-")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Input, k.Palette, k.Theme, k.Quit, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Input, k.Palette, k.Menu, k.Theme},
		{k.Copy, k.Faster, k.Task},
		{k.Help, k.Quit},
	}
}
