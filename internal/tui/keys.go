package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the list-view bindings.
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Add        key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Remove     key.Binding
	PrevFilter key.Binding
	NextFilter key.Binding
	FilterAll  key.Binding
	FilterPend key.Binding
	FilterDone key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:        key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Remove:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		PrevFilter: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev filter")),
		NextFilter: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next filter")),
		FilterAll:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterPend: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "pending")),
		FilterDone: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "done")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Remove, k.NextFilter, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Toggle, k.Edit, k.Remove},
		{k.PrevFilter, k.NextFilter, k.FilterAll, k.FilterPend, k.FilterDone},
		{k.Theme, k.Help, k.Quit},
	}
}

// dialogKeys holds the bindings active while a prompt is open.
type dialogKeys struct {
	Accept  key.Binding
	Decline key.Binding
}

func defaultDialogKeys() dialogKeys {
	return dialogKeys{
		Accept:  key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y/enter", "confirm")),
		Decline: key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "cancel")),
	}
}

// formKeys holds the bindings active in the add form and the inline editor.
type formKeys struct {
	Submit key.Binding
	Cancel key.Binding
}

func defaultFormKeys() formKeys {
	return formKeys{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
