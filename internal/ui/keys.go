package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the results view
type keyMap struct {
	Submit    key.Binding
	Focus     key.Binding
	Blur      key.Binding
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	PageUp    key.Binding
	PageDn    key.Binding
	Copy      key.Binding
	Details   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Focus:     key.NewBinding(key.WithKeys("/", "tab"), key.WithHelp("/", "edit query")),
		Blur:      key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "results")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:       key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:    key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDn:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Copy:      key.NewBinding(key.WithKeys("c", "y", "enter"), key.WithHelp("c/y", "copy link")),
		Details:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "details")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// inputKeys is shown while the query field has focus
type inputKeys struct{ k keyMap }

func (i inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{i.k.Submit, i.k.Blur, i.k.ForceQuit}
}

func (i inputKeys) FullHelp() [][]key.Binding { return [][]key.Binding{i.ShortHelp()} }

// resultKeys is shown while the result list has focus
type resultKeys struct{ k keyMap }

func (r resultKeys) ShortHelp() []key.Binding {
	return []key.Binding{r.k.Up, r.k.Down, r.k.Copy, r.k.Details, r.k.Focus, r.k.Help, r.k.Quit}
}

func (r resultKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{r.k.Up, r.k.Down, r.k.Top, r.k.Bottom, r.k.PageUp, r.k.PageDn},
		{r.k.Copy, r.k.Details, r.k.Focus, r.k.Help, r.k.Quit},
	}
}
