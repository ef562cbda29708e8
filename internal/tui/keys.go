package tui

import "github.com/charmbracelet/bubbles/key"

// browserKeys are the film browser shortcuts.
type browserKeys struct {
	Quit    key.Binding
	Select  key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Details key.Binding
}

func newBrowserKeys() browserKeys {
	return browserKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Details: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "detail pane"),
		),
	}
}

// ShortHelp returns the bindings shown under the list.
func (k browserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Delete, k.Details}
}

// FullHelp returns every binding for the expanded help view.
func (k browserKeys) FullHelp() []key.Binding {
	return []key.Binding{k.Select, k.Edit, k.Delete, k.Details}
}
