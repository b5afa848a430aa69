package tui

import "github.com/charmbracelet/bubbles/key"

type pageKeys struct {
	Add    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Quit   key.Binding
}

func newPageKeys() pageKeys {
	return pageKeys{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k pageKeys) short() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete}
}

type formKeys struct {
	Submit     key.Binding
	SubmitLine key.Binding // enter, only while the title has focus
	Next       key.Binding
	Cancel     key.Binding
}

func newFormKeys() formKeys {
	return formKeys{
		Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		SubmitLine: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Next:       key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}
