package main

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Search      key.Binding
	FitFilter   key.Binding
	Detail      key.Binding
	Back        key.Binding
	ClearSearch key.Binding
	Quit        key.Binding
}

func NewKeyMap() *KeyMap {
	return &KeyMap{
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		FitFilter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fit filter")),
		Detail:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		ClearSearch: key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
