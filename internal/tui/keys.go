package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding

	// Tabs
	Invited  key.Binding
	Accepted key.Binding
	NextTab  key.Binding

	// Actions
	Accept  key.Binding
	Decline key.Binding
	Refresh key.Binding

	// Movement
	Up   key.Binding
	Down key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Invited:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "invited")),
	Accepted: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "accepted")),
	NextTab:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
	Accept:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
	Decline:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "decline")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
}
