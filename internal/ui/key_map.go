package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	search    key.Binding
	focus     key.Binding
	up        key.Binding
	down      key.Binding
	details   key.Binding
	add       key.Binding
	remove    key.Binding
	open      key.Binding
	clear     key.Binding
	theme     key.Binding
	watchlist key.Binding
	help      key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		search:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		focus:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "input/results")),
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		details:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to watchlist")),
		remove:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open on IMDb")),
		clear:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		theme:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		watchlist: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "watchlist")),
		help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.focus, k.watchlist, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.search, k.focus, k.up, k.down},
		{k.details, k.add, k.remove, k.open},
		{k.clear, k.theme, k.watchlist, k.quit},
	}
}
