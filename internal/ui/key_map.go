package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	tab      key.Binding
	spin     key.Binding
	workouts key.Binding
	refresh  key.Binding
	back     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "revenge/unplayed")),
		spin:     key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s", "spin")),
		workouts: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "workouts")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.tab, k.spin, k.workouts, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.tab},
		{k.spin, k.workouts, k.refresh},
		{k.back, k.quit},
	}
}
