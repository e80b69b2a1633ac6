package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the calendar browser
type KeyMap struct {
	// Days
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	First key.Binding
	Last  key.Binding

	// Months
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding

	// Actions
	CompleteDay key.Binding

	// General
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		First: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first day"),
		),
		Last: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last day"),
		),

		PrevMonth: key.NewBinding(
			key.WithKeys("H", "pgup"),
			key.WithHelp("H/PgUp", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("L", "pgdown"),
			key.WithHelp("L/PgDn", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),

		CompleteDay: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete day"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.PrevMonth, k.NextMonth, k.Today, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.First, k.Last},
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.CompleteDay, k.ThemeCycle, k.Help, k.Quit},
	}
}
