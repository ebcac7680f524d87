// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the viewer.
type KeyMap struct {
	// Lines
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Pages
	PageUp    key.Binding
	PageDown  key.Binding
	PageLeft  key.Binding
	PageRight key.Binding

	// Jumps
	Top    key.Binding
	Bottom key.Binding

	// General
	ToggleStatus key.Binding
	Reload       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Lines
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "line down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "line left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "line right"),
		),

		// Pages
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b", "ctrl+u"),
			key.WithHelp("pgup/b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " ", "ctrl+d"),
			key.WithHelp("pgdn/space", "page down"),
		),
		PageLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "page left"),
		),
		PageRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "page right"),
		),

		// Jumps
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		// General
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload content"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.PageDown, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},                 // Lines
		{k.PageUp, k.PageDown, k.PageLeft, k.PageRight}, // Pages
		{k.Top, k.Bottom},                               // Jumps
		{k.ToggleStatus, k.Reload, k.Help, k.Quit},      // General
	}
}
