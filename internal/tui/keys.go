package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings with built-in help text.
type KeyMap struct {
	// Global
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
	Stats  key.Binding

	// Navigation
	NextSection key.Binding
	PrevSection key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Enter       key.Binding

	// Showcase
	Search      key.Binding
	PrevCat     key.Binding
	NextCat     key.Binding
	ScrollBack  key.Binding
	ScrollAhead key.Binding
	Assistant   key.Binding

	// Assistant
	Back   key.Binding
	Upload key.Binding
	Camera key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?/F1", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/close"),
		),
		Stats: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "catalog stats"),
		),

		NextSection: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next section"),
		),
		PrevSection: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev section"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		PrevCat: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev category"),
		),
		NextCat: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next category"),
		),
		ScrollBack: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "scroll lane back"),
		),
		ScrollAhead: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "scroll lane ahead"),
		),
		Assistant: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "AI assistant"),
		),

		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to shop"),
		),
		Upload: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "upload image"),
		),
		Camera: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "take photo"),
		),
	}
}
