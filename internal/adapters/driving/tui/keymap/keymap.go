// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Submit processes a URL, sends a question or applies settings.
	Submit key.Binding

	// ClearChat resets the conversation without re-indexing.
	ClearChat key.Binding

	// NewVideo returns to URL entry.
	NewVideo key.Binding

	// Settings opens the parameter panel.
	Settings key.Binding

	// Up selects the previous parameter.
	Up key.Binding

	// Down selects the next parameter.
	Down key.Binding

	// Left decreases the selected parameter.
	Left key.Binding

	// Right increases the selected parameter.
	Right key.Binding

	// ScrollUp scrolls the conversation towards older turns.
	ScrollUp key.Binding

	// ScrollDown scrolls the conversation towards newer turns.
	ScrollDown key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		ClearChat: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear chat"),
		),
		NewVideo: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new video"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "settings"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "select"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "adjust"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "increase"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup/pgdn", "scroll"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}

// VideoHelp returns keybindings shown while entering a URL.
func (k *KeyMap) VideoHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Settings, k.Quit}
}

// ChatHelp returns keybindings shown in the conversation.
func (k *KeyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ClearChat, k.NewVideo, k.Settings, k.ScrollUp, k.Quit}
}

// SettingsHelp returns keybindings shown in the parameter panel.
func (k *KeyMap) SettingsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Submit, k.Back}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
