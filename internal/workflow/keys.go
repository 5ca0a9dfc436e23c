package workflow

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyTable is the fixed, engine-independent mapping of keys to input
// commands. Every Input variant interprets events through this table;
// only the source of completion suggestions varies across engines.
type KeyTable struct {
	Submit      key.Binding
	Back        key.Binding
	Abort       key.Binding
	Up          key.Binding
	Down        key.Binding
	AcceptHint  key.Binding
	ClearBuffer key.Binding
}

// Keys is the table shared by all inputs.
var Keys = KeyTable{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Abort: key.NewBinding(
		key.WithKeys("ctrl+q"),
		key.WithHelp("ctrl+q", "abort form"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	AcceptHint: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "accept suggestion"),
	),
	ClearBuffer: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "clear"),
	),
}

// CommandKeys returns the bindings a form step advertises in screen chrome.
func CommandKeys() []key.Binding {
	return []key.Binding{Keys.Submit, Keys.Back, Keys.Abort}
}

// matches reports whether the event matches the binding.
func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}
