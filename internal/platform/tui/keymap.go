package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings of the pet view.
type KeyMap struct {
	Feed   key.Binding
	Summon key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Feed, k.Summon, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Feed, k.Summon},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Feed: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "feed"),
		),
		Summon: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "summon to mouse"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Command is a user request derived from input.
type Command int

const (
	CommandNone Command = iota
	CommandFeed
	CommandSummon
	CommandHelp
	CommandQuit
)

// MapKey translates a key message to a command.
func (k KeyMap) MapKey(msg tea.KeyMsg) Command {
	switch {
	case key.Matches(msg, k.Quit):
		return CommandQuit
	case key.Matches(msg, k.Feed):
		return CommandFeed
	case key.Matches(msg, k.Summon):
		return CommandSummon
	case key.Matches(msg, k.Help):
		return CommandHelp
	}
	return CommandNone
}
