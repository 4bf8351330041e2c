package tui

import "github.com/charmbracelet/bubbles/key"

// DuelKeyMap defines the key bindings for the duel view.
type DuelKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Skill1 key.Binding
	Skill2 key.Binding
	Skill3 key.Binding
	Shop   key.Binding
	Forge  key.Binding
	Cancel key.Binding
	Next   key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k DuelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Skill1, k.Shop, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k DuelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select},
		{k.Skill1, k.Skill2, k.Skill3, k.Cancel},
		{k.Shop, k.Forge, k.Next, k.Reset, k.Quit},
	}
}

// DefaultDuelKeyMap returns the default duel key bindings.
func DefaultDuelKeyMap() DuelKeyMap {
	return DuelKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "move right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select/swap"),
		),
		Skill1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1-3", "skills"),
		),
		Skill2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "skill 2"),
		),
		Skill3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "skill 3"),
		),
		Shop: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "blessing shop"),
		),
		Forge: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "forge relic"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next battle"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart run"),
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
