package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the player's key bindings.
type keyMap struct {
	Toggle  key.Binding
	Stop    key.Binding
	Back    key.Binding
	Forward key.Binding
	Slower  key.Binding
	Faster  key.Binding
	Start   key.Binding
	End     key.Binding
	GoTo    key.Binding
	Debug   key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "step back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "step forward"),
		),
		Slower: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "slower/reverse"),
		),
		Faster: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "faster"),
		),
		Start: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first frame"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last frame"),
		),
		GoTo: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to frame"),
		),
		Debug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "values"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy values"),
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

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Back, k.Forward, k.Slower, k.Faster, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Stop, k.Slower, k.Faster},
		{k.Back, k.Forward, k.Start, k.End, k.GoTo},
		{k.Debug, k.Copy, k.Help, k.Quit},
	}
}
