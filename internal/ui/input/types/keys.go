package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the input modes react to
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	More      key.Binding
	Retry     key.Binding
	Browse    key.Binding
	Search    key.Binding
	Clear     key.Binding
	Help      key.Binding
	HelpPager key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the bindings for both modes. Letter keys are only
// matched in browse mode since search mode types them into the query.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "top")),
		End:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "bottom")),
		More:      key.NewBinding(key.WithKeys("enter", "ctrl+n", "m"), key.WithHelp("enter", "more")),
		Retry:     key.NewBinding(key.WithKeys("ctrl+r", "r"), key.WithHelp("ctrl+r", "retry")),
		Browse:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "browse")),
		Search:    key.NewBinding(key.WithKeys("tab", "/", "i"), key.WithHelp("/", "search")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Help:      key.NewBinding(key.WithKeys("f1", "?"), key.WithHelp("?", "help")),
		HelpPager: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "help in pager")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.More, k.Retry, k.Browse, k.Help, k.ForceQuit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.More, k.Retry, k.Clear},
		{k.Browse, k.Search, k.Help, k.HelpPager, k.Quit, k.ForceQuit},
	}
}
