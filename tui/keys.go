package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Submit    key.Binding
	AddRow    key.Binding
	RemoveRow key.Binding
	NextField key.Binding
	PrevField key.Binding
	Results   key.Binding
	Accounts  key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Favorite  key.Binding
	Buy       key.Binding
	Preview   key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
	AddRow:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add item")),
	RemoveRow: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove item")),
	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	Results:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "results")),
	Accounts:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "my accounts")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
	Buy:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "buy")),
	Preview:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
}

func (m *Model) helpBindings() []key.Binding {
	switch m.pane {
	case paneResults:
		return []key.Binding{keys.Up, keys.Down, keys.Favorite, keys.Buy, keys.Preview, keys.Accounts, keys.Back, keys.Quit}
	case paneAccounts:
		return []key.Binding{keys.Left, keys.Right, keys.Back, keys.Quit}
	case paneCategory, panePreview:
		return []key.Binding{keys.Back, keys.Quit}
	default:
		return []key.Binding{keys.Submit, keys.NextField, keys.AddRow, keys.RemoveRow, keys.Results, keys.Accounts, keys.Quit}
	}
}
