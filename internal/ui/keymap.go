package ui

import "charm.land/bubbles/v2/key"

// ColumnKeyMap binds the column manager's keys.
type ColumnKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	PinLeft  key.Binding
	PinRight key.Binding
	Unpin    key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	First    key.Binding
	Last     key.Binding
	Sort     key.Binding
	Reset    key.Binding
	Close    key.Binding
}

// DefaultColumnKeyMap returns the default column manager bindings.
func DefaultColumnKeyMap() ColumnKeyMap {
	return ColumnKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:   key.NewBinding(key.WithKeys("space", "v"), key.WithHelp("space", "show/hide")),
		PinLeft:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "pin start")),
		PinRight: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "pin end")),
		Unpin:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "unpin")),
		MoveUp:   key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move earlier")),
		MoveDown: key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move later")),
		First:    key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "move to start")),
		Last:     key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "move to end")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		Reset:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset view")),
		Close:    key.NewBinding(key.WithKeys("esc", "c", "q"), key.WithHelp("esc", "close")),
	}
}

func (k ColumnKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.PinLeft, k.PinRight, k.Unpin, k.MoveUp, k.MoveDown, k.Close}
}

func (k ColumnKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.PinLeft, k.PinRight, k.Unpin},
		{k.MoveUp, k.MoveDown, k.First, k.Last},
		{k.Sort, k.Reset, k.Close},
	}
}
