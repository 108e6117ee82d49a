package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/nicobailon/tsm/internal/browser"
	"github.com/nicobailon/tsm/internal/tui/views"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Back      key.Binding
	Select    key.Binding
	Peek      key.Binding
	New       key.Binding
	Rename    key.Binding
	Kill      key.Binding
	Filter    key.Binding
	Preview   key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Yes       key.Binding
	No        key.Binding
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Accept    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("k", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down")),
	Open:      key.NewBinding(key.WithKeys("l", "right")),
	Back:      key.NewBinding(key.WithKeys("h", "left", "esc")),
	Select:    key.NewBinding(key.WithKeys("enter")),
	Peek:      key.NewBinding(key.WithKeys(" ")),
	New:       key.NewBinding(key.WithKeys("n")),
	Rename:    key.NewBinding(key.WithKeys("r")),
	Kill:      key.NewBinding(key.WithKeys("K")),
	Filter:    key.NewBinding(key.WithKeys("/")),
	Preview:   key.NewBinding(key.WithKeys("p")),
	Refresh:   key.NewBinding(key.WithKeys("R", "ctrl+r")),
	Help:      key.NewBinding(key.WithKeys("?")),
	Quit:      key.NewBinding(key.WithKeys("q")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Yes:       key.NewBinding(key.WithKeys("y", "Y", "enter")),
	No:        key.NewBinding(key.WithKeys("n", "N", "esc")),
	NextField: key.NewBinding(key.WithKeys("tab")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab")),
	Toggle:    key.NewBinding(key.WithKeys("left", "right", " ")),
	Accept:    key.NewBinding(key.WithKeys("right")),
}

func footerHints(mode browser.Mode) []views.Hint {
	switch mode.(type) {
	case *browser.ActionMenu:
		return []views.Hint{{Key: "jk", Desc: "navigate"}, {Key: "⏎/l", Desc: "select"}, {Key: "h/esc", Desc: "back"}, {Key: "q", Desc: "quit"}}
	case *browser.Filter:
		return []views.Hint{{Key: "⏎", Desc: "apply"}, {Key: "esc", Desc: "cancel"}}
	case *browser.ConfirmAction:
		return []views.Hint{{Key: "y/⏎", Desc: "confirm"}, {Key: "n/esc", Desc: "cancel"}}
	case *browser.NewSession:
		return []views.Hint{{Key: "⏎", Desc: "create"}, {Key: "tab", Desc: "switch"}, {Key: "↑↓", Desc: "select"}, {Key: "→", Desc: "accept"}, {Key: "esc", Desc: "cancel"}}
	case *browser.Rename:
		return []views.Hint{{Key: "⏎", Desc: "confirm"}, {Key: "esc", Desc: "cancel"}}
	case *browser.Help:
		return []views.Hint{{Key: "q", Desc: "close"}}
	}
	return []views.Hint{
		{Key: "?", Desc: "help"},
		{Key: "jk", Desc: "navigate"},
		{Key: "l", Desc: "actions"},
		{Key: "⏎", Desc: "switch"},
		{Key: "␣", Desc: "peek"},
		{Key: "n", Desc: "new"},
		{Key: "K", Desc: "kill"},
		{Key: "p", Desc: "preview"},
		{Key: "/", Desc: "filter"},
		{Key: "q", Desc: "quit"},
	}
}
