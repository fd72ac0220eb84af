package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sketchedit/internal/command"
)

// keyMap holds the bindings the front end handles itself. Everything else
// is translated to an accelerator and resolved by the command registry.
type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Reference key.Binding
	Cancel    key.Binding
	Submit    key.Binding
	Draw      key.Binding
	Constrain key.Binding
	Undo      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Reference: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "command reference"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel / unselect"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply edit"),
		),
		Draw: key.NewBinding(
			key.WithKeys("s", "c", "a", "p"),
			key.WithHelp("s/c/a/p", "line/circle/arc/point"),
		),
		Constrain: key.NewBinding(
			key.WithKeys("d", "h", "v", "o"),
			key.WithHelp("d/h/v/o", "distance/horiz/vert/coincident"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z", "ctrl+y"),
			key.WithHelp("ctrl+z/y", "undo/redo"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Reference, k.Cancel, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Draw, k.Constrain, k.Undo},
		{k.Cancel, k.Submit},
		{k.Help, k.Reference, k.Quit},
	}
}

var functionKeys = map[tea.KeyType]int{
	tea.KeyF1: 1, tea.KeyF2: 2, tea.KeyF3: 3, tea.KeyF4: 4,
	tea.KeyF5: 5, tea.KeyF6: 6, tea.KeyF7: 7, tea.KeyF8: 8,
	tea.KeyF9: 9, tea.KeyF10: 10, tea.KeyF11: 11, tea.KeyF12: 12,
}

// accelFromKey translates a terminal key into an accelerator. Terminals
// cannot report Ctrl+Shift with a digit, so Alt stands in for Ctrl+Shift.
// Ctrl+I and Ctrl+M arrive as Tab and Enter and are never Ctrl
// accelerators.
func accelFromKey(msg tea.KeyMsg) (command.Accel, bool) {
	switch msg.Type {
	case tea.KeyEsc:
		return command.NewAccel(command.EscapeKey, false, false), true
	case tea.KeyDelete, tea.KeyBackspace:
		return command.NewAccel(command.DeleteKey, false, false), true
	case tea.KeyTab:
		return command.NewAccel('\t', false, false), true
	case tea.KeyEnter:
		return 0, false
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return 0, false
		}
		r := msg.Runes[0]
		var a command.Accel
		if msg.Alt {
			a = command.NewAccel(unicode.ToUpper(r), true, true)
		} else {
			a = command.NewAccel(r, unicode.IsUpper(r), false)
		}
		return a, !a.IsZero()
	}
	if n, ok := functionKeys[msg.Type]; ok {
		return command.FunctionKey(n), true
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return command.NewAccel('A'+rune(msg.Type-tea.KeyCtrlA), false, true), true
	}
	return 0, false
}
