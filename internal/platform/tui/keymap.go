package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ice-jumper/internal/core"
	"github.com/vovakirdan/ice-jumper/internal/games/icejumper"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left", "h":
		return core.ActionLeft, false
	case "d", "right", "l":
		return core.ActionRight, false
	case "enter", " ":
		return core.ActionConfirm, false
	case "y", "Y":
		return core.ActionYes, false
	case "n", "N":
		return core.ActionNo, false
	case "esc", "b":
		return core.ActionBack, false
	}

	return core.ActionNone, false
}

// ActionDirection converts a move action to a simulator direction.
func ActionDirection(a core.Action) (icejumper.Direction, bool) {
	switch a {
	case core.ActionUp:
		return icejumper.DirUp, true
	case core.ActionDown:
		return icejumper.DirDown, true
	case core.ActionLeft:
		return icejumper.DirLeft, true
	case core.ActionRight:
		return icejumper.DirRight, true
	}
	return 0, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}

// GameKeyMap lists the in-game bindings for the help footer.
type GameKeyMap struct {
	Hop   key.Binding
	Back  key.Binding
	Shift key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hop, k.Back, k.Shift, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hop, k.Back},
		{k.Shift, k.Quit},
	}
}

// DefaultGameKeyMap returns the default in-game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Hop: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/s", "hop forward"),
		),
		Back: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/w", "hop back"),
		),
		Shift: key.NewBinding(
			key.WithKeys("left", "right", "a", "d", "h", "l"),
			key.WithHelp("left/right", "step"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
