package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonweave/internal/world"
)

// Action is a viewer command decoded from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionMoveNorth
	ActionMoveEast
	ActionMoveSouth
	ActionMoveWest
	ActionRegenerate
	ActionRearrange
	ActionMorePlayers
	ActionFewerPlayers
	ActionInspect
)

// actionForKey maps a key press to an action. r is only consulted for
// tcell.KeyRune.
func actionForKey(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyUp:
		return ActionMoveNorth
	case tcell.KeyRight:
		return ActionMoveEast
	case tcell.KeyDown:
		return ActionMoveSouth
	case tcell.KeyLeft:
		return ActionMoveWest
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return ActionQuit
		case 'k', 'w':
			return ActionMoveNorth
		case 'l', 'd':
			return ActionMoveEast
		case 'j', 's':
			return ActionMoveSouth
		case 'h', 'a':
			return ActionMoveWest
		case 'g':
			return ActionRegenerate
		case 'r':
			return ActionRearrange
		case '+', '=':
			return ActionMorePlayers
		case '-':
			return ActionFewerPlayers
		case 'i', ' ':
			return ActionInspect
		}
	}
	return ActionNone
}

// Direction returns the direction of a move action.
func (a Action) Direction() (world.Direction, bool) {
	switch a {
	case ActionMoveNorth:
		return world.North, true
	case ActionMoveEast:
		return world.East, true
	case ActionMoveSouth:
		return world.South, true
	case ActionMoveWest:
		return world.West, true
	default:
		return 0, false
	}
}
