// Package game runs the dungeon session: configuration, the generation
// controller and the interactive viewer.
package game

// State represents the current viewer state.
type State int

const (
	// StateExplore shows the map and moves the party between rooms.
	StateExplore State = iota
	// StateInspect additionally lists the contents of the party's room.
	StateInspect
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateInspect:
		return "inspect"
	default:
		return "unknown"
	}
}
