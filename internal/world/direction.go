// Package world provides dungeon topology generation, content placement and
// the read interface renderers and game systems use to query rooms.
package world

// Direction is one of the four cardinal grid directions.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns the four cardinal directions in scan order.
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	default:
		return East
	}
}

// Delta returns the grid offset for one step in this direction.
// Y grows southwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}
