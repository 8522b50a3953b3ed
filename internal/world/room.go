package world

import (
	"math"
	"slices"
)

// PuzzleKey is the only puzzle type placed today.
const PuzzleKey = "key"

// Room is a single node of the dungeon graph.
//
// Optional content slots use the empty string for "none". External systems
// clear content fields when the player picks something up; the generator only
// resets them on a rearrange.
type Room struct {
	ID    string
	X, Y  int
	Doors []string // Neighbouring room ids, no duplicates

	// Scratch flags for topology construction, reset on every (re)generation.
	Visited   bool
	IsHub     bool
	IsDeadEnd bool

	EncounterChance float64
	EncounterType   string

	HasShelfEmpty  bool
	HasShelf2Empty bool
	GemType        string
	HasPotion      bool

	PuzzleType    string
	TreasureLevel string
	HintContent   string
}

// Degree returns the number of doors.
func (r *Room) Degree() int {
	return len(r.Doors)
}

// HasDoor reports whether the room has a door to the given room id.
func (r *Room) HasDoor(id string) bool {
	return slices.Contains(r.Doors, id)
}

// Distance returns the Euclidean grid distance between two rooms.
func (r *Room) Distance(other *Room) float64 {
	return math.Hypot(float64(r.X-other.X), float64(r.Y-other.Y))
}

// resetTopology clears doors and construction flags.
func (r *Room) resetTopology() {
	r.Doors = r.Doors[:0]
	r.Visited = false
	r.IsHub = false
	r.IsDeadEnd = false
}

// resetContent clears every placed content slot.
func (r *Room) resetContent() {
	r.EncounterChance = 0
	r.EncounterType = ""
	r.HasShelfEmpty = false
	r.HasShelf2Empty = false
	r.GemType = ""
	r.HasPotion = false
	r.PuzzleType = ""
	r.TreasureLevel = ""
	r.HintContent = ""
}
