package world

import "math"

// Room count tiers keyed by player count.
const (
	SmallTierRooms  = 60
	MediumTierRooms = 100
	LargeTierRooms  = 150

	smallTierMaxPlayers  = 5
	mediumTierMaxPlayers = 10
)

// TargetRoomCount maps a player count onto its tier's room count.
func TargetRoomCount(playerCount int) int {
	switch {
	case playerCount <= smallTierMaxPlayers:
		return SmallTierRooms
	case playerCount <= mediumTierMaxPlayers:
		return MediumTierRooms
	default:
		return LargeTierRooms
	}
}

// GridSide returns the side of the square grid that holds count rooms,
// including a two cell margin.
func GridSide(count int) int {
	return int(math.Ceil(math.Sqrt(float64(count)))) + 2
}

// initialize mints targetCount fresh rooms and lays them out row-major.
func (d *Dungeon) initialize(targetCount int) {
	d.Rooms = make([]*Room, 0, max(targetCount, 0))
	for i := 0; i < targetCount; i++ {
		d.Rooms = append(d.Rooms, &Room{ID: d.rng.UUID()})
	}
	d.reposition()
}

// reposition lays out the current room list row-major and rebuilds the grid
// and id indexes. Callers trim the list to its target size first.
func (d *Dungeon) reposition() {
	d.Side = GridSide(len(d.Rooms))
	d.grid = make(map[Point][]*Room, len(d.Rooms))
	d.byID = make(map[string]*Room, len(d.Rooms))

	for i, room := range d.Rooms {
		room.X = i % d.Side
		room.Y = i / d.Side
		p := Point{room.X, room.Y}
		d.grid[p] = append(d.grid[p], room)
		d.byID[room.ID] = room
	}
}

// neighbors returns the rooms on the four adjacent grid cells, scanning
// directions in a fixed order so draws stay reproducible.
func (d *Dungeon) neighbors(room *Room) []*Room {
	var out []*Room
	for _, dir := range AllDirections() {
		dx, dy := dir.Delta()
		out = append(out, d.grid[Point{room.X + dx, room.Y + dy}]...)
	}
	return out
}
