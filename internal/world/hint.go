package world

import (
	"strings"

	"github.com/leonelquinteros/gotext"
)

// hintWallScale spreads the id character sum before taking the modulus.
const hintWallScale = 31

// localize translates player facing text. Without a loaded locale it just
// formats the source string.
var localize = gotext.Get

// CompassHint describes where target lies relative to from, for example
// "3 east, 2 south: gold".
func CompassHint(from, to *Room) string {
	var parts []string
	dx, dy := to.X-from.X, to.Y-from.Y

	switch {
	case dx > 0:
		parts = append(parts, localize("%d east", dx))
	case dx < 0:
		parts = append(parts, localize("%d west", -dx))
	}
	switch {
	case dy > 0:
		parts = append(parts, localize("%d south", dy))
	case dy < 0:
		parts = append(parts, localize("%d north", -dy))
	}
	if len(parts) == 0 {
		parts = append(parts, localize("here"))
	}
	return strings.Join(parts, ", ") + ": " + to.TreasureLevel
}

// FreeWalls returns the directions in which the room has no door.
func (d *Dungeon) FreeWalls(room *Room) []Direction {
	var free []Direction
	for _, dir := range AllDirections() {
		if d.Neighbor(room, dir) == nil {
			free = append(free, dir)
		}
	}
	return free
}

// HintWall picks the wall a room's hint is painted on from the room id and
// its doors. It never draws from the random stream. The second result is
// false when every wall has a door.
func (d *Dungeon) HintWall(room *Room) (Direction, bool) {
	free := d.FreeWalls(room)
	if len(free) == 0 {
		return North, false
	}
	sum := 0
	for _, c := range room.ID {
		sum += int(c)
	}
	return free[(sum*hintWallScale)%len(free)], true
}
