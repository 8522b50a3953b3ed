package ui

import (
	"fmt"

	"github.com/samdwyer/dungeonweave/internal/world"
)

// Each room occupies a cellWidth x cellHeight block; the room glyph sits at
// the top-left and door glyphs fill the gap to the east and south.
const (
	cellWidth  = 4
	cellHeight = 2
)

// GlyphKind classifies a map glyph for styling.
type GlyphKind int

const (
	KindEmpty GlyphKind = iota
	KindRoom
	KindHub
	KindDeadEnd
	KindDoor
	KindTreasure
	KindHint
	KindKey
)

// Glyph is one character of the map with its kind.
type Glyph struct {
	Rune rune
	Kind GlyphKind
}

var emptyGlyph = Glyph{Rune: ' ', Kind: KindEmpty}

// RoomGlyph returns the glyph for a room, preferring what a player most
// wants to see.
func RoomGlyph(room *world.Room) Glyph {
	switch {
	case room.TreasureLevel != "":
		return Glyph{'$', KindTreasure}
	case room.HintContent != "":
		return Glyph{'?', KindHint}
	case room.PuzzleType != "":
		return Glyph{'k', KindKey}
	case room.IsHub:
		return Glyph{'H', KindHub}
	case room.IsDeadEnd:
		return Glyph{'x', KindDeadEnd}
	default:
		return Glyph{'o', KindRoom}
	}
}

// CellOrigin returns the map coordinates of a room's glyph.
func CellOrigin(room *world.Room) (x, y int) {
	return room.X * cellWidth, room.Y * cellHeight
}

// Layout renders the dungeon into rows of glyphs. Doors between grid
// neighbours are drawn; doors to distant rooms are not.
func Layout(d *world.Dungeon) [][]Glyph {
	rows := d.Rows()
	if rows == 0 {
		return nil
	}
	width := d.Side*cellWidth - (cellWidth - 1)
	height := rows*cellHeight - (cellHeight - 1)

	grid := make([][]Glyph, height)
	for y := range grid {
		grid[y] = make([]Glyph, width)
		for x := range grid[y] {
			grid[y][x] = emptyGlyph
		}
	}

	for _, room := range d.Rooms {
		x, y := CellOrigin(room)
		grid[y][x] = RoomGlyph(room)
		if d.Neighbor(room, world.East) != nil {
			for dx := 1; dx < cellWidth; dx++ {
				grid[y][x+dx] = Glyph{'-', KindDoor}
			}
		}
		if d.Neighbor(room, world.South) != nil {
			for dy := 1; dy < cellHeight; dy++ {
				grid[y+dy][x] = Glyph{'|', KindDoor}
			}
		}
	}
	return grid
}

// RoomDetails describes a room's content, one fact per line.
func RoomDetails(d *world.Dungeon, room *world.Room) []string {
	lines := []string{
		fmt.Sprintf("room %s", room.ID[:min(8, len(room.ID))]),
		fmt.Sprintf("at %d,%d  doors %d", room.X, room.Y, room.Degree()),
	}
	if room.IsHub {
		lines = append(lines, "hub")
	}
	if room.IsDeadEnd {
		lines = append(lines, "dead end")
	}
	lines = append(lines, fmt.Sprintf("encounter %.0f%%", room.EncounterChance*100))
	if room.EncounterType != "" {
		lines = append(lines, "lurking: "+room.EncounterType)
	}
	if room.HasShelfEmpty {
		lines = append(lines, "shelf")
	}
	if room.HasShelf2Empty {
		lines = append(lines, "second shelf")
	}
	if room.GemType != "" {
		lines = append(lines, "gem: "+room.GemType)
	}
	if room.HasPotion {
		lines = append(lines, "potion")
	}
	if room.PuzzleType != "" {
		lines = append(lines, "puzzle: "+room.PuzzleType)
	}
	if room.TreasureLevel != "" {
		lines = append(lines, "treasure: "+room.TreasureLevel)
	}
	if room.HintContent != "" {
		if wall, ok := d.HintWall(room); ok {
			lines = append(lines, fmt.Sprintf("hint on %s wall", wall))
		}
		lines = append(lines, room.HintContent)
	}
	return lines
}
