package ui

import (
	"github.com/samdwyer/dungeonweave/internal/entity"
	"github.com/samdwyer/dungeonweave/internal/world"
)

// Renderer handles drawing the dungeon to the screen.
type Renderer struct {
	screen  *Screen
	palette Palette
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette Palette) *Renderer {
	return &Renderer{screen: screen, palette: palette}
}

// Render draws the map, the party, status lines below the map and, when
// inspect is set, the details of the party's room beside it.
func (r *Renderer) Render(d *world.Dungeon, party *entity.Party, status []string, inspect bool) {
	r.screen.Clear()

	layout := Layout(d)
	width := 0
	for y, row := range layout {
		width = max(width, len(row))
		for x, g := range row {
			r.screen.SetContent(x, y, g.Rune, r.palette.Style(g.Kind))
		}
	}

	var here *world.Room
	if party != nil {
		here = d.RoomByID(party.RoomID)
	}
	if here != nil {
		x, y := CellOrigin(here)
		r.screen.SetContent(x, y, party.Symbol, r.palette.Party)
	}

	top := len(layout) + 1
	for i, line := range status {
		r.RenderMessage(line, 0, top+i)
	}

	if inspect && here != nil {
		for i, line := range RoomDetails(d, here) {
			r.RenderMessage(line, width+3, i)
		}
	}

	r.screen.Show()
}

// RenderMessage writes a line of text starting at x, y.
func (r *Renderer) RenderMessage(msg string, x, y int) {
	i := 0
	for _, ch := range msg {
		r.screen.SetContent(x+i, y, ch, r.palette.Text)
		i++
	}
}
