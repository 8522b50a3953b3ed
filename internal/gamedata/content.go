package gamedata

import "github.com/gdamore/tcell/v2"

// EntryDef is one selectable content category: an encounter, gem or
// treasure tier.
type EntryDef struct {
	ID    string `json:"id"`    // Identifier stored on rooms (e.g., "goblin")
	Name  string `json:"name"`  // Display name (e.g., "Goblin")
	Glyph string `json:"glyph"` // Single character for rendering
	Color string `json:"color"` // Hex color code (e.g., "#00FF00")
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EntryDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return []rune(e.Glyph)[0]
}

// TCellColor returns the color as a tcell.Color.
func (e *EntryDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// Palette holds hex colours for map elements.
type Palette struct {
	Room     string `json:"room"`
	Hub      string `json:"hub"`
	DeadEnd  string `json:"deadEnd"`
	Door     string `json:"door"`
	Treasure string `json:"treasure"`
	Hint     string `json:"hint"`
	Key      string `json:"key"`
	Party    string `json:"party"`
}

// ContentFile represents the structure of content.json.
type ContentFile struct {
	Encounters []EntryDef `json:"encounters"`
	Gems       []EntryDef `json:"gems"`
	Treasures  []EntryDef `json:"treasures"`
	Palette    Palette    `json:"palette"`
}

// LoadContent loads content definitions from the embedded content.json file.
func LoadContent() (ContentFile, error) {
	return Load[ContentFile]("content.json")
}
