package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonweave/internal/gamedata"
)

// Palette maps glyph kinds to terminal styles.
type Palette struct {
	Room     tcell.Style
	Hub      tcell.Style
	DeadEnd  tcell.Style
	Door     tcell.Style
	Treasure tcell.Style
	Hint     tcell.Style
	Key      tcell.Style
	Party    tcell.Style
	Text     tcell.Style
}

// DefaultPalette returns fixed terminal colours.
func DefaultPalette() Palette {
	return Palette{
		Room:     tcell.StyleDefault.Foreground(tcell.ColorGray),
		Hub:      tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true),
		DeadEnd:  tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
		Door:     tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
		Treasure: tcell.StyleDefault.Foreground(tcell.ColorGold).Bold(true),
		Hint:     tcell.StyleDefault.Foreground(tcell.ColorDeepSkyBlue),
		Key:      tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
		Party:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		Text:     tcell.StyleDefault.Foreground(tcell.ColorWhite),
	}
}

// PaletteFromContent builds a palette from content colours, keeping the
// default for any colour that does not parse.
func PaletteFromContent(p gamedata.Palette) Palette {
	out := DefaultPalette()
	apply := func(dst *tcell.Style, hex string) {
		if c, err := gamedata.ParseHexColor(hex); err == nil {
			*dst = dst.Foreground(c)
		}
	}
	apply(&out.Room, p.Room)
	apply(&out.Hub, p.Hub)
	apply(&out.DeadEnd, p.DeadEnd)
	apply(&out.Door, p.Door)
	apply(&out.Treasure, p.Treasure)
	apply(&out.Hint, p.Hint)
	apply(&out.Key, p.Key)
	apply(&out.Party, p.Party)
	return out
}

// Style returns the style for a glyph kind.
func (p Palette) Style(kind GlyphKind) tcell.Style {
	switch kind {
	case KindRoom:
		return p.Room
	case KindHub:
		return p.Hub
	case KindDeadEnd:
		return p.DeadEnd
	case KindDoor:
		return p.Door
	case KindTreasure:
		return p.Treasure
	case KindHint:
		return p.Hint
	case KindKey:
		return p.Key
	default:
		return tcell.StyleDefault
	}
}
