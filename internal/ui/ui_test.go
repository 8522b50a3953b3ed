package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonweave/internal/entity"
	"github.com/samdwyer/dungeonweave/internal/gamedata"
	"github.com/samdwyer/dungeonweave/internal/rng"
	"github.com/samdwyer/dungeonweave/internal/world"
)

var testTables = world.ContentTables{
	EncounterTypes: []string{"goblin", "bat"},
	GemTypes:       []string{"ruby", "topaz"},
	TreasureLevels: []string{"silver", "gold"},
}

func testDungeon(t *testing.T, count int) *world.Dungeon {
	t.Helper()
	d := world.NewDungeon(testTables)
	d.Generate(context.Background(), rng.New("ui"), count)
	return d
}

func TestRoomGlyph(t *testing.T) {
	tests := []struct {
		name string
		room world.Room
		want Glyph
	}{
		{"plain", world.Room{}, Glyph{'o', KindRoom}},
		{"hub", world.Room{IsHub: true}, Glyph{'H', KindHub}},
		{"dead end", world.Room{IsDeadEnd: true}, Glyph{'x', KindDeadEnd}},
		{"key", world.Room{IsHub: true, PuzzleType: world.PuzzleKey}, Glyph{'k', KindKey}},
		{"hint", world.Room{PuzzleType: world.PuzzleKey, HintContent: "here: gold"}, Glyph{'?', KindHint}},
		{"treasure", world.Room{HintContent: "x", TreasureLevel: "gold"}, Glyph{'$', KindTreasure}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoomGlyph(&tt.room); got != tt.want {
				t.Errorf("RoomGlyph() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLayout(t *testing.T) {
	d := testDungeon(t, 60)
	layout := Layout(d)

	if len(layout) != d.Rows()*cellHeight-1 {
		t.Fatalf("layout rows = %d, want %d", len(layout), d.Rows()*cellHeight-1)
	}
	for _, room := range d.Rooms {
		x, y := CellOrigin(room)
		if got := layout[y][x]; got != RoomGlyph(room) {
			t.Errorf("glyph at room (%d,%d) = %+v, want %+v", room.X, room.Y, got, RoomGlyph(room))
		}
		if x+1 >= len(layout[y]) {
			continue
		}
		east := d.Neighbor(room, world.East) != nil
		if drawn := layout[y][x+1].Kind == KindDoor; drawn != east {
			t.Errorf("room (%d,%d) east door drawn = %v, want %v", room.X, room.Y, drawn, east)
		}
	}
}

func TestLayoutEmpty(t *testing.T) {
	if got := Layout(world.NewDungeon(testTables)); got != nil {
		t.Errorf("Layout(empty) = %v, want nil", got)
	}
}

func TestRoomDetails(t *testing.T) {
	d := testDungeon(t, 60)
	for _, room := range d.Rooms {
		lines := RoomDetails(d, room)
		if !strings.HasPrefix(lines[0], "room "+room.ID[:8]) {
			t.Errorf("first line = %q, want room id prefix", lines[0])
		}
		if room.TreasureLevel != "" && !containsLine(lines, "treasure: "+room.TreasureLevel) {
			t.Errorf("details for treasure room missing treasure: %v", lines)
		}
		if room.HintContent != "" && !containsLine(lines, room.HintContent) {
			t.Errorf("details for hint room missing hint: %v", lines)
		}
	}
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}

func TestDumpPlain(t *testing.T) {
	d := testDungeon(t, 60)
	var buf bytes.Buffer
	if err := Dump(&buf, d, DumpOptions{}); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	out := buf.String()

	if strings.Contains(out, "\x1b[") {
		t.Error("plain dump contains ANSI escapes")
	}
	if !strings.Contains(out, "rooms 60") {
		t.Errorf("dump missing room count:\n%s", out)
	}
	if got := strings.Count(out, "H"); got > 5 {
		t.Errorf("dump has %d hub glyphs, want at most 5", got)
	}
	first := strings.SplitN(out, "\n", 2)[0]
	if first == "" {
		t.Error("dump starts with an empty map row")
	}
}

func TestDumpLegend(t *testing.T) {
	d := testDungeon(t, 60)
	var buf bytes.Buffer
	if err := Dump(&buf, d, DumpOptions{Legend: true}); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(buf.String(), "$ treasure") {
		t.Errorf("dump with legend missing legend:\n%s", buf.String())
	}
}

func TestPaletteFromContent(t *testing.T) {
	p := PaletteFromContent(gamedata.Palette{Hub: "#ff0000", Room: "not a colour"})
	fg, _, _ := p.Hub.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("hub colour = %v, want red", fg)
	}
	roomFg, _, _ := p.Room.Decompose()
	defaultFg, _, _ := DefaultPalette().Room.Decompose()
	if roomFg != defaultFg {
		t.Error("unparsable colour should keep the default style")
	}
}

func TestRendererDrawsMapAndParty(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error = %v", err)
	}
	defer screen.Close()
	sim.SetSize(120, 40)

	d := testDungeon(t, 60)
	party := entity.NewParty(d.Rooms[1].ID)
	r := NewRenderer(screen, DefaultPalette())
	r.Render(d, party, []string{"status line"}, true)

	if got := screen.Content(0, 0); got != RoomGlyph(d.Rooms[0]).Rune {
		t.Errorf("cell (0,0) = %q, want first room glyph", got)
	}
	x, y := CellOrigin(d.Rooms[1])
	if got := screen.Content(x, y); got != '&' {
		t.Errorf("party cell = %q, want '&'", got)
	}
	statusY := len(Layout(d)) + 1
	if got := screen.Content(0, statusY); got != 's' {
		t.Errorf("status cell = %q, want 's'", got)
	}
	panelX := len(Layout(d)[0]) + 3
	if got := screen.Content(panelX, 0); got != 'r' {
		t.Errorf("inspect panel cell = %q, want 'r'", got)
	}
}
