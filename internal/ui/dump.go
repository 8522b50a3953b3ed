package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gookit/color"
	"golang.org/x/term"

	"github.com/samdwyer/dungeonweave/internal/world"
)

// DefaultTerminalWidth is assumed when stdout is not a terminal.
const DefaultTerminalWidth = 80

// legendWidth is the column budget the legend needs beside the map.
const legendWidth = 22

var dumpStyles = map[GlyphKind]color.Style{
	KindRoom:     {color.FgWhite},
	KindHub:      {color.FgYellow, color.OpBold},
	KindDeadEnd:  {color.FgDarkGray},
	KindDoor:     {color.FgDarkGray},
	KindTreasure: {color.FgLightYellow, color.OpBold},
	KindHint:     {color.FgCyan},
	KindKey:      {color.FgMagenta, color.OpBold},
}

var legend = []string{
	"o room    H hub",
	"x dead end",
	"$ treasure",
	"? hint    k key",
}

// DumpOptions controls Dump output.
type DumpOptions struct {
	Color  bool // Colour glyphs with ANSI escapes
	Legend bool // Print the glyph legend beside the map
}

// StdoutOptions picks dump options for the process's stdout: colour only on
// a terminal, legend only when it fits.
func StdoutOptions(d *world.Dungeon) DumpOptions {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DumpOptions{}
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		width = DefaultTerminalWidth
	}
	return DumpOptions{
		Color:  true,
		Legend: d.Side*cellWidth+legendWidth <= width,
	}
}

// Dump writes the map and a stats footer as text.
func Dump(w io.Writer, d *world.Dungeon, opts DumpOptions) error {
	bw := bufio.NewWriter(w)

	for y, row := range Layout(d) {
		var line strings.Builder
		for _, g := range row {
			if style, ok := dumpStyles[g.Kind]; ok && opts.Color {
				line.WriteString(style.Sprint(string(g.Rune)))
				continue
			}
			line.WriteRune(g.Rune)
		}
		text := strings.TrimRight(line.String(), " ")
		if opts.Legend && y < len(legend) {
			text = fmt.Sprintf("%-*s   %s", len(row), line.String(), legend[y])
		}
		if _, err := fmt.Fprintln(bw, text); err != nil {
			return fmt.Errorf("write map row %d: %w", y, err)
		}
	}

	s := d.Stats()
	if _, err := fmt.Fprintf(bw, "\nrooms %d  hubs %d  dead ends %d  doors %d\n", s.Rooms, s.Hubs, s.DeadEnds, s.Edges); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	if _, err := fmt.Fprintf(bw, "encounters %d  shelves %d/%d  gems %d  potions %d  keys %d  treasure %d  hints %d\n",
		s.Encounters, s.Shelves, s.Shelves2, s.Gems, s.Potions, s.Keys, s.Treasure, s.Hints); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return bw.Flush()
}
