package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/leonelquinteros/gotext"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonweave/internal/entity"
	"github.com/samdwyer/dungeonweave/internal/telemetry"
	"github.com/samdwyer/dungeonweave/internal/ui"
	"github.com/samdwyer/dungeonweave/internal/world"
)

const helpLine = "arrows move  i inspect  g regenerate  r rearrange  +/- players  q quit"

// Game is the interactive dungeon viewer.
type Game struct {
	screen     *ui.Screen
	renderer   *ui.Renderer
	controller *Controller
	party      *entity.Party
	config     Config
	state      State
	running    bool
	message    string
	generation int
}

// New creates a viewer on the terminal.
func New(cfg Config, controller *Controller, palette ui.Palette) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open screen: %w", err)
	}
	return NewWithScreen(screen, cfg, controller, palette), nil
}

// NewWithScreen creates a viewer drawing to an existing screen.
func NewWithScreen(screen *ui.Screen, cfg Config, controller *Controller, palette ui.Palette) *Game {
	return &Game{
		screen:     screen,
		renderer:   ui.NewRenderer(screen, palette),
		controller: controller,
		config:     cfg,
		state:      StateExplore,
		running:    true,
	}
}

// Run generates the first dungeon and executes the main loop until quit.
func (g *Game) Run(ctx context.Context) error {
	g.init(ctx)

	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// init generates the dungeon and places the party (traced).
func (g *Game) init(ctx context.Context) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.init")
	defer span.End()

	g.controller.GenerateDungeon(ctx, g.config.PlayerCount, g.config.Seed)
	var start string
	var rooms int
	g.controller.View(func(d *world.Dungeon) {
		start, rooms = startRoom(d), len(d.Rooms)
	})
	g.party = entity.NewParty(start)

	span.SetAttributes(
		attribute.String("dungeon.seed", g.config.Seed),
		attribute.Int("dungeon.rooms", rooms),
		attribute.String("party.start_room", start),
	)
}

// startRoom returns the first hub, or the first room when there are no hubs.
func startRoom(d *world.Dungeon) string {
	if hubs := d.Hubs(); len(hubs) > 0 {
		return hubs[0].ID
	}
	if len(d.Rooms) > 0 {
		return d.Rooms[0].ID
	}
	return ""
}

func (g *Game) render() {
	status := []string{
		fmt.Sprintf("seed %s  players %d  %s", g.controller.Seed(), g.controller.PlayerCount(), g.state),
		g.message,
		helpLine,
	}
	g.controller.View(func(d *world.Dungeon) {
		g.renderer.Render(d, g.party, status, g.state == StateInspect)
	})
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	switch ev := g.screen.PollEvent().(type) {
	case *tcell.EventKey:
		g.handleAction(ctx, actionForKey(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *Game) handleAction(ctx context.Context, action Action) {
	g.message = ""

	if dir, ok := action.Direction(); ok {
		g.tryMove(dir)
		return
	}

	switch action {
	case ActionQuit:
		g.running = false

	case ActionInspect:
		if g.state == StateInspect {
			g.state = StateExplore
		} else {
			g.state = StateInspect
		}

	case ActionRegenerate:
		g.generation++
		seed := fmt.Sprintf("%s/%d", g.config.Seed, g.generation)
		g.controller.GenerateDungeon(ctx, g.controller.PlayerCount(), seed)
		rooms := 0
		g.controller.View(func(d *world.Dungeon) {
			g.party.Place(startRoom(d))
			rooms = len(d.Rooms)
		})
		g.message = gotext.Get("A new dungeon: %d rooms.", rooms)

	case ActionRearrange:
		if !g.controller.RearrangeDungeon(ctx, g.controller.PlayerCount(), g.controller.Seed()) {
			g.message = gotext.Get("The walls refuse to move yet.")
			return
		}
		g.replaceParty()
		g.message = gotext.Get("The walls shift around you.")

	case ActionMorePlayers, ActionFewerPlayers:
		n := g.controller.PlayerCount() + 1
		if action == ActionFewerPlayers {
			n = max(g.controller.PlayerCount()-1, 0)
		}
		if g.controller.SetPlayerCount(ctx, n, g.controller.Seed()) {
			g.replaceParty()
			g.message = gotext.Get("%d players, the dungeon rearranges.", n)
			return
		}
		g.message = gotext.Get("%d players.", g.controller.PlayerCount())
	}
}

// tryMove walks the party through the door on the given wall, if any.
func (g *Game) tryMove(dir world.Direction) {
	var next *world.Room
	g.controller.View(func(d *world.Dungeon) {
		if here := d.RoomByID(g.party.RoomID); here != nil {
			next = d.Neighbor(here, dir)
		}
	})
	if next == nil {
		g.message = gotext.Get("No door to the %s.", dir)
		return
	}
	g.party.MoveTo(next.ID)
}

// replaceParty moves the party to the start room if a rearrange removed the
// room it stood in.
func (g *Game) replaceParty() {
	g.controller.View(func(d *world.Dungeon) {
		if d.RoomByID(g.party.RoomID) == nil {
			g.party.Place(startRoom(d))
		}
	})
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
