package world

import (
	"context"
	"time"

	"github.com/zyedidia/generic/mapset"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeonweave/internal/rng"
	"github.com/samdwyer/dungeonweave/internal/telemetry"
)

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Dungeon is the room graph plus its spatial and id indexes.
//
// A Dungeon is not safe for concurrent use; the game controller serializes
// access to it.
type Dungeon struct {
	Rooms []*Room // Creation order
	Side  int     // Grid side length of the current layout

	grid   map[Point][]*Room
	byID   map[string]*Room
	tables ContentTables
	rng    *rng.RNG
}

// Report summarises one generation or rearrange run.
type Report struct {
	Stats
	HubRestarts    int // Times hub selection started over at full spacing
	HubRelaxations int // Times the hub spacing constraint was loosened
	Stragglers     int // Rooms joined after the spanning walk
	Loops          int // Extra edges added to form cycles
	Reinforced     int // Edges added to bring hubs up to degree
	Exits          int // Rooms forcibly given their first door
	Pruned         int // One-sided door references removed
}

// NewDungeon creates an empty dungeon that places content from the given tables.
func NewDungeon(tables ContentTables) *Dungeon {
	return &Dungeon{
		Rooms:  make([]*Room, 0),
		grid:   make(map[Point][]*Room),
		byID:   make(map[string]*Room),
		tables: tables,
	}
}

// Generate discards the current rooms and builds a fresh dungeon of
// targetCount rooms from the given stream. Room ids are minted from the
// stream, so no identity survives a Generate.
func (d *Dungeon) Generate(ctx context.Context, r *rng.RNG, targetCount int) Report {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()
	d.rng = r

	_, allocSpan := tracer.Start(ctx, "dungeon.allocate")
	d.initialize(targetCount)
	allocSpan.SetAttributes(
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.grid_side", d.Side),
	)
	allocSpan.End()

	report := d.build(ctx)
	recordReport(span, report, startTime)
	return report
}

// Rearrange rebuilds the topology for a new target room count while keeping
// room identity. The room list is only ever truncated, never grown; retained
// rooms are laid out again on a fresh grid.
func (d *Dungeon) Rearrange(ctx context.Context, r *rng.RNG, targetCount int) Report {
	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.rearrange")
	defer span.End()

	startTime := time.Now()
	d.rng = r

	_, allocSpan := tracer.Start(ctx, "dungeon.allocate")
	for _, room := range d.Rooms {
		room.resetTopology()
	}
	if targetCount < len(d.Rooms) {
		for i := max(targetCount, 0); i < len(d.Rooms); i++ {
			d.Rooms[i] = nil
		}
		d.Rooms = d.Rooms[:max(targetCount, 0)]
	}
	d.reposition()
	allocSpan.SetAttributes(
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.grid_side", d.Side),
	)
	allocSpan.End()

	report := d.build(ctx)
	recordReport(span, report, startTime)
	return report
}

// build runs topology, content placement and the final consistency sweep.
func (d *Dungeon) build(ctx context.Context) Report {
	tracer := telemetry.Tracer("world")

	_, topoSpan := tracer.Start(ctx, "dungeon.topology")
	report := d.buildTopology(ctx)
	topoSpan.SetAttributes(
		attribute.Int("topology.hub_restarts", report.HubRestarts),
		attribute.Int("topology.hub_relaxations", report.HubRelaxations),
		attribute.Int("topology.stragglers", report.Stragglers),
		attribute.Int("topology.loops", report.Loops),
		attribute.Int("topology.reinforced", report.Reinforced),
		attribute.Int("topology.exits", report.Exits),
	)
	topoSpan.End()

	_, contentSpan := tracer.Start(ctx, "dungeon.content")
	d.placeContent()
	contentSpan.End()

	report.Pruned += d.pruneOneSidedDoors()
	report.Stats = d.Stats()
	contentSpan.SetAttributes(
		attribute.Int("content.treasure", report.Treasure),
		attribute.Int("content.keys", report.Keys),
		attribute.Int("content.hints", report.Hints),
	)
	return report
}

func recordReport(span trace.Span, report Report, startTime time.Time) {
	span.SetAttributes(
		attribute.Int("dungeon.room_count", report.Rooms),
		attribute.Int("dungeon.hub_count", report.Hubs),
		attribute.Int("dungeon.dead_ends", report.DeadEnds),
		attribute.Int("dungeon.edges", report.Edges),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// RoomByID returns the room with the given id, or nil.
func (d *Dungeon) RoomByID(id string) *Room {
	return d.byID[id]
}

// FindRoomAt returns the first room at the grid cell, or nil.
func (d *Dungeon) FindRoomAt(x, y int) *Room {
	rooms := d.grid[Point{x, y}]
	if len(rooms) == 0 {
		return nil
	}
	return rooms[0]
}

// RoomsAt returns every room indexed at the grid cell.
func (d *Dungeon) RoomsAt(x, y int) []*Room {
	return d.grid[Point{x, y}]
}

// Rows returns the number of grid rows occupied by the current layout.
func (d *Dungeon) Rows() int {
	if d.Side == 0 || len(d.Rooms) == 0 {
		return 0
	}
	return (len(d.Rooms) + d.Side - 1) / d.Side
}

// Neighbor returns the room reached through a door in the given direction,
// or nil if that wall has no door.
func (d *Dungeon) Neighbor(room *Room, dir Direction) *Room {
	dx, dy := dir.Delta()
	for _, other := range d.grid[Point{room.X + dx, room.Y + dy}] {
		if room.HasDoor(other.ID) {
			return other
		}
	}
	return nil
}

// Hubs returns the hub rooms in creation order.
func (d *Dungeon) Hubs() []*Room {
	var hubs []*Room
	for _, room := range d.Rooms {
		if room.IsHub {
			hubs = append(hubs, room)
		}
	}
	return hubs
}

// Connected reports whether every room is reachable through doors from the
// first room. An empty dungeon counts as connected.
func (d *Dungeon) Connected() bool {
	if len(d.Rooms) == 0 {
		return true
	}
	visited := mapset.New[string]()
	queue := []*Room{d.Rooms[0]}
	visited.Put(d.Rooms[0].ID)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, id := range current.Doors {
			if visited.Has(id) {
				continue
			}
			next := d.byID[id]
			if next == nil {
				continue
			}
			visited.Put(id)
			queue = append(queue, next)
		}
	}
	return visited.Size() == len(d.Rooms)
}

// Stats counts rooms, edges and placed content.
type Stats struct {
	Rooms      int
	Hubs       int
	DeadEnds   int
	Edges      int
	Encounters int
	Shelves    int
	Shelves2   int
	Gems       int
	Potions    int
	Keys       int
	Treasure   int
	Hints      int
}

// Stats returns a summary of the current graph and its content.
func (d *Dungeon) Stats() Stats {
	s := Stats{Rooms: len(d.Rooms)}
	doorRefs := 0
	for _, room := range d.Rooms {
		doorRefs += room.Degree()
		if room.IsHub {
			s.Hubs++
		}
		if room.IsDeadEnd {
			s.DeadEnds++
		}
		if room.EncounterType != "" {
			s.Encounters++
		}
		if room.HasShelfEmpty {
			s.Shelves++
		}
		if room.HasShelf2Empty {
			s.Shelves2++
		}
		if room.GemType != "" {
			s.Gems++
		}
		if room.HasPotion {
			s.Potions++
		}
		if room.PuzzleType == PuzzleKey {
			s.Keys++
		}
		if room.TreasureLevel != "" {
			s.Treasure++
		}
		if room.HintContent != "" {
			s.Hints++
		}
	}
	s.Edges = doorRefs / 2
	return s
}
