package game

import (
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/samdwyer/dungeonweave/internal/world"
)

var testTables = world.ContentTables{
	EncounterTypes: []string{"goblin", "skeleton", "slime"},
	GemTypes:       []string{"ruby", "sapphire"},
	TreasureLevels: []string{"silver", "gold"},
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestController(clock *fakeClock) *Controller {
	return NewController(testTables, WithClock(clock.Now))
}

func roomIDs(rooms []*world.Room) []string {
	ids := make([]string, len(rooms))
	for i, room := range rooms {
		ids[i] = room.ID
	}
	return ids
}

func doorSnapshot(rooms []*world.Room) map[string][]string {
	doors := make(map[string][]string, len(rooms))
	for _, room := range rooms {
		doors[room.ID] = slices.Clone(room.Doors)
	}
	return doors
}

func sameDoors(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for id, doors := range a {
		if !slices.Equal(doors, b[id]) {
			return false
		}
	}
	return true
}

func TestGenerateDungeonDeterministic(t *testing.T) {
	ctx := context.Background()
	a := newTestController(newFakeClock())
	b := newTestController(newFakeClock())

	da := a.GenerateDungeon(ctx, 4, "seed-1")
	db := b.GenerateDungeon(ctx, 4, "seed-1")

	if !slices.Equal(roomIDs(da.Rooms), roomIDs(db.Rooms)) {
		t.Fatal("same seed produced different room ids")
	}
	if !sameDoors(doorSnapshot(da.Rooms), doorSnapshot(db.Rooms)) {
		t.Error("same seed produced different doors")
	}
	for i := range da.Rooms {
		if da.Rooms[i].TreasureLevel != db.Rooms[i].TreasureLevel || da.Rooms[i].GemType != db.Rooms[i].GemType {
			t.Errorf("room %d content differs between runs", i)
		}
	}
}

func TestGenerateDungeonTiers(t *testing.T) {
	tests := []struct {
		players int
		want    int
	}{
		{0, 60},
		{5, 60},
		{6, 100},
		{10, 100},
		{11, 150},
		{-3, 60},
	}

	for _, tt := range tests {
		c := newTestController(newFakeClock())
		d := c.GenerateDungeon(context.Background(), tt.players, "tiers")
		if len(d.Rooms) != tt.want {
			t.Errorf("GenerateDungeon(%d players) rooms = %d, want %d", tt.players, len(d.Rooms), tt.want)
		}
	}
}

func TestRearrangeBeforeGenerate(t *testing.T) {
	c := newTestController(newFakeClock())
	if c.RearrangeDungeon(context.Background(), 3, "abc") {
		t.Error("RearrangeDungeon() before GenerateDungeon = true, want false")
	}
	if c.Rooms() != nil {
		t.Error("Rooms() before GenerateDungeon should be nil")
	}
}

func TestRearrangeRateLimit(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := newTestController(clock)

	d := c.GenerateDungeon(ctx, 11, "abc")
	if len(d.Rooms) != 150 {
		t.Fatalf("rooms = %d, want 150", len(d.Rooms))
	}
	before := roomIDs(d.Rooms)
	moved := d.Rooms[20]
	oldX, oldY := moved.X, moved.Y

	if !c.RearrangeDungeon(ctx, 3, "abc") {
		t.Fatal("first RearrangeDungeon() = false, want true")
	}
	rooms := c.Rooms()
	if len(rooms) != 60 {
		t.Fatalf("rooms after rearrange = %d, want 60", len(rooms))
	}
	if !slices.Equal(roomIDs(rooms), before[:60]) {
		t.Error("rearrange did not keep the first 60 room ids in order")
	}
	if rooms[20] != moved {
		t.Error("rearrange replaced a retained room instead of reusing it")
	}
	if moved.X == oldX && moved.Y == oldY {
		t.Errorf("room 20 stayed at (%d,%d), want it laid out on the smaller grid", oldX, oldY)
	}
	if c.PlayerCount() != 3 {
		t.Errorf("PlayerCount() = %d, want 3", c.PlayerCount())
	}

	snapshot := doorSnapshot(rooms)
	clock.Advance(time.Minute)
	if c.RearrangeDungeon(ctx, 3, "abc") {
		t.Error("RearrangeDungeon() one minute later = true, want false")
	}
	if !sameDoors(snapshot, doorSnapshot(c.Rooms())) {
		t.Error("throttled rearrange changed doors")
	}

	clock.Advance(5 * time.Minute)
	if !c.RearrangeDungeon(ctx, 3, "abc") {
		t.Fatal("RearrangeDungeon() six minutes later = false, want true")
	}
	if sameDoors(snapshot, doorSnapshot(c.Rooms())) {
		t.Error("second rearrange produced identical doors, want the stream to continue")
	}
}

func TestRearrangeIntervalOption(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := NewController(testTables, WithClock(clock.Now), WithRearrangeInterval(time.Second))

	c.GenerateDungeon(ctx, 1, "short")
	if !c.RearrangeDungeon(ctx, 1, "short") {
		t.Fatal("first RearrangeDungeon() = false, want true")
	}
	clock.Advance(2 * time.Second)
	if !c.RearrangeDungeon(ctx, 1, "short") {
		t.Error("RearrangeDungeon() after interval = false, want true")
	}
}

func TestGenerateResetsCooldown(t *testing.T) {
	ctx := context.Background()
	c := newTestController(newFakeClock())

	c.GenerateDungeon(ctx, 1, "a")
	if !c.RearrangeDungeon(ctx, 1, "a") {
		t.Fatal("RearrangeDungeon() = false, want true")
	}
	c.GenerateDungeon(ctx, 1, "b")
	if !c.RearrangeDungeon(ctx, 1, "b") {
		t.Error("RearrangeDungeon() after a fresh generate = false, want true")
	}
	if c.Seed() != "b" {
		t.Errorf("Seed() = %q, want %q", c.Seed(), "b")
	}
}

func TestRearrangeNewSeedRestartsStream(t *testing.T) {
	ctx := context.Background()

	a := newTestController(newFakeClock())
	a.GenerateDungeon(ctx, 11, "first")
	a.RearrangeDungeon(ctx, 2, "second")

	b := newTestController(newFakeClock())
	b.GenerateDungeon(ctx, 11, "first")
	b.RearrangeDungeon(ctx, 2, "second")

	if !sameDoors(doorSnapshot(a.Rooms()), doorSnapshot(b.Rooms())) {
		t.Error("rearranging with the same new seed gave different graphs")
	}
	if a.Seed() != "second" {
		t.Errorf("Seed() = %q, want %q", a.Seed(), "second")
	}
}

func TestSetPlayerCount(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	c := newTestController(clock)
	c.GenerateDungeon(ctx, 2, "players")

	if c.SetPlayerCount(ctx, 4, "players") {
		t.Error("SetPlayerCount() within the same tier = true, want false")
	}
	if c.PlayerCount() != 4 {
		t.Errorf("PlayerCount() = %d, want 4", c.PlayerCount())
	}
	if len(c.Rooms()) != 60 {
		t.Errorf("rooms = %d, want 60", len(c.Rooms()))
	}

	// The list only ever shrinks, so growing the tier keeps 60 rooms.
	if !c.SetPlayerCount(ctx, 7, "players") {
		t.Error("SetPlayerCount() across tiers = false, want true")
	}
	if len(c.Rooms()) != 60 {
		t.Errorf("rooms after growing tier = %d, want 60", len(c.Rooms()))
	}

	clock.Advance(time.Minute)
	if c.SetPlayerCount(ctx, 1, "players") {
		t.Error("SetPlayerCount() during cooldown = true, want false")
	}
	if c.PlayerCount() != 7 {
		t.Errorf("PlayerCount() after throttled change = %d, want 7", c.PlayerCount())
	}
}

func TestControllerLookups(t *testing.T) {
	c := newTestController(newFakeClock())
	if c.RoomByID("x") != nil || c.FindRoomAt(0, 0) != nil {
		t.Error("lookups before generate should return nil")
	}

	d := c.GenerateDungeon(context.Background(), 1, "lookups")
	first := d.Rooms[0]
	if got := c.RoomByID(first.ID); got != first {
		t.Errorf("RoomByID(%q) = %v, want first room", first.ID, got)
	}
	if got := c.FindRoomAt(first.X, first.Y); got != first {
		t.Errorf("FindRoomAt(%d, %d) = %v, want first room", first.X, first.Y, got)
	}

	called := false
	c.View(func(d *world.Dungeon) {
		called = true
		if len(d.Rooms) != 60 {
			t.Errorf("View rooms = %d, want 60", len(d.Rooms))
		}
	})
	if !called {
		t.Error("View() did not call fn")
	}

	snapshot := c.Rooms()
	snapshot[0] = nil
	if c.Rooms()[0] == nil {
		t.Error("Rooms() returned the internal slice")
	}
}

func TestRearrangeConcurrent(t *testing.T) {
	ctx := context.Background()
	c := newTestController(newFakeClock())
	c.GenerateDungeon(ctx, 11, "race")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if c.RearrangeDungeon(ctx, 6, "race") {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, room := range c.Rooms() {
				c.RoomByID(room.ID)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("concurrent rearranges succeeded %d times, want 1", successes)
	}
	if len(c.Rooms()) != 100 {
		t.Errorf("rooms = %d, want 100", len(c.Rooms()))
	}
}

func TestViewDuringRearranges(t *testing.T) {
	ctx := context.Background()
	c := NewController(testTables, WithRearrangeInterval(0))
	c.GenerateDungeon(ctx, 11, "view")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10; i++ {
			c.RearrangeDungeon(ctx, 11-i, "view")
		}
	}()
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				c.View(func(d *world.Dungeon) {
					for _, room := range d.Rooms {
						if d.FindRoomAt(room.X, room.Y) == nil {
							t.Errorf("room %s at (%d,%d) missing from the grid", room.ID, room.X, room.Y)
						}
						for _, id := range room.Doors {
							if other := d.RoomByID(id); other == nil || !other.HasDoor(room.ID) {
								t.Errorf("room %s sees a one-sided door to %s", room.ID, id)
							}
						}
					}
				})
			}
		}()
	}
	wg.Wait()
}
