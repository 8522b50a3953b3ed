package game

import (
	"context"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeonweave/internal/rng"
	"github.com/samdwyer/dungeonweave/internal/world"
)

// Controller owns one dungeon instance and its generation session: the seed,
// the live random stream, the player count and the rearrange cooldown.
// All methods are safe for concurrent use. Rooms and dungeons handed out by
// GenerateDungeon, RoomByID, FindRoomAt and Rooms are live: their fields may
// only be read while no generate or rearrange can run. Concurrent readers
// should go through View.
type Controller struct {
	mu sync.RWMutex

	dungeon       *world.Dungeon
	stream        *rng.RNG
	seed          string
	playerCount   int
	lastRearrange time.Time

	tables   world.ContentTables
	interval time.Duration
	now      func() time.Time
	log      logr.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(logger logr.Logger) Option {
	return func(c *Controller) { c.log = logger }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRearrangeInterval sets the minimum time between rearranges.
func WithRearrangeInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// NewController creates a controller that places content from tables.
func NewController(tables world.ContentTables, opts ...Option) *Controller {
	c := &Controller{
		tables:   tables,
		interval: DefaultRearrangeInterval,
		now:      time.Now,
		log:      logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateDungeon discards any existing dungeon and builds a new one for the
// player count from a fresh stream seeded with seed. The returned dungeon is
// the controller's live instance; reading it races with later rearranges.
func (c *Controller) GenerateDungeon(ctx context.Context, playerCount int, seed string) *world.Dungeon {
	c.mu.Lock()
	defer c.mu.Unlock()

	playerCount = max(playerCount, 0)
	c.seed = seed
	c.stream = rng.New(seed)
	c.playerCount = playerCount
	c.lastRearrange = time.Time{}

	c.dungeon = world.NewDungeon(c.tables)
	report := c.dungeon.Generate(ctx, c.stream, world.TargetRoomCount(playerCount))

	c.log.Info("dungeon generated",
		"seed", seed,
		"players", playerCount,
		"rooms", report.Rooms,
		"hubs", report.Hubs,
		"deadEnds", report.DeadEnds,
		"edges", report.Edges,
	)
	c.log.V(1).Info("dungeon details",
		"hubRelaxations", report.HubRelaxations,
		"loops", report.Loops,
		"reinforced", report.Reinforced,
		"treasure", report.Treasure,
		"keys", report.Keys,
		"hints", report.Hints,
	)
	return c.dungeon
}

// RearrangeDungeon rebuilds the topology in place for a new player count.
// It returns false without touching anything when called within the
// rearrange interval of the last successful rearrange, or before any dungeon
// has been generated. A seed different from the session seed restarts the
// stream; the same seed continues it, so repeated rearranges differ.
func (c *Controller) RearrangeDungeon(ctx context.Context, playerCount int, seed string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rearrangeLocked(ctx, playerCount, seed)
}

// rearrangeLocked checks the cooldown and rearranges. The caller holds c.mu,
// so the check and the update of lastRearrange cannot interleave.
func (c *Controller) rearrangeLocked(ctx context.Context, playerCount int, seed string) bool {
	if c.dungeon == nil {
		c.log.Info("rearrange skipped, no dungeon generated")
		return false
	}
	now := c.now()
	if !c.lastRearrange.IsZero() && now.Sub(c.lastRearrange) < c.interval {
		c.log.V(1).Info("rearrange throttled",
			"players", playerCount,
			"retryIn", c.interval-now.Sub(c.lastRearrange),
		)
		return false
	}

	if seed != c.seed {
		c.seed = seed
		c.stream = rng.New(seed)
	}
	playerCount = max(playerCount, 0)
	c.playerCount = playerCount

	report := c.dungeon.Rearrange(ctx, c.stream, world.TargetRoomCount(playerCount))
	c.lastRearrange = now

	c.log.Info("dungeon rearranged",
		"seed", seed,
		"players", playerCount,
		"rooms", report.Rooms,
		"hubs", report.Hubs,
		"edges", report.Edges,
	)
	return true
}

// SetPlayerCount records a population change and rearranges when the new
// count falls into a different room tier. It reports whether a rearrange ran.
func (c *Controller) SetPlayerCount(ctx context.Context, playerCount int, seed string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	playerCount = max(playerCount, 0)
	if world.TargetRoomCount(playerCount) == world.TargetRoomCount(c.playerCount) {
		c.playerCount = playerCount
		return false
	}
	return c.rearrangeLocked(ctx, playerCount, seed)
}

// RoomByID returns the room with the given id, or nil.
func (c *Controller) RoomByID(id string) *world.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.dungeon == nil {
		return nil
	}
	return c.dungeon.RoomByID(id)
}

// FindRoomAt returns the room at a grid cell, or nil.
func (c *Controller) FindRoomAt(x, y int) *world.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.dungeon == nil {
		return nil
	}
	return c.dungeon.FindRoomAt(x, y)
}

// Rooms returns a snapshot of the room list in creation order. The slice is a
// copy but the rooms are live; read their fields through View when a
// rearrange may run concurrently.
func (c *Controller) Rooms() []*world.Room {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.dungeon == nil {
		return nil
	}
	return append([]*world.Room(nil), c.dungeon.Rooms...)
}

// View runs fn with read access to the dungeon. fn must not retain d or
// mutate it. fn is not called before a dungeon exists.
func (c *Controller) View(fn func(d *world.Dungeon)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.dungeon != nil {
		fn(c.dungeon)
	}
}

// PlayerCount returns the last recorded player count.
func (c *Controller) PlayerCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerCount
}

// Seed returns the session seed.
func (c *Controller) Seed() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seed
}
