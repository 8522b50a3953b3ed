package world

import (
	"context"
	"errors"
	"slices"

	"github.com/cenkalti/backoff/v5"

	"github.com/samdwyer/dungeonweave/internal/rng"
)

const (
	// HubCount is the number of hub rooms selected per generation.
	HubCount = 5
	// MinHubDistance is the Euclidean distance every pair of hubs must exceed.
	MinHubDistance = 3.0

	hubAttempts    = 64   // Draws per hub before giving up on the current set
	hubRestarts    = 16   // Fresh full-spacing selections before relaxing
	hubRelaxFactor = 0.75 // Spacing multiplier applied after a failed level
	hubDegree      = 3    // Degree hubs are reinforced up to
	hubBias        = 0.5  // Chance the walk prefers an adjacent hub

	deadEndCoverage = 0.8 // Walk coverage required before marking dead ends
	// MaxDeadEnds caps how many rooms the walk may mark as dead ends.
	MaxDeadEnds = 12

	// LoopChance is the probability of adding an edge between an eligible
	// adjacent pair.
	LoopChance = 0.15
	loopDegree = 3

	// MaxDegree is the most doors a grid room can have.
	MaxDegree = 4
)

var errHubTooClose = errors.New("hub candidate too close to an existing hub")

// buildTopology turns the flat room list into a connected door graph.
func (d *Dungeon) buildTopology(ctx context.Context) Report {
	var report Report
	if len(d.Rooms) == 0 {
		return report
	}

	hubs, restarts, relaxations := d.selectHubs(ctx)
	report.HubRestarts = restarts
	report.HubRelaxations = relaxations

	start := d.Rooms[0]
	if len(hubs) > 0 {
		start = hubs[0]
	}
	d.walk(start)

	report.Stragglers = d.reconnectStragglers()
	report.Loops = d.injectLoops()
	report.Reinforced = d.reinforceHubs(hubs)
	report.Exits = d.guaranteeExits()
	report.Pruned = d.pruneOneSidedDoors()
	return report
}

// connect adds a symmetric door between two rooms. It is idempotent and
// reports whether anything changed.
func (d *Dungeon) connect(a, b *Room) bool {
	if a == nil || b == nil || a == b {
		return false
	}
	changed := false
	if !a.HasDoor(b.ID) {
		a.Doors = append(a.Doors, b.ID)
		changed = true
	}
	if !b.HasDoor(a.ID) {
		b.Doors = append(b.Doors, a.ID)
		changed = true
	}
	return changed
}

// selectHubs draws random rooms until HubCount hubs are accepted. Each hub
// gets a bounded number of draws. When they run out at full spacing the
// accepted hubs are dropped and selection starts over, up to hubRestarts
// times. After that the spacing is relaxed and drawing continues with the
// hubs already held, down to a spacing of zero where any room that is not
// yet a hub qualifies.
func (d *Dungeon) selectHubs(ctx context.Context) (hubs []*Room, restarts, relaxations int) {
	want := min(HubCount, len(d.Rooms))
	hubs = make([]*Room, 0, want)
	spacing := MinHubDistance

	// Draw counts must not depend on cancellation.
	ctx = context.WithoutCancel(ctx)

	for len(hubs) < want {
		hub, err := backoff.Retry(ctx, func() (*Room, error) {
			candidate := d.Rooms[d.rng.Intn(len(d.Rooms))]
			if candidate.IsHub || !farFromAll(candidate, hubs, spacing) {
				return nil, errHubTooClose
			}
			return candidate, nil
		},
			backoff.WithBackOff(&backoff.ZeroBackOff{}),
			backoff.WithMaxTries(hubAttempts),
		)
		if err != nil {
			if relaxations == 0 && restarts < hubRestarts {
				for _, h := range hubs {
					h.IsHub = false
				}
				hubs = hubs[:0]
				restarts++
				continue
			}
			spacing = relaxSpacing(spacing)
			relaxations++
			continue
		}
		hub.IsHub = true
		hubs = append(hubs, hub)
	}
	return hubs, restarts, relaxations
}

func farFromAll(candidate *Room, hubs []*Room, spacing float64) bool {
	for _, hub := range hubs {
		if candidate.Distance(hub) <= spacing {
			return false
		}
	}
	return true
}

func relaxSpacing(spacing float64) float64 {
	spacing *= hubRelaxFactor
	if spacing < 1 {
		return 0
	}
	return spacing
}

// walk runs a randomized iterative depth-first traversal over grid-adjacent
// rooms, connecting each step. Once most of the dungeon is covered, rooms
// left with a single door are marked as dead ends as the walk backs out.
func (d *Dungeon) walk(start *Room) {
	start.Visited = true
	visited := 1
	deadEnds := 0
	threshold := deadEndCoverage * float64(len(d.Rooms))
	stack := []*Room{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]

		var candidates, hubCandidates []*Room
		for _, n := range d.neighbors(current) {
			if n.Visited {
				continue
			}
			candidates = append(candidates, n)
			if n.IsHub {
				hubCandidates = append(hubCandidates, n)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			if float64(visited) >= threshold && current.Degree() == 1 &&
				!current.IsHub && deadEnds < MaxDeadEnds {
				current.IsDeadEnd = true
				deadEnds++
			}
			continue
		}

		if len(hubCandidates) > 0 && d.rng.Chance(hubBias) {
			candidates = hubCandidates
		}
		next := rng.Pick(d.rng, candidates)
		d.connect(current, next)
		next.Visited = true
		visited++
		stack = append(stack, next)
	}
}

// reconnectStragglers joins every room the walk missed to its nearest
// visited room. Joined rooms count as visited straight away, so later
// stragglers may attach to earlier ones.
func (d *Dungeon) reconnectStragglers() int {
	joined := 0
	for {
		remaining, progressed := false, false
		for _, room := range d.Rooms {
			if room.Visited {
				continue
			}
			remaining = true
			target := d.nearest(room, func(r *Room) bool { return r.Visited && r.Degree() < MaxDegree })
			if target == nil {
				target = d.nearest(room, func(r *Room) bool { return r.Visited })
			}
			if target == nil {
				continue
			}
			d.connect(room, target)
			room.Visited = true
			joined++
			progressed = true
		}
		if !remaining || !progressed {
			return joined
		}
	}
}

// nearest returns the closest other room accepted by keep, ties going to the
// earliest created room.
func (d *Dungeon) nearest(room *Room, keep func(*Room) bool) *Room {
	var best *Room
	bestDist := 0.0
	for _, other := range d.Rooms {
		if other == room || (keep != nil && !keep(other)) {
			continue
		}
		dist := room.Distance(other)
		if best == nil || dist < bestDist {
			best, bestDist = other, dist
		}
	}
	return best
}

// injectLoops adds extra edges between adjacent rooms that are both below
// loopDegree and neither a dead end. Each unordered pair is considered once.
func (d *Dungeon) injectLoops() int {
	added := 0
	for _, room := range d.Rooms {
		for _, dir := range []Direction{East, South} {
			dx, dy := dir.Delta()
			for _, other := range d.grid[Point{room.X + dx, room.Y + dy}] {
				if room.HasDoor(other.ID) || room.IsDeadEnd || other.IsDeadEnd {
					continue
				}
				if room.Degree() >= loopDegree || other.Degree() >= loopDegree {
					continue
				}
				if d.rng.Chance(LoopChance) && d.connect(room, other) {
					added++
				}
			}
		}
	}
	return added
}

// reinforceHubs connects hubs below hubDegree to adjacent under-connected
// rooms. Dead ends are left alone so they stay dead ends.
func (d *Dungeon) reinforceHubs(hubs []*Room) int {
	added := 0
	for _, hub := range hubs {
		if hub.Degree() >= hubDegree {
			continue
		}
		for _, other := range rng.Shuffle(d.rng, d.neighbors(hub)) {
			if hub.Degree() >= hubDegree {
				break
			}
			if other.IsDeadEnd || other.Degree() >= hubDegree || hub.HasDoor(other.ID) {
				continue
			}
			if d.connect(hub, other) {
				added++
			}
		}
	}
	return added
}

// guaranteeExits gives every doorless room a door: first to an adjacent room
// with spare degree, otherwise to the nearest room anywhere.
func (d *Dungeon) guaranteeExits() int {
	if len(d.Rooms) < 2 {
		return 0
	}
	fixed := 0
	for _, room := range d.Rooms {
		if room.Degree() > 0 {
			continue
		}
		var target *Room
		for _, n := range d.neighbors(room) {
			if n.Degree() < MaxDegree {
				target = n
				break
			}
		}
		if target == nil {
			target = d.nearest(room, nil)
		}
		if d.connect(room, target) {
			fixed++
		}
	}
	return fixed
}

// pruneOneSidedDoors drops any door reference that is not reciprocated or
// points at a room that no longer exists.
func (d *Dungeon) pruneOneSidedDoors() int {
	pruned := 0
	for _, room := range d.Rooms {
		kept := room.Doors[:0]
		for _, id := range room.Doors {
			other := d.byID[id]
			if other == nil || other == room || !other.HasDoor(room.ID) || slices.Contains(kept, id) {
				pruned++
				continue
			}
			kept = append(kept, id)
		}
		room.Doors = kept
	}
	return pruned
}
