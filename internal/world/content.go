package world

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dungeonweave/internal/rng"
)

// ContentTables lists the categories content placement chooses from.
type ContentTables struct {
	EncounterTypes []string
	GemTypes       []string
	TreasureLevels []string
}

// Placement targets. Samples shrink to the eligible pool when it is smaller.
const (
	HubEncounterChance  = 0.5
	RoomEncounterChance = 0.2

	ShelfSample = 20
	GemCount    = 2
	PotionCount = 12

	PuzzleSample = 10
	PuzzleChance = 0.7

	TreasureSample = 15
	TreasureChance = 0.9

	HintSample = 10
	HintChance = 0.5

	shelfBackfillAttempts = 8
	eligibleMinDegree     = 1
	eligibleMaxDegree     = 3
)

// placeContent clears and reassigns every content slot.
func (d *Dungeon) placeContent() {
	for _, room := range d.Rooms {
		room.resetContent()
	}

	d.assignEncounters()

	eligible := d.eligibleRooms()
	shelf, shelf2 := d.sampleShelves(eligible)
	for _, room := range shelf {
		room.HasShelfEmpty = true
	}
	for _, room := range shelf2 {
		room.HasShelf2Empty = true
	}

	if len(d.tables.GemTypes) > 0 {
		for _, room := range rng.Sample(d.rng, shelf, GemCount) {
			room.GemType = rng.Pick(d.rng, d.tables.GemTypes)
		}
	}
	for _, room := range rng.Sample(d.rng, shelf2, PotionCount) {
		room.HasPotion = true
	}

	for _, room := range rng.Sample(d.rng, eligible, PuzzleSample) {
		if d.rng.Chance(PuzzleChance) {
			room.PuzzleType = PuzzleKey
		}
	}

	if len(d.tables.TreasureLevels) > 0 {
		for _, room := range rng.Sample(d.rng, eligible, TreasureSample) {
			if d.rng.Chance(TreasureChance) {
				room.TreasureLevel = rng.Pick(d.rng, d.tables.TreasureLevels)
			}
		}
	}

	d.placeHints(eligible)
}

// eligibleRooms returns rooms with between one and three doors.
func (d *Dungeon) eligibleRooms() []*Room {
	var out []*Room
	for _, room := range d.Rooms {
		if deg := room.Degree(); deg >= eligibleMinDegree && deg <= eligibleMaxDegree {
			out = append(out, room)
		}
	}
	return out
}

func (d *Dungeon) assignEncounters() {
	for _, room := range d.Rooms {
		room.EncounterChance = RoomEncounterChance
		if room.IsHub {
			room.EncounterChance = HubEncounterChance
		}
		if d.rng.Chance(room.EncounterChance) && len(d.tables.EncounterTypes) > 0 {
			room.EncounterType = rng.Pick(d.rng, d.tables.EncounterTypes)
		}
	}
}

// sampleShelves draws two disjoint samples of eligible rooms. The second
// sample drops anything already in the first and is backfilled from fresh
// shuffles, a bounded number of times, until it is full again.
func (d *Dungeon) sampleShelves(eligible []*Room) (shelf, shelf2 []*Room) {
	shelf = rng.Sample(d.rng, eligible, ShelfSample)

	taken := mapset.New[*Room]()
	for _, room := range shelf {
		taken.Put(room)
	}

	want := min(ShelfSample, len(eligible)-len(shelf))
	shelf2 = make([]*Room, 0, max(want, 0))
	add := func(candidates []*Room) {
		for _, room := range candidates {
			if len(shelf2) >= want {
				return
			}
			if taken.Has(room) {
				continue
			}
			taken.Put(room)
			shelf2 = append(shelf2, room)
		}
	}

	add(rng.Sample(d.rng, eligible, ShelfSample))
	for attempt := 0; len(shelf2) < want && attempt < shelfBackfillAttempts; attempt++ {
		add(rng.Shuffle(d.rng, eligible))
	}
	return shelf, shelf2
}

// placeHints writes compass hints into single-door rooms. Every hint points
// at the first treasure room in creation order, which is not necessarily
// the nearest one.
func (d *Dungeon) placeHints(eligible []*Room) {
	for _, room := range rng.Sample(d.rng, eligible, HintSample) {
		if room.Degree() != 1 || !d.rng.Chance(HintChance) {
			continue
		}
		target := d.firstTreasureRoom()
		if target == nil {
			continue
		}
		room.HintContent = CompassHint(room, target)
	}
}

func (d *Dungeon) firstTreasureRoom() *Room {
	for _, room := range d.Rooms {
		if room.TreasureLevel != "" {
			return room
		}
	}
	return nil
}
