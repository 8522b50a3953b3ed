// Package entity provides the explorer that walks the dungeon viewer.
package entity

// Party represents the explorers moving through the room graph.
// It always stands in exactly one room.
type Party struct {
	RoomID string // Room the party stands in
	Symbol rune   // Display symbol
	Steps  int    // Doors walked through since the party was placed
}

// NewParty creates a new party standing in the given room.
func NewParty(roomID string) *Party {
	return &Party{
		RoomID: roomID,
		Symbol: '&',
	}
}

// MoveTo walks the party into another room. Moving to the current room is
// not a step.
func (p *Party) MoveTo(roomID string) {
	if roomID == p.RoomID {
		return
	}
	p.RoomID = roomID
	p.Steps++
}

// Place puts the party in a room without counting a step, as after a
// regenerate.
func (p *Party) Place(roomID string) {
	p.RoomID = roomID
	p.Steps = 0
}
