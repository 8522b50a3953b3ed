package gamedata

import (
	"errors"
	"fmt"
)

// ContentRegistry holds loaded content definitions and provides lookups.
type ContentRegistry struct {
	encounters []EntryDef
	gems       []EntryDef
	treasures  []EntryDef
	palette    Palette
	byID       map[string]*EntryDef
}

// NewContentRegistry creates a registry from loaded content definitions.
func NewContentRegistry(file ContentFile) (*ContentRegistry, error) {
	if len(file.Encounters) == 0 {
		return nil, errors.New("content has no encounters")
	}
	if len(file.Gems) == 0 {
		return nil, errors.New("content has no gems")
	}
	if len(file.Treasures) == 0 {
		return nil, errors.New("content has no treasures")
	}

	registry := &ContentRegistry{
		encounters: file.Encounters,
		gems:       file.Gems,
		treasures:  file.Treasures,
		palette:    file.Palette,
		byID:       make(map[string]*EntryDef),
	}
	for _, list := range [][]EntryDef{registry.encounters, registry.gems, registry.treasures} {
		for i := range list {
			if _, dup := registry.byID[list[i].ID]; dup {
				return nil, fmt.Errorf("duplicate content id %q", list[i].ID)
			}
			registry.byID[list[i].ID] = &list[i]
		}
	}
	return registry, nil
}

// LoadContentRegistry loads and creates a registry from the embedded content.json.
func LoadContentRegistry() (*ContentRegistry, error) {
	file, err := LoadContent()
	if err != nil {
		return nil, err
	}
	return NewContentRegistry(file)
}

// MustLoadContentRegistry loads a registry, panicking on error.
func MustLoadContentRegistry() *ContentRegistry {
	registry, err := LoadContentRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the definition with the given ID, or nil if not found.
func (r *ContentRegistry) GetByID(id string) *EntryDef {
	return r.byID[id]
}

// EncounterIDs returns encounter ids in file order.
func (r *ContentRegistry) EncounterIDs() []string {
	return ids(r.encounters)
}

// GemIDs returns gem ids in file order.
func (r *ContentRegistry) GemIDs() []string {
	return ids(r.gems)
}

// TreasureIDs returns treasure tier ids in file order.
func (r *ContentRegistry) TreasureIDs() []string {
	return ids(r.treasures)
}

// Palette returns the map colours.
func (r *ContentRegistry) Palette() Palette {
	return r.palette
}

func ids(defs []EntryDef) []string {
	out := make([]string, len(defs))
	for i := range defs {
		out[i] = defs[i].ID
	}
	return out
}
