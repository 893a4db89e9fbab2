// Package chunk orchestrates world generation: it resolves biome and
// territory for a requested chunk coordinate, dispatches to the dungeon
// generator or settlement planner for point-of-interest anchors, overlays
// roads, resolves pending rumors, and caches the resulting records.
package chunk

import (
	"github.com/zethican/zengine/internal/biome"
	"github.com/zethican/zengine/internal/dungeon"
	"github.com/zethican/zengine/internal/tile"
)

// Coord addresses a chunk: the unit of generation and caching.
type Coord struct {
	X, Y int
}

// Local addresses a tile within a chunk.
type Local struct {
	X, Y int
}

// TerrainClass is a chunk's terrain classification.
type TerrainClass string

const (
	// TerrainWilderness marks plain biome-procedural chunks.
	TerrainWilderness TerrainClass = "wilderness"
	// TerrainBespoke marks chunks with handcrafted tile overrides
	// (settlements, encampments).
	TerrainBespoke TerrainClass = "bespoke"
)

// StructuredTerrain returns the structured classification for a
// point-of-interest kind, e.g. "structured_dungeon".
func StructuredTerrain(kind string) TerrainClass {
	return TerrainClass("structured_" + kind)
}

// POI is the point-of-interest payload bound to a chunk, either via the
// territory graph or via rumor resolution.
type POI struct {
	ID           string
	Name         string
	Kind         string
	FactionID    string
	Significance int
	FromRumor    bool
}

// SpawnWeight is one entry of a biome's creature spawn table.
type SpawnWeight struct {
	EntityID string  `toml:"entity_id"`
	Weight   float64 `toml:"weight"`
}

// SpawnDirective asks the entity system to instantiate an entity at a
// local tile on first materialization.
type SpawnDirective struct {
	EntityID string
	X, Y     int
}

// Record is the cached generation output for one chunk. Once cached, its
// terrain classification and bespoke/dungeon payloads never change; only
// the Materialized flag mutates afterward.
type Record struct {
	Coord   Coord
	Biome   biome.Definition
	Terrain TerrainClass

	// Population is the biome's creature spawn-weight slice; may be empty.
	Population []SpawnWeight

	FactionID string
	POI       *POI

	// Bespoke maps local coordinates to handcrafted tile overrides;
	// populated only for settlement and encampment chunks.
	Bespoke map[Local]tile.Category

	// Dungeon is present only for dungeon point-of-interest chunks. Its
	// grid shares the chunk's dimensions, mapping 1:1 onto local tiles.
	Dungeon *dungeon.Layout

	// Roads holds local coordinates forming path tiles.
	Roads map[Local]struct{}

	Spawns []SpawnDirective

	// Materialized distinguishes "generated" from "populated"; owned by
	// the downstream entity system.
	Materialized bool
}
