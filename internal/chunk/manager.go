package chunk

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/zethican/zengine/internal/biome"
	"github.com/zethican/zengine/internal/dungeon"
	"github.com/zethican/zengine/internal/mathx"
	"github.com/zethican/zengine/internal/settlement"
	"github.com/zethican/zengine/internal/territory"
	"github.com/zethican/zengine/internal/tile"
)

const (
	// DefaultChunkSize is the chunk edge length in tiles.
	DefaultChunkSize = 20
	// DefaultTheme selects the settlement module family.
	DefaultTheme = "hamlet"

	// rumorChance is the per-chunk probability of resolving a pending
	// rumor into a structured site.
	rumorChance = 0.1
	// roadChance is the per-neighbor probability of carving a connecting
	// road segment toward an adjacent point-of-interest anchor.
	roadChance = 0.5
)

// Config assembles a Manager. Biomes is required. A nil Territory selects
// the coordinate-hash faction topology instead of the macro-region graph;
// this is an explicit configuration choice, and the two produce different
// faction maps.
type Config struct {
	Seed      int64
	ChunkSize int
	Theme     string

	Biomes    *biome.Engine
	Territory *territory.Manager

	// Modules may be nil, in which case settlement anchors degrade to a
	// bare prop stamp instead of planned bespoke tiles.
	Modules *settlement.Library

	// Populations maps biome ID to that biome's creature spawn table.
	Populations map[string][]SpawnWeight
}

// Manager generates and caches chunk records. Generation is serialized
// behind a single mutex: the cache and the rumor queue are the only
// mutable shared state, and the queue is consumed, not merely read, so an
// unguarded race would double-pop it and corrupt determinism.
type Manager struct {
	seed      int64
	size      int
	theme     string
	biomes    *biome.Engine
	territory *territory.Manager
	planner   *settlement.Planner
	pops      map[string][]SpawnWeight

	mu     sync.Mutex
	cache  map[Coord]*Record
	rumors rumorQueue
}

// NewManager validates the configuration and builds a chunk manager.
// A module library missing the configured theme's heart is a
// configuration-integrity error surfaced here, not during generation.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Biomes == nil {
		return nil, fmt.Errorf("chunk: biome engine is required")
	}

	size := cfg.ChunkSize
	if size <= 0 {
		size = DefaultChunkSize
	}
	theme := cfg.Theme
	if theme == "" {
		theme = DefaultTheme
	}

	var planner *settlement.Planner
	if cfg.Modules != nil {
		if _, ok := cfg.Modules.Heart(theme); !ok {
			return nil, fmt.Errorf("chunk: module library has no heart for theme %q", theme)
		}
		planner = settlement.NewPlanner(cfg.Modules)
	}

	return &Manager{
		seed:      cfg.Seed,
		size:      size,
		theme:     theme,
		biomes:    cfg.Biomes,
		territory: cfg.Territory,
		planner:   planner,
		pops:      cfg.Populations,
		cache:     make(map[Coord]*Record),
	}, nil
}

// ChunkSize returns the chunk edge length in tiles.
func (m *Manager) ChunkSize() int { return m.size }

// AddRumor queues a pending point-of-light for resolution.
func (m *Manager) AddRumor(r Rumor) {
	m.mu.Lock()
	m.rumors.add(r)
	m.mu.Unlock()
}

// NextRumor pops the highest-significance pending rumor.
func (m *Manager) NextRumor() (Rumor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rumors.pop()
}

// PendingRumors returns the remaining queue in priority order, for
// persistence. Replaying visits in a different order after a resume may
// place these differently than a continuous run would have.
func (m *Manager) PendingRumors() []Rumor {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rumors.snapshot()
}

// GetChunk returns the cached record for a chunk coordinate, generating
// it on first access. Idempotent: repeated calls return the same record.
func (m *Manager) GetChunk(cx, cy int) *Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := Coord{cx, cy}
	if rec, ok := m.cache[key]; ok {
		return rec
	}

	rec := m.generate(cx, cy)
	m.cache[key] = rec
	return rec
}

// MarkMaterialized flags a chunk as populated by the entity system.
func (m *Manager) MarkMaterialized(cx, cy int) {
	rec := m.GetChunk(cx, cy)
	m.mu.Lock()
	rec.Materialized = true
	m.mu.Unlock()
}

// MaterializedChunks lists the coordinates of materialized chunks, for
// persistence.
func (m *Manager) MaterializedChunks() []Coord {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Coord
	for c, rec := range m.cache {
		if rec.Materialized {
			out = append(out, c)
		}
	}
	return out
}

// generate runs the full per-chunk pipeline. Caller holds m.mu.
func (m *Manager) generate(cx, cy int) *Record {
	rng := rand.New(rand.NewSource(mathx.SeedFor(m.seed, "chunk", cx, cy)))

	b := m.biomes.BiomeFor(cx, cy)
	rec := &Record{
		Coord:      Coord{cx, cy},
		Biome:      b,
		Terrain:    TerrainWilderness,
		Population: m.pops[b.ID],
		FactionID:  m.controllingFaction(cx, cy),
		Bespoke:    make(map[Local]tile.Category),
		Roads:      make(map[Local]struct{}),
	}

	// Territory anchors dispatch by point-of-interest type and return
	// immediately: no roads or rumor resolution on anchor chunks.
	if m.territory != nil {
		if node, ok := m.territory.NodeAt(cx, cy); ok {
			m.buildPOI(rec, node)
			return rec
		}
	}

	m.overlayRoads(rec, rng)
	m.resolveRumor(rec, rng)

	return rec
}

// controllingFaction resolves via the territory graph, or falls back to a
// raw coordinate hash when no territory manager is configured. The two
// paths produce different faction topologies.
func (m *Manager) controllingFaction(cx, cy int) string {
	if m.territory != nil {
		return m.territory.ControllingFaction(cx, cy)
	}
	n := mathx.Hash2(m.seed, cx, cy)%uint64(territory.FactionCount) + 1
	return fmt.Sprintf("faction_%d", n)
}

// buildPOI populates a record for a territory-node anchor chunk.
func (m *Manager) buildPOI(rec *Record, node territory.Node) {
	rec.POI = &POI{
		ID:        node.ID,
		Kind:      string(node.Kind),
		FactionID: node.FactionID,
	}
	rec.FactionID = node.FactionID

	cx, cy := rec.Coord.X, rec.Coord.Y
	switch node.Kind {
	case territory.KindSettlement:
		rec.Terrain = TerrainBespoke
		m.buildSettlement(rec)
	case territory.KindDungeon:
		rec.Terrain = StructuredTerrain(string(territory.KindDungeon))
		rec.Dungeon = dungeon.Generate(m.size, m.size,
			mathx.SeedFor(m.seed, "dungeon", cx, cy))
	case territory.KindEncampment:
		rec.Terrain = TerrainBespoke
		center := Local{m.size / 2, m.size / 2}
		rec.Bespoke[center] = tile.Prop
		rec.Spawns = append(rec.Spawns, SpawnDirective{
			EntityID: "encampment_guard", X: center.X, Y: center.Y,
		})
	}
}

// buildSettlement plans module placements, stamps their tile-maps into
// the bespoke overrides, records spawns, and stitches a road from each
// door to the settlement center.
func (m *Manager) buildSettlement(rec *Record) {
	center := Local{m.size / 2, m.size / 2}
	if m.planner == nil {
		// No module library configured: degrade to a bare marker.
		rec.Bespoke[center] = tile.Prop
		return
	}

	cx, cy := rec.Coord.X, rec.Coord.Y
	placements, err := m.planner.Plan(m.theme, m.size,
		mathx.SeedFor(m.seed, "settlement", cx, cy))
	if err != nil {
		// Heart presence is validated at construction; reaching this
		// means the library changed underneath us.
		slog.Warn("settlement plan failed", "chunk_x", cx, "chunk_y", cy, "error", err)
		rec.Bespoke[center] = tile.Prop
		return
	}

	for _, pl := range placements {
		for y := 0; y < pl.Module.Height(); y++ {
			for x := 0; x < pl.Module.Width(); x++ {
				rec.Bespoke[Local{pl.X + x, pl.Y + y}] = pl.Module.TileAt(x, y)
			}
		}
		for _, sp := range pl.Module.Spawns {
			rec.Spawns = append(rec.Spawns, SpawnDirective{
				EntityID: sp.EntityID, X: pl.X + sp.DX, Y: pl.Y + sp.DY,
			})
		}
		if dx, dy, ok := pl.Door(); ok {
			m.stitchRoad(rec, Local{dx, dy}, center)
		}
	}
}

// stitchRoad carves a two-segment Manhattan path: one axis fully to the
// target column, then the other. Bespoke tiles keep precedence over the
// carved road.
func (m *Manager) stitchRoad(rec *Record, from, to Local) {
	x := from.X
	step := 1
	if to.X < x {
		step = -1
	}
	for x != to.X {
		x += step
		rec.Roads[Local{x, from.Y}] = struct{}{}
	}
	y := from.Y
	step = 1
	if to.Y < y {
		step = -1
	}
	for y != to.Y {
		y += step
		rec.Roads[Local{to.X, y}] = struct{}{}
	}
}

// overlayRoads carves road segments from the chunk center toward any
// axis-adjacent neighbor that is itself a point-of-interest anchor, each
// with an independent 50% chance.
func (m *Manager) overlayRoads(rec *Record, rng *rand.Rand) {
	if m.territory == nil {
		return
	}

	cx, cy := rec.Coord.X, rec.Coord.Y
	mid := m.size / 2

	// Fixed neighbor order keeps the rng stream stable.
	neighbors := []struct {
		dx, dy int
	}{
		{0, -1}, {0, 1}, {-1, 0}, {1, 0},
	}

	for _, n := range neighbors {
		if _, ok := m.territory.NodeAt(cx+n.dx, cy+n.dy); !ok {
			continue
		}
		if rng.Float64() >= roadChance {
			continue
		}
		switch {
		case n.dy == -1:
			for y := 0; y <= mid; y++ {
				rec.Roads[Local{mid, y}] = struct{}{}
			}
		case n.dy == 1:
			for y := mid; y < m.size; y++ {
				rec.Roads[Local{mid, y}] = struct{}{}
			}
		case n.dx == -1:
			for x := 0; x <= mid; x++ {
				rec.Roads[Local{x, mid}] = struct{}{}
			}
		case n.dx == 1:
			for x := mid; x < m.size; x++ {
				rec.Roads[Local{x, mid}] = struct{}{}
			}
		}
	}
}

// resolveRumor gives each wilderness chunk a fixed low chance to resolve
// the highest-significance pending rumor into a structured site. This is
// the one path-dependent part of generation: the outcome depends on queue
// state, not coordinate alone.
func (m *Manager) resolveRumor(rec *Record, rng *rand.Rand) {
	if m.rumors.Len() == 0 || rng.Float64() >= rumorChance {
		return
	}

	r, ok := m.rumors.popMatching(rec.Biome.ID)
	if !ok {
		return
	}

	rec.POI = &POI{
		ID:           r.ID,
		Name:         r.Name,
		Kind:         r.Kind,
		FactionID:    rec.FactionID,
		Significance: r.Significance,
		FromRumor:    true,
	}
	rec.Terrain = StructuredTerrain(r.Kind)

	if r.Kind == string(territory.KindDungeon) {
		cx, cy := rec.Coord.X, rec.Coord.Y
		rec.Dungeon = dungeon.Generate(m.size, m.size,
			mathx.SeedFor(m.seed, "dungeon", cx, cy))
	}

	slog.Debug("rumor resolved",
		"rumor", r.ID, "chunk_x", rec.Coord.X, "chunk_y", rec.Coord.Y)
}

// GetTile resolves a global tile coordinate to its terrain category with
// strict precedence: bespoke override, dungeon grid, road overlay, then
// the biome-driven procedural roll.
func (m *Manager) GetTile(gx, gy int) tile.Category {
	cx := mathx.FloorDiv(gx, m.size)
	cy := mathx.FloorDiv(gy, m.size)
	lx := mathx.FloorMod(gx, m.size)
	ly := mathx.FloorMod(gy, m.size)

	rec := m.GetChunk(cx, cy)

	if c, ok := rec.Bespoke[Local{lx, ly}]; ok {
		return c
	}
	if rec.Dungeon != nil {
		return rec.Dungeon.At(lx, ly)
	}
	if _, ok := rec.Roads[Local{lx, ly}]; ok {
		return tile.Road
	}
	return m.proceduralTile(rec.Biome, gx, gy)
}

// proceduralTile rolls a per-tile hash against the biome's cumulative
// density thresholds in the fixed order water, tree, rubble, grass,
// falling through to floor.
func (m *Manager) proceduralTile(b biome.Definition, gx, gy int) tile.Category {
	roll := mathx.Unit(mathx.Hash2(m.seed, gx, gy))

	threshold := b.WaterDensity
	if roll < threshold {
		return tile.Water
	}
	threshold += b.TreeDensity
	if roll < threshold {
		return tile.Tree
	}
	threshold += b.RubbleDensity
	if roll < threshold {
		return tile.Rubble
	}
	threshold += b.GrassDensity
	if roll < threshold {
		return tile.Grass
	}
	return tile.Floor
}
