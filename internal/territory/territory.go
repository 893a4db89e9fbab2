// Package territory partitions the infinite chunk space into fixed-size
// macro-regions, each deterministically owning exactly one point-of-interest
// node. Captures are recorded as persistent overrides that shadow the
// derived nodes.
package territory

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/zethican/zengine/internal/mathx"
)

// MacroRegionSize is the edge length of a macro-region in chunks.
const MacroRegionSize = 8

// Kind classifies a point-of-interest node.
type Kind string

const (
	KindSettlement Kind = "settlement"
	KindDungeon    Kind = "dungeon"
	KindEncampment Kind = "encampment"
)

// Node is the single point-of-interest anchor of a macro-region.
type Node struct {
	ID        string
	ChunkX    int
	ChunkY    int
	Kind      Kind
	FactionID string
}

type coord struct{ x, y int }

// Manager derives territory nodes from the world seed and tracks capture
// overrides. Derivation is pure; only the override table mutates, so it
// is the only guarded state.
type Manager struct {
	seed     int64
	factions []Faction

	mu        sync.RWMutex
	overrides map[coord]Node
}

// NewManager creates a territory manager for the world seed, deriving the
// world's five factions from it.
func NewManager(seed int64) *Manager {
	return &Manager{
		seed:      seed,
		factions:  GenerateFactions(seed, FactionCount),
		overrides: make(map[coord]Node),
	}
}

// Factions returns the world's faction set in a stable order.
func (m *Manager) Factions() []Faction {
	out := make([]Faction, len(m.factions))
	copy(out, m.factions)
	return out
}

// nodeForRegion deterministically generates the node owned by macro-region
// (mx, my). The anchor lands in the region's central 4x4 sub-square.
func (m *Manager) nodeForRegion(mx, my int) Node {
	rng := rand.New(rand.NewSource(mathx.SeedFor(m.seed, "macro_region", mx, my)))

	cx := mx*MacroRegionSize + 2 + rng.Intn(4)
	cy := my*MacroRegionSize + 2 + rng.Intn(4)

	var kind Kind
	switch roll := rng.Float64(); {
	case roll < 0.3:
		kind = KindSettlement
	case roll < 0.7:
		kind = KindDungeon
	default:
		kind = KindEncampment
	}

	faction := m.factions[rng.Intn(len(m.factions))]

	return Node{
		ID:        fmt.Sprintf("node_%d_%d", mx, my),
		ChunkX:    cx,
		ChunkY:    cy,
		Kind:      kind,
		FactionID: faction.ID,
	}
}

// NodeAt returns the territory node anchored at the given chunk, if any.
// Overrides are consulted before the deterministic derivation.
func (m *Manager) NodeAt(cx, cy int) (Node, bool) {
	m.mu.RLock()
	if n, ok := m.overrides[coord{cx, cy}]; ok {
		m.mu.RUnlock()
		return n, true
	}
	m.mu.RUnlock()

	mx := mathx.FloorDiv(cx, MacroRegionSize)
	my := mathx.FloorDiv(cy, MacroRegionSize)

	node := m.nodeForRegion(mx, my)
	if node.ChunkX == cx && node.ChunkY == cy {
		return node, true
	}
	return Node{}, false
}

// ControllingFaction returns the faction controlling the macro-region the
// chunk lies in, honoring any capture of the region's node.
func (m *Manager) ControllingFaction(cx, cy int) string {
	mx := mathx.FloorDiv(cx, MacroRegionSize)
	my := mathx.FloorDiv(cy, MacroRegionSize)
	node := m.nodeForRegion(mx, my)

	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.overrides[coord{node.ChunkX, node.ChunkY}]; ok {
		return o.FactionID
	}
	return node.FactionID
}

// Capture transfers the node at the given chunk to a new faction. Returns
// false when no node is anchored there. The resulting override must be
// persisted externally; it is not derivable from the seed.
func (m *Manager) Capture(cx, cy int, newFactionID string) bool {
	node, ok := m.NodeAt(cx, cy)
	if !ok {
		return false
	}

	node.FactionID = newFactionID

	m.mu.Lock()
	m.overrides[coord{node.ChunkX, node.ChunkY}] = node
	m.mu.Unlock()
	return true
}

// Overrides returns a snapshot of all capture overrides for persistence.
func (m *Manager) Overrides() []Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Node, 0, len(m.overrides))
	for _, n := range m.overrides {
		out = append(out, n)
	}
	return out
}

// RestoreOverride replays a persisted override. Must run before any chunk
// queries on resume, or controlling-faction answers will diverge from the
// prior session.
func (m *Manager) RestoreOverride(n Node) {
	m.mu.Lock()
	m.overrides[coord{n.ChunkX, n.ChunkY}] = n
	m.mu.Unlock()
}
