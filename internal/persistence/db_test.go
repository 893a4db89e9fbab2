package persistence

import (
	"path/filepath"
	"testing"

	"github.com/zethican/zengine/internal/biome"
	"github.com/zethican/zengine/internal/chunk"
	"github.com/zethican/zengine/internal/territory"
)

func mustManager(t *testing.T, seed int64, tm *territory.Manager) *chunk.Manager {
	t.Helper()
	engine, err := biome.NewEngine(seed, []biome.Definition{
		{ID: "plains", TempMin: 0, TempMax: 1, HumidityMin: 0, HumidityMax: 1, GrassDensity: 0.3},
	}, "plains")
	if err != nil {
		t.Fatalf("biome engine: %v", err)
	}
	cm, err := chunk.NewManager(chunk.Config{Seed: seed, Biomes: engine, Territory: tm})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return cm
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "world.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMetaRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if db.HasWorldState() {
		t.Error("fresh database should have no world state")
	}
	if err := db.SaveMeta(MetaSeed, "1234"); err != nil {
		t.Fatalf("SaveMeta: %v", err)
	}
	if !db.HasWorldState() {
		t.Error("HasWorldState false after saving seed")
	}
	seed, err := db.Seed()
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if seed != 1234 {
		t.Errorf("seed = %d, want 1234", seed)
	}
}

func TestOverridesRoundTrip(t *testing.T) {
	db := openTestDB(t)

	in := []territory.Node{
		{ID: "node_0_0", ChunkX: 3, ChunkY: 4, Kind: territory.KindSettlement, FactionID: "faction_2"},
		{ID: "node_-1_2", ChunkX: -5, ChunkY: 19, Kind: territory.KindDungeon, FactionID: "faction_5"},
	}
	if err := db.SaveOverrides(in); err != nil {
		t.Fatalf("SaveOverrides: %v", err)
	}

	out, err := db.LoadOverrides()
	if err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("loaded %d overrides, want %d", len(out), len(in))
	}
	byID := make(map[string]territory.Node)
	for _, n := range out {
		byID[n.ID] = n
	}
	for _, want := range in {
		if got := byID[want.ID]; got != want {
			t.Errorf("override %s = %+v, want %+v", want.ID, got, want)
		}
	}
}

func TestOverridesFullReplace(t *testing.T) {
	db := openTestDB(t)

	first := []territory.Node{{ID: "a", Kind: territory.KindDungeon, FactionID: "faction_1"}}
	second := []territory.Node{{ID: "b", Kind: territory.KindSettlement, FactionID: "faction_3"}}

	if err := db.SaveOverrides(first); err != nil {
		t.Fatalf("SaveOverrides: %v", err)
	}
	if err := db.SaveOverrides(second); err != nil {
		t.Fatalf("SaveOverrides: %v", err)
	}

	out, err := db.LoadOverrides()
	if err != nil {
		t.Fatalf("LoadOverrides: %v", err)
	}
	if len(out) != 1 || out[0].ID != "b" {
		t.Errorf("save is not a full replace: %+v", out)
	}
}

func TestRumorsPreserveOrder(t *testing.T) {
	db := openTestDB(t)

	in := []chunk.Rumor{
		{ID: "r_high", Name: "Keep", Kind: "dungeon", Significance: 5},
		{ID: "r_mid", Name: "Shrine", Kind: "prefab", Significance: 3},
		{ID: "r_low", Name: "Camp", Kind: "encampment", Significance: 2, BiomeRequirement: "swamp"},
	}
	if err := db.SaveRumors(in); err != nil {
		t.Fatalf("SaveRumors: %v", err)
	}

	out, err := db.LoadRumors()
	if err != nil {
		t.Fatalf("LoadRumors: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("loaded %d rumors, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("rumor[%d] = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestMaterializedRoundTrip(t *testing.T) {
	db := openTestDB(t)

	in := []chunk.Coord{{X: 0, Y: 0}, {X: -3, Y: 7}}
	if err := db.SaveMaterialized(in); err != nil {
		t.Fatalf("SaveMaterialized: %v", err)
	}

	out, err := db.LoadMaterialized()
	if err != nil {
		t.Fatalf("LoadMaterialized: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d coords, want 2", len(out))
	}
	seen := map[chunk.Coord]bool{}
	for _, c := range out {
		seen[c] = true
	}
	for _, c := range in {
		if !seen[c] {
			t.Errorf("coord %+v missing after round trip", c)
		}
	}
}

func TestSessionIDAssignedOnce(t *testing.T) {
	db := openTestDB(t)

	tm := territory.NewManager(7)
	cm := mustManager(t, 7, tm)

	if err := db.SaveWorldState(7, tm, cm); err != nil {
		t.Fatalf("SaveWorldState: %v", err)
	}
	id1, err := db.GetMeta(MetaSessionID)
	if err != nil || id1 == "" {
		t.Fatalf("session id missing after save: %v", err)
	}

	if err := db.SaveWorldState(7, tm, cm); err != nil {
		t.Fatalf("SaveWorldState: %v", err)
	}
	id2, _ := db.GetMeta(MetaSessionID)
	if id1 != id2 {
		t.Errorf("session id regenerated on second save: %s vs %s", id1, id2)
	}
}

func TestSaveRestoreWorldState(t *testing.T) {
	db := openTestDB(t)
	seed := int64(99)

	tm := territory.NewManager(seed)
	cm := mustManager(t, seed, tm)

	// Find a node to capture so there is an override to persist.
	var captured bool
	for cx := 0; cx < 16 && !captured; cx++ {
		for cy := 0; cy < 16; cy++ {
			if tm.Capture(cx, cy, "faction_4") {
				captured = true
				break
			}
		}
	}
	if !captured {
		t.Fatal("no node found to capture")
	}
	cm.AddRumor(chunk.Rumor{ID: "r1", Name: "Keep", Kind: "dungeon", Significance: 5})

	if err := db.SaveWorldState(seed, tm, cm); err != nil {
		t.Fatalf("SaveWorldState: %v", err)
	}

	tm2 := territory.NewManager(seed)
	cm2 := mustManager(t, seed, tm2)
	if err := db.RestoreWorldState(tm2, cm2); err != nil {
		t.Fatalf("RestoreWorldState: %v", err)
	}

	if got := tm2.Overrides(); len(got) != 1 || got[0].FactionID != "faction_4" {
		t.Errorf("restored overrides = %+v", got)
	}
	if got := cm2.PendingRumors(); len(got) != 1 || got[0].ID != "r1" {
		t.Errorf("restored rumors = %+v", got)
	}
}
