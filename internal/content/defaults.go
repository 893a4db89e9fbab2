package content

import (
	"github.com/zethican/zengine/internal/biome"
	"github.com/zethican/zengine/internal/chunk"
	"github.com/zethican/zengine/internal/settlement"
)

// DefaultBiomeID is the designated fallback biome, skipped during the
// first-match scan.
const DefaultBiomeID = "plains"

// DefaultBiomes returns the built-in biome table. Order is deliberate:
// narrower climate bands come first so they win over the broad ones, and
// the catch-all plains entry sits last as the designated default.
func DefaultBiomes() []biome.Definition {
	return []biome.Definition{
		{
			ID: "tundra", Name: "Frozen Tundra",
			TempMin: 0.0, TempMax: 0.3, HumidityMin: 0.0, HumidityMax: 1.0,
			WaterDensity: 0.02, TreeDensity: 0.04, RubbleDensity: 0.06, GrassDensity: 0.08,
			Foreground: "#cfe8ef", Background: "#1c2b33",
			AmbientEffects: []biome.EffectBlueprint{{ID: "chill", Potency: 1}},
		},
		{
			ID: "desert", Name: "Ashen Waste",
			TempMin: 0.7, TempMax: 1.0, HumidityMin: 0.0, HumidityMax: 0.3,
			WaterDensity: 0.0, TreeDensity: 0.01, RubbleDensity: 0.09, GrassDensity: 0.03,
			Foreground: "#e8d8a0", Background: "#3d3120",
			AmbientEffects: []biome.EffectBlueprint{{ID: "heat_haze", Potency: 1}},
		},
		{
			ID: "swamp", Name: "Mirefen",
			TempMin: 0.5, TempMax: 1.0, HumidityMin: 0.7, HumidityMax: 1.0,
			WaterDensity: 0.22, TreeDensity: 0.10, RubbleDensity: 0.02, GrassDensity: 0.25,
			Foreground: "#7a9e6e", Background: "#1f2a1a",
			AmbientEffects: []biome.EffectBlueprint{{ID: "miasma", Potency: 2}},
		},
		{
			ID: "forest", Name: "Deepwood",
			TempMin: 0.3, TempMax: 0.7, HumidityMin: 0.5, HumidityMax: 1.0,
			WaterDensity: 0.03, TreeDensity: 0.28, RubbleDensity: 0.02, GrassDensity: 0.30,
			Foreground: "#4f8a4f", Background: "#14240f",
		},
		{
			ID: DefaultBiomeID, Name: "Open Plains",
			TempMin: 0.0, TempMax: 1.0, HumidityMin: 0.0, HumidityMax: 1.0,
			WaterDensity: 0.02, TreeDensity: 0.05, RubbleDensity: 0.02, GrassDensity: 0.38,
			Foreground: "#a8c66c", Background: "#24301a",
		},
	}
}

// DefaultModules returns the built-in settlement module library: one
// heart and a small limb pool for the "hamlet" theme.
func DefaultModules() []settlement.ModuleDef {
	return []settlement.ModuleDef{
		{
			ID: "hamlet_heart",
			Grid: []string{
				"#######",
				"#.....#",
				"#..+..#",
				"#.....#",
				"###D###",
			},
			Spawns: []settlement.SpawnDirective{
				{EntityID: "village_elder", DX: 3, DY: 2},
				{EntityID: "villager", DX: 1, DY: 1},
			},
		},
		{
			ID: "hamlet_limb_hut",
			Grid: []string{
				"####",
				"#..#",
				"#..#",
				"#D##",
			},
			Spawns: []settlement.SpawnDirective{
				{EntityID: "villager", DX: 1, DY: 1},
			},
		},
		{
			ID: "hamlet_limb_shrine",
			Grid: []string{
				"#.#",
				".+.",
				"#D#",
			},
		},
		{
			ID: "hamlet_limb_pond",
			Grid: []string{
				"....",
				".~~.",
				".~~.",
				"....",
			},
		},
	}
}

// DefaultPopulations returns the built-in per-biome spawn tables.
func DefaultPopulations() map[string][]chunk.SpawnWeight {
	return map[string][]chunk.SpawnWeight{
		"plains": {
			{EntityID: "foe_skirmisher", Weight: 0.6},
			{EntityID: "plains_strider", Weight: 0.4},
		},
		"forest": {
			{EntityID: "thicket_stalker", Weight: 0.7},
			{EntityID: "foe_skirmisher", Weight: 0.3},
		},
		"swamp": {
			{EntityID: "mire_lurker", Weight: 0.8},
			{EntityID: "bog_wisp", Weight: 0.2},
		},
		"desert": {
			{EntityID: "dust_prowler", Weight: 1.0},
		},
		"tundra": {
			{EntityID: "frost_hound", Weight: 1.0},
		},
	}
}

// DefaultRumors returns the starting rumor set callers enqueue at
// construction.
func DefaultRumors() []chunk.Rumor {
	return []chunk.Rumor{
		{ID: "r_obsidian_keep", Name: "Obsidian Keep", Kind: "dungeon", Significance: 5},
		{ID: "r_old_shrine", Name: "Old Shrine", Kind: "prefab", Significance: 3},
		{ID: "r_bog_camp", Name: "Sunken Camp", Kind: "encampment", Significance: 2, BiomeRequirement: "swamp"},
	}
}
