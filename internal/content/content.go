// Package content loads the read-only lookup tables the generator is
// constructed with: biome, module, population, and rumor definitions.
// Tables ship as built-in defaults and can be overridden from TOML files.
// An absent file yields an empty collection; a malformed file is a
// startup error.
package content

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/zethican/zengine/internal/biome"
	"github.com/zethican/zengine/internal/chunk"
	"github.com/zethican/zengine/internal/settlement"
)

// LoadBiomes reads a biome table from a TOML file. Table order is
// significant: the engine's first-match scan follows file order.
func LoadBiomes(path string) ([]biome.Definition, error) {
	var doc struct {
		Biomes []biome.Definition `toml:"biomes"`
	}
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	for _, b := range doc.Biomes {
		if err := validateBiome(b); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return doc.Biomes, nil
}

// LoadModules reads settlement module definitions from a TOML file.
func LoadModules(path string) ([]settlement.ModuleDef, error) {
	var doc struct {
		Modules []settlement.ModuleDef `toml:"modules"`
	}
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	for _, m := range doc.Modules {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return doc.Modules, nil
}

// LoadPopulations reads per-biome creature spawn tables from a TOML file.
func LoadPopulations(path string) (map[string][]chunk.SpawnWeight, error) {
	var doc struct {
		Populations []struct {
			BiomeID string              `toml:"biome_id"`
			Entries []chunk.SpawnWeight `toml:"entries"`
		} `toml:"populations"`
	}
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}

	out := make(map[string][]chunk.SpawnWeight, len(doc.Populations))
	for _, p := range doc.Populations {
		if p.BiomeID == "" {
			return nil, fmt.Errorf("%s: population entry with empty biome_id", path)
		}
		out[p.BiomeID] = p.Entries
	}
	return out, nil
}

// LoadRumors reads the starting rumor set from a TOML file.
func LoadRumors(path string) ([]chunk.Rumor, error) {
	var doc struct {
		Rumors []chunk.Rumor `toml:"rumors"`
	}
	if err := decodeFile(path, &doc); err != nil {
		return nil, err
	}
	for _, r := range doc.Rumors {
		if r.Significance < 1 || r.Significance > 5 {
			return nil, fmt.Errorf("%s: rumor %q significance %d outside 1–5", path, r.ID, r.Significance)
		}
	}
	return doc.Rumors, nil
}

// decodeFile decodes TOML into dst. A missing file leaves dst zero-valued.
func decodeFile(path string, dst any) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if _, err := toml.DecodeFile(path, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func validateBiome(b biome.Definition) error {
	if b.ID == "" {
		return fmt.Errorf("biome with empty id")
	}
	for name, d := range map[string]float64{
		"water_density":  b.WaterDensity,
		"tree_density":   b.TreeDensity,
		"rubble_density": b.RubbleDensity,
		"grass_density":  b.GrassDensity,
	} {
		if d < 0 || d > 1 {
			return fmt.Errorf("biome %q: %s %v outside [0,1]", b.ID, name, d)
		}
	}
	return nil
}
