// Command worldgen explores a seed-derived procedural world: it generates
// the chunks around the origin, prints a survey of what the seed produced,
// renders one chunk as ASCII, and persists the non-derivable state.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/zethican/zengine/internal/biome"
	"github.com/zethican/zengine/internal/chunk"
	"github.com/zethican/zengine/internal/content"
	"github.com/zethican/zengine/internal/persistence"
	"github.com/zethican/zengine/internal/settlement"
	"github.com/zethican/zengine/internal/territory"
	"github.com/zethican/zengine/internal/tile"
)

var glyphs = map[tile.Category]rune{
	tile.Floor:  '.',
	tile.Wall:   '#',
	tile.Water:  '~',
	tile.Grass:  '"',
	tile.Tree:   'T',
	tile.Rubble: '%',
	tile.Road:   '=',
	tile.Door:   'D',
	tile.Prop:   '^',
}

func main() {
	seed := flag.Int64("seed", 42, "world seed")
	dbPath := flag.String("db", "data/world.db", "SQLite state database path")
	radius := flag.Int("radius", 8, "chunk radius around the origin to survey")
	contentDir := flag.String("content", "", "directory of TOML content tables overriding the built-ins")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(*seed, *dbPath, *radius, *contentDir); err != nil {
		slog.Error("worldgen failed", "error", err)
		os.Exit(1)
	}
}

func run(seed int64, dbPath string, radius int, contentDir string) error {
	os.MkdirAll(filepath.Dir(dbPath), 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	resuming := db.HasWorldState()
	if resuming {
		saved, err := db.Seed()
		if err != nil {
			return err
		}
		if saved != seed {
			slog.Warn("ignoring -seed flag, database pins the world seed",
				"flag", seed, "stored", saved)
			seed = saved
		}
	}

	biomes, modules, pops, rumors, err := loadContent(contentDir)
	if err != nil {
		return err
	}

	engine, err := biome.NewEngine(seed, biomes, content.DefaultBiomeID)
	if err != nil {
		return fmt.Errorf("biome engine: %w", err)
	}
	lib, err := settlement.NewLibrary(modules)
	if err != nil {
		return fmt.Errorf("module library: %w", err)
	}
	tm := territory.NewManager(seed)

	cm, err := chunk.NewManager(chunk.Config{
		Seed:        seed,
		Biomes:      engine,
		Territory:   tm,
		Modules:     lib,
		Populations: pops,
	})
	if err != nil {
		return fmt.Errorf("chunk manager: %w", err)
	}

	if resuming {
		if err := db.RestoreWorldState(tm, cm); err != nil {
			return fmt.Errorf("restore: %w", err)
		}
	} else {
		for _, r := range rumors {
			cm.AddRumor(r)
		}
		slog.Info("new world", "seed", seed, "starting_rumors", len(rumors))
	}

	for _, f := range tm.Factions() {
		slog.Info("faction", "id", f.ID, "name", f.Name)
	}

	survey(cm, radius)

	// Render the chunk of the nearest settlement to the origin, or the
	// origin chunk when none is in range.
	rx, ry := 0, 0
	if n, ok := nearestSettlement(tm, radius); ok {
		rx, ry = n.ChunkX, n.ChunkY
		slog.Info("rendering settlement chunk", "node", n.ID, "faction", n.FactionID)
	}
	fmt.Println(renderChunk(cm, rx, ry))

	if err := db.SaveWorldState(seed, tm, cm); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// loadContent returns the built-in tables, with any present TOML files in
// dir layered over them wholesale.
func loadContent(dir string) ([]biome.Definition, []settlement.ModuleDef, map[string][]chunk.SpawnWeight, []chunk.Rumor, error) {
	biomes := content.DefaultBiomes()
	modules := content.DefaultModules()
	pops := content.DefaultPopulations()
	rumors := content.DefaultRumors()

	if dir == "" {
		return biomes, modules, pops, rumors, nil
	}

	if loaded, err := content.LoadBiomes(filepath.Join(dir, "biomes.toml")); err != nil {
		return nil, nil, nil, nil, err
	} else if len(loaded) > 0 {
		biomes = loaded
	}
	if loaded, err := content.LoadModules(filepath.Join(dir, "modules.toml")); err != nil {
		return nil, nil, nil, nil, err
	} else if len(loaded) > 0 {
		modules = loaded
	}
	if loaded, err := content.LoadPopulations(filepath.Join(dir, "populations.toml")); err != nil {
		return nil, nil, nil, nil, err
	} else if len(loaded) > 0 {
		pops = loaded
	}
	if loaded, err := content.LoadRumors(filepath.Join(dir, "rumors.toml")); err != nil {
		return nil, nil, nil, nil, err
	} else if len(loaded) > 0 {
		rumors = loaded
	}

	return biomes, modules, pops, rumors, nil
}

// survey generates every chunk within the radius and logs aggregate counts.
func survey(cm *chunk.Manager, radius int) {
	biomeCounts := make(map[string]int)
	terrainCounts := make(map[chunk.TerrainClass]int)
	var pois, tiles int

	for cx := -radius; cx <= radius; cx++ {
		for cy := -radius; cy <= radius; cy++ {
			rec := cm.GetChunk(cx, cy)
			biomeCounts[rec.Biome.ID]++
			terrainCounts[rec.Terrain]++
			if rec.POI != nil {
				pois++
			}
			tiles += cm.ChunkSize() * cm.ChunkSize()
		}
	}

	chunks := (2*radius + 1) * (2*radius + 1)
	slog.Info("survey complete",
		"chunks", humanize.Comma(int64(chunks)),
		"tiles", humanize.Comma(int64(tiles)),
		"points_of_interest", pois)
	for id, n := range biomeCounts {
		slog.Info("biome coverage", "biome", id, "chunks", n)
	}
	for class, n := range terrainCounts {
		slog.Info("terrain class", "class", class, "chunks", n)
	}
}

// nearestSettlement scans macro-regions around the origin for the
// settlement node closest to chunk (0, 0) by Chebyshev distance.
func nearestSettlement(tm *territory.Manager, radius int) (territory.Node, bool) {
	regions := radius/territory.MacroRegionSize + 1
	var best territory.Node
	bestDist := -1

	for mx := -regions; mx <= regions; mx++ {
		for my := -regions; my <= regions; my++ {
			for dx := 0; dx < territory.MacroRegionSize; dx++ {
				for dy := 0; dy < territory.MacroRegionSize; dy++ {
					cx := mx*territory.MacroRegionSize + dx
					cy := my*territory.MacroRegionSize + dy
					n, ok := tm.NodeAt(cx, cy)
					if !ok || n.Kind != territory.KindSettlement {
						continue
					}
					d := max(abs(cx), abs(cy))
					if bestDist < 0 || d < bestDist {
						best, bestDist = n, d
					}
				}
			}
		}
	}
	return best, bestDist >= 0
}

// renderChunk draws one chunk as an ASCII grid.
func renderChunk(cm *chunk.Manager, cx, cy int) string {
	size := cm.ChunkSize()
	var sb strings.Builder
	fmt.Fprintf(&sb, "chunk (%d, %d):\n", cx, cy)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cat := cm.GetTile(cx*size+x, cy*size+y)
			g, ok := glyphs[cat]
			if !ok {
				g = '?'
			}
			sb.WriteRune(g)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
