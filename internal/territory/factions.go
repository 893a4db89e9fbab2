package territory

import (
	"fmt"
	"math/rand"

	"github.com/zethican/zengine/internal/mathx"
)

// FactionCount is the number of active factions per world.
const FactionCount = 5

// Faction is a world faction identity derived from the seed.
type Faction struct {
	ID   string
	Name string
}

var factionAdjectives = []string{
	"Silent", "Iron", "Bloated", "Silver", "Cracked",
	"Echoing", "Shattered", "Verdant", "Ashen", "Gilded",
}

var factionNouns = []string{
	"Borzai", "Starfish", "Keepers", "Warband", "Circle",
	"Root", "Heirs", "Vines", "Stalkers", "Legion",
}

// GenerateFactions derives n faction identities from the world seed.
// Identifiers are stable ("faction_1".."faction_n"); display names are a
// deterministic adjective/noun pairing unique within the set.
func GenerateFactions(seed int64, n int) []Faction {
	rng := rand.New(rand.NewSource(mathx.SeedFor(seed, "factions", 0, 0)))

	used := make(map[string]bool)
	out := make([]Faction, 0, n)
	for i := 1; i <= n; i++ {
		var name string
		for {
			adj := factionAdjectives[rng.Intn(len(factionAdjectives))]
			noun := factionNouns[rng.Intn(len(factionNouns))]
			name = fmt.Sprintf("The %s %s", adj, noun)
			if !used[name] {
				used[name] = true
				break
			}
		}
		out = append(out, Faction{
			ID:   fmt.Sprintf("faction_%d", i),
			Name: name,
		})
	}
	return out
}
