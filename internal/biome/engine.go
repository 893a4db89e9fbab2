package biome

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise sampled at this frequency per chunk keeps biome regions spanning
// tens of chunks.
const (
	climateScale       = 0.03
	climateOctaves     = 2
	climatePersistence = 0.5
)

// Engine resolves a biome for any chunk coordinate. It is a pure function
// of (seed, coordinate); two engines built from the same seed and table
// always agree.
type Engine struct {
	temp       opensimplex.Noise
	humidity   opensimplex.Noise
	defs       []Definition
	defaultIdx int
}

// NewEngine builds an engine over the given biome table. Table order is
// significant: the first definition whose ranges contain the sampled
// climate wins, with defaultID skipped during the scan and used only as
// the fallback. An empty table is a configuration-integrity error.
func NewEngine(seed int64, defs []Definition, defaultID string) (*Engine, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("biome: no definitions loaded")
	}

	defaultIdx := -1
	for i, d := range defs {
		if d.ID == defaultID {
			defaultIdx = i
			break
		}
	}

	return &Engine{
		temp:       opensimplex.NewNormalized(seed + 1),
		humidity:   opensimplex.NewNormalized(seed + 2),
		defs:       defs,
		defaultIdx: defaultIdx,
	}, nil
}

// Sample returns the normalized temperature and humidity for a chunk
// coordinate, each in [0, 1].
func (e *Engine) Sample(chunkX, chunkY int) (temp, humidity float64) {
	x := float64(chunkX)
	y := float64(chunkY)
	temp = octaveNoise(e.temp, x, y, climateOctaves, climateScale, climatePersistence)
	humidity = octaveNoise(e.humidity, x+500, y+500, climateOctaves, climateScale, climatePersistence)
	return temp, humidity
}

// BiomeFor resolves the biome for a chunk coordinate. First matching
// definition wins; the default biome is skipped during the scan and
// returned only when nothing matches. If even the default is absent the
// first definition is returned.
func (e *Engine) BiomeFor(chunkX, chunkY int) Definition {
	temp, humidity := e.Sample(chunkX, chunkY)

	for i, d := range e.defs {
		if i == e.defaultIdx {
			continue
		}
		if d.contains(temp, humidity) {
			return d
		}
	}

	if e.defaultIdx >= 0 {
		return e.defs[e.defaultIdx]
	}
	return e.defs[0]
}

// octaveNoise layers multiple noise frequencies, normalized back to the
// source's output range.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
