// Package biome maps chunk coordinates to biome definitions using two
// independent large-scale coherent-noise fields (temperature, humidity).
package biome

// EffectBlueprint describes an ambient status effect a biome applies to
// its occupants. The combat system interprets it; the generator only
// carries it.
type EffectBlueprint struct {
	ID      string `toml:"id"`
	Potency int    `toml:"potency"`
}

// Definition is a read-only biome record. The four densities are
// cumulative probability thresholds in [0,1] rolled per tile in the fixed
// order water, tree, rubble, grass.
type Definition struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`

	TempMin     float64 `toml:"temp_min"`
	TempMax     float64 `toml:"temp_max"`
	HumidityMin float64 `toml:"humidity_min"`
	HumidityMax float64 `toml:"humidity_max"`

	WaterDensity  float64 `toml:"water_density"`
	TreeDensity   float64 `toml:"tree_density"`
	RubbleDensity float64 `toml:"rubble_density"`
	GrassDensity  float64 `toml:"grass_density"`

	Foreground string `toml:"foreground"`
	Background string `toml:"background"`

	AmbientEffects []EffectBlueprint `toml:"ambient_effects"`
}

// contains reports whether the sampled climate falls inside the
// definition's eligibility ranges.
func (d Definition) contains(temp, humidity float64) bool {
	return temp >= d.TempMin && temp <= d.TempMax &&
		humidity >= d.HumidityMin && humidity <= d.HumidityMax
}
