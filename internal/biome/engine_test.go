package biome

import "testing"

func testTable() []Definition {
	return []Definition{
		{ID: "cold", Name: "Cold", TempMin: 0, TempMax: 0.3, HumidityMin: 0, HumidityMax: 1},
		{ID: "wet", Name: "Wet", TempMin: 0, TempMax: 1, HumidityMin: 0.6, HumidityMax: 1},
		{ID: "plains", Name: "Plains", TempMin: 0, TempMax: 1, HumidityMin: 0, HumidityMax: 1},
	}
}

func TestBiomeForDeterminism(t *testing.T) {
	e1, err := NewEngine(100, testTable(), "plains")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e2, _ := NewEngine(100, testTable(), "plains")

	for i := 0; i < 50; i++ {
		x := i*31 - 500
		y := i*17 - 300
		if a, b := e1.BiomeFor(x, y), e2.BiomeFor(x, y); a.ID != b.ID {
			t.Errorf("BiomeFor(%d,%d) not deterministic: %s vs %s", x, y, a.ID, b.ID)
		}
	}
}

func TestSampleNormalized(t *testing.T) {
	e, _ := NewEngine(42, testTable(), "plains")
	for i := -20; i <= 20; i += 3 {
		temp, hum := e.Sample(i, -i*7)
		if temp < 0 || temp > 1 || hum < 0 || hum > 1 {
			t.Errorf("Sample(%d,%d) = (%v,%v), want values in [0,1]", i, -i*7, temp, hum)
		}
	}
}

// Table order is the tie-breaker for overlapping ranges: "cold" precedes
// "wet", so a cold and humid sample must resolve to cold.
func TestFirstMatchWinsAndDefaultSkipped(t *testing.T) {
	e, _ := NewEngine(7, testTable(), "plains")

	// The catch-all default would match everything; it must never shadow
	// the narrower entries during the scan.
	found := make(map[string]bool)
	for x := -300; x < 300; x += 5 {
		for y := -300; y < 300; y += 5 {
			found[e.BiomeFor(x, y).ID] = true
		}
	}
	if !found["cold"] && !found["wet"] {
		t.Errorf("narrow biomes never matched over a large sweep: %v", found)
	}
}

func TestDefaultFallback(t *testing.T) {
	defs := []Definition{
		{ID: "never", TempMin: 2, TempMax: 3, HumidityMin: 2, HumidityMax: 3},
		{ID: "plains", TempMin: 2, TempMax: 3, HumidityMin: 2, HumidityMax: 3},
	}
	e, _ := NewEngine(1, defs, "plains")
	if got := e.BiomeFor(0, 0); got.ID != "plains" {
		t.Errorf("fallback = %q, want the designated default", got.ID)
	}
}

func TestFirstBiomeFallbackWithoutDefault(t *testing.T) {
	defs := []Definition{
		{ID: "only", TempMin: 2, TempMax: 3, HumidityMin: 2, HumidityMax: 3},
	}
	e, _ := NewEngine(1, defs, "missing_default")
	if got := e.BiomeFor(0, 0); got.ID != "only" {
		t.Errorf("fallback = %q, want first defined biome", got.ID)
	}
}

func TestEmptyTableIsError(t *testing.T) {
	if _, err := NewEngine(1, nil, "plains"); err == nil {
		t.Error("expected configuration error for empty biome table")
	}
}
