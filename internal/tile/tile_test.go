package tile

import "testing"

func TestFromGlyph(t *testing.T) {
	tests := []struct {
		glyph byte
		want  Category
	}{
		{'#', Wall},
		{'.', Floor},
		{' ', Floor},
		{'~', Water},
		{'D', Door},
		{'+', Prop},
		{'?', Floor}, // unknown glyphs degrade to floor
	}
	for _, tt := range tests {
		if got := FromGlyph(tt.glyph); got != tt.want {
			t.Errorf("FromGlyph(%q) = %q, want %q", tt.glyph, got, tt.want)
		}
	}
}

func TestIsPassable(t *testing.T) {
	for _, c := range []Category{Wall, Water, Tree} {
		if c.IsPassable() {
			t.Errorf("%q should block movement", c)
		}
	}
	for _, c := range []Category{Floor, Grass, Road, Door, Rubble, Prop} {
		if !c.IsPassable() {
			t.Errorf("%q should be passable", c)
		}
	}
}
