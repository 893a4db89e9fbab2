// Package settlement assembles handcrafted settlements from a library of
// modular tile-map fragments: one "heart" module plus 1–2 "limb" modules
// placed around it with overlap avoidance.
package settlement

import (
	"fmt"
	"sort"

	"github.com/zethican/zengine/internal/tile"
)

// SpawnDirective asks the entity system to instantiate a creature at an
// offset relative to the module origin.
type SpawnDirective struct {
	EntityID string `toml:"entity_id"`
	DX       int    `toml:"dx"`
	DY       int    `toml:"dy"`
}

// ModuleDef is a read-only blueprint: a rectangular character grid plus
// relative spawn directives. Glyphs: '#' wall, '.' floor, '~' water,
// 'D' door, '+' prop. Settlement instances reference, never mutate, it.
type ModuleDef struct {
	ID     string           `toml:"id"`
	Grid   []string         `toml:"grid"`
	Spawns []SpawnDirective `toml:"spawns"`
}

// Width returns the module's tile width.
func (m ModuleDef) Width() int {
	if len(m.Grid) == 0 {
		return 0
	}
	return len(m.Grid[0])
}

// Height returns the module's tile height.
func (m ModuleDef) Height() int {
	return len(m.Grid)
}

// TileAt returns the category of the cell at module-local (x, y).
func (m ModuleDef) TileAt(x, y int) tile.Category {
	return tile.FromGlyph(m.Grid[y][x])
}

// Door returns the module-local position of the first door glyph.
func (m ModuleDef) Door() (int, int, bool) {
	for y, row := range m.Grid {
		for x := 0; x < len(row); x++ {
			if row[x] == 'D' {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// Validate checks the tile-map is rectangular and non-empty.
func (m ModuleDef) Validate() error {
	if len(m.Grid) == 0 {
		return fmt.Errorf("module %q: empty grid", m.ID)
	}
	w := len(m.Grid[0])
	for y, row := range m.Grid {
		if len(row) != w {
			return fmt.Errorf("module %q: row %d has width %d, want %d", m.ID, y, len(row), w)
		}
	}
	return nil
}

// Library indexes module definitions by identifier.
type Library struct {
	modules map[string]ModuleDef
}

// NewLibrary validates and indexes the given modules.
func NewLibrary(defs []ModuleDef) (*Library, error) {
	lib := &Library{modules: make(map[string]ModuleDef, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		lib.modules[d.ID] = d
	}
	return lib, nil
}

// Get returns a module by identifier.
func (l *Library) Get(id string) (ModuleDef, bool) {
	m, ok := l.modules[id]
	return m, ok
}

// Heart returns the designated heart module for a theme.
func (l *Library) Heart(theme string) (ModuleDef, bool) {
	return l.Get(theme + "_heart")
}

// Limbs returns the theme's limb candidates in a stable order.
func (l *Library) Limbs(theme string) []ModuleDef {
	prefix := theme + "_limb"
	var out []ModuleDef
	for id, m := range l.modules {
		if len(id) >= len(prefix) && id[:len(prefix)] == prefix {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
