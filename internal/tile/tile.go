// Package tile defines the closed tile-category vocabulary exposed to
// renderers and collision logic. The set is a stable contract: consumers
// build display tables against these exact identifiers.
package tile

// Category identifies what occupies a single map tile.
type Category string

const (
	Floor  Category = "floor"
	Wall   Category = "wall"
	Water  Category = "water"
	Grass  Category = "grass"
	Tree   Category = "tree"
	Rubble Category = "rubble"
	Road   Category = "road"
	Door   Category = "door"
	Prop   Category = "prop"
)

// IsPassable reports whether an entity can walk onto the tile.
func (c Category) IsPassable() bool {
	switch c {
	case Wall, Water, Tree:
		return false
	}
	return true
}

// FromGlyph maps a module tile-map character to its category. Unknown
// glyphs read as floor so a sloppy module definition degrades instead of
// failing mid-generation.
func FromGlyph(g byte) Category {
	switch g {
	case '#':
		return Wall
	case '~':
		return Water
	case 'D':
		return Door
	case '+':
		return Prop
	case '.', ' ':
		return Floor
	}
	return Floor
}
