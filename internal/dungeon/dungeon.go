// Package dungeon carves room-and-corridor layouts with recursive binary
// space partitioning. The full tile grid and room list are a deterministic
// function of (width, height, seed).
package dungeon

import (
	"math/rand"

	"github.com/zethican/zengine/internal/tile"
)

const (
	// splitDepth is the fixed BSP recursion depth.
	splitDepth = 4
	// minRoomSize is the smallest partition dimension worth splitting.
	minRoomSize = 6
	// splitBias: prefer cutting across the longer axis once one dimension
	// exceeds the other by 25%.
	splitBias = 1.25
)

// Rect is an axis-aligned rectangle in tile coordinates.
type Rect struct {
	X, Y, W, H int
}

// Center returns the rectangle's center tile.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects reports whether two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Layout is a generated dungeon: a wall/floor grid plus room metadata.
type Layout struct {
	Width  int
	Height int
	Rooms  []Rect
	Tiles  [][]tile.Category // indexed [y][x]
}

// At returns the tile at (x, y), reading out-of-bounds cells as wall.
func (l *Layout) At(x, y int) tile.Category {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return tile.Wall
	}
	return l.Tiles[y][x]
}

type node struct {
	rect        Rect
	left, right *node
	room        *Rect
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

type generator struct {
	width, height int
	rng           *rand.Rand
	layout        *Layout
}

// Generate builds a dungeon layout. All randomness is drawn from a
// generator seeded solely from the caller's seed.
func Generate(width, height int, seed int64) *Layout {
	tiles := make([][]tile.Category, height)
	for y := range tiles {
		row := make([]tile.Category, width)
		for x := range row {
			row[x] = tile.Wall
		}
		tiles[y] = row
	}

	g := &generator{
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(seed)),
		layout: &Layout{Width: width, Height: height, Tiles: tiles},
	}

	root := &node{rect: Rect{0, 0, width, height}}
	g.split(root, splitDepth)
	g.createRooms(root)
	g.connectRooms(root)

	return g.layout
}

// split recursively partitions a node. A region too small to yield two
// children of at least minRoomSize refuses to split and stays a leaf.
func (g *generator) split(n *node, iterations int) {
	if iterations == 0 {
		return
	}

	r := n.rect
	horizontal := g.rng.Intn(2) == 0
	if float64(r.W) > splitBias*float64(r.H) {
		horizontal = false
	} else if float64(r.H) > splitBias*float64(r.W) {
		horizontal = true
	}

	span := r.W
	if horizontal {
		span = r.H
	}
	maxSplit := span - minRoomSize
	if maxSplit <= minRoomSize {
		return
	}

	split := minRoomSize + g.rng.Intn(maxSplit-minRoomSize+1)

	if horizontal {
		n.left = &node{rect: Rect{r.X, r.Y, r.W, split}}
		n.right = &node{rect: Rect{r.X, r.Y + split, r.W, r.H - split}}
	} else {
		n.left = &node{rect: Rect{r.X, r.Y, split, r.H}}
		n.right = &node{rect: Rect{r.X + split, r.Y, r.W - split, r.H}}
	}

	g.split(n.left, iterations-1)
	g.split(n.right, iterations-1)
}

// createRooms carves one room per leaf, inset from the leaf bounds by a
// random 1–2 tile margin with a minimum dimension of 3.
func (g *generator) createRooms(n *node) {
	if !n.isLeaf() {
		if n.left != nil {
			g.createRooms(n.left)
		}
		if n.right != nil {
			g.createRooms(n.right)
		}
		return
	}

	padX := 1 + g.rng.Intn(2)
	padY := 1 + g.rng.Intn(2)

	w := max(3, n.rect.W-2*padX)
	h := max(3, n.rect.H-2*padY)

	offX, offY := 1, 1
	if xRange := n.rect.W - w - 1; xRange > 1 {
		offX = 1 + g.rng.Intn(xRange)
	}
	if yRange := n.rect.H - h - 1; yRange > 1 {
		offY = 1 + g.rng.Intn(yRange)
	}

	room := Rect{n.rect.X + offX, n.rect.Y + offY, w, h}
	n.room = &room
	g.layout.Rooms = append(g.layout.Rooms, room)

	for cy := room.Y; cy < room.Y+room.H; cy++ {
		for cx := room.X; cx < room.X+room.W; cx++ {
			g.carve(cx, cy)
		}
	}
}

// connectRooms joins sibling subtrees bottom-up with L-shaped corridors
// and bubbles one representative room from each connected subtree upward.
func (g *generator) connectRooms(n *node) *Rect {
	if n.isLeaf() {
		return n.room
	}

	var left, right *Rect
	if n.left != nil {
		left = g.connectRooms(n.left)
	}
	if n.right != nil {
		right = g.connectRooms(n.right)
	}

	if left != nil && right != nil {
		lx, ly := left.Center()
		rx, ry := right.Center()

		if g.rng.Intn(2) == 0 {
			g.carveHCorridor(lx, rx, ly)
			g.carveVCorridor(ly, ry, rx)
		} else {
			g.carveVCorridor(ly, ry, lx)
			g.carveHCorridor(lx, rx, ry)
		}

		if g.rng.Intn(2) == 0 {
			return left
		}
		return right
	}

	if left != nil {
		return left
	}
	return right
}

func (g *generator) carveHCorridor(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		g.carve(x, y)
	}
}

func (g *generator) carveVCorridor(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		g.carve(x, y)
	}
}

func (g *generator) carve(x, y int) {
	if x >= 0 && x < g.width && y >= 0 && y < g.height {
		g.layout.Tiles[y][x] = tile.Floor
	}
}
