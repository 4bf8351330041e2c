// Package grid implements the 8x8 tile board for the match-3 battle engine.
// The grid holds tile data and swap validation only; run detection, gravity
// and refill live in the resolver package.
package grid

// Size is the board dimension. Fixed for a game session.
const Size = 8

// Coord addresses a cell, row-major with origin top-left.
type Coord struct {
	Row int
	Col int
}

// Adjacent reports whether the two coordinates are orthogonal neighbors
// (Manhattan distance exactly 1).
func (c Coord) Adjacent(o Coord) bool {
	dr := c.Row - o.Row
	if dr < 0 {
		dr = -dr
	}
	dc := c.Col - o.Col
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Grid is the fixed-size tile board.
type Grid struct {
	tiles [Size][Size]Tile
}

// New creates a grid of empty tiles.
func New() *Grid {
	return &Grid{}
}

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// At returns a copy of the tile at (row, col).
// Panics on out-of-bounds access; callers validate coordinates first.
func (g *Grid) At(row, col int) Tile {
	return g.tiles[row][col]
}

// Set replaces the tile at (row, col).
func (g *Grid) Set(row, col int, t Tile) {
	g.tiles[row][col] = t
}

// UpdateTile merges a partial tile update into the tile at (row, col).
// Returns false without mutating if the coordinate is out of bounds.
func (g *Grid) UpdateTile(row, col int, patch TilePatch) bool {
	if !g.InBounds(row, col) {
		return false
	}
	patch.apply(&g.tiles[row][col])
	return true
}

// Swap exchanges two tiles. It succeeds only if both coordinates are in
// bounds, orthogonally adjacent, and neither tile is frozen. Whether the
// resulting board actually contains a match is the resolver's concern, not
// the swap's; an unproductive swap is reverted by calling Swap again.
func (g *Grid) Swap(r1, c1, r2, c2 int) bool {
	if !g.InBounds(r1, c1) || !g.InBounds(r2, c2) {
		return false
	}
	a := Coord{r1, c1}
	b := Coord{r2, c2}
	if !a.Adjacent(b) {
		return false
	}
	if g.tiles[r1][c1].IsFrozen || g.tiles[r2][c2].IsFrozen {
		return false
	}
	g.tiles[r1][c1], g.tiles[r2][c2] = g.tiles[r2][c2], g.tiles[r1][c1]
	return true
}

// Snapshot returns a copy of the full tile array, for the query surface
// and for board-equality assertions.
func (g *Grid) Snapshot() [Size][Size]Tile {
	return g.tiles
}

// Restore replaces the full tile array from a snapshot.
func (g *Grid) Restore(tiles [Size][Size]Tile) {
	g.tiles = tiles
}

// ForEach visits every tile in row-major order.
func (g *Grid) ForEach(fn func(row, col int, t Tile)) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			fn(row, col, g.tiles[row][col])
		}
	}
}

// Reset returns every tile to the empty state.
func (g *Grid) Reset() {
	g.tiles = [Size][Size]Tile{}
}

// CountColor returns how many tiles currently hold the given color.
func (g *Grid) CountColor(c Color) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if g.tiles[row][col].Color == c {
				n++
			}
		}
	}
	return n
}
