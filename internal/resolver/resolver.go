// Package resolver implements match detection, gravity and refill for the
// battle grid. The functions here are pure board transformations; the turn
// engine owns the cascade loop and decides when each step runs relative to
// animation acknowledgments.
//
// Cascade policy: matched tiles keep their color until the explode
// animation is acknowledged, then convert to empty and fall. Black tiles
// are never produced by random refill; they enter the board through skills
// only.
package resolver

import (
	"math/rand"

	"github.com/vklychkov/gemduel/internal/grid"
)

// MinRunLength is the shortest run that counts as a match.
const MinRunLength = 3

// Match is one maximal run of same-colored tiles.
type Match struct {
	Color grid.Color
	Cells []grid.Coord
}

// FindMatches scans all rows and all columns for maximal runs of length
// >= MinRunLength of identical non-empty color. Tiles already marked as
// matched are reported again; callers dedupe through the IsMatched flag.
func FindMatches(g *grid.Grid) []Match {
	var matches []Match

	// Rows.
	for row := 0; row < grid.Size; row++ {
		start := 0
		for col := 1; col <= grid.Size; col++ {
			if col < grid.Size && g.At(row, col).Color == g.At(row, start).Color {
				continue
			}
			if run := col - start; run >= MinRunLength && g.At(row, start).Color != grid.Empty {
				m := Match{Color: g.At(row, start).Color}
				for c := start; c < col; c++ {
					m.Cells = append(m.Cells, grid.Coord{Row: row, Col: c})
				}
				matches = append(matches, m)
			}
			start = col
		}
	}

	// Columns.
	for col := 0; col < grid.Size; col++ {
		start := 0
		for row := 1; row <= grid.Size; row++ {
			if row < grid.Size && g.At(row, col).Color == g.At(start, col).Color {
				continue
			}
			if run := row - start; run >= MinRunLength && g.At(start, col).Color != grid.Empty {
				m := Match{Color: g.At(start, col).Color}
				for r := start; r < row; r++ {
					m.Cells = append(m.Cells, grid.Coord{Row: r, Col: col})
				}
				matches = append(matches, m)
			}
			start = row
		}
	}

	return matches
}

// HasMatch reports whether the board contains at least one run.
func HasMatch(g *grid.Grid) bool {
	return len(FindMatches(g)) > 0
}

// WouldMatch reports whether swapping the two cells would produce a run
// anywhere on the board. The board is left untouched.
func WouldMatch(g *grid.Grid, r1, c1, r2, c2 int) bool {
	probe := grid.New()
	probe.Restore(g.Snapshot())
	if !probe.Swap(r1, c1, r2, c2) {
		return false
	}
	return HasMatch(probe)
}

// MarkResult summarizes one marking pass.
type MarkResult struct {
	Cells   []grid.Coord       // newly marked cells, deduplicated
	Colors  map[grid.Color]int // per-color tally of newly marked cells
	Ignited int                // marked cells that were ignited
}

// MarkMatches flags every tile in the given runs as matched, without
// mutating color. Cells shared between a row run and a column run are
// counted once.
func MarkMatches(g *grid.Grid, matches []Match) MarkResult {
	res := MarkResult{Colors: make(map[grid.Color]int)}
	for _, m := range matches {
		for _, cell := range m.Cells {
			t := g.At(cell.Row, cell.Col)
			if t.IsMatched {
				continue
			}
			t.IsMatched = true
			t.IsAnimating = true
			g.Set(cell.Row, cell.Col, t)

			res.Cells = append(res.Cells, cell)
			res.Colors[m.Color]++
			if t.IsIgnited {
				res.Ignited++
			}
		}
	}
	return res
}

// ClearMatched converts every matched tile to empty, keeping it animating
// so gravity can settle it visually. Called once the explode animations for
// the pass are acknowledged. Returns the cleared cells.
func ClearMatched(g *grid.Grid) []grid.Coord {
	var cleared []grid.Coord
	g.ForEach(func(row, col int, t grid.Tile) {
		if !t.IsMatched {
			return
		}
		g.Set(row, col, grid.Tile{Color: grid.Empty, IsAnimating: true})
		cleared = append(cleared, grid.Coord{Row: row, Col: col})
	})
	return cleared
}

// SettleResult summarizes one gravity-and-refill pass.
type SettleResult struct {
	Moved    []grid.Coord // destination cells of tiles that fell
	Refilled []grid.Coord // top cells filled with fresh tiles
}

// ApplyGravity compacts each column downward and refills the vacated top
// cells with uniformly random matchable colors. Fresh tiles are marked new
// and animating; fallen tiles are marked animating. Black never appears in
// the refill pool.
func ApplyGravity(g *grid.Grid, rng *rand.Rand) SettleResult {
	var res SettleResult

	for col := 0; col < grid.Size; col++ {
		write := grid.Size - 1
		for row := grid.Size - 1; row >= 0; row-- {
			t := g.At(row, col)
			if t.Color == grid.Empty {
				continue
			}
			if write != row {
				t.IsAnimating = true
				g.Set(write, col, t)
				g.Set(row, col, grid.Tile{Color: grid.Empty})
				res.Moved = append(res.Moved, grid.Coord{Row: write, Col: col})
			}
			write--
		}
		for row := write; row >= 0; row-- {
			color := grid.MatchableColors[rng.Intn(len(grid.MatchableColors))]
			g.Set(row, col, grid.Tile{Color: color, IsNew: true, IsAnimating: true})
			res.Refilled = append(res.Refilled, grid.Coord{Row: row, Col: col})
		}
	}

	return res
}

// SettleAnimationsDone clears the transient animation flags after all
// fall-in animations of a pass are acknowledged.
func SettleAnimationsDone(g *grid.Grid) {
	g.ForEach(func(row, col int, t grid.Tile) {
		if !t.IsAnimating && !t.IsNew {
			return
		}
		t.IsAnimating = false
		t.IsNew = false
		g.Set(row, col, t)
	})
}

// Fill populates every empty cell with a random matchable color without
// animation flags. Used at game reset; re-rolls boards that open with a
// ready-made match so the first move belongs to the player.
func Fill(g *grid.Grid, rng *rand.Rand) {
	const maxAttempts = 64
	for attempt := 0; attempt < maxAttempts; attempt++ {
		g.ForEach(func(row, col int, t grid.Tile) {
			if t.Color == grid.Empty {
				color := grid.MatchableColors[rng.Intn(len(grid.MatchableColors))]
				g.Set(row, col, grid.Tile{Color: color})
			}
		})
		if !HasMatch(g) {
			return
		}
		clearMatchRuns(g)
	}
	// Give up re-rolling; an opening cascade is harmless, just generous.
}

// clearMatchRuns empties the cells of every current run, for reset-time
// re-rolling.
func clearMatchRuns(g *grid.Grid) {
	for _, m := range FindMatches(g) {
		for _, cell := range m.Cells {
			g.Set(cell.Row, cell.Col, grid.Tile{Color: grid.Empty})
		}
	}
}

// Pass is the outcome of one full match-clear-settle cycle.
type Pass struct {
	Combo   int
	Colors  map[grid.Color]int
	Ignited int
}

// ResolveFully runs the cascade synchronously with no animation barrier:
// scan, clear, settle, repeat until a scan finds nothing. Used by headless
// simulation and tests; the interactive engine steps through the same
// phases one acknowledgment batch at a time.
func ResolveFully(g *grid.Grid, rng *rand.Rand) []Pass {
	var passes []Pass
	for combo := 1; ; combo++ {
		matches := FindMatches(g)
		if len(matches) == 0 {
			return passes
		}
		mark := MarkMatches(g, matches)
		ClearMatched(g)
		ApplyGravity(g, rng)
		SettleAnimationsDone(g)
		passes = append(passes, Pass{Combo: combo, Colors: mark.Colors, Ignited: mark.Ignited})
	}
}

// IsStable reports the post-resolution invariant: no tile is matched, and
// no tile is empty without an outstanding animation.
func IsStable(g *grid.Grid) bool {
	stable := true
	g.ForEach(func(_, _ int, t grid.Tile) {
		if t.IsMatched {
			stable = false
		}
		if t.Color == grid.Empty && !t.IsAnimating {
			stable = false
		}
	})
	return stable
}
