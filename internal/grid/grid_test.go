package grid

import "testing"

func TestSwapValidation(t *testing.T) {
	tests := []struct {
		name           string
		r1, c1, r2, c2 int
		frozen         []Coord
		want           bool
	}{
		{name: "horizontal neighbors", r1: 0, c1: 0, r2: 0, c2: 1, want: true},
		{name: "vertical neighbors", r1: 3, c1: 4, r2: 4, c2: 4, want: true},
		{name: "diagonal", r1: 0, c1: 0, r2: 1, c2: 1, want: false},
		{name: "same cell", r1: 2, c1: 2, r2: 2, c2: 2, want: false},
		{name: "distance two", r1: 0, c1: 0, r2: 0, c2: 2, want: false},
		{name: "out of bounds", r1: 0, c1: 0, r2: 0, c2: -1, want: false},
		{name: "beyond edge", r1: 7, c1: 7, r2: 8, c2: 7, want: false},
		{name: "first tile frozen", r1: 1, c1: 1, r2: 1, c2: 2, frozen: []Coord{{1, 1}}, want: false},
		{name: "second tile frozen", r1: 1, c1: 1, r2: 1, c2: 2, frozen: []Coord{{1, 2}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.Set(0, 0, Tile{Color: Red})
			g.Set(0, 1, Tile{Color: Blue})
			for _, c := range tt.frozen {
				g.UpdateTile(c.Row, c.Col, TilePatch{IsFrozen: BoolPtr(true)})
			}
			if got := g.Swap(tt.r1, tt.c1, tt.r2, tt.c2); got != tt.want {
				t.Errorf("Swap(%d,%d,%d,%d) = %v, want %v", tt.r1, tt.c1, tt.r2, tt.c2, got, tt.want)
			}
		})
	}
}

func TestSwapExchangesTiles(t *testing.T) {
	g := New()
	g.Set(0, 0, Tile{Color: Red})
	g.Set(0, 1, Tile{Color: Blue})

	if !g.Swap(0, 0, 0, 1) {
		t.Fatal("valid swap rejected")
	}
	if g.At(0, 0).Color != Blue || g.At(0, 1).Color != Red {
		t.Errorf("after swap: (0,0)=%v (0,1)=%v, want blue/red", g.At(0, 0).Color, g.At(0, 1).Color)
	}

	// Swapping back restores the original board.
	before := g.Snapshot()
	g.Swap(0, 0, 0, 1)
	g.Swap(0, 0, 0, 1)
	if g.Snapshot() != before {
		t.Error("double swap did not restore board")
	}
}

func TestFailedSwapDoesNotMutate(t *testing.T) {
	g := New()
	g.Set(2, 2, Tile{Color: Green})
	g.Set(2, 3, Tile{Color: Yellow, IsFrozen: true})
	before := g.Snapshot()

	if g.Swap(2, 2, 2, 3) {
		t.Fatal("swap with frozen tile accepted")
	}
	if g.Snapshot() != before {
		t.Error("rejected swap mutated the board")
	}
}

func TestUpdateTile(t *testing.T) {
	g := New()
	g.Set(4, 4, Tile{Color: Red})

	ok := g.UpdateTile(4, 4, TilePatch{
		Color:     ColorPtr(Black),
		IsIgnited: BoolPtr(true),
	})
	if !ok {
		t.Fatal("in-bounds update rejected")
	}

	tile := g.At(4, 4)
	if tile.Color != Black || !tile.IsIgnited {
		t.Errorf("patched tile = %+v, want black ignited", tile)
	}
	if tile.IsFrozen || tile.IsMatched {
		t.Error("patch touched fields it should have left alone")
	}

	if g.UpdateTile(-1, 0, TilePatch{Color: ColorPtr(Red)}) {
		t.Error("out-of-bounds update accepted")
	}
}

func TestAdjacent(t *testing.T) {
	a := Coord{3, 3}
	for _, c := range []Coord{{2, 3}, {4, 3}, {3, 2}, {3, 4}} {
		if !a.Adjacent(c) {
			t.Errorf("%v should be adjacent to %v", a, c)
		}
	}
	for _, c := range []Coord{{3, 3}, {2, 2}, {4, 4}, {3, 5}, {0, 0}} {
		if a.Adjacent(c) {
			t.Errorf("%v should not be adjacent to %v", a, c)
		}
	}
}

func TestCountColor(t *testing.T) {
	g := New()
	g.Set(0, 0, Tile{Color: Red})
	g.Set(5, 5, Tile{Color: Red})
	g.Set(7, 7, Tile{Color: Black})

	if got := g.CountColor(Red); got != 2 {
		t.Errorf("CountColor(Red) = %d, want 2", got)
	}
	if got := g.CountColor(Empty); got != Size*Size-3 {
		t.Errorf("CountColor(Empty) = %d, want %d", got, Size*Size-3)
	}
}
