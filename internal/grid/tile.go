package grid

// Color identifies a tile color. Empty is the absence of a tile, not a
// matchable color.
type Color int

const (
	Empty Color = iota
	Red
	Blue
	Green
	Yellow
	Black
)

// MatchableColors are the colors that participate in runs and random refill.
// Black tiles are placed by skills only and never refilled at random.
var MatchableColors = [...]Color{Red, Blue, Green, Yellow}

// String returns a human-readable name for the color.
func (c Color) String() string {
	switch c {
	case Empty:
		return "empty"
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Black:
		return "black"
	default:
		return "unknown"
	}
}

// Tile is a single grid cell with a color and transient status flags.
// Tiles are owned exclusively by the Grid; effects mutate them through
// Grid.UpdateTile.
type Tile struct {
	Color       Color
	IsMatched   bool // part of a detected run, awaiting explode acknowledgment
	IsNew       bool // freshly refilled this settle pass
	IsAnimating bool // an explode or fall-in animation is outstanding
	IsFrozen    bool // cannot be swapped
	IsIgnited   bool // deals bonus damage when matched
}

// TilePatch is a partial tile update. Nil fields are left untouched.
// Used by effects to freeze, ignite or recolor tiles directly.
type TilePatch struct {
	Color       *Color
	IsMatched   *bool
	IsNew       *bool
	IsAnimating *bool
	IsFrozen    *bool
	IsIgnited   *bool
}

// apply merges the patch into the tile.
func (p TilePatch) apply(t *Tile) {
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.IsMatched != nil {
		t.IsMatched = *p.IsMatched
	}
	if p.IsNew != nil {
		t.IsNew = *p.IsNew
	}
	if p.IsAnimating != nil {
		t.IsAnimating = *p.IsAnimating
	}
	if p.IsFrozen != nil {
		t.IsFrozen = *p.IsFrozen
	}
	if p.IsIgnited != nil {
		t.IsIgnited = *p.IsIgnited
	}
}

// ColorPtr returns a pointer to c, for building TilePatch values.
func ColorPtr(c Color) *Color { return &c }

// BoolPtr returns a pointer to b, for building TilePatch values.
func BoolPtr(b bool) *bool { return &b }
