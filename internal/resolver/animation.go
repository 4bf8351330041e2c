package resolver

import (
	"sort"

	"github.com/vklychkov/gemduel/internal/grid"
)

// AnimKind distinguishes the two visual effects the renderer plays.
type AnimKind int

const (
	AnimExplode AnimKind = iota
	AnimFallIn
)

// String returns a name for the animation kind.
func (k AnimKind) String() string {
	switch k {
	case AnimExplode:
		return "explode"
	case AnimFallIn:
		return "fallIn"
	default:
		return "unknown"
	}
}

// Animation is one pending visual effect on one tile. Created by the
// engine per affected cell, destroyed when the renderer acknowledges it.
type Animation struct {
	ID   int64
	Cell grid.Coord
	Kind AnimKind
}

// Tracker is the pending-count barrier the turn engine blocks on while in
// the awaiting-animations phase. Acknowledgments may arrive in any order;
// the engine proceeds only once Outstanding reaches zero.
type Tracker struct {
	nextID  int64
	pending map[int64]Animation
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{pending: make(map[int64]Animation)}
}

// Add registers a new pending animation and returns it.
func (t *Tracker) Add(kind AnimKind, cell grid.Coord) Animation {
	t.nextID++
	a := Animation{ID: t.nextID, Cell: cell, Kind: kind}
	t.pending[a.ID] = a
	return a
}

// AddAll registers one animation of the given kind per cell.
func (t *Tracker) AddAll(kind AnimKind, cells []grid.Coord) {
	for _, cell := range cells {
		t.Add(kind, cell)
	}
}

// Complete acknowledges one animation. Returns false for an unknown or
// already-acknowledged ID.
func (t *Tracker) Complete(id int64) bool {
	if _, ok := t.pending[id]; !ok {
		return false
	}
	delete(t.pending, id)
	return true
}

// Outstanding returns how many animations are still unacknowledged.
func (t *Tracker) Outstanding() int {
	return len(t.pending)
}

// Pending returns the unacknowledged animations ordered by ID, for the
// query surface.
func (t *Tracker) Pending() []Animation {
	out := make([]Animation, 0, len(t.pending))
	for _, a := range t.pending {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Reset discards all pending animations. Used at game reset.
func (t *Tracker) Reset() {
	t.pending = make(map[int64]Animation)
}
