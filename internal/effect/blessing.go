package effect

import (
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
)

// Cost is a single-color price.
type Cost struct {
	Color  grid.Color
	Amount int
}

// Blessing is a purchasable ability bundle. Catalog entries are templates;
// purchasing copies one into the ledger, where its duration counts down
// independently.
type Blessing struct {
	ID          string
	Name        string
	Description string
	Color       grid.Color
	Cost        Cost
	Effects     []Effect
	Duration    int // turns; 0 means permanent
}

// Collected is one purchased blessing with its live effect bindings.
type Collected struct {
	Blessing
	Owner          player.Side
	TurnsRemaining int
	bindings       []*Binding
}

// Ledger tracks collected blessings and centralizes their duration
// bookkeeping: exactly one decrement per EndOfTurn of the owning side,
// expiry exactly once when the counter reaches zero.
type Ledger struct {
	collected []*Collected
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add activates every effect of the blessing for the given owner and
// records the collected copy.
func (l *Ledger) Add(b Blessing, owner player.Side, ctx Context) *Collected {
	c := &Collected{
		Blessing:       b,
		Owner:          owner,
		TurnsRemaining: b.Duration,
	}
	for _, e := range b.Effects {
		c.bindings = append(c.bindings, Activate(e, ctx))
	}
	l.collected = append(l.collected, c)
	return c
}

// Collected returns the active blessings in purchase order.
func (l *Ledger) Collected() []*Collected {
	return l.collected
}

// Middleware returns the bus middleware that performs duration
// bookkeeping. Installed outermost so it observes EndOfTurn after the core
// handler set has fully run.
func (l *Ledger) Middleware() event.Middleware {
	return func(next func(event.Event), ev event.Event) {
		next(ev)
		if ev.Type != event.TypeEndOfTurn {
			return
		}
		turn, ok := ev.Payload.(event.TurnPayload)
		if !ok {
			return
		}
		l.tick(turn.Side)
	}
}

// tick decrements finite durations for blessings owned by side and expires
// the ones that reach zero.
func (l *Ledger) tick(side player.Side) {
	var kept []*Collected
	for _, c := range l.collected {
		if c.Owner != side || c.Duration == 0 {
			kept = append(kept, c)
			continue
		}
		c.TurnsRemaining--
		if c.TurnsRemaining > 0 {
			kept = append(kept, c)
			continue
		}
		c.expire()
	}
	l.collected = kept
}

// expire detaches every binding of the blessing.
func (c *Collected) expire() {
	for _, b := range c.bindings {
		b.Expire()
	}
}

// Consume expires and removes every blessing owned by side, returning how
// many were consumed. Used when forging blessings into a relic.
func (l *Ledger) Consume(owner player.Side) int {
	var kept []*Collected
	consumed := 0
	for _, c := range l.collected {
		if c.Owner != owner {
			kept = append(kept, c)
			continue
		}
		c.expire()
		consumed++
	}
	l.collected = kept
	return consumed
}

// Reset expires everything and empties the ledger. Used at game reset.
func (l *Ledger) Reset() {
	for _, c := range l.collected {
		c.expire()
	}
	l.collected = nil
}
