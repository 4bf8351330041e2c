// Package effect implements the data-driven ability layer: effects are the
// atomic trigger+mutation units composing blessings, items and status
// effects. An effect either runs once at acquisition time (immediate) or
// registers against the event bus for its declared trigger type.
//
// Effect behavior is a closed tagged union selected by Kind; the Hook kind
// is the escape hatch for content-authored logic that the fixed kinds
// cannot express.
package effect

import (
	"math/rand"

	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
)

// Trigger selects the dispatch path of an effect: immediate effects run
// exactly once at acquisition, triggered effects fire once per matching
// event for as long as the owning blessing/item/status remains active.
type Trigger struct {
	immediate bool
	onEvent   event.Type
}

// Immediate returns the acquisition-time trigger.
func Immediate() Trigger {
	return Trigger{immediate: true}
}

// On returns a trigger bound to an event type.
func On(t event.Type) Trigger {
	return Trigger{onEvent: t}
}

// IsImmediate reports whether the effect runs at acquisition time.
func (t Trigger) IsImmediate() bool { return t.immediate }

// EventType returns the subscribed event type for triggered effects.
func (t Trigger) EventType() event.Type { return t.onEvent }

// Kind enumerates the effect variants.
type Kind int

const (
	// KindStatGrant credits resources, defense and health to the owner.
	KindStatGrant Kind = iota
	// KindStatusGrant attaches a status effect to the owner.
	KindStatusGrant
	// KindDamage deals damage to the opponent.
	KindDamage
	// KindHeal heals the owner.
	KindHeal
	// KindWard prevents the owner's defeat, once per trigger.
	KindWard
	// KindTileMutation freezes, ignites or recolors tiles.
	KindTileMutation
	// KindHook runs content-authored callbacks.
	KindHook
)

// TileMutation describes a grid change an effect performs. Count random
// candidate tiles are patched; From, when set, restricts candidates to one
// color.
type TileMutation struct {
	Count    int
	From     *grid.Color
	Recolor  *grid.Color
	Freeze   bool
	Unfreeze bool
	Ignite   bool
}

// Context is the surface effects act through. The turn engine implements
// it, bound to the effect's owning side. All state mutation goes through
// these operations, never through event payloads.
type Context interface {
	Owner() *player.State
	Opponent() *player.State
	Grid() *grid.Grid
	Bus() *event.Bus
	RNG() *rand.Rand

	// DealDamage applies damage from the owner to the given side,
	// scaled by the owner's damage multiplier, and emits damage events.
	DealDamage(target player.Side, amount int) int
	// Heal restores the given side's health and clamps to max.
	Heal(target player.Side, amount int) int
	// GainResources credits a color tally to the given side.
	GainResources(target player.Side, tally map[grid.Color]int)
	// ApplyStatus attaches a status effect and emits the applied event.
	ApplyStatus(target player.Side, se player.StatusEffect)
	// MutateTiles applies a tile mutation and returns how many tiles
	// changed.
	MutateTiles(m TileMutation) int
}

// Effect is the atomic unit of ability logic. Only the fields relevant to
// its Kind are read.
type Effect struct {
	Kind    Kind
	Trigger Trigger

	ColorStats map[grid.Color]int // KindStatGrant
	Defense    int                // KindStatGrant
	Health     int                // KindStatGrant

	Amount int // KindDamage, KindHeal

	Status   *player.StatusEffect // KindStatusGrant template
	Mutation *TileMutation        // KindTileMutation

	OnActivate func(ctx Context)                       // KindHook, immediate path
	OnTrigger  func(ctx Context, ev event.Event) bool  // KindHook, triggered path
	OnExpire   func(ctx Context)                       // any kind, fired once at expiry
}

// Apply executes the effect once against the context. For triggered
// effects the firing event is passed in; immediate application passes the
// zero Event. The boolean is the "handled" signal competing effects use:
// true means this effect resolved the event and later effects should check
// state before acting.
func (e Effect) Apply(ctx Context, ev event.Event) bool {
	switch e.Kind {
	case KindStatGrant:
		owner := ctx.Owner()
		if len(e.ColorStats) > 0 {
			ctx.GainResources(owner.Side, e.ColorStats)
		}
		owner.Defense += e.Defense
		if e.Health > 0 {
			ctx.Heal(owner.Side, e.Health)
		}
		return true

	case KindStatusGrant:
		if e.Status == nil {
			return false
		}
		se := *e.Status
		ctx.ApplyStatus(ctx.Owner().Side, se)
		return true

	case KindDamage:
		return ctx.DealDamage(ctx.Opponent().Side, e.Amount) > 0

	case KindHeal:
		return ctx.Heal(ctx.Owner().Side, e.Amount) > 0

	case KindWard:
		// Defeat prevention. Later wards in the same dispatch see the
		// restored health and stand down; the bus does not arbitrate.
		owner := ctx.Owner()
		if !owner.IsDefeated() {
			return false
		}
		owner.Health = 1
		return true

	case KindTileMutation:
		if e.Mutation == nil {
			return false
		}
		return ctx.MutateTiles(*e.Mutation) > 0

	case KindHook:
		if ev.Payload == nil {
			if e.OnActivate != nil {
				e.OnActivate(ctx)
				return true
			}
			return false
		}
		if e.OnTrigger != nil {
			return e.OnTrigger(ctx, ev)
		}
		return false
	}
	return false
}

// Binding is a live attachment of one effect to the bus, owned by a
// blessing, item or status effect. Expiring a binding unsubscribes it and
// fires OnExpire exactly once.
type Binding struct {
	eff     Effect
	ctx     Context
	off     func()
	expired bool
}

// Activate wires an effect up: immediate effects apply once synchronously,
// triggered effects subscribe to the bus. The returned binding controls
// the effect's lifetime.
func Activate(e Effect, ctx Context) *Binding {
	b := &Binding{eff: e, ctx: ctx}

	if e.Trigger.IsImmediate() {
		e.Apply(ctx, event.Event{})
		return b
	}

	b.off = ctx.Bus().On(e.Trigger.EventType(), func(ev event.Event) {
		if b.expired {
			return
		}
		if e.Kind != KindHook && !concernsOwner(ctx.Owner().Side, ev) {
			return
		}
		e.Apply(ctx, ev)
	})
	return b
}

// concernsOwner reports whether a side-scoped event belongs to the
// binding's owner, so a StartOfTurn heal fires on the owner's turns only.
// Hook effects receive every event of their type and filter themselves.
func concernsOwner(owner player.Side, ev event.Event) bool {
	switch p := ev.Payload.(type) {
	case event.TurnPayload:
		return p.Side == owner
	case event.MatchPayload:
		return p.Side == owner
	case event.ResourceGainedPayload:
		return p.Side == owner
	case event.SkillCastPayload:
		return p.Side == owner
	case event.StatusEffectAppliedPayload:
		return p.Side == owner
	case event.DamagePayload:
		if ev.Type == event.TypeDamageTaken {
			return p.Target == owner
		}
		return p.Source == owner
	}
	return true
}

// Expire detaches the binding. Idempotent; OnExpire fires only on the
// first call.
func (b *Binding) Expire() {
	if b.expired {
		return
	}
	b.expired = true
	if b.off != nil {
		b.off()
	}
	if b.eff.OnExpire != nil {
		b.eff.OnExpire(b.ctx)
	}
}
