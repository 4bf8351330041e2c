package effect

import (
	"math/rand"
	"testing"

	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
)

// stubContext is a minimal Context over real bus/player/grid state.
type stubContext struct {
	owner    *player.State
	opponent *player.State
	board    *grid.Grid
	bus      *event.Bus
	rng      *rand.Rand
}

func newStubContext(side player.Side) *stubContext {
	owner := player.New(side)
	opp := player.New(side.Opponent())
	return &stubContext{
		owner:    owner,
		opponent: opp,
		board:    grid.New(),
		bus:      event.NewBus(),
		rng:      rand.New(rand.NewSource(7)),
	}
}

func (c *stubContext) Owner() *player.State    { return c.owner }
func (c *stubContext) Opponent() *player.State { return c.opponent }
func (c *stubContext) Grid() *grid.Grid        { return c.board }
func (c *stubContext) Bus() *event.Bus         { return c.bus }
func (c *stubContext) RNG() *rand.Rand         { return c.rng }

func (c *stubContext) DealDamage(target player.Side, amount int) int {
	return c.side(target).ApplyDamage(amount)
}

func (c *stubContext) Heal(target player.Side, amount int) int {
	return c.side(target).Heal(amount)
}

func (c *stubContext) GainResources(target player.Side, tally map[grid.Color]int) {
	c.side(target).GainResources(tally)
}

func (c *stubContext) ApplyStatus(target player.Side, se player.StatusEffect) {
	c.side(target).AddStatusEffect(se)
}

func (c *stubContext) MutateTiles(m TileMutation) int {
	// Tests here only need the count plumbing.
	return m.Count
}

func (c *stubContext) side(s player.Side) *player.State {
	if s == c.owner.Side {
		return c.owner
	}
	return c.opponent
}

func endTurn(bus *event.Bus, side player.Side, turn int) {
	bus.Emit(event.TypeEndOfTurn, event.TurnPayload{Side: side, Turn: turn})
}

func startTurn(bus *event.Bus, side player.Side, turn int) {
	bus.Emit(event.TypeStartOfTurn, event.TurnPayload{Side: side, Turn: turn})
}

func TestImmediateStatGrantAppliesOnce(t *testing.T) {
	ctx := newStubContext(player.Human)
	e := Effect{
		Kind:       KindStatGrant,
		Trigger:    Immediate(),
		ColorStats: map[grid.Color]int{grid.Red: 3},
		Defense:    2,
	}

	Activate(e, ctx)

	if ctx.owner.MatchedColors[grid.Red] != 3 {
		t.Errorf("red = %d, want 3", ctx.owner.MatchedColors[grid.Red])
	}
	if ctx.owner.Defense != 2 {
		t.Errorf("defense = %d, want 2", ctx.owner.Defense)
	}

	// Immediate effects do not subscribe; later events change nothing.
	startTurn(ctx.bus, player.Human, 1)
	if ctx.owner.MatchedColors[grid.Red] != 3 {
		t.Error("immediate effect re-fired on an event")
	}
}

func TestTriggeredHealFiresPerEventUntilExpired(t *testing.T) {
	ctx := newStubContext(player.Human)
	ctx.owner.Health = 50
	expired := 0

	e := Effect{
		Kind:     KindHeal,
		Trigger:  On(event.TypeStartOfTurn),
		Amount:   3,
		OnExpire: func(Context) { expired++ },
	}
	b := Activate(e, ctx)

	startTurn(ctx.bus, player.Human, 1)
	startTurn(ctx.bus, player.Human, 2)
	if ctx.owner.Health != 56 {
		t.Errorf("health = %d, want 56", ctx.owner.Health)
	}

	b.Expire()
	b.Expire() // idempotent
	if expired != 1 {
		t.Errorf("OnExpire ran %d times, want 1", expired)
	}

	startTurn(ctx.bus, player.Human, 3)
	if ctx.owner.Health != 56 {
		t.Error("expired effect still healing")
	}
}

func TestTriggeredHealIgnoresOpponentTurns(t *testing.T) {
	ctx := newStubContext(player.Human)
	ctx.owner.Health = 50
	e := Effect{Kind: KindHeal, Trigger: On(event.TypeStartOfTurn), Amount: 3}
	Activate(e, ctx)

	startTurn(ctx.bus, player.AI, 1)
	if ctx.owner.Health != 50 {
		t.Errorf("health after opponent's turn start = %d, want 50", ctx.owner.Health)
	}

	startTurn(ctx.bus, player.Human, 1)
	if ctx.owner.Health != 53 {
		t.Errorf("health after own turn start = %d, want 53", ctx.owner.Health)
	}
}

func TestWardIgnoresOpponentDamageTaken(t *testing.T) {
	ctx := newStubContext(player.Human)
	Activate(Effect{Kind: KindWard, Trigger: On(event.TypeDamageTaken)}, ctx)

	ctx.owner.Health = 0
	ctx.bus.Emit(event.TypeDamageTaken, event.DamagePayload{
		Source: player.Human, Target: player.AI, Amount: 5, Applied: 5,
	})

	if ctx.owner.Health != 0 {
		t.Error("ward fired on damage taken by the opponent")
	}
}

func TestWardPreventsDefeatOnce(t *testing.T) {
	ctx := newStubContext(player.Human)
	ward := Effect{Kind: KindWard, Trigger: On(event.TypeDamageTaken)}
	secondWard := Effect{Kind: KindWard, Trigger: On(event.TypeDamageTaken)}
	Activate(ward, ctx)
	Activate(secondWard, ctx)

	ctx.owner.Health = 0
	ctx.bus.Emit(event.TypeDamageTaken, event.DamagePayload{
		Source: player.AI, Target: player.Human, Amount: 20, Applied: 20,
	})

	// The first ward restored 1 health; the second saw a living owner
	// and stood down.
	if ctx.owner.Health != 1 {
		t.Errorf("health = %d, want 1", ctx.owner.Health)
	}
}

func TestHookTriggerHandledSignal(t *testing.T) {
	ctx := newStubContext(player.AI)
	var seen event.Type
	e := Effect{
		Kind:    KindHook,
		Trigger: On(event.TypeMatch),
		OnTrigger: func(_ Context, ev event.Event) bool {
			seen = ev.Type
			return true
		},
	}
	Activate(e, ctx)

	ctx.bus.Emit(event.TypeMatch, event.MatchPayload{Side: player.AI, Combo: 2})
	if seen != event.TypeMatch {
		t.Errorf("hook saw %v, want Match", seen)
	}
}

func TestStatusGrantCopiesTemplate(t *testing.T) {
	ctx := newStubContext(player.Human)
	template := player.StatusEffect{Name: "fury", DamageMultiplier: 2, TurnsRemaining: 3}
	e := Effect{Kind: KindStatusGrant, Trigger: Immediate(), Status: &template}

	Activate(e, ctx)
	Activate(e, ctx)

	if len(ctx.owner.StatusEffects) != 2 {
		t.Fatalf("status effects = %d, want 2", len(ctx.owner.StatusEffects))
	}
	ctx.owner.StatusEffects[0].TurnsRemaining = 1
	if template.TurnsRemaining != 3 {
		t.Error("mutating an applied status leaked into the template")
	}
}

func TestLedgerDurationBookkeeping(t *testing.T) {
	ctx := newStubContext(player.Human)
	ledger := NewLedger()
	ctx.bus.Use(ledger.Middleware())

	ctx.owner.Health = 50
	heals := Blessing{
		ID:       "renewal",
		Cost:     Cost{Color: grid.Green, Amount: 5},
		Duration: 3,
		Effects: []Effect{{
			Kind:    KindHeal,
			Trigger: On(event.TypeStartOfTurn),
			Amount:  3,
		}},
	}
	ledger.Add(heals, player.Human, ctx)

	for turn := 1; turn <= 3; turn++ {
		startTurn(ctx.bus, player.Human, turn)
		endTurn(ctx.bus, player.Human, turn)
	}
	if ctx.owner.Health != 59 {
		t.Errorf("health after 3 owned turns = %d, want 59", ctx.owner.Health)
	}
	if len(ledger.Collected()) != 0 {
		t.Fatal("blessing not removed after duration reached zero")
	}

	// 4th turn: the heal no longer fires.
	startTurn(ctx.bus, player.Human, 4)
	if ctx.owner.Health != 59 {
		t.Errorf("expired blessing healed on 4th turn: health = %d", ctx.owner.Health)
	}
}

func TestLedgerIgnoresOpponentTurns(t *testing.T) {
	ctx := newStubContext(player.Human)
	ledger := NewLedger()
	ctx.bus.Use(ledger.Middleware())

	b := Blessing{ID: "stub", Duration: 2, Effects: nil}
	ledger.Add(b, player.Human, ctx)

	endTurn(ctx.bus, player.AI, 1)
	endTurn(ctx.bus, player.AI, 2)
	endTurn(ctx.bus, player.AI, 3)

	got := ledger.Collected()
	if len(got) != 1 || got[0].TurnsRemaining != 2 {
		t.Errorf("opponent turns decremented owner blessing: %+v", got)
	}
}

func TestLedgerPermanentBlessingsNeverExpire(t *testing.T) {
	ctx := newStubContext(player.Human)
	ledger := NewLedger()
	ctx.bus.Use(ledger.Middleware())

	ledger.Add(Blessing{ID: "keepsake", Duration: 0}, player.Human, ctx)
	for turn := 1; turn <= 10; turn++ {
		endTurn(ctx.bus, player.Human, turn)
	}
	if len(ledger.Collected()) != 1 {
		t.Error("permanent blessing expired")
	}
}

func TestLedgerOnExpireFiresExactlyOnce(t *testing.T) {
	ctx := newStubContext(player.Human)
	ledger := NewLedger()
	ctx.bus.Use(ledger.Middleware())

	expired := 0
	ledger.Add(Blessing{
		ID:       "spark",
		Duration: 1,
		Effects: []Effect{{
			Kind:     KindHook,
			Trigger:  On(event.TypeMatch),
			OnExpire: func(Context) { expired++ },
		}},
	}, player.Human, ctx)

	endTurn(ctx.bus, player.Human, 1)
	endTurn(ctx.bus, player.Human, 2)
	ledger.Reset()

	if expired != 1 {
		t.Errorf("OnExpire ran %d times, want 1", expired)
	}
}
