// Package engine implements the turn and animation state machine that
// drives a duel: swap validation, cascade resolution, effect settlement
// and turn handoff. The Battle value is the single mutable source of
// truth; the presentation layer reads through its query surface and writes
// only through its command surface.
package engine

import (
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vklychkov/gemduel/internal/config"
	"github.com/vklychkov/gemduel/internal/content"
	"github.com/vklychkov/gemduel/internal/effect"
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
	"github.com/vklychkov/gemduel/internal/resolver"
)

// Options configures a new battle.
type Options struct {
	// Seed drives all randomness. 0 means use the current time.
	Seed int64
	// Balance holds the tunable numbers; zero value loads defaults.
	Balance config.Balance
	// HumanClass and AIClass pick loadouts; empty picks defaults.
	HumanClass string
	AIClass    string
	// AutoAck acknowledges animations immediately, for headless runs.
	AutoAck bool
	// Logger receives engine logging; nil builds a quiet one.
	Logger *log.Logger
}

// Battle is the top-level game-state container.
type Battle struct {
	opts    Options
	balance config.Balance
	log     *log.Logger
	rng     *rand.Rand

	board   *grid.Grid
	bus     *event.Bus
	players map[player.Side]*player.State
	classes map[player.Side]content.Class
	ledger  *effect.Ledger
	anims   *resolver.Tracker

	phase    Phase
	stage    resolveStage
	current  player.Side
	turn     int
	combo    int
	selected *grid.Coord

	offers    []effect.Blessing
	purchased map[string]bool

	currentBattle int
	winner        player.Side
	runComplete   bool
	stats         Stats

	itemBindings    map[player.Side]map[player.Slot][]*effect.Binding
	passiveBindings map[player.Side][]*effect.Binding
}

// New creates a battle and resets it to the opening state.
func New(opts Options) (*Battle, error) {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Balance == (config.Balance{}) {
		opts.Balance = config.DefaultBalance()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{
			Level:  log.WarnLevel,
			Prefix: "gemduel",
		})
	}
	if opts.HumanClass == "" {
		opts.HumanClass = content.DefaultClassID
	}
	if opts.AIClass == "" {
		opts.AIClass = opts.Balance.AI.Class
	}
	if opts.AIClass == "" {
		opts.AIClass = content.DefaultClassID
	}

	humanClass, err := content.ClassByID(opts.HumanClass)
	if err != nil {
		return nil, err
	}
	aiClass, err := content.ClassByID(opts.AIClass)
	if err != nil {
		return nil, err
	}

	b := &Battle{
		opts:    opts,
		balance: opts.Balance,
		log:     opts.Logger,
		classes: map[player.Side]content.Class{
			player.Human: humanClass,
			player.AI:    aiClass,
		},
	}
	b.ResetGame()
	return b, nil
}

// ResetGame throws everything away and starts a fresh run: empty 8x8 grid
// refilled to a stable board, both players at full class health with the
// default loadout, battle counter back to one.
func (b *Battle) ResetGame() {
	b.rng = rand.New(rand.NewSource(b.opts.Seed))
	b.board = grid.New()
	b.bus = event.NewBus()
	b.bus.OnPanic = func(ev event.Event, r any) {
		b.log.Error("handler panic during dispatch", "event", ev.Type.String(), "panic", r)
	}
	b.bus.Use(b.traceMiddleware())

	b.ledger = effect.NewLedger()
	b.bus.Use(b.ledger.Middleware())

	b.anims = resolver.NewTracker()
	b.players = make(map[player.Side]*player.State)
	b.itemBindings = make(map[player.Side]map[player.Slot][]*effect.Binding)
	b.passiveBindings = make(map[player.Side][]*effect.Binding)
	b.purchased = make(map[string]bool)

	for _, side := range []player.Side{player.Human, player.AI} {
		class := b.classes[side]
		st := player.New(side)
		st.ClassName = class.ID
		st.MaxHealth = class.MaxHealth
		st.Health = class.MaxHealth
		for _, sk := range class.Skills {
			st.EquippedSkills = append(st.EquippedSkills, sk.ID)
		}
		b.players[side] = st
		b.itemBindings[side] = make(map[player.Slot][]*effect.Binding)

		for _, e := range class.Passives {
			b.passiveBindings[side] = append(b.passiveBindings[side], effect.Activate(e, b.contextFor(side)))
		}
	}

	resolver.Fill(b.board, b.rng)
	b.refreshOffers()

	b.phase = PhaseIdle
	b.stage = stageNone
	b.current = player.Human
	b.turn = 1
	b.combo = 0
	b.selected = nil
	b.currentBattle = 1
	b.winner = ""
	b.runComplete = false
	b.stats = Stats{}

	b.bus.Emit(event.TypeStartOfTurn, event.TurnPayload{Side: b.current, Turn: b.turn})
}

// traceMiddleware logs every dispatched event. Installed outermost so it
// brackets the whole handler set.
func (b *Battle) traceMiddleware() event.Middleware {
	return func(next func(event.Event), ev event.Event) {
		b.log.Debug("dispatch", "event", ev.Type.String())
		next(ev)
	}
}

// refreshOffers resamples the blessing shop, excluding already purchased
// entries.
func (b *Battle) refreshOffers() {
	b.offers = content.SampleBlessings(b.rng, b.balance.Shop.Offers, b.purchased)
}

// Query surface.

// GridSnapshot returns a copy of the board.
func (b *Battle) GridSnapshot() [grid.Size][grid.Size]grid.Tile {
	return b.board.Snapshot()
}

// Player returns the state for a side.
func (b *Battle) Player(side player.Side) *player.State {
	return b.players[side]
}

// Current returns whose turn it is.
func (b *Battle) Current() player.Side { return b.current }

// Phase returns the state machine's phase.
func (b *Battle) Phase() Phase { return b.phase }

// Turn returns the one-based turn counter.
func (b *Battle) Turn() int { return b.turn }

// Combo returns the cascade depth of the resolution in progress, zero
// when idle.
func (b *Battle) Combo() int { return b.combo }

// Selected returns the currently selected tile, or nil.
func (b *Battle) Selected() *grid.Coord {
	if b.selected == nil {
		return nil
	}
	c := *b.selected
	return &c
}

// PendingAnimations lists unacknowledged animations for the renderer.
func (b *Battle) PendingAnimations() []resolver.Animation {
	return b.anims.Pending()
}

// Offers returns the blessings currently for sale.
func (b *Battle) Offers() []effect.Blessing {
	out := make([]effect.Blessing, len(b.offers))
	copy(out, b.offers)
	return out
}

// Blessings returns the human player's collected blessings.
func (b *Battle) Blessings() []*effect.Collected {
	var out []*effect.Collected
	for _, c := range b.ledger.Collected() {
		if c.Owner == player.Human {
			out = append(out, c)
		}
	}
	return out
}

// BattleCounters returns the current battle number and run length.
func (b *Battle) BattleCounters() (current, max int) {
	return b.currentBattle, b.balance.Run.MaxBattles
}

// Winner returns the winning side once the phase is game over, "" before.
func (b *Battle) Winner() player.Side { return b.winner }

// RunComplete reports whether the human won the final battle of the run.
func (b *Battle) RunComplete() bool { return b.runComplete }

// Stats aggregates what happened in the current battle, for the history
// record.
type Stats struct {
	MaxCombo        int
	DamageDealt     int // by the human
	DamageTaken     int
	BlessingsBought int
}

// Stats returns the running totals for the current battle.
func (b *Battle) Stats() Stats { return b.stats }

// Seed returns the seed the battle was created with.
func (b *Battle) Seed() int64 { return b.opts.Seed }

// Bus exposes the event bus for read-only subscription by the
// presentation layer (toasts, log viewers).
func (b *Battle) Bus() *event.Bus { return b.bus }

// Class returns the class loadout for a side.
func (b *Battle) Class(side player.Side) content.Class {
	return b.classes[side]
}
