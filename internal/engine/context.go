package engine

import (
	"math/rand"

	"github.com/vklychkov/gemduel/internal/effect"
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
)

// effCtx adapts the battle to the effect context interface, bound to one
// owning side. It is the only path through which effects mutate state.
type effCtx struct {
	b     *Battle
	owner player.Side
}

func (b *Battle) contextFor(side player.Side) effect.Context {
	return effCtx{b: b, owner: side}
}

func (c effCtx) Owner() *player.State    { return c.b.players[c.owner] }
func (c effCtx) Opponent() *player.State { return c.b.players[c.owner.Opponent()] }
func (c effCtx) Grid() *grid.Grid        { return c.b.board }
func (c effCtx) Bus() *event.Bus         { return c.b.bus }
func (c effCtx) RNG() *rand.Rand         { return c.b.rng }

func (c effCtx) DealDamage(target player.Side, amount int) int {
	return c.b.dealDamage(c.owner, target, amount)
}

func (c effCtx) Heal(target player.Side, amount int) int {
	return c.b.players[target].Heal(amount)
}

func (c effCtx) GainResources(target player.Side, tally map[grid.Color]int) {
	c.b.gainResources(target, tally)
}

func (c effCtx) ApplyStatus(target player.Side, se player.StatusEffect) {
	c.b.players[target].AddStatusEffect(se)
	c.b.bus.Emit(event.TypeStatusEffectApplied, event.StatusEffectAppliedPayload{
		Side: target,
		Name: se.Name,
	})
}

// MutateTiles applies the mutation to Count random candidate cells and
// returns how many changed. Candidates must be non-empty and, when From is
// set, of that color.
func (c effCtx) MutateTiles(m effect.TileMutation) int {
	var candidates []grid.Coord
	c.b.board.ForEach(func(row, col int, t grid.Tile) {
		if t.Color == grid.Empty {
			return
		}
		if m.From != nil && t.Color != *m.From {
			return
		}
		candidates = append(candidates, grid.Coord{Row: row, Col: col})
	})

	c.b.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	count := len(candidates)
	if m.Count > 0 && m.Count < count {
		count = m.Count
	}

	changed := 0
	for _, cell := range candidates[:count] {
		patch := grid.TilePatch{}
		if m.Recolor != nil {
			patch.Color = grid.ColorPtr(*m.Recolor)
		}
		if m.Freeze {
			patch.IsFrozen = grid.BoolPtr(true)
		}
		if m.Unfreeze {
			patch.IsFrozen = grid.BoolPtr(false)
		}
		if m.Ignite {
			patch.IsIgnited = grid.BoolPtr(true)
		}
		if c.b.board.UpdateTile(cell.Row, cell.Col, patch) {
			changed++
		}
	}
	return changed
}

// effectTileConversion translates a status effect's board conversion into
// the tile mutation the context applies.
func effectTileConversion(tc *player.TileConversion) effect.TileMutation {
	from, to := tc.From, tc.To
	return effect.TileMutation{Count: tc.Count, From: &from, Recolor: &to}
}

// dealDamage is the single damage path: scale by the source's damage
// multiplier, soak through the target's defense, then emit the dealt and
// taken events in that order.
func (b *Battle) dealDamage(source, target player.Side, amount int) int {
	if amount <= 0 {
		return 0
	}
	scaled := int(float64(amount) * b.players[source].DamageMultiplier())
	applied := b.players[target].ApplyDamage(scaled)

	if source == player.Human {
		b.stats.DamageDealt += applied
	}
	if target == player.Human {
		b.stats.DamageTaken += applied
	}

	payload := event.DamagePayload{
		Source:  source,
		Target:  target,
		Amount:  scaled,
		Applied: applied,
	}
	b.bus.Emit(event.TypeDamageDealt, payload)
	b.bus.Emit(event.TypeDamageTaken, payload)
	return applied
}

// gainResources credits a tally to a side and reports the credited amounts
// on the bus.
func (b *Battle) gainResources(target player.Side, tally map[grid.Color]int) {
	gained := b.players[target].GainResources(tally)
	if len(gained) == 0 {
		return
	}
	b.bus.Emit(event.TypeResourceGained, event.ResourceGainedPayload{
		Side:   target,
		Colors: gained,
	})
}
