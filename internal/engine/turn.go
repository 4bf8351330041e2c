package engine

import (
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
	"github.com/vklychkov/gemduel/internal/resolver"
)

// Phase is the turn state machine's state. Commands are accepted only in
// the phases that list them; everything else is rejected without mutation.
type Phase int

const (
	// PhaseIdle accepts player commands: swaps, skills, shop, equipment.
	PhaseIdle Phase = iota
	// PhaseResolving is transient: match marking and damage for one
	// cascade pass, before its animations are scheduled.
	PhaseResolving
	// PhaseAwaitingAnimations blocks on the renderer acknowledging every
	// scheduled animation.
	PhaseAwaitingAnimations
	// PhaseEffectSettlement is transient: end-of-turn conversions, status
	// ticks and blessing duration bookkeeping.
	PhaseEffectSettlement
	// PhaseGameOver is terminal for the battle; only battle progression
	// and reset commands apply.
	PhaseGameOver
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseResolving:
		return "Resolving"
	case PhaseAwaitingAnimations:
		return "AwaitingAnimations"
	case PhaseEffectSettlement:
		return "EffectSettlement"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// resolveStage tracks what the outstanding animations of the current pass
// mean, so acknowledgement can pick the right continuation.
type resolveStage int

const (
	stageNone resolveStage = iota
	// stageExplode: matched tiles are exploding; on drain they empty and
	// gravity runs.
	stageExplode
	// stageSettle: fallen and refilled tiles are sliding in; on drain the
	// board rescans for follow-up matches.
	stageSettle
)

// CompleteAnimation acknowledges one scheduled animation by ID. When the
// last outstanding animation of the stage is acknowledged, resolution
// advances. Returns false for unknown or already-acknowledged IDs.
func (b *Battle) CompleteAnimation(id int64) bool {
	if b.phase != PhaseAwaitingAnimations {
		return false
	}
	if !b.anims.Complete(id) {
		return false
	}
	if b.anims.Outstanding() == 0 {
		b.advanceResolution()
	}
	return true
}

// beginResolution starts a cascade from the current board state. The board
// must contain at least one match.
func (b *Battle) beginResolution() {
	b.combo = 0
	b.beginPass()
	b.maybeAutoAck()
}

// beginPass runs one cascade pass up to the point where its explode
// animations are outstanding: find and mark matches, credit resources,
// apply ignite and combo damage, schedule the explosions.
func (b *Battle) beginPass() {
	b.phase = PhaseResolving
	b.combo++
	if b.combo > b.stats.MaxCombo {
		b.stats.MaxCombo = b.combo
	}

	matches := resolver.FindMatches(b.board)
	mark := resolver.MarkMatches(b.board, matches)

	b.log.Debug("cascade pass",
		"side", b.current, "combo", b.combo,
		"cells", len(mark.Cells), "ignited", mark.Ignited)

	b.bus.Emit(event.TypeMatch, event.MatchPayload{
		Side:    b.current,
		Combo:   b.combo,
		Colors:  mark.Colors,
		Ignited: mark.Ignited,
	})

	b.gainResources(b.current, mark.Colors)

	if mark.Ignited > 0 {
		b.dealDamage(b.current, b.current.Opponent(), mark.Ignited*b.balance.Combat.IgniteDamage)
	}
	if b.combo > 1 {
		b.dealDamage(b.current, b.current.Opponent(), b.balance.Combat.ComboDamage)
	}

	b.anims.AddAll(resolver.AnimExplode, mark.Cells)
	b.stage = stageExplode
	b.phase = PhaseAwaitingAnimations
}

// advanceResolution is the continuation taken when a stage's animations
// fully drain.
func (b *Battle) advanceResolution() {
	switch b.stage {
	case stageExplode:
		resolver.ClearMatched(b.board)
		settle := resolver.ApplyGravity(b.board, b.rng)
		b.anims.AddAll(resolver.AnimFallIn, settle.Moved)
		b.anims.AddAll(resolver.AnimFallIn, settle.Refilled)
		b.stage = stageSettle
		if b.anims.Outstanding() == 0 {
			b.advanceResolution()
		}

	case stageSettle:
		resolver.SettleAnimationsDone(b.board)
		if resolver.HasMatch(b.board) {
			b.beginPass()
			return
		}
		b.stage = stageNone
		b.finishTurn()
	}
}

// maybeAutoAck drains the animation barrier synchronously for headless
// runs.
func (b *Battle) maybeAutoAck() {
	for b.opts.AutoAck && b.phase == PhaseAwaitingAnimations {
		for _, a := range b.anims.Pending() {
			b.anims.Complete(a.ID)
		}
		b.advanceResolution()
	}
}

// finishTurn runs effect settlement and then hands off or ends the game:
// board tile conversions, the end-of-turn event (blessing durations
// decrement inside its dispatch), status effect ticks, the defeat check,
// and finally the extra-turn-aware handoff.
func (b *Battle) finishTurn() {
	b.phase = PhaseEffectSettlement
	b.selected = nil

	b.applyTileConversions(b.current)

	b.bus.Emit(event.TypeEndOfTurn, event.TurnPayload{Side: b.current, Turn: b.turn})
	b.players[b.current].TickStatusEffects()

	if b.checkDefeat() {
		return
	}

	next := b.current.Opponent()
	if b.players[b.current].ConsumeExtraTurn() {
		b.log.Debug("extra turn", "side", b.current)
		next = b.current
	}
	b.current = next
	b.turn++
	b.combo = 0
	b.phase = PhaseIdle

	b.bus.Emit(event.TypeStartOfTurn, event.TurnPayload{Side: b.current, Turn: b.turn})

	b.ensureMovesExist()
}

// applyTileConversions executes the board recoloring declared by the
// side's active status effects.
func (b *Battle) applyTileConversions(side player.Side) {
	for _, se := range b.players[side].StatusEffects {
		tc := se.ConvertTiles
		if tc == nil || tc.Count <= 0 {
			continue
		}
		c := b.contextFor(side)
		c.MutateTiles(effectTileConversion(tc))
	}
}

// checkDefeat ends the battle if either side is out of health. The winner
// is the surviving side; when a reflected or self-inflicted hit downs both
// in the same settlement, the side whose turn it was prevails.
func (b *Battle) checkDefeat() bool {
	humanDown := b.players[player.Human].IsDefeated()
	aiDown := b.players[player.AI].IsDefeated()
	if !humanDown && !aiDown {
		return false
	}

	switch {
	case humanDown && aiDown:
		b.winner = b.current
	case humanDown:
		b.winner = player.AI
	default:
		b.winner = player.Human
	}

	b.phase = PhaseGameOver
	b.log.Info("battle over", "winner", b.winner, "battle", b.currentBattle, "turns", b.turn)
	b.bus.Emit(event.TypeGameOver, event.GameOverPayload{Winner: b.winner})
	return true
}

// ensureMovesExist refills the board from scratch when no legal swap
// produces a match. Frozen and branded tiles do not survive the reshuffle.
func (b *Battle) ensureMovesExist() {
	for attempt := 0; attempt < 32; attempt++ {
		if b.hasLegalMove() {
			return
		}
		b.log.Info("board has no legal moves, reshuffling")
		b.board.Reset()
		resolver.Fill(b.board, b.rng)
	}
}

// hasLegalMove reports whether any adjacent swap of unfrozen tiles would
// produce a match.
func (b *Battle) hasLegalMove() bool {
	for row := 0; row < grid.Size; row++ {
		for col := 0; col < grid.Size; col++ {
			if b.board.At(row, col).IsFrozen {
				continue
			}
			if col+1 < grid.Size && !b.board.At(row, col+1).IsFrozen &&
				resolver.WouldMatch(b.board, row, col, row, col+1) {
				return true
			}
			if row+1 < grid.Size && !b.board.At(row+1, col).IsFrozen &&
				resolver.WouldMatch(b.board, row, col, row+1, col) {
				return true
			}
		}
	}
	return false
}

// NextBattle advances a won run to the following battle: fresh board,
// partial heal, cleared transient statuses. Collected blessings, equipment
// and resources carry over. Returns false unless the human just won and
// battles remain.
func (b *Battle) NextBattle() bool {
	if b.phase != PhaseGameOver || b.winner != player.Human {
		return false
	}
	if b.currentBattle >= b.balance.Run.MaxBattles {
		b.runComplete = true
		return false
	}
	b.currentBattle++

	for _, side := range []player.Side{player.Human, player.AI} {
		st := b.players[side]
		st.StatusEffects = nil
		if side == player.AI {
			st.Health = st.MaxHealth
		} else {
			st.Heal(b.balance.Run.HealBetweenBattles)
		}
	}

	b.board.Reset()
	resolver.Fill(b.board, b.rng)
	b.anims.Reset()
	b.refreshOffers()

	b.phase = PhaseIdle
	b.stage = stageNone
	b.current = player.Human
	b.turn = 1
	b.combo = 0
	b.winner = ""
	b.stats = Stats{}

	b.bus.Emit(event.TypeStartOfTurn, event.TurnPayload{Side: b.current, Turn: b.turn})
	return true
}
