package engine

import (
	"github.com/vklychkov/gemduel/internal/content"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
	"github.com/vklychkov/gemduel/internal/resolver"
)

// AITakeTurn plays one move for the AI side: possibly a skill cast first,
// then the highest-value legal swap. Returns false if it is not the AI's
// turn or no action was possible.
func (b *Battle) AITakeTurn() bool {
	if b.current != player.AI {
		return false
	}
	return b.AutoPlayTurn()
}

// AutoPlayTurn plays one move for whichever side is current, using the
// same policy as the AI. Headless simulations drive both sides with it.
func (b *Battle) AutoPlayTurn() bool {
	if b.phase != PhaseIdle {
		return false
	}

	if b.rng.Intn(100) < b.balance.AI.SkillBias {
		if b.aiCastSkill(b.current) && b.phase != PhaseIdle {
			// The cast started a cascade or ended the turn.
			return true
		}
	}

	if r1, c1, r2, c2, ok := b.bestSwap(); ok {
		return b.SwapTiles(r1, c1, r2, c2)
	}

	// Dead board slipped through the reshuffle guard; concede the move.
	b.finishTurn()
	return true
}

// aiCastSkill casts the first affordable equipped skill, picking a target
// for targeted ones. Returns whether a cast happened.
func (b *Battle) aiCastSkill(side player.Side) bool {
	st := b.players[side]
	for _, id := range st.EquippedSkills {
		skill, err := content.SkillByID(id)
		if err != nil {
			continue
		}
		if !st.CanAfford(skill.Cost.Color, skill.Cost.Amount) {
			continue
		}
		if !skill.NeedsTarget {
			return b.castSkill(side, skill, nil)
		}
		if target, ok := b.aiPickTarget(skill); ok {
			return b.castSkill(side, skill, &target)
		}
	}
	return false
}

// aiPickTarget chooses a cell for a targeted skill: a random tile of the
// required color, or any random non-empty tile when unrestricted.
func (b *Battle) aiPickTarget(skill content.Skill) (grid.Coord, bool) {
	var candidates []grid.Coord
	b.board.ForEach(func(row, col int, t grid.Tile) {
		if t.Color == grid.Empty {
			return
		}
		if skill.TargetColor != nil && t.Color != *skill.TargetColor {
			return
		}
		candidates = append(candidates, grid.Coord{Row: row, Col: col})
	})
	if len(candidates) == 0 {
		return grid.Coord{}, false
	}
	return candidates[b.rng.Intn(len(candidates))], true
}

// bestSwap greedily picks the legal swap that marks the most tiles on the
// probe board.
func (b *Battle) bestSwap() (r1, c1, r2, c2 int, ok bool) {
	best := 0
	try := func(ar, ac, br, bc int) {
		if b.board.At(ar, ac).IsFrozen || b.board.At(br, bc).IsFrozen {
			return
		}
		snap := b.board.Snapshot()
		probe := grid.New()
		probe.Restore(snap)
		if !probe.Swap(ar, ac, br, bc) {
			return
		}
		matches := resolver.FindMatches(probe)
		if len(matches) == 0 {
			return
		}
		mark := resolver.MarkMatches(probe, matches)
		if len(mark.Cells) > best {
			best = len(mark.Cells)
			r1, c1, r2, c2, ok = ar, ac, br, bc, true
		}
	}

	for row := 0; row < grid.Size; row++ {
		for col := 0; col < grid.Size; col++ {
			if col+1 < grid.Size {
				try(row, col, row, col+1)
			}
			if row+1 < grid.Size {
				try(row, col, row+1, col)
			}
		}
	}
	return r1, c1, r2, c2, ok
}
