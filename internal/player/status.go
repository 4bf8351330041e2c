package player

import "github.com/vklychkov/gemduel/internal/grid"

// ManaConversion converts resources of one color into another once per
// turn, at most Amount units, one-for-one.
type ManaConversion struct {
	From   grid.Color
	To     grid.Color
	Amount int
}

// TileConversion recolors up to Count tiles of one color on the board each
// turn. The grid mutation itself is the turn engine's job; this record only
// declares the intent.
type TileConversion struct {
	From  grid.Color
	To    grid.Color
	Count int
}

// StatusEffect is a timed modifier attached directly to a player.
// Zero-valued multiplier fields mean "not set".
type StatusEffect struct {
	Name               string
	DamageMultiplier   float64
	ResourceMultiplier float64
	TurnsRemaining     int
	ExtraTurn          bool
	ManaConversion     *ManaConversion
	ConvertTiles       *TileConversion
	OnExpire           func()
}

// AddStatusEffect appends a status effect to the list. Order is
// preserved; it matters for multiplier stacking visibility.
func (s *State) AddStatusEffect(se StatusEffect) {
	s.StatusEffects = append(s.StatusEffects, se)
}

// applyManaConversions runs each effect's passive conversion, before any
// duration decrement.
func (s *State) applyManaConversions() {
	for _, se := range s.StatusEffects {
		mc := se.ManaConversion
		if mc == nil || mc.Amount <= 0 {
			continue
		}
		moved := mc.Amount
		if have := s.MatchedColors[mc.From]; have < moved {
			moved = have
		}
		if moved == 0 {
			continue
		}
		s.MatchedColors[mc.From] -= moved
		s.MatchedColors[mc.To] += moved
	}
}

// TickStatusEffects runs end-of-turn bookkeeping for this side: mana
// conversions first, then exactly one duration decrement per effect.
// Effects that reach zero are pruned and their OnExpire hook fires once.
// Returns the expired effects.
func (s *State) TickStatusEffects() []StatusEffect {
	s.applyManaConversions()

	var kept []StatusEffect
	var expired []StatusEffect
	for _, se := range s.StatusEffects {
		se.TurnsRemaining--
		if se.TurnsRemaining <= 0 {
			expired = append(expired, se)
			if se.OnExpire != nil {
				se.OnExpire()
			}
			continue
		}
		kept = append(kept, se)
	}
	s.StatusEffects = kept
	return expired
}

// ConsumeExtraTurn reports whether any active status effect grants an
// extra turn, and clears the grant so it applies once.
func (s *State) ConsumeExtraTurn() bool {
	for i := range s.StatusEffects {
		if s.StatusEffects[i].ExtraTurn {
			s.StatusEffects[i].ExtraTurn = false
			return true
		}
	}
	return false
}
