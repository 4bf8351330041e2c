// Package player holds per-side battle state: health, the five-color
// resource pool, defense, equipped skills and items, and timed status
// effects. All mutation goes through the operations here; callers never
// write fields behind the state's back.
package player

import "github.com/vklychkov/gemduel/internal/grid"

// Side identifies which seat a state belongs to.
type Side string

const (
	Human Side = "human"
	AI    Side = "ai"
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == Human {
		return AI
	}
	return Human
}

// DefaultMaxHealth is the baseline health pool before class modifiers.
const DefaultMaxHealth = 100

// State is the mutable battle state for one side.
type State struct {
	Side      Side
	Health    int
	MaxHealth int

	// MatchedColors is the resource pool, keyed by color. Empty never
	// appears as a key; counts never go negative.
	MatchedColors map[grid.Color]int

	Defense int

	ClassName      string
	ActiveSkillID  string // selected skill while targeting, "" when none
	EquippedSkills []string
	SkillCasts     map[string]int

	Items     map[Slot]*Item
	Inventory []Item

	StatusEffects []StatusEffect
}

// New creates a fresh state for the given side at full default health.
func New(side Side) *State {
	return &State{
		Side:          side,
		Health:        DefaultMaxHealth,
		MaxHealth:     DefaultMaxHealth,
		MatchedColors: make(map[grid.Color]int),
		SkillCasts:    make(map[string]int),
		Items:         make(map[Slot]*Item),
	}
}

// ApplyDamage reduces health by amount after defense soaks its share.
// Defense is not consumed by ordinary damage. Health is clamped at zero.
// Returns the health actually lost.
func (s *State) ApplyDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	amount -= s.Defense
	if amount <= 0 {
		return 0
	}
	before := s.Health
	s.Health -= amount
	if s.Health < 0 {
		s.Health = 0
	}
	return before - s.Health
}

// Heal raises health by amount, clamped to MaxHealth.
// Returns the health actually gained.
func (s *State) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := s.Health
	s.Health += amount
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	return s.Health - before
}

// GainResources credits per-color counts into the pool, scaling each count
// by the active resource multiplier and rounding down. Empty is ignored.
// Returns the amounts actually credited.
func (s *State) GainResources(tally map[grid.Color]int) map[grid.Color]int {
	mult := s.ResourceMultiplier()
	gained := make(map[grid.Color]int)
	for color, count := range tally {
		if color == grid.Empty || count <= 0 {
			continue
		}
		scaled := int(float64(count) * mult)
		if scaled <= 0 {
			continue
		}
		s.MatchedColors[color] += scaled
		gained[color] = scaled
	}
	return gained
}

// Spend deducts amount of color from the pool. On insufficient balance it
// returns false and mutates nothing; the caller decides how to surface the
// rejection.
func (s *State) Spend(color grid.Color, amount int) bool {
	if amount < 0 {
		return false
	}
	if s.MatchedColors[color] < amount {
		return false
	}
	s.MatchedColors[color] -= amount
	return true
}

// CanAfford reports whether the pool covers amount of color.
func (s *State) CanAfford(color grid.Color, amount int) bool {
	return s.MatchedColors[color] >= amount
}

// ResourceMultiplier is the product of all active resource multipliers.
func (s *State) ResourceMultiplier() float64 {
	mult := 1.0
	for _, se := range s.StatusEffects {
		if se.ResourceMultiplier > 0 {
			mult *= se.ResourceMultiplier
		}
	}
	return mult
}

// DamageMultiplier is the product of all active damage multipliers,
// applied to damage this side deals.
func (s *State) DamageMultiplier() float64 {
	mult := 1.0
	for _, se := range s.StatusEffects {
		if se.DamageMultiplier > 0 {
			mult *= se.DamageMultiplier
		}
	}
	return mult
}

// HasSkill reports whether the skill is equipped.
func (s *State) HasSkill(id string) bool {
	for _, sk := range s.EquippedSkills {
		if sk == id {
			return true
		}
	}
	return false
}

// RecordSkillCast bumps the cast counter for a skill.
func (s *State) RecordSkillCast(id string) {
	s.SkillCasts[id]++
}

// IsDefeated reports whether health has reached zero.
func (s *State) IsDefeated() bool {
	return s.Health <= 0
}
