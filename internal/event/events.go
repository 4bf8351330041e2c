// Package event implements the typed publish/subscribe channel that
// connects the resolver, the turn engine and the effect system. Dispatch is
// synchronous, re-entrant and middleware-wrapped; the bus carries read-only
// payload data, never mutable game state.
package event

import (
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
)

// Type enumerates the closed set of game events.
type Type int

const (
	TypeStartOfTurn Type = iota
	TypeEndOfTurn
	TypeMatch
	TypeDamageDealt
	TypeDamageTaken
	TypeResourceGained
	TypeSkillCast
	TypeStatusEffectApplied
	TypeGameOver
)

// String returns a human-readable name for the event type.
func (t Type) String() string {
	switch t {
	case TypeStartOfTurn:
		return "StartOfTurn"
	case TypeEndOfTurn:
		return "EndOfTurn"
	case TypeMatch:
		return "Match"
	case TypeDamageDealt:
		return "DamageDealt"
	case TypeDamageTaken:
		return "DamageTaken"
	case TypeResourceGained:
		return "ResourceGained"
	case TypeSkillCast:
		return "SkillCast"
	case TypeStatusEffectApplied:
		return "StatusEffectApplied"
	case TypeGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Payload is the interface all event payloads implement.
type Payload interface {
	eventPayload()
}

// Event pairs a type tag with its payload. Transient: consumed synchronously
// during emission, never persisted.
type Event struct {
	Type    Type
	Payload Payload
}

// TurnPayload accompanies StartOfTurn and EndOfTurn.
type TurnPayload struct {
	Side player.Side
	Turn int
}

func (TurnPayload) eventPayload() {}

// MatchPayload reports one completed resolver pass.
type MatchPayload struct {
	Side    player.Side
	Combo   int // 1 for the first pass of a cascade, then counting up
	Colors  map[grid.Color]int
	Ignited int // ignited tiles cleared in this pass
}

func (MatchPayload) eventPayload() {}

// DamagePayload accompanies DamageDealt and DamageTaken.
type DamagePayload struct {
	Source  player.Side
	Target  player.Side
	Amount  int // damage requested, before defense
	Applied int // health actually lost
}

func (DamagePayload) eventPayload() {}

// ResourceGainedPayload reports resources credited to a side.
type ResourceGainedPayload struct {
	Side   player.Side
	Colors map[grid.Color]int
}

func (ResourceGainedPayload) eventPayload() {}

// SkillCastPayload reports a skill cast and its target cell.
type SkillCastPayload struct {
	Side    player.Side
	SkillID string
	Target  grid.Coord
}

func (SkillCastPayload) eventPayload() {}

// StatusEffectAppliedPayload reports a status effect landing on a side.
type StatusEffectAppliedPayload struct {
	Side player.Side
	Name string
}

func (StatusEffectAppliedPayload) eventPayload() {}

// GameOverPayload reports the battle outcome.
type GameOverPayload struct {
	Winner player.Side
}

func (GameOverPayload) eventPayload() {}
