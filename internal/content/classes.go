package content

import (
	"github.com/vklychkov/gemduel/internal/effect"
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
)

// Class is a playable loadout: a health pool, three skills and a passive
// effect set activated at battle start.
type Class struct {
	ID          string
	Name        string
	Description string
	MaxHealth   int
	Skills      []Skill
	Passives    []effect.Effect
}

// DefaultClassID is the loadout used when none is chosen.
const DefaultClassID = "warden"

func init() {
	RegisterClass(wardenClass())
	RegisterClass(pyromancerClass())
	RegisterClass(shadowbladeClass())
}

func wardenClass() Class {
	return Class{
		ID:          "warden",
		Name:        "Warden",
		Description: "Sturdy protector. Outlasts the opponent behind defense and healing.",
		MaxHealth:   110,
		Skills: []Skill{
			{
				ID:          "shield_wall",
				Name:        "Shield Wall",
				Description: "Raise defense by 2.",
				Cost:        effect.Cost{Color: grid.Blue, Amount: 5},
				Effects: []effect.Effect{{
					Kind:    effect.KindStatGrant,
					Trigger: effect.Immediate(),
					Defense: 2,
				}},
			},
			{
				ID:          "mend",
				Name:        "Mend",
				Description: "Restore 12 health.",
				Cost:        effect.Cost{Color: grid.Green, Amount: 4},
				Effects: []effect.Effect{{
					Kind:    effect.KindHeal,
					Trigger: effect.Immediate(),
					Amount:  12,
				}},
			},
			{
				ID:          "frost_grip",
				Name:        "Frost Grip",
				Description: "Freeze a tile in place.",
				Cost:        effect.Cost{Color: grid.Blue, Amount: 3},
				NeedsTarget: true,
				OnTarget:    freezeTarget,
			},
		},
		Passives: []effect.Effect{{
			Kind:    effect.KindStatGrant,
			Trigger: effect.Immediate(),
			Defense: 1,
		}},
	}
}

func pyromancerClass() Class {
	return Class{
		ID:          "pyromancer",
		Name:        "Pyromancer",
		Description: "Burns the board down. Ignited tiles explode for bonus damage.",
		MaxHealth:   95,
		Skills: []Skill{
			{
				ID:          "kindle",
				Name:        "Kindle",
				Description: "Ignite a tile; it deals bonus damage when matched.",
				Cost:        effect.Cost{Color: grid.Red, Amount: 3},
				NeedsTarget: true,
				OnTarget:    igniteTarget,
			},
			{
				ID:          "fireball",
				Name:        "Fireball",
				Description: "Hurl 10 damage at the opponent.",
				Cost:        effect.Cost{Color: grid.Red, Amount: 6},
				Effects: []effect.Effect{{
					Kind:    effect.KindDamage,
					Trigger: effect.Immediate(),
					Amount:  10,
				}},
			},
			{
				ID:          "inferno",
				Name:        "Inferno",
				Description: "Deal half again as much damage for 3 turns.",
				Cost:        effect.Cost{Color: grid.Red, Amount: 10},
				Effects: []effect.Effect{{
					Kind:    effect.KindStatusGrant,
					Trigger: effect.Immediate(),
					Status: &player.StatusEffect{
						Name:             "inferno",
						DamageMultiplier: 1.5,
						TurnsRemaining:   3,
					},
				}},
			},
		},
		// Pyromancers open every battle with a spark in the pool.
		Passives: []effect.Effect{{
			Kind:       effect.KindStatGrant,
			Trigger:    effect.Immediate(),
			ColorStats: map[grid.Color]int{grid.Red: 2},
		}},
	}
}

func shadowbladeClass() Class {
	return Class{
		ID:          "shadowblade",
		Name:        "Shadowblade",
		Description: "Turns tiles black, then reaps them for burst damage.",
		MaxHealth:   90,
		Skills: []Skill{
			{
				ID:          "shadow_brand",
				Name:        "Shadow Brand",
				Description: "Turn a tile black for later reaping.",
				Cost:        effect.Cost{Color: grid.Yellow, Amount: 4},
				NeedsTarget: true,
				OnTarget:    brandTarget,
			},
			{
				ID:          "reap",
				Name:        "Reap",
				Description: "Consume a black tile for 8 damage.",
				Cost:        effect.Cost{Color: grid.Yellow, Amount: 2},
				NeedsTarget: true,
				TargetColor: grid.ColorPtr(grid.Black),
				OnTarget:    reapTarget,
			},
			{
				ID:          "shadowstep",
				Name:        "Shadowstep",
				Description: "Act again immediately after this turn.",
				Cost:        effect.Cost{Color: grid.Yellow, Amount: 8},
				EndsTurn:    true,
				Effects: []effect.Effect{{
					Kind:    effect.KindStatusGrant,
					Trigger: effect.Immediate(),
					Status: &player.StatusEffect{
						Name:           "shadowstep",
						TurnsRemaining: 2,
						ExtraTurn:      true,
					},
				}},
			},
		},
		// Lifesteal passive: every point of damage dealt heals one third,
		// rounded down.
		Passives: []effect.Effect{{
			Kind:    effect.KindHook,
			Trigger: effect.On(event.TypeDamageDealt),
			OnTrigger: func(ctx effect.Context, ev event.Event) bool {
				dmg, ok := ev.Payload.(event.DamagePayload)
				if !ok || dmg.Source != ctx.Owner().Side || dmg.Applied < 3 {
					return false
				}
				ctx.Heal(ctx.Owner().Side, dmg.Applied/3)
				return true
			},
		}},
	}
}
