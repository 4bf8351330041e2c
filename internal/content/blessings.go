package content

import (
	"math/rand"

	"github.com/vklychkov/gemduel/internal/effect"
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
)

// BlessingCatalog returns the full set of purchasable blessings. Entries
// are templates; the shop samples from them and purchase copies one into
// the ledger.
func BlessingCatalog() []effect.Blessing {
	return []effect.Blessing{
		{
			ID:          "crimson_fury",
			Name:        "Crimson Fury",
			Description: "Deal half again as much damage for 4 turns.",
			Color:       grid.Red,
			Cost:        effect.Cost{Color: grid.Red, Amount: 5},
			Duration:    4,
			Effects: []effect.Effect{{
				Kind:    effect.KindStatusGrant,
				Trigger: effect.Immediate(),
				Status: &player.StatusEffect{
					Name:             "crimson_fury",
					DamageMultiplier: 1.5,
					TurnsRemaining:   4,
				},
			}},
		},
		{
			ID:          "verdant_renewal",
			Name:        "Verdant Renewal",
			Description: "Heal 3 at the start of each of your turns for 3 turns.",
			Color:       grid.Green,
			Cost:        effect.Cost{Color: grid.Green, Amount: 5},
			Duration:    3,
			Effects: []effect.Effect{{
				Kind:    effect.KindHeal,
				Trigger: effect.On(event.TypeStartOfTurn),
				Amount:  3,
			}},
		},
		{
			ID:          "azure_bulwark",
			Name:        "Azure Bulwark",
			Description: "Permanently gain 2 defense.",
			Color:       grid.Blue,
			Cost:        effect.Cost{Color: grid.Blue, Amount: 6},
			Effects: []effect.Effect{{
				Kind:    effect.KindStatGrant,
				Trigger: effect.Immediate(),
				Defense: 2,
			}},
		},
		{
			ID:          "golden_touch",
			Name:        "Golden Touch",
			Description: "Matches yield half again as many resources for 4 turns.",
			Color:       grid.Yellow,
			Cost:        effect.Cost{Color: grid.Yellow, Amount: 5},
			Duration:    4,
			Effects: []effect.Effect{{
				Kind:    effect.KindStatusGrant,
				Trigger: effect.Immediate(),
				Status: &player.StatusEffect{
					Name:               "golden_touch",
					ResourceMultiplier: 1.5,
					TurnsRemaining:     4,
				},
			}},
		},
		{
			ID:          "second_wind",
			Name:        "Second Wind",
			Description: "The next blow that would defeat you leaves you at 1 health.",
			Color:       grid.Green,
			Cost:        effect.Cost{Color: grid.Green, Amount: 7},
			Duration:    6,
			Effects: []effect.Effect{{
				Kind:    effect.KindWard,
				Trigger: effect.On(event.TypeDamageTaken),
			}},
		},
		{
			ID:          "momentum",
			Name:        "Momentum",
			Description: "Take an extra turn.",
			Color:       grid.Yellow,
			Cost:        effect.Cost{Color: grid.Yellow, Amount: 6},
			Duration:    1,
			Effects: []effect.Effect{{
				Kind:    effect.KindStatusGrant,
				Trigger: effect.Immediate(),
				Status: &player.StatusEffect{
					Name:           "momentum",
					TurnsRemaining: 2,
					ExtraTurn:      true,
				},
			}},
		},
		{
			ID:          "transmutation",
			Name:        "Transmutation",
			Description: "Convert up to 2 red into blue at each end of turn for 4 turns.",
			Color:       grid.Blue,
			Cost:        effect.Cost{Color: grid.Blue, Amount: 4},
			Duration:    4,
			Effects: []effect.Effect{{
				Kind:    effect.KindStatusGrant,
				Trigger: effect.Immediate(),
				Status: &player.StatusEffect{
					Name:           "transmutation",
					TurnsRemaining: 4,
					ManaConversion: &player.ManaConversion{
						From:   grid.Red,
						To:     grid.Blue,
						Amount: 2,
					},
				},
			}},
		},
		{
			ID:          "wildfire",
			Name:        "Wildfire",
			Description: "Each of your matches ignites a random tile, for 3 turns.",
			Color:       grid.Red,
			Cost:        effect.Cost{Color: grid.Red, Amount: 4},
			Duration:    3,
			Effects: []effect.Effect{{
				Kind:    effect.KindHook,
				Trigger: effect.On(event.TypeMatch),
				OnTrigger: func(ctx effect.Context, ev event.Event) bool {
					m, ok := ev.Payload.(event.MatchPayload)
					if !ok || m.Side != ctx.Owner().Side {
						return false
					}
					return ctx.MutateTiles(effect.TileMutation{Count: 1, Ignite: true}) > 0
				},
			}},
		},
		{
			ID:          "blood_pact",
			Name:        "Blood Pact",
			Description: "Heal 1 whenever you deal damage, for 5 turns.",
			Color:       grid.Red,
			Cost:        effect.Cost{Color: grid.Red, Amount: 3},
			Duration:    5,
			Effects: []effect.Effect{{
				Kind:    effect.KindHook,
				Trigger: effect.On(event.TypeDamageDealt),
				OnTrigger: func(ctx effect.Context, ev event.Event) bool {
					dmg, ok := ev.Payload.(event.DamagePayload)
					if !ok || dmg.Source != ctx.Owner().Side || dmg.Applied <= 0 {
						return false
					}
					ctx.Heal(ctx.Owner().Side, 1)
					return true
				},
			}},
		},
		{
			ID:          "thaw",
			Name:        "Thaw",
			Description: "Unfreeze every frozen tile.",
			Color:       grid.Blue,
			Cost:        effect.Cost{Color: grid.Blue, Amount: 2},
			Effects: []effect.Effect{{
				Kind:    effect.KindTileMutation,
				Trigger: effect.Immediate(),
				Mutation: &effect.TileMutation{
					Count:    grid.Size * grid.Size,
					Unfreeze: true,
				},
			}},
		},
	}
}

// BlessingByID finds a catalog entry.
func BlessingByID(id string) (effect.Blessing, bool) {
	for _, b := range BlessingCatalog() {
		if b.ID == id {
			return b, true
		}
	}
	return effect.Blessing{}, false
}

// SampleBlessings draws n distinct blessings at random, skipping the
// excluded IDs. Returns fewer than n when the catalog runs short.
func SampleBlessings(rng *rand.Rand, n int, exclude map[string]bool) []effect.Blessing {
	pool := make([]effect.Blessing, 0)
	for _, b := range BlessingCatalog() {
		if !exclude[b.ID] {
			pool = append(pool, b)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
