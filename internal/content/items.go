package content

import (
	"fmt"

	"github.com/vklychkov/gemduel/internal/effect"
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
)

// Item is a piece of equipment with its effect list. The effects stay
// active while the item is equipped; unequipping expires them, and
// stat-grant items undo themselves through OnExpire.
type Item struct {
	ID          string
	Name        string
	Description string
	Slot        player.Slot
	Effects     []effect.Effect
}

// AsPlayerItem converts the catalog entry to the record player state
// carries.
func (i Item) AsPlayerItem() player.Item {
	return player.Item{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Slot:        i.Slot,
	}
}

// ItemCatalog returns all equippable items.
func ItemCatalog() []Item {
	return []Item{
		{
			ID:          "ember_edge",
			Name:        "Ember Edge",
			Description: "Deals 2 damage on every cascade beyond the first.",
			Slot:        player.SlotWeapon,
			Effects: []effect.Effect{{
				Kind:    effect.KindHook,
				Trigger: effect.On(event.TypeMatch),
				OnTrigger: func(ctx effect.Context, ev event.Event) bool {
					m, ok := ev.Payload.(event.MatchPayload)
					if !ok || m.Side != ctx.Owner().Side || m.Combo < 2 {
						return false
					}
					ctx.DealDamage(ctx.Owner().Side.Opponent(), 2)
					return true
				},
			}},
		},
		{
			ID:          "aegis_plate",
			Name:        "Aegis Plate",
			Description: "Grants 3 defense while worn.",
			Slot:        player.SlotArmor,
			Effects: []effect.Effect{{
				Kind:    effect.KindStatGrant,
				Trigger: effect.Immediate(),
				Defense: 3,
				OnExpire: func(ctx effect.Context) {
					ctx.Owner().Defense -= 3
				},
			}},
		},
		{
			ID:          "phoenix_charm",
			Name:        "Phoenix Charm",
			Description: "A killing blow leaves you at 1 health instead.",
			Slot:        player.SlotTrinket,
			Effects: []effect.Effect{{
				Kind:    effect.KindWard,
				Trigger: effect.On(event.TypeDamageTaken),
			}},
		},
		{
			ID:          "prism_ring",
			Name:        "Prism Ring",
			Description: "Start each of your turns with 1 of every color.",
			Slot:        player.SlotTrinket,
			Effects: []effect.Effect{{
				Kind:    effect.KindHook,
				Trigger: effect.On(event.TypeStartOfTurn),
				OnTrigger: func(ctx effect.Context, ev event.Event) bool {
					turn, ok := ev.Payload.(event.TurnPayload)
					if !ok || turn.Side != ctx.Owner().Side {
						return false
					}
					ctx.GainResources(ctx.Owner().Side, map[grid.Color]int{
						grid.Red: 1, grid.Blue: 1, grid.Green: 1, grid.Yellow: 1,
					})
					return true
				},
			}},
		},
	}
}

// ItemByID finds a catalog item.
func ItemByID(id string) (Item, bool) {
	for _, item := range ItemCatalog() {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// RelicEffects rebuilds the effect list for a forged relic from its ID.
// Relics are not catalog entries; their power is encoded in the ID so the
// equip path can rebind them. Returns nil for non-relic IDs.
func RelicEffects(id string) []effect.Effect {
	var blessings int
	if _, err := fmt.Sscanf(id, "blessed_relic_%d", &blessings); err != nil || blessings <= 0 {
		return nil
	}
	return ForgeRelic(blessings).Effects
}

// ForgeRelic builds the trinket produced by converting collected blessings
// at the end of a battle. Its power scales with the number of blessings
// consumed.
func ForgeRelic(blessings int) Item {
	return Item{
		ID:          fmt.Sprintf("blessed_relic_%d", blessings),
		Name:        "Blessed Relic",
		Description: fmt.Sprintf("Forged from %d blessings.", blessings),
		Slot:        player.SlotTrinket,
		Effects: []effect.Effect{{
			Kind:    effect.KindStatGrant,
			Trigger: effect.Immediate(),
			Defense: blessings,
			Health:  blessings * 2,
		}},
	}
}
