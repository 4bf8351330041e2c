package engine

import (
	"github.com/vklychkov/gemduel/internal/content"
	"github.com/vklychkov/gemduel/internal/effect"
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
	"github.com/vklychkov/gemduel/internal/resolver"
)

// SelectTile is the cursor-driven board interaction. With a targeted skill
// armed it casts at the cell. Otherwise the first selection picks a tile,
// a second adjacent selection swaps, selecting the same tile again
// deselects, and any other cell moves the selection.
func (b *Battle) SelectTile(row, col int) bool {
	if b.phase != PhaseIdle || !b.board.InBounds(row, col) {
		return false
	}

	if b.players[b.current].ActiveSkillID != "" {
		return b.UseSkill(row, col)
	}

	cell := grid.Coord{Row: row, Col: col}
	if b.selected == nil {
		b.selected = &cell
		return true
	}
	if *b.selected == cell {
		b.selected = nil
		return true
	}
	if b.selected.Adjacent(cell) {
		first := *b.selected
		b.selected = nil
		return b.SwapTiles(first.Row, first.Col, row, col)
	}
	b.selected = &cell
	return true
}

// SwapTiles exchanges two adjacent tiles. A swap that produces no match is
// reverted and the turn is not consumed; a matching swap starts cascade
// resolution and, once settled, ends the turn.
func (b *Battle) SwapTiles(r1, c1, r2, c2 int) bool {
	if b.phase != PhaseIdle {
		return false
	}
	if !b.board.Swap(r1, c1, r2, c2) {
		return false
	}
	if !resolver.HasMatch(b.board) {
		b.board.Swap(r1, c1, r2, c2)
		b.log.Debug("swap reverted, no match", "from", grid.Coord{Row: r1, Col: c1}, "to", grid.Coord{Row: r2, Col: c2})
		return false
	}
	b.beginResolution()
	return true
}

// ToggleSkill selects or deselects a skill for the side. Selecting a
// targeted skill arms targeting mode; selecting an untargeted skill casts
// it immediately. Reselecting the armed skill cancels targeting with no
// side effects.
func (b *Battle) ToggleSkill(side player.Side, skillID string) bool {
	if b.phase != PhaseIdle || side != b.current {
		return false
	}
	st := b.players[side]
	if !st.HasSkill(skillID) {
		b.log.Warn("skill not equipped", "side", side, "skill", skillID)
		return false
	}

	if st.ActiveSkillID == skillID {
		st.ActiveSkillID = ""
		return true
	}

	skill, err := content.SkillByID(skillID)
	if err != nil {
		b.log.Warn("unknown skill", "skill", skillID)
		return false
	}

	if skill.NeedsTarget {
		st.ActiveSkillID = skillID
		b.selected = nil
		return true
	}
	return b.castSkill(side, skill, nil)
}

// UseSkill casts the armed targeted skill at a cell.
func (b *Battle) UseSkill(row, col int) bool {
	if b.phase != PhaseIdle || !b.board.InBounds(row, col) {
		return false
	}
	st := b.players[b.current]
	if st.ActiveSkillID == "" {
		return false
	}
	skill, err := content.SkillByID(st.ActiveSkillID)
	if err != nil {
		st.ActiveSkillID = ""
		return false
	}

	target := grid.Coord{Row: row, Col: col}
	if skill.TargetColor != nil && b.board.At(row, col).Color != *skill.TargetColor {
		return false
	}
	return b.castSkill(b.current, skill, &target)
}

// castSkill performs the full cast: affordability, the targeted action,
// cost, bookkeeping, the cast event and the effect list. Rejections before
// the cost deduction leave no trace.
func (b *Battle) castSkill(side player.Side, skill content.Skill, target *grid.Coord) bool {
	st := b.players[side]
	if !st.CanAfford(skill.Cost.Color, skill.Cost.Amount) {
		b.log.Debug("skill unaffordable", "side", side, "skill", skill.ID)
		return false
	}

	ctx := b.contextFor(side)
	if target != nil && skill.OnTarget != nil {
		if !skill.OnTarget(ctx, *target) {
			return false
		}
	}

	st.Spend(skill.Cost.Color, skill.Cost.Amount)
	st.RecordSkillCast(skill.ID)
	st.ActiveSkillID = ""

	payload := event.SkillCastPayload{Side: side, SkillID: skill.ID}
	if target != nil {
		payload.Target = *target
	}
	b.bus.Emit(event.TypeSkillCast, payload)

	for _, e := range skill.Effects {
		e.Apply(ctx, event.Event{})
	}

	b.log.Info("skill cast", "side", side, "skill", skill.ID)

	// A skill can kill outright or rearrange the board into a match.
	if b.checkDefeat() {
		return true
	}
	if resolver.HasMatch(b.board) {
		b.beginResolution()
		return true
	}
	if skill.EndsTurn {
		b.finishTurn()
	}
	return true
}

// PurchaseBlessing buys one of the current shop offers for the human
// player. On insufficient resources the purchase is rejected and nothing
// changes; the caller surfaces the rejection.
func (b *Battle) PurchaseBlessing(id string) bool {
	if b.phase != PhaseIdle {
		return false
	}

	idx := -1
	for i, offer := range b.offers {
		if offer.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		b.log.Warn("blessing not on offer", "blessing", id)
		return false
	}

	offer := b.offers[idx]
	st := b.players[player.Human]
	if !st.Spend(offer.Cost.Color, offer.Cost.Amount) {
		b.log.Debug("blessing unaffordable", "blessing", id)
		return false
	}

	b.purchased[id] = true
	b.stats.BlessingsBought++
	b.ledger.Add(offer, player.Human, b.contextFor(player.Human))
	b.log.Info("blessing purchased", "blessing", id)

	b.refreshOffers()
	return true
}

// ConvertBlessingsToItem forges every collected blessing into a single
// relic trinket, consuming them. The relic lands in the inventory.
func (b *Battle) ConvertBlessingsToItem() bool {
	if b.phase != PhaseIdle {
		return false
	}
	n := b.ledger.Consume(player.Human)
	if n == 0 {
		return false
	}
	relic := content.ForgeRelic(n)
	b.players[player.Human].AddToInventory(relic.AsPlayerItem())
	b.log.Info("relic forged", "blessings", n, "item", relic.ID)
	return true
}

// EquipItem equips a catalog item from the inventory, swapping out any
// prior slot occupant and rebinding effects accordingly.
func (b *Battle) EquipItem(side player.Side, itemID string) bool {
	item, ok := content.ItemByID(itemID)
	if !ok {
		// Forged relics are not in the catalog; equip them bare.
		return b.equipFromInventory(side, itemID)
	}

	st := b.players[side]
	if !st.RemoveFromInventory(itemID) {
		return false
	}
	if !st.Equip(item.AsPlayerItem()) {
		st.AddToInventory(item.AsPlayerItem())
		return false
	}

	b.expireItemBindings(side, item.Slot)
	ctx := b.contextFor(side)
	for _, e := range item.Effects {
		b.itemBindings[side][item.Slot] = append(b.itemBindings[side][item.Slot], effect.Activate(e, ctx))
	}
	return true
}

// equipFromInventory equips an inventory item with no catalog entry, such
// as a forged relic. Relic stats are baked into the item record by the
// forge, applied here as a flat grant.
func (b *Battle) equipFromInventory(side player.Side, itemID string) bool {
	st := b.players[side]
	var found *player.Item
	for i := range st.Inventory {
		if st.Inventory[i].ID == itemID {
			found = &st.Inventory[i]
			break
		}
	}
	if found == nil {
		return false
	}
	item := *found

	if !st.RemoveFromInventory(itemID) {
		return false
	}
	if !st.Equip(item) {
		st.AddToInventory(item)
		return false
	}
	b.expireItemBindings(side, item.Slot)

	for _, e := range content.RelicEffects(item.ID) {
		b.itemBindings[side][item.Slot] = append(b.itemBindings[side][item.Slot], effect.Activate(e, b.contextFor(side)))
	}
	return true
}

// UnequipItem moves the slot's item back to the inventory and expires its
// effect bindings.
func (b *Battle) UnequipItem(side player.Side, slot player.Slot) bool {
	if !b.players[side].Unequip(slot) {
		return false
	}
	b.expireItemBindings(side, slot)
	return true
}

// RemoveItemFromInventory discards an unequipped item.
func (b *Battle) RemoveItemFromInventory(side player.Side, itemID string) bool {
	return b.players[side].RemoveFromInventory(itemID)
}

func (b *Battle) expireItemBindings(side player.Side, slot player.Slot) {
	for _, bind := range b.itemBindings[side][slot] {
		bind.Expire()
	}
	delete(b.itemBindings[side], slot)
}
