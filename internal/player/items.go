package player

// Slot identifies an equipment slot. One item per slot.
type Slot string

const (
	SlotWeapon  Slot = "weapon"
	SlotArmor   Slot = "armor"
	SlotTrinket Slot = "trinket"
)

// Slots lists the valid equipment slots in display order.
var Slots = [...]Slot{SlotWeapon, SlotArmor, SlotTrinket}

// ValidSlot reports whether s names a known equipment slot.
func ValidSlot(s Slot) bool {
	for _, v := range Slots {
		if v == s {
			return true
		}
	}
	return false
}

// Item is a piece of equipment as the player state tracks it. The item's
// effect list lives in the content catalog, keyed by ID; the state only
// records what is equipped and what sits in the inventory.
type Item struct {
	ID          string
	Name        string
	Description string
	Slot        Slot
}

// Equip places the item in its slot. If the slot is occupied, the prior
// occupant is returned to the inventory, not destroyed. Returns false for
// an invalid slot, with no mutation.
func (s *State) Equip(item Item) bool {
	if !ValidSlot(item.Slot) {
		return false
	}
	if prev := s.Items[item.Slot]; prev != nil {
		s.Inventory = append(s.Inventory, *prev)
	}
	it := item
	s.Items[item.Slot] = &it
	return true
}

// Unequip removes the item in the slot and returns it to the inventory.
// Returns false if the slot is invalid or empty.
func (s *State) Unequip(slot Slot) bool {
	if !ValidSlot(slot) {
		return false
	}
	item := s.Items[slot]
	if item == nil {
		return false
	}
	s.Inventory = append(s.Inventory, *item)
	delete(s.Items, slot)
	return true
}

// RemoveFromInventory deletes the first inventory item with the given ID.
// Returns false if no such item exists.
func (s *State) RemoveFromInventory(id string) bool {
	for i, item := range s.Inventory {
		if item.ID == id {
			s.Inventory = append(s.Inventory[:i], s.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// AddToInventory appends an item to the inventory.
func (s *State) AddToInventory(item Item) {
	s.Inventory = append(s.Inventory, item)
}

// EquippedItem returns the item in the slot, or nil.
func (s *State) EquippedItem(slot Slot) *Item {
	return s.Items[slot]
}
