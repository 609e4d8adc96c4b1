// Package build is the six-slot item build toy.
package build

import "errors"

const SlotCount = 6

var ErrInventoryFull = errors.New("inventory full")
var ErrSlotOutOfRange = errors.New("slot out of range")

type Slot struct {
	Item  string `json:"item"`
	Image string `json:"image"`
}

func (s Slot) Empty() bool { return s.Item == "" }

// Inventory is a value type; copying it copies the slots.
type Inventory struct {
	Slots [SlotCount]Slot `json:"slots"`
}

func (inv Inventory) Full() bool {
	for _, s := range inv.Slots {
		if s.Empty() {
			return false
		}
	}
	return true
}

func (inv Inventory) Count() int {
	n := 0
	for _, s := range inv.Slots {
		if !s.Empty() {
			n++
		}
	}
	return n
}

// Add places the item in the first empty slot and returns its index.
func (inv Inventory) Add(item, image string) (Inventory, int, error) {
	for i, s := range inv.Slots {
		if s.Empty() {
			inv.Slots[i] = Slot{Item: item, Image: image}
			return inv, i, nil
		}
	}
	return inv, -1, ErrInventoryFull
}

// Remove empties one slot. Removing an empty slot is allowed.
func (inv Inventory) Remove(slot int) (Inventory, error) {
	if slot < 0 || slot >= SlotCount {
		return inv, ErrSlotOutOfRange
	}
	inv.Slots[slot] = Slot{}
	return inv, nil
}

func (inv Inventory) Clear() Inventory { return Inventory{} }
