package item

import (
	"fmt"
	"sort"
)

// Bag counts the items a player holds. It resolves templates through a
// Registry and never holds quantities for unknown ids.
// It is not safe for concurrent use.
type Bag struct {
	reg    *Registry
	counts map[int]int
}

// NewBag creates an empty Bag backed by reg.
//
// Precondition: reg must not be nil.
func NewBag(reg *Registry) *Bag {
	return &Bag{reg: reg, counts: make(map[int]int)}
}

// Add puts qty units of item id into the bag.
//
// Precondition: qty > 0.
// Postcondition: Returns an error if id is not a registered item.
func (b *Bag) Add(id, qty int) error {
	if _, ok := b.reg.Get(id); !ok {
		return fmt.Errorf("bag: unknown item %d", id)
	}
	if qty <= 0 {
		return fmt.Errorf("bag: quantity must be positive, got %d", qty)
	}
	b.counts[id] += qty
	return nil
}

// Quantity returns how many units of id the bag holds.
func (b *Bag) Quantity(id int) int {
	return b.counts[id]
}

// Item returns the template for id when the bag holds at least one.
func (b *Bag) Item(id int) (*Item, bool) {
	if b.counts[id] <= 0 {
		return nil, false
	}
	return b.reg.Get(id)
}

// Consume removes one unit of id.
//
// Postcondition: Returns false, changing nothing, when none are held.
func (b *Bag) Consume(id int) bool {
	if b.counts[id] <= 0 {
		return false
	}
	b.counts[id]--
	if b.counts[id] == 0 {
		delete(b.counts, id)
	}
	return true
}

// FirstOfKind returns the lowest-id held item of kind k.
func (b *Bag) FirstOfKind(k Kind) (*Item, bool) {
	for _, id := range b.IDs() {
		if it, ok := b.reg.Get(id); ok && it.Kind == k {
			return it, true
		}
	}
	return nil, false
}

// IDs returns the ids of every held item in ascending order.
func (b *Bag) IDs() []int {
	ids := make([]int, 0, len(b.counts))
	for id := range b.counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
