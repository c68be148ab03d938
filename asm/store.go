package asm

import (
	"fmt"

	"github.com/npillmayer/ostools/errs"
)

// Item is anything which can be emitted as assembly source text.
type Item interface {
	fmt.Stringer
}

// Store is an ordered sequence of items. Insertion order is emission order.
// The zero value is an empty store ready to use.
type Store struct {
	items []Item
}

// Add appends item. A nil item fails with a capability error and leaves
// the store unchanged.
func (s *Store) Add(item Item) error {
	if item == nil {
		return errs.New(errs.KindCapability, "asm.Store.Add", "nil item cannot be rendered")
	}
	s.items = append(s.items, item)
	return nil
}

// Clear removes all items.
func (s *Store) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}

// Items returns the items in emission order. The slice is a copy.
func (s *Store) Items() []Item {
	r := make([]Item, len(s.items))
	copy(r, s.items)
	return r
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// lines renders every item.
func (s *Store) lines() []string {
	r := make([]string, len(s.items))
	for i, item := range s.items {
		r[i] = item.String()
	}
	return r
}
