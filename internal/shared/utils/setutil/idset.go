// Package setutil collects entity ids for batched lookups.
package setutil

import "slices"

// IDSet is a set of entity ids. The zero value is not usable; use NewIDSet.
type IDSet struct {
	items map[uint]struct{}
}

func NewIDSet() *IDSet {
	return &IDSet{items: make(map[uint]struct{})}
}

// Add inserts ids. A zero id is never a stored row and is skipped.
func (s *IDSet) Add(ids ...uint) {
	for _, id := range ids {
		if id != 0 {
			s.items[id] = struct{}{}
		}
	}
}

// AddRef inserts the id behind a nullable foreign key, if set.
func (s *IDSet) AddRef(id *uint) {
	if id != nil {
		s.Add(*id)
	}
}

func (s *IDSet) Has(id uint) bool {
	_, ok := s.items[id]
	return ok
}

// Sorted returns the ids in ascending order, so the same set always yields
// the same `in` filter.
func (s *IDSet) Sorted() []uint {
	out := make([]uint, 0, len(s.items))
	for id := range s.items {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
