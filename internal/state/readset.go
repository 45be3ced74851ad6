package state

import (
	"maps"
	"slices"
)

// ReadSet is the set of story log ids a player has discovered.
type ReadSet map[uint32]struct{}

// NewReadSet builds a set from ids, dropping duplicates.
func NewReadSet(ids ...uint32) ReadSet {
	s := make(ReadSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s ReadSet) Add(id uint32) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Has reports whether id is in the set.
func (s ReadSet) Has(id uint32) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of ids.
func (s ReadSet) Len() int {
	return len(s)
}

// IDs returns the ids in ascending order.
func (s ReadSet) IDs() []uint32 {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy.
func (s ReadSet) Clone() ReadSet {
	if s == nil {
		return ReadSet{}
	}
	return maps.Clone(s)
}
