package migrator

import "strings"

// Set is a collection of unique migration identifiers that remembers the
// order in which they were first added. Enumeration follows that order so
// reports match the order the database returned its rows in.
//
// A nil *Set behaves as an empty set for every read operation.
type Set struct {
	ids   []ID
	index map[ID]struct{}
}

// NewSet creates a set containing ids, in order, without duplicates.
func NewSet(ids ...ID) *Set {
	s := &Set{index: make(map[ID]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}

	return s
}

// Add appends id unless it is already present.
func (s *Set) Add(id ID) {
	if s.index == nil {
		s.index = make(map[ID]struct{})
	}

	if _, ok := s.index[id]; ok {
		return
	}

	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
}

// Contains reports whether id is in the set.
func (s *Set) Contains(id ID) bool {
	if s == nil {
		return false
	}

	_, ok := s.index[id]
	return ok
}

// Len returns the number of identifiers in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.ids)
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	return s.Len() == 0
}

// IDs returns a copy of the members in insertion order.
func (s *Set) IDs() []ID {
	if s == nil {
		return []ID{}
	}

	out := make([]ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Strings returns the members as plain strings in insertion order.
func (s *Set) Strings() []string {
	ids := s.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}

	return out
}

// Union returns a new set with the members of s followed by any members of
// other that s does not already contain.
func (s *Set) Union(other *Set) *Set {
	out := NewSet(s.IDs()...)
	for _, id := range other.IDs() {
		out.Add(id)
	}

	return out
}

// Difference returns a new set with the members of s that appear in none of
// others, keeping the order of s.
func (s *Set) Difference(others ...*Set) *Set {
	out := NewSet()

outer:
	for _, id := range s.IDs() {
		for _, other := range others {
			if other.Contains(id) {
				continue outer
			}
		}

		out.Add(id)
	}

	return out
}

// Equal reports whether both sets have the same members, ignoring order.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}

	for _, id := range s.IDs() {
		if !other.Contains(id) {
			return false
		}
	}

	return true
}

// String joins the members with ", ".
func (s *Set) String() string {
	return strings.Join(s.Strings(), ", ")
}
