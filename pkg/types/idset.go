package types

import "sort"

// IDSet is an unordered set of entity IDs. The zero value is not usable;
// construct with NewIDSet or Clone. Mutating methods are idempotent.
type IDSet map[string]bool

// NewIDSet returns a set containing the given IDs.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// Add inserts id into the set. Adding a member already present is a no-op.
func (s IDSet) Add(id string) {
	s[id] = true
}

// Remove deletes id from the set. Removing a non-member is a no-op.
func (s IDSet) Remove(id string) {
	delete(s, id)
}

// Has reports whether id is a member.
func (s IDSet) Has(id string) bool {
	return s[id]
}

// Len returns the number of members.
func (s IDSet) Len() int {
	return len(s)
}

// Values returns the members in sorted order. Returns an empty slice
// (not nil) for an empty set, so callers can marshal it directly.
func (s IDSet) Values() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = true
	}
	return out
}

// Union returns a new set containing the members of s and other.
func (s IDSet) Union(other IDSet) IDSet {
	out := s.Clone()
	for id := range other {
		out[id] = true
	}
	return out
}
