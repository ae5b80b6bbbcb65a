package party

import (
	"errors"
	"sort"
)

// Set holds a set of participant IDs that can be queried in various ways.
// Where IDSlice fixes an order (needed for deterministic hashing and
// Lagrange interpolation), Set is for membership tests against a registry,
// such as checking a round's signer set against the session's participants.
type Set struct {
	set   map[ID]bool
	slice []ID
}

// NewSet builds a Set from ids. It returns an error if ids contains the
// zero ID or duplicates.
func NewSet(ids []ID) (*Set, error) {
	s := &Set{
		set:   make(map[ID]bool, len(ids)),
		slice: make([]ID, 0, len(ids)),
	}
	for _, id := range ids {
		if id == 0 {
			return nil, errors.New("party: IDs cannot be 0")
		}
		if s.set[id] {
			return nil, errors.New("party: duplicate ID in set")
		}
		s.set[id] = true
		s.slice = append(s.slice, id)
	}
	sort.Slice(s.slice, func(i, j int) bool { return s.slice[i] < s.slice[j] })
	return s, nil
}

// Contains reports whether every id in ids is a member of the set.
func (s *Set) Contains(ids ...ID) bool {
	for _, id := range ids {
		if !s.set[id] {
			return false
		}
	}
	return true
}

// Sorted returns the sorted members of the set. The returned slice must not
// be modified.
func (s *Set) Sorted() IDSlice {
	return IDSlice(s.slice)
}

// N returns the number of members in the set.
func (s *Set) N() int {
	return len(s.set)
}

// Equal reports whether s and other contain exactly the same IDs.
func (s *Set) Equal(other *Set) bool {
	if len(s.set) != len(other.set) {
		return false
	}
	for id := range s.set {
		if !other.set[id] {
			return false
		}
	}
	return true
}

// IsSubsetOf reports whether every member of s also belongs to other.
func (s *Set) IsSubsetOf(other *Set) bool {
	return other.Contains(s.slice...)
}

// Range returns the internal membership map for iteration. The returned map
// must not be modified.
func (s *Set) Range() map[ID]bool {
	return s.set
}
