package index

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrEmptyID is returned for an empty identifier.
	ErrEmptyID = errors.New("empty identifier")

	// ErrDuplicateID is returned when an identifier occurs twice.
	ErrDuplicateID = errors.New("duplicate identifier")
)

// Space is an ordered identifier space. The identifiers are fixed at
// construction. The active set is published copy-on-write, so readers never
// block and see either the set before or after a concurrent Exclude.
type Space struct {
	ids []string
	pos map[string]int

	mu     sync.Mutex // serialises writers
	active atomic.Pointer[bitset.BitSet]
}

// New builds a Space over ids with every position active.
func New(ids []string) (*Space, error) {
	s := &Space{
		ids: append([]string(nil), ids...),
		pos: make(map[string]int, len(ids)),
	}
	active := bitset.New(uint(len(ids)))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w at position %d", ErrEmptyID, i)
		}
		if prev, ok := s.pos[id]; ok {
			return nil, fmt.Errorf("%w %q at positions %d and %d", ErrDuplicateID, id, prev, i)
		}
		s.pos[id] = i
		active.Set(uint(i))
	}
	s.active.Store(active)
	return s, nil
}

// Len returns the number of identifiers.
func (s *Space) Len() int { return len(s.ids) }

// Index returns the position of id.
func (s *Space) Index(id string) (int, bool) {
	i, ok := s.pos[id]
	return i, ok
}

// ID returns the identifier at position i.
func (s *Space) ID(i int) string { return s.ids[i] }

// IDs returns all identifiers in order. The result must not be modified.
func (s *Space) IDs() []string { return s.ids }

// Resolve maps ids to positions. Unknown identifiers are returned separately
// in input order and do not produce a position.
func (s *Space) Resolve(ids []string) (positions []int, unknown []string) {
	positions = make([]int, 0, len(ids))
	for _, id := range ids {
		if i, ok := s.pos[id]; ok {
			positions = append(positions, i)
		} else {
			unknown = append(unknown, id)
		}
	}
	return positions, unknown
}

// Exclude deactivates ids and returns those that are unknown.
func (s *Space) Exclude(ids []string) (unknown []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.active.Load().Clone()
	for _, id := range ids {
		if i, ok := s.pos[id]; ok {
			next.Clear(uint(i))
		} else {
			unknown = append(unknown, id)
		}
	}
	s.active.Store(next)
	return unknown
}

// IsActive reports whether position i is active.
func (s *Space) IsActive(i int) bool {
	return i >= 0 && s.active.Load().Test(uint(i))
}

// ActiveCount returns the number of active positions.
func (s *Space) ActiveCount() int {
	return int(s.active.Load().Count())
}

// Active returns the active positions in ascending order.
func (s *Space) Active() []int {
	set := s.active.Load()
	out := make([]int, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
