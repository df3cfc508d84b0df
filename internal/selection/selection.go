// Package selection keeps the highlighted elements of every board, per interaction mode.
package selection

import (
	"sync"

	"seqview/internal/feature"
)

// Mode is the interaction that produced a selection.
type Mode int

const (
	Select Mode = iota
	Hover
)

func (m Mode) String() string {
	if m == Hover {
		return "hover"
	}
	return "select"
}

// Op is how a new entry combines with the current set.
type Op int

const (
	Set Op = iota
	Add
	ReplaceLast
)

// Entry is a selected element and the board that selected it.
type Entry struct {
	Element feature.Element
	OwnerID string
}

// Store holds ordered selection sets. Components change selection only through its methods.
type Store struct {
	mu      sync.RWMutex
	entries map[Mode][]Entry
	// replaceable tracks whether the last entry of a mode came from Add/ReplaceLast.
	replaceable map[Mode]bool
}

func NewStore() *Store {
	return &Store{
		entries:     make(map[Mode][]Entry),
		replaceable: make(map[Mode]bool),
	}
}

// SetSelected replaces the whole set for mode.
func (s *Store) SetSelected(mode Mode, entries ...Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[mode] = append([]Entry(nil), entries...)
	s.replaceable[mode] = false
}

// AddSelected appends e, or swaps the entry added last when replaceLast is set and
// that entry was itself added incrementally.
func (s *Store) AddSelected(mode Mode, e Entry, replaceLast bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.entries[mode]
	if replaceLast && s.replaceable[mode] && len(cur) > 0 {
		cur[len(cur)-1] = e
	} else {
		cur = append(cur, e)
	}
	s.entries[mode] = cur
	s.replaceable[mode] = true
}

// Apply dispatches to SetSelected or AddSelected.
func (s *Store) Apply(mode Mode, op Op, e Entry) {
	switch op {
	case Add:
		s.AddSelected(mode, e, false)
	case ReplaceLast:
		s.AddSelected(mode, e, true)
	default:
		s.SetSelected(mode, e)
	}
}

// ClearSelection empties the set for mode.
func (s *Store) ClearSelection(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, mode)
	s.replaceable[mode] = false
}

// GetSelected returns a copy of the set for mode in insertion order.
func (s *Store) GetSelected(mode Mode) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry(nil), s.entries[mode]...)
}

// Elements returns the selected elements for mode in insertion order.
func (s *Store) Elements(mode Mode) []feature.Element {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cur := s.entries[mode]
	if len(cur) == 0 {
		return nil
	}
	out := make([]feature.Element, len(cur))
	for i, e := range cur {
		out[i] = e.Element
	}
	return out
}

// Len returns the number of entries for mode.
func (s *Store) Len(mode Mode) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[mode])
}
