package model

import (
	"fmt"
	"sync"
)

// BinarySet is an insertion-ordered set of binaries keyed by name. The zero
// value is ready to use.
type BinarySet struct {
	mu    sync.RWMutex
	order []Binary
	index map[string]int
}

// Add appends b. Adding a second binary with the same name is an error.
func (s *BinarySet) Add(b Binary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, exists := s.index[b.Name()]; exists {
		return fmt.Errorf("binary %q is already owned", b.Name())
	}
	s.index[b.Name()] = len(s.order)
	s.order = append(s.order, b)
	return nil
}

// Remove drops the binary named name, keeping the order of the rest.
// It reports whether anything was removed.
func (s *BinarySet) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[name]
	if !ok {
		return false
	}
	s.order = append(s.order[:i], s.order[i+1:]...)
	delete(s.index, name)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j].Name()] = j
	}
	return true
}

// Get returns the binary named name.
func (s *BinarySet) Get(name string) (Binary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.order[i], true
}

// All returns the binaries in insertion order.
func (s *BinarySet) All() []Binary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Binary, len(s.order))
	copy(out, s.order)
	return out
}

// Names returns the binary names in insertion order.
func (s *BinarySet) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	for i, b := range s.order {
		out[i] = b.Name()
	}
	return out
}

// Len is the number of owned binaries.
func (s *BinarySet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
