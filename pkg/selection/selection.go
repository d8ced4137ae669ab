// Package selection tracks which tasks are marked for bulk actions.
//
// The set is independent of the task store: it never checks that an ID
// still exists, so callers that delete tasks decide when to call Retain.
package selection

import (
	"slices"
	"sync"
)

// Set is an insertion-ordered set of task IDs.
type Set struct {
	mu  sync.RWMutex
	ids []string
}

// New returns an empty Set.
func New() *Set {
	return &Set{}
}

// Toggle adds id when absent and removes it when present.
func (s *Set) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return
	}
	s.ids = append(s.ids, id)
}

// Clear empties the set.
func (s *Set) Clear() {
	s.mu.Lock()
	s.ids = nil
	s.mu.Unlock()
}

// Contains reports whether id is selected.
func (s *Set) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// IDs returns the selected IDs in the order they were selected.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Len returns the number of selected IDs.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// SelectAll toggles in every id that is not already selected.
func (s *Set) SelectAll(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		if !slices.Contains(s.ids, id) {
			s.ids = append(s.ids, id)
		}
	}
}

// Retain drops selected IDs that are not in live.
func (s *Set) Retain(live []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = slices.DeleteFunc(s.ids, func(id string) bool {
		return !slices.Contains(live, id)
	})
}
