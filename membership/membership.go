// Package membership holds the concurrently-readable state the directory
// engine exposes to callers other than its owner goroutine: which session
// ids are currently authenticated, and a point-in-time view of every known
// session.
package membership

import (
	"sync"

	"github.com/Nadia-Adaptive/sessiondir/record"
)

// Set is the "authenticated" membership set. Mutations happen only on the
// owner goroutine; reads may come from any goroutine.
//
// Be cautious: the lock must be held before any mutation, mirroring the
// discipline the teacher's keydir.BTree documents for its own tree.
type Set struct {
	mu  sync.RWMutex
	ids map[record.SessionID]struct{}
}

// NewSet returns an empty authenticated-session set.
func NewSet() *Set {
	return &Set{ids: make(map[record.SessionID]struct{})}
}

// Add inserts id and reports whether it was not already present.
func (s *Set) Add(id record.SessionID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Remove deletes id. It is a no-op if id was not present.
func (s *Set) Remove(id record.SessionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Contains reports whether id is currently authenticated.
func (s *Set) Contains(id record.SessionID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of currently authenticated ids.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Clear removes every id. Callers must ensure this only happens when it is
// safe to do so (the engine only calls it from Reset, which requires the
// set to already be empty).
func (s *Set) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[record.SessionID]struct{})
}
