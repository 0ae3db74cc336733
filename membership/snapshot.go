package membership

import (
	"sync/atomic"

	"github.com/Nadia-Adaptive/sessiondir/record"
)

// Snapshot publishes a copy-on-write view of every known session. The owner
// goroutine appends to it as new sessions are created; any goroutine may
// call All concurrently without locking, the same atomic.Value
// swap-the-whole-value pattern the pack's slog-backed logger uses to let
// readers observe a live-reconfigured output format lock-free.
type Snapshot struct {
	value atomic.Value // holds []record.Info
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.value.Store([]record.Info{})
	return s
}

// All returns the current published slice. The caller must treat it as
// read-only; mutating it would not be observed by other readers but would
// violate the copy-on-write contract.
func (s *Snapshot) All() []record.Info {
	return s.value.Load().([]record.Info)
}

// Append publishes a new slice containing the previous contents plus info.
// Only the owner goroutine calls this.
func (s *Snapshot) Append(info record.Info) {
	prev := s.All()
	next := make([]record.Info, len(prev)+1)
	copy(next, prev)
	next[len(prev)] = info
	s.value.Store(next)
}

// Replace publishes infos wholesale, discarding any prior contents. Used by
// Engine.Load (initial publish) and Engine.Reset (clearing to empty).
func (s *Snapshot) Replace(infos []record.Info) {
	cp := make([]record.Info, len(infos))
	copy(cp, infos)
	s.value.Store(cp)
}
