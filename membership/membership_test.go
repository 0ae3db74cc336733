package membership

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nadia-Adaptive/sessiondir/record"
)

func TestSetAddContainsRemove(t *testing.T) {
	s := NewSet()

	assert.True(t, s.Add(1))
	assert.False(t, s.Add(1))
	assert.True(t, s.Contains(1))
	assert.Equal(t, 1, s.Len())

	s.Remove(1)
	assert.False(t, s.Contains(1))
	s.Remove(1) // no-op, must not panic
}

func TestSetClear(t *testing.T) {
	s := NewSet()
	s.Add(1)
	s.Add(2)
	s.Clear()
	assert.Zero(t, s.Len())
}

func TestSetConcurrentAccess(t *testing.T) {
	s := NewSet()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id record.SessionID) {
			defer wg.Done()
			s.Add(id)
			s.Contains(id)
			s.Remove(id)
		}(record.SessionID(i))
	}
	wg.Wait()
}

func TestSnapshotAppendAndAll(t *testing.T) {
	snap := NewSnapshot()
	assert.Empty(t, snap.All())

	snap.Append(record.Info{SessionID: 1, CompositeKey: "a"})
	snap.Append(record.Info{SessionID: 2, CompositeKey: "b"})

	all := snap.All()
	assert.Len(t, all, 2)
	assert.Equal(t, record.SessionID(1), all[0].SessionID)
	assert.Equal(t, record.SessionID(2), all[1].SessionID)
}

func TestSnapshotReplace(t *testing.T) {
	snap := NewSnapshot()
	snap.Append(record.Info{SessionID: 1})

	snap.Replace([]record.Info{{SessionID: 9}})

	all := snap.All()
	assert.Len(t, all, 1)
	assert.Equal(t, record.SessionID(9), all[0].SessionID)

	snap.Replace(nil)
	assert.Empty(t, snap.All())
}

func TestSnapshotAppendDoesNotMutatePreviousSlice(t *testing.T) {
	snap := NewSnapshot()
	snap.Append(record.Info{SessionID: 1})
	first := snap.All()

	snap.Append(record.Info{SessionID: 2})

	assert.Len(t, first, 1)
}
