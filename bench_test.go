package sessiondir

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nadia-Adaptive/sessiondir/errsink"
	"github.com/Nadia-Adaptive/sessiondir/identity"
	"github.com/Nadia-Adaptive/sessiondir/record"
	"github.com/Nadia-Adaptive/sessiondir/region"
)

func newBenchEngine(b *testing.B) *Engine {
	b.Helper()
	e, err := New(region.NewHeap(64<<20), identity.NewCompositeStrategy(), record.UnknownSequenceIndex, errsink.NopSink{})
	assert.Nil(b, err)
	assert.Nil(b, e.Load())
	return e
}

// Benchmark_OnLogon measures the cost of assigning and persisting a fresh
// session identity for each distinct counterparty.
func Benchmark_OnLogon(b *testing.B) {
	e := newBenchEngine(b)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		key := identity.CompositeKey{BeginString: "FIX.4.4", SenderCompID: "S" + strconv.Itoa(i), TargetCompID: "GATEWAY"}
		_, err := e.OnLogon(key, "FIX44")
		assert.Nil(b, err)
	}
}

// Benchmark_SequenceReset measures the cost of rewriting the mutable prefix
// of an already-persisted record in place.
func Benchmark_SequenceReset(b *testing.B) {
	e := newBenchEngine(b)

	key := identity.CompositeKey{BeginString: "FIX.4.4", SenderCompID: "ALICE", TargetCompID: "GATEWAY"}
	outcome, err := e.OnLogon(key, "FIX44")
	assert.Nil(b, err)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		e.SequenceReset(outcome.Context.SessionID, int64(i))
	}
}
