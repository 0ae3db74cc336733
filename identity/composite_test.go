package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompositeStrategyRoundTrip(t *testing.T) {
	key := CompositeKey{
		BeginString:      "FIX.4.4",
		SenderCompID:     "SENDER",
		TargetCompID:     "TARGET",
		SessionQualifier: "Q1",
	}

	s := NewCompositeStrategy()
	scratch := make([]byte, 256)

	n, err := s.Save(key, scratch, 0)
	assert.Nil(t, err)

	got, err := s.Load(scratch, 0, n)
	assert.Nil(t, err)

	gotKey, ok := got.(CompositeKey)
	assert.True(t, ok)
	assert.Equal(t, key, gotKey)
}

func TestCompositeStrategySavePointer(t *testing.T) {
	key := &CompositeKey{BeginString: "FIX.4.2", SenderCompID: "A", TargetCompID: "B"}
	s := NewCompositeStrategy()
	scratch := make([]byte, 256)

	n, err := s.Save(key, scratch, 0)
	assert.Nil(t, err)
	assert.NotZero(t, n)
}

func TestCompositeStrategySaveInsufficientSpace(t *testing.T) {
	key := CompositeKey{BeginString: "FIX.4.4", SenderCompID: "SENDER", TargetCompID: "TARGET"}
	s := NewCompositeStrategy()
	scratch := make([]byte, 4)

	_, err := s.Save(key, scratch, 0)
	assert.Equal(t, ErrInsufficientSpace, err)
}

func TestCompositeStrategyLoadMalformed(t *testing.T) {
	s := NewCompositeStrategy()
	buf := []byte{0x00, 0x05} // claims a 5-byte field but supplies no bytes

	_, err := s.Load(buf, 0, len(buf))
	assert.Equal(t, ErrMalformed, err)
}

func TestCompositeStrategySaveWrongType(t *testing.T) {
	s := NewCompositeStrategy()
	scratch := make([]byte, 64)

	_, err := s.Save(wrapKey{}, scratch, 0)
	assert.Equal(t, ErrMalformed, err)
}

type wrapKey struct{}

func (wrapKey) String() string { return "wrap" }
