package identity

import (
	"encoding/binary"
	"strings"
)

// CompositeKey is the default Key implementation: the four-part tuple a
// financial-messaging gateway typically uses to name a counterparty session
// (protocol version, sender, target, and an optional qualifier for shared
// sender/target pairs).
type CompositeKey struct {
	BeginString      string
	SenderCompID     string
	TargetCompID     string
	SessionQualifier string
}

// String returns a stable, delimiter-joined form suitable as a map key.
func (k CompositeKey) String() string {
	return strings.Join([]string{k.BeginString, k.SenderCompID, k.TargetCompID, k.SessionQualifier}, "\x00")
}

// CompositeStrategy is the default Strategy: it serializes a CompositeKey as
// four length-prefixed (uint16) ASCII fields back to back.
type CompositeStrategy struct{}

// NewCompositeStrategy returns the default composite-key strategy.
func NewCompositeStrategy() *CompositeStrategy {
	return &CompositeStrategy{}
}

func (s *CompositeStrategy) Save(key Key, scratch []byte, offset int) (int, error) {
	ck, ok := key.(CompositeKey)
	if !ok {
		if ptr, ok2 := key.(*CompositeKey); ok2 {
			ck = *ptr
		} else {
			return 0, ErrMalformed
		}
	}

	fields := [4]string{ck.BeginString, ck.SenderCompID, ck.TargetCompID, ck.SessionQualifier}

	n := 0
	for _, f := range fields {
		need := 2 + len(f)
		if offset+n+need > len(scratch) {
			return 0, ErrInsufficientSpace
		}
		binary.BigEndian.PutUint16(scratch[offset+n:], uint16(len(f)))
		n += 2
		copy(scratch[offset+n:], f)
		n += len(f)
	}
	return n, nil
}

func (s *CompositeStrategy) Load(buf []byte, offset, length int) (Key, error) {
	end := offset + length
	pos := offset

	var fields [4]string
	for i := range fields {
		if pos+2 > end {
			return nil, ErrMalformed
		}
		l := int(binary.BigEndian.Uint16(buf[pos:]))
		pos += 2
		if pos+l > end {
			return nil, ErrMalformed
		}
		fields[i] = string(buf[pos : pos+l])
		pos += l
	}

	return CompositeKey{
		BeginString:      fields[0],
		SenderCompID:     fields[1],
		TargetCompID:     fields[2],
		SessionQualifier: fields[3],
	}, nil
}

var _ Strategy = (*CompositeStrategy)(nil)
