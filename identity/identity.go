// Package identity serializes and parses the composite key that the
// directory engine uses as the logical name of a session. The engine never
// inspects a key's fields; it only needs Save/Load and a stable String().
package identity

import "errors"

// ErrInsufficientSpace is returned by Strategy.Save when the scratch buffer
// cannot hold the serialized key at the requested offset.
var ErrInsufficientSpace = errors.New("identity: insufficient space")

// ErrMalformed is returned by Strategy.Load when the tail bytes do not
// decode into a well-formed key.
var ErrMalformed = errors.New("identity: malformed key")

// Key is the minimal capability a composite identity key must offer.
type Key interface {
	String() string
}

// Strategy serializes and parses the composite-key schema used by a
// particular deployment. It is injected into the engine so the engine never
// needs to know the customer-specific identity layout.
type Strategy interface {
	// Save writes key into scratch starting at offset and returns the
	// number of bytes written, or ErrInsufficientSpace if it does not fit.
	Save(key Key, scratch []byte, offset int) (int, error)

	// Load parses a key from buf[offset : offset+length]. It returns
	// ErrMalformed (wrapped) if the tail is not well-formed.
	Load(buf []byte, offset, length int) (Key, error)
}
