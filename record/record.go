// Package record defines the on-disk record layout and the in-memory
// SessionContext that the directory engine keeps for every session id it has
// ever assigned.
package record

import "math"

// SessionID names a counterparty session permanently across restarts.
//
// Real persisted ids are >= LowestValidSessionID. The negative values below
// are in-memory sentinels only; they are never written to disk.
type SessionID int64

const (
	// UnknownSessionID is returned by lookups that find nothing.
	UnknownSessionID SessionID = -1
	// LowestValidSessionID is the first id ever assigned.
	LowestValidSessionID SessionID = 1
)

const (
	// UnknownSequenceIndex marks a sequence_index that was never observed.
	UnknownSequenceIndex int32 = -1
	// UnknownTime marks a logon_time / last_sequence_reset_time that was
	// never observed. Chosen to be unreachable by any real wall-clock value.
	UnknownTime int64 = math.MinInt64
	// OutOfSpace marks a SessionContext that could not be persisted.
	OutOfSpace int = -1
)

// BlockLength is the size, in bytes, of the record's fixed prefix:
// session_id(8) + sequence_index(4) + logon_time(8) + last_sequence_reset_time(8)
// + composite_key_length(2).
const BlockLength = 8 + 4 + 8 + 8 + 2

// Fields is the wire-level shape of one record's prefix plus its variable
// dictionary-name tail. The composite key blob that follows it on disk is
// opaque to the codec and is copied in by the engine separately.
type Fields struct {
	SessionID             SessionID
	SequenceIndex         int32
	LogonTime             int64
	LastSequenceResetTime int64
	CompositeKeyLength    uint16
	DictionaryName        string
}

// Context is the in-memory record of one assigned session id. It holds only
// a relation into the file (FilePosition), never a pointer back to the
// engine that owns it.
type Context struct {
	CompositeKey          Key
	SessionID             SessionID
	SequenceIndex         int32
	LastLogonTime         int64
	LastSequenceResetTime int64
	FilePosition          int
	Dictionary            string
}

// Key is the minimal capability a composite identity key must offer: a
// stable, comparable string form usable as a map key.
type Key interface {
	String() string
}

// Info is an immutable, read-only view of a Context handed out by
// Engine.AllSessions. It carries no pointer into engine-owned state.
type Info struct {
	CompositeKey          string
	SessionID             SessionID
	SequenceIndex         int32
	LastLogonTime         int64
	LastSequenceResetTime int64
	Dictionary            string
}

// Snapshot copies a Context into a caller-safe Info value.
func (c *Context) Snapshot() Info {
	return Info{
		CompositeKey:          c.CompositeKey.String(),
		SessionID:             c.SessionID,
		SequenceIndex:         c.SequenceIndex,
		LastLogonTime:         c.LastLogonTime,
		LastSequenceResetTime: c.LastSequenceResetTime,
		Dictionary:            c.Dictionary,
	}
}

// Persisted reports whether the context has a backing record on disk.
func (c *Context) Persisted() bool {
	return c.FilePosition != OutOfSpace
}
