package codec

import (
	"encoding/binary"
	"io"

	"github.com/Nadia-Adaptive/sessiondir/record"
)

/*
default codec layout:

	session_id(8) | sequence_index(4) | logon_time(8) | last_sequence_reset_time(8) |
	composite_key_length(2) | dictionary_name_length(2) | dictionary_name

all integers big-endian; dictionary_name is ASCII.
*/

const (
	defaultSchemaID      uint16 = 1
	defaultTemplateID    uint16 = 1
	defaultSchemaVersion uint16 = 1
)

// BinaryCodec is the default Codec implementation.
type BinaryCodec struct{}

// NewBinaryCodec returns the default record codec.
func NewBinaryCodec() *BinaryCodec {
	return &BinaryCodec{}
}

func (c *BinaryCodec) BlockLength() int       { return record.BlockLength }
func (c *BinaryCodec) SchemaID() uint16       { return defaultSchemaID }
func (c *BinaryCodec) TemplateID() uint16     { return defaultTemplateID }
func (c *BinaryCodec) SchemaVersion() uint16  { return defaultSchemaVersion }

func (c *BinaryCodec) EncodeAt(buf []byte, offset int, f record.Fields) (int, error) {
	need := record.BlockLength + 2 + len(f.DictionaryName)
	if offset+need > len(buf) {
		return 0, io.ErrShortBuffer
	}

	p := offset
	binary.BigEndian.PutUint64(buf[p:], uint64(f.SessionID))
	p += 8
	binary.BigEndian.PutUint32(buf[p:], uint32(f.SequenceIndex))
	p += 4
	binary.BigEndian.PutUint64(buf[p:], uint64(f.LogonTime))
	p += 8
	binary.BigEndian.PutUint64(buf[p:], uint64(f.LastSequenceResetTime))
	p += 8
	binary.BigEndian.PutUint16(buf[p:], f.CompositeKeyLength)
	p += 2

	binary.BigEndian.PutUint16(buf[p:], uint16(len(f.DictionaryName)))
	p += 2
	copy(buf[p:], f.DictionaryName)
	p += len(f.DictionaryName)

	return p - offset, nil
}

func (c *BinaryCodec) DecodeAt(buf []byte, offset, actingBlockLength int, actingVersion uint16) (record.Fields, int, error) {
	var f record.Fields

	if offset+actingBlockLength > len(buf) {
		return f, 0, io.ErrUnexpectedEOF
	}

	p := offset
	f.SessionID = record.SessionID(binary.BigEndian.Uint64(buf[p:]))
	p += 8

	// An all-zero slot decodes to SessionID == 0 and nothing else is read,
	// matching the empty-slot contract regardless of acting block length.
	if f.SessionID == 0 {
		return f, actingBlockLength, nil
	}

	f.SequenceIndex = int32(binary.BigEndian.Uint32(buf[p:]))
	p += 4
	f.LogonTime = int64(binary.BigEndian.Uint64(buf[p:]))
	p += 8
	f.LastSequenceResetTime = int64(binary.BigEndian.Uint64(buf[p:]))
	p += 8
	f.CompositeKeyLength = binary.BigEndian.Uint16(buf[p:])
	p += 2

	if p+2 > len(buf) {
		return f, 0, io.ErrUnexpectedEOF
	}
	nameLen := int(binary.BigEndian.Uint16(buf[p:]))
	p += 2
	if p+nameLen > len(buf) {
		return f, 0, io.ErrUnexpectedEOF
	}
	f.DictionaryName = string(buf[p : p+nameLen])
	p += nameLen

	return f, p - offset, nil
}

var _ Codec = (*BinaryCodec)(nil)
