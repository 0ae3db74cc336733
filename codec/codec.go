// Package codec encodes and decodes one record's fixed prefix plus its
// variable-length dictionary-name tail. The composite key blob that follows
// on disk is opaque to the codec; the engine copies it in separately via the
// identity strategy.
package codec

import "github.com/Nadia-Adaptive/sessiondir/record"

// Codec is the injected record codec (component C2). The engine treats it
// as opaque: it only requires that DecodeAt reading an all-zero region
// yields Fields.SessionID == 0, the empty-slot sentinel.
type Codec interface {
	BlockLength() int
	SchemaID() uint16
	TemplateID() uint16
	SchemaVersion() uint16

	// EncodeAt writes f's prefix and dictionary name at buf[offset:] and
	// returns the number of bytes written.
	EncodeAt(buf []byte, offset int, f record.Fields) (int, error)

	// DecodeAt reads a prefix and dictionary name from buf[offset:] and
	// returns the decoded fields plus the number of bytes consumed.
	DecodeAt(buf []byte, offset, actingBlockLength int, actingVersion uint16) (record.Fields, int, error)
}
