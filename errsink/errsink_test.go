package errsink

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlogSinkReportsCorruptSectorAtWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sink := NewSlogSink(logger)

	sink.Report(Event{Kind: CorruptSector, Detail: "sector at 4096"})

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "corrupt_sector")
}

func TestSlogSinkReportsOutOfSpaceAtError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sink := NewSlogSink(logger)

	sink.Report(Event{Kind: OutOfSpaceKind, Err: errors.New("no room"), Detail: "new record"})

	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestSlogSinkFallsBackToDefault(t *testing.T) {
	sink := NewSlogSink(nil)
	assert.NotPanics(t, func() {
		sink.Report(Event{Kind: MalformedRecord, Detail: "bad key"})
	})
}

func TestNopSinkDiscards(t *testing.T) {
	var sink NopSink
	assert.NotPanics(t, func() {
		sink.Report(Event{Kind: CorruptSector})
	})
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		CorruptSector:   "corrupt_sector",
		MalformedRecord: "malformed_record",
		OutOfSpaceKind:  "out_of_space",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}
