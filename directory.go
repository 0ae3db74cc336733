// Package sessiondir implements the persistent session-identity directory
// of a financial-messaging gateway (component C5, the Directory Engine). It
// assigns a stable numeric identity to every counterparty session ever
// seen, tracks which identities are currently authenticated, and persists
// the assignment table to a sector-framed, checksum-protected memory-mapped
// file that tolerates partial writes and crash recovery.
//
// Session protocol state machines, the wire codec, and the composite-key
// schema are external collaborators injected at construction time; the
// engine never decodes a wire message or inspects a key's fields.
package sessiondir

import (
	"fmt"
	"sync"

	"github.com/google/btree"

	"github.com/Nadia-Adaptive/sessiondir/checksum"
	"github.com/Nadia-Adaptive/sessiondir/codec"
	"github.com/Nadia-Adaptive/sessiondir/errsink"
	"github.com/Nadia-Adaptive/sessiondir/identity"
	"github.com/Nadia-Adaptive/sessiondir/membership"
	"github.com/Nadia-Adaptive/sessiondir/record"
	"github.com/Nadia-Adaptive/sessiondir/region"
	"github.com/Nadia-Adaptive/sessiondir/sector"
)

const defaultSectorSize = sector.DefaultSize

// LogonOutcome is the tagged result of Engine.OnLogon, replacing the
// source's poisoned DUPLICATE_SESSION singleton: Context is always a
// well-formed SessionContext. Duplicate discriminates a logon that was
// rejected because the identity was already authenticated.
type LogonOutcome struct {
	Context   *record.Context
	Duplicate bool
}

// Engine is the persistent session-identity directory. All mutating
// methods are safe to call from multiple goroutines (an internal mutex
// serializes them), but the engine is designed around a single logical
// owner — the surrounding session layer — issuing one call at a time.
type Engine struct {
	mu sync.Mutex

	region   region.Region
	strategy identity.Strategy
	codec    codec.Codec
	framer   *sector.Framer
	sink     errsink.Sink

	// initialSequenceIndex is accepted at construction to match the
	// engine's external interface but is not consulted by any operation:
	// new_session_context always seeds UNKNOWN_SEQUENCE_INDEX regardless
	// of it, per spec.
	initialSequenceIndex int32
	counter              record.SessionID

	byKey map[string]*record.Context
	byID  *btree.BTree

	authenticated *membership.Set
	snapshot      *membership.Snapshot

	// nextPos is the byte offset immediately after the last successfully
	// persisted record. It is rebuilt by Load, advanced by
	// assignSessionID and set back to HeaderSize by Reset; nothing else may
	// mutate it.
	nextPos int

	scratch []byte
}

// New constructs an Engine over r, using strategy to serialize composite
// keys, and sink to report non-fatal recoverable conditions.
// initialSequenceIndex is stored but not used: new contexts always start
// with record.UnknownSequenceIndex. Callers must call Load before using the
// engine.
func New(r region.Region, strategy identity.Strategy, initialSequenceIndex int32, sink errsink.Sink, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.requireMappedRegion && !r.IsMemoryMapped() {
		return nil, ErrWrongBufferKind
	}
	if sink == nil {
		sink = errsink.NopSink{}
	}

	e := &Engine{
		region:               r,
		strategy:             strategy,
		codec:                o.codec,
		framer:               sector.New(o.sectorSize),
		sink:                 sink,
		initialSequenceIndex: initialSequenceIndex,
		counter:              record.LowestValidSessionID,
		byKey:                make(map[string]*record.Context),
		byID:                 newByIDIndex(),
		authenticated:        membership.NewSet(),
		snapshot:             membership.NewSnapshot(),
		nextPos:              HeaderSize,
		scratch:              make([]byte, o.sectorSize-sector.ChecksumSize),
	}

	return e, nil
}

// Close releases the engine's region.
func (e *Engine) Close() error {
	return e.region.Close()
}

// Load ensures the file header is present and rebuilds the in-memory index
// by walking every record in the file.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if headerIsZero(e.region) {
		writeHeader(e.region, e.codec.SchemaID(), e.codec.TemplateID(), uint16(e.codec.BlockLength()), e.codec.SchemaVersion())
		e.recomputeSectorChecksum(0)
		if err := e.region.Force(); err != nil {
			return fmt.Errorf("sessiondir: force initial header: %w", err)
		}
	}

	actingVersion := readHeaderSchemaVersion(e.region)
	actingBlockLength := readHeaderBlockLength(e.region)

	var infos []record.Info
	lastValidatedSector := -1
	pos := HeaderSize

	for pos+actingBlockLength <= e.region.Size()-sector.ChecksumSize {
		sectorStart := e.framer.SectorStart(pos)
		if sectorStart != lastValidatedSector {
			e.validateSector(sectorStart)
			lastValidatedSector = sectorStart
		}

		checksumOff := e.framer.ChecksumOffset(pos)
		if pos+actingBlockLength > checksumOff {
			// Not enough room left in this sector even for a prefix:
			// treat it as zero-padded tail and move to the next sector.
			next := sectorStart + e.framer.Size()
			if next+actingBlockLength > e.region.Size()-sector.ChecksumSize {
				break
			}
			pos = next
			continue
		}

		fields, n, err := e.codec.DecodeAt(e.region.Slice(pos, checksumOff-pos), 0, actingBlockLength, actingVersion)
		if err != nil {
			e.sink.Report(errsink.Event{Kind: errsink.MalformedRecord, Err: err, Detail: "decode record prefix"})
			break
		}

		if fields.SessionID == 0 {
			next := sectorStart + e.framer.Size()
			if next+actingBlockLength > e.region.Size()-sector.ChecksumSize {
				break
			}
			nextFields, _, nextErr := e.codec.DecodeAt(e.region.Slice(next, e.framer.ChecksumOffset(next)-next), 0, actingBlockLength, actingVersion)
			if nextErr != nil || nextFields.SessionID == 0 {
				break
			}
			pos = next
			continue
		}

		keyEnd := pos + n + int(fields.CompositeKeyLength)
		if keyEnd > checksumOff {
			e.sink.Report(errsink.Event{Kind: errsink.MalformedRecord, Detail: "composite key overruns sector"})
			break
		}

		key, err := e.strategy.Load(e.region.Slice(pos, keyEnd-pos), n, int(fields.CompositeKeyLength))
		if err != nil {
			e.sink.Report(errsink.Event{Kind: errsink.MalformedRecord, Err: err, Detail: "parse composite key"})
			break
		}

		ctx := &record.Context{
			CompositeKey:          key,
			SessionID:             fields.SessionID,
			SequenceIndex:         fields.SequenceIndex,
			LastLogonTime:         fields.LogonTime,
			LastSequenceResetTime: fields.LastSequenceResetTime,
			FilePosition:          pos,
			Dictionary:            fields.DictionaryName,
		}
		e.byKey[key.String()] = ctx
		byIDPut(e.byID, ctx)
		if ctx.SessionID+1 > e.counter {
			e.counter = ctx.SessionID + 1
		}
		infos = append(infos, ctx.Snapshot())

		pos = keyEnd
	}

	// pos now sits exactly at the first byte not occupied by a
	// successfully parsed record: the start of a zero-padded tail, a
	// discarded malformed tail, or the file's capacity limit.
	e.nextPos = pos

	e.snapshot.Replace(infos)
	return nil
}

// OnLogon looks up or creates a SessionContext for key, then attempts to
// mark it authenticated. If it is already authenticated, the logon is
// rejected (LogonOutcome.Duplicate == true) and the engine performs no
// further deduplication.
func (e *Engine) OnLogon(key identity.Key, dictionary string) (LogonOutcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, err := e.newSessionContextLocked(key, dictionary)
	if err != nil {
		return LogonOutcome{}, err
	}

	if !e.authenticated.Add(ctx.SessionID) {
		return LogonOutcome{Context: ctx, Duplicate: true}, nil
	}
	return LogonOutcome{Context: ctx, Duplicate: false}, nil
}

// NewSessionContext returns the existing context for key, or allocates and
// persists a fresh one. It does not touch the authenticated set.
func (e *Engine) NewSessionContext(key identity.Key, dictionary string) (*record.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.newSessionContextLocked(key, dictionary)
}

func (e *Engine) newSessionContextLocked(key identity.Key, dictionary string) (*record.Context, error) {
	if ctx, ok := e.byKey[key.String()]; ok {
		return ctx, nil
	}

	ctx := &record.Context{
		CompositeKey:          key,
		SessionID:             e.counter,
		SequenceIndex:         record.UnknownSequenceIndex,
		LastLogonTime:         record.UnknownTime,
		LastSequenceResetTime: record.UnknownTime,
		FilePosition:          record.OutOfSpace,
		Dictionary:            dictionary,
	}
	e.counter++

	e.assignSessionID(ctx)

	e.byKey[key.String()] = ctx
	byIDPut(e.byID, ctx)
	e.snapshot.Append(ctx.Snapshot())

	return ctx, nil
}

// assignSessionID persists a freshly allocated context. On any failure it
// reports the condition and leaves ctx unpersisted (FilePosition ==
// OutOfSpace) but otherwise usable in memory, per spec §7.
func (e *Engine) assignSessionID(ctx *record.Context) {
	n, err := e.strategy.Save(ctx.CompositeKey, e.scratch, 0)
	if err != nil {
		e.sink.Report(errsink.Event{Kind: errsink.OutOfSpaceKind, Err: err, Detail: "serialize composite key"})
		return
	}
	keyBytes := make([]byte, n)
	copy(keyBytes, e.scratch[:n])

	fields := record.Fields{
		SessionID:             ctx.SessionID,
		SequenceIndex:         ctx.SequenceIndex,
		LogonTime:             ctx.LastLogonTime,
		LastSequenceResetTime: ctx.LastSequenceResetTime,
		CompositeKeyLength:    uint16(n),
		DictionaryName:        ctx.Dictionary,
	}

	prefixLen, err := e.codec.EncodeAt(e.scratch, 0, fields)
	if err != nil {
		e.sink.Report(errsink.Event{Kind: errsink.OutOfSpaceKind, Err: err, Detail: "scratch buffer too small for prefix"})
		return
	}
	total := prefixLen + n

	pos, err := e.framer.Claim(e.nextPos, total, e.region.Size())
	if err != nil {
		e.sink.Report(errsink.Event{Kind: errsink.OutOfSpaceKind, Err: err, Detail: "no sector space for new record"})
		return
	}

	buf := make([]byte, total)
	copy(buf, e.scratch[:prefixLen])
	copy(buf[prefixLen:], keyBytes)
	e.region.PutBytes(pos, buf)

	e.recomputeSectorChecksum(pos)

	if err := e.region.Force(); err != nil {
		e.sink.Report(errsink.Event{Kind: errsink.OutOfSpaceKind, Err: err, Detail: "force after append"})
		return
	}

	ctx.FilePosition = pos
	e.nextPos = pos + total
}

// SequenceReset rewrites last_sequence_reset_time for id in place. Unknown
// ids are silently ignored.
func (e *Engine) SequenceReset(id record.SessionID, resetTimeMillis int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx := byIDGet(e.byID, id)
	if ctx == nil {
		return
	}
	e.updateSavedDataLocked(ctx, ctx.SequenceIndex, ctx.LastLogonTime, resetTimeMillis)
}

// UpdateSavedData rewrites the three mutable prefix fields for the record
// at filePosition. It is a no-op if filePosition == record.OutOfSpace.
func (e *Engine) UpdateSavedData(filePosition int, sequenceIndex int32, logonTimeMillis, lastSequenceResetTimeMillis int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if filePosition == record.OutOfSpace {
		return nil
	}

	ctx := e.contextAtLocked(filePosition)
	if ctx == nil {
		return ErrUnknownSessionID
	}
	e.updateSavedDataLocked(ctx, sequenceIndex, logonTimeMillis, lastSequenceResetTimeMillis)
	return nil
}

func (e *Engine) contextAtLocked(filePosition int) *record.Context {
	for _, ctx := range e.byKey {
		if ctx.FilePosition == filePosition {
			return ctx
		}
	}
	return nil
}

func (e *Engine) updateSavedDataLocked(ctx *record.Context, sequenceIndex int32, logonTimeMillis, lastSequenceResetTimeMillis int64) {
	if !ctx.Persisted() {
		ctx.SequenceIndex = sequenceIndex
		ctx.LastLogonTime = logonTimeMillis
		ctx.LastSequenceResetTime = lastSequenceResetTimeMillis
		return
	}

	// sequence_index and logon_time sit between session_id and
	// last_sequence_reset_time in the fixed prefix; see record.BlockLength.
	e.region.PutInt32(ctx.FilePosition+8, sequenceIndex)
	e.region.PutInt64(ctx.FilePosition+8+4, logonTimeMillis)
	e.region.PutInt64(ctx.FilePosition+8+4+8, lastSequenceResetTimeMillis)

	ctx.SequenceIndex = sequenceIndex
	ctx.LastLogonTime = logonTimeMillis
	ctx.LastSequenceResetTime = lastSequenceResetTimeMillis

	e.recomputeSectorChecksum(ctx.FilePosition)
	if err := e.region.Force(); err != nil {
		e.sink.Report(errsink.Event{Kind: errsink.OutOfSpaceKind, Err: err, Detail: "force after update"})
	}
}

// OnDisconnect removes id from the authenticated set. Idempotent; does not
// touch disk.
func (e *Engine) OnDisconnect(id record.SessionID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.authenticated.Remove(id)
}

// LookupSessionID returns the session id assigned to key, if any.
func (e *Engine) LookupSessionID(key identity.Key) (record.SessionID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ctx, ok := e.byKey[key.String()]
	if !ok {
		return record.UnknownSessionID, false
	}
	return ctx.SessionID, true
}

// IsAuthenticated reports whether id is currently authenticated. Safe to
// call concurrently with mutating operations.
func (e *Engine) IsAuthenticated(id record.SessionID) bool {
	return e.authenticated.Contains(id)
}

// IsKnownSessionID reports whether id has ever been assigned.
func (e *Engine) IsKnownSessionID(id record.SessionID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return byIDGet(e.byID, id) != nil
}

// AllSessions returns a concurrently-readable snapshot of every known
// session. Safe to call from any goroutine.
func (e *Engine) AllSessions() []record.Info {
	return e.snapshot.All()
}

// Reset clears every known session. It fails with ErrResetWithAuth unless
// the authenticated set is already empty. If backupPath is non-empty, the
// file is snapshotted there before being zero-filled.
func (e *Engine) Reset(backupPath string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.authenticated.Len() != 0 {
		return ErrResetWithAuth
	}

	if backupPath != "" {
		if err := e.region.TransferTo(backupPath); err != nil {
			return fmt.Errorf("sessiondir: backup before reset: %w", err)
		}
	}

	e.byKey = make(map[string]*record.Context)
	e.byID = newByIDIndex()
	e.authenticated.Clear()
	e.snapshot.Replace(nil)
	e.counter = record.LowestValidSessionID
	e.nextPos = HeaderSize

	e.region.ZeroFill()
	writeHeader(e.region, e.codec.SchemaID(), e.codec.TemplateID(), uint16(e.codec.BlockLength()), e.codec.SchemaVersion())
	e.recomputeSectorChecksum(0)

	return e.region.Force()
}

// validateSector recomputes the CRC32 of the sector containing sectorStart
// and reports a mismatch as CorruptSector without aborting the caller's
// load — the tolerant partial-write policy documented in DESIGN.md.
func (e *Engine) validateSector(sectorStart int) {
	dataLen := e.framer.DataLength()
	if sectorStart+dataLen+sector.ChecksumSize > e.region.Size() {
		return
	}

	data := e.region.Slice(sectorStart, dataLen)
	stored := e.region.GetUint32(e.framer.ChecksumOffset(sectorStart))
	if !checksum.Verify(stored, data) {
		e.sink.Report(errsink.Event{Kind: errsink.CorruptSector, Detail: fmt.Sprintf("sector at %d", sectorStart)})
	}
}

// recomputeSectorChecksum rewrites the CRC32 of the sector containing pos.
func (e *Engine) recomputeSectorChecksum(pos int) {
	sectorStart := e.framer.SectorStart(pos)
	dataLen := e.framer.DataLength()
	data := e.region.Slice(sectorStart, dataLen)
	crc := checksum.Generate(data)
	e.region.PutUint32(e.framer.ChecksumOffset(sectorStart), crc)
}
