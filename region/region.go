// Package region owns the backing file for the session directory and
// exposes it as a mutable byte window (component C4, the Mapped Region).
package region

// Region is a mutable, randomly-addressable byte window backed by a file.
// Implementations decide how bytes reach disk; the directory engine only
// ever reads/writes through this interface.
type Region interface {
	// Size returns the total addressable size of the region, in bytes.
	Size() int

	// IsMemoryMapped reports whether the region is backed by an mmap'd
	// file, as opposed to a plain in-memory buffer. Construction-time
	// callers that require durability check this and fail fast
	// (ErrWrongBufferKind) if it is false.
	IsMemoryMapped() bool

	GetUint16(off int) uint16
	PutUint16(off int, v uint16)
	GetUint32(off int) uint32
	PutUint32(off int, v uint32)
	GetUint64(off int) uint64
	PutUint64(off int, v uint64)
	GetInt32(off int) int32
	PutInt32(off int, v int32)
	GetInt64(off int) int64
	PutInt64(off int, v int64)

	// GetBytes copies n bytes starting at off.
	GetBytes(off, n int) []byte
	// PutBytes copies data into the region starting at off.
	PutBytes(off int, data []byte)
	// Slice returns a zero-copy view of n bytes starting at off. Callers
	// must not retain it past the next mutation of the region.
	Slice(off, n int) []byte

	// Force flushes dirty pages to stable storage.
	Force() error
	// TransferTo copies the full backing file to path.
	TransferTo(path string) error
	// ZeroFill overwrites the entire region with zero bytes.
	ZeroFill()
	// Close releases the region's resources.
	Close() error
}
