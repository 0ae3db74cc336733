// Package sector allocates byte ranges inside a flat region without ever
// letting a record straddle a sector boundary. Each sector reserves its
// trailing ChecksumSize bytes for a CRC32 of the rest of the sector.
package sector

import "errors"

// ErrOutOfSpace is returned by Claim when neither the current sector nor
// the next one has room for the requested range.
var ErrOutOfSpace = errors.New("sector: out of space")

// ChecksumSize is the width, in bytes, of a sector's trailing CRC32 slot.
const ChecksumSize = 4

// DefaultSize is the typical sector size used by a freshly created store.
const DefaultSize = 4096

// Framer enforces sector non-straddling. It is stateless: SectorStart and
// ChecksumOffset are pure functions of a byte position, so a single Framer
// can be shared freely across goroutines (though only the owner goroutine
// ever calls Claim in this engine's single-writer model).
type Framer struct {
	size int
}

// New returns a Framer for sectors of the given size. size must be a power
// of two greater than ChecksumSize.
func New(size int) *Framer {
	return &Framer{size: size}
}

// Size returns the configured sector size.
func (f *Framer) Size() int { return f.size }

// DataLength returns how many usable (non-checksum) bytes a sector holds.
func (f *Framer) DataLength() int { return f.size - ChecksumSize }

// SectorStart returns the byte offset of the sector containing pos.
func (f *Framer) SectorStart(pos int) int {
	return (pos / f.size) * f.size
}

// ChecksumOffset returns the byte offset of the CRC32 slot for the sector
// containing pos.
func (f *Framer) ChecksumOffset(pos int) int {
	return f.SectorStart(pos) + f.DataLength()
}

// Claim returns the position at which a range of length bytes may be
// written without crossing a sector's checksum slot, given a region of
// capacity total bytes. If pos already leaves enough room in its sector,
// Claim returns pos unchanged. Otherwise it skips to the next sector's data
// area. If that sector (or the file tail) is also insufficient, it returns
// ErrOutOfSpace.
func (f *Framer) Claim(pos, length, capacity int) (int, error) {
	if length > f.DataLength() {
		return 0, ErrOutOfSpace
	}

	dataEnd := f.SectorStart(pos) + f.DataLength()
	if pos+length <= dataEnd {
		return pos, nil
	}

	next := f.SectorStart(pos) + f.size
	nextDataEnd := next + f.DataLength()
	if nextDataEnd+ChecksumSize > capacity {
		return 0, ErrOutOfSpace
	}
	if next+length > nextDataEnd {
		return 0, ErrOutOfSpace
	}

	return next, nil
}
