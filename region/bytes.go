package region

import "encoding/binary"

// window implements the get/put surface of Region over a plain []byte. Both
// HeapRegion and MmapRegion embed it, pointed at their own buffer, so the
// read/write logic is written once.
type window struct {
	buf []byte
}

func (w *window) Size() int { return len(w.buf) }

func (w *window) GetUint16(off int) uint16 { return binary.BigEndian.Uint16(w.buf[off:]) }
func (w *window) PutUint16(off int, v uint16) { binary.BigEndian.PutUint16(w.buf[off:], v) }

func (w *window) GetUint32(off int) uint32 { return binary.BigEndian.Uint32(w.buf[off:]) }
func (w *window) PutUint32(off int, v uint32) { binary.BigEndian.PutUint32(w.buf[off:], v) }

func (w *window) GetUint64(off int) uint64 { return binary.BigEndian.Uint64(w.buf[off:]) }
func (w *window) PutUint64(off int, v uint64) { binary.BigEndian.PutUint64(w.buf[off:], v) }

func (w *window) GetInt32(off int) int32 { return int32(w.GetUint32(off)) }
func (w *window) PutInt32(off int, v int32) { w.PutUint32(off, uint32(v)) }

func (w *window) GetInt64(off int) int64 { return int64(w.GetUint64(off)) }
func (w *window) PutInt64(off int, v int64) { w.PutUint64(off, uint64(v)) }

func (w *window) GetBytes(off, n int) []byte {
	out := make([]byte, n)
	copy(out, w.buf[off:off+n])
	return out
}

func (w *window) PutBytes(off int, data []byte) {
	copy(w.buf[off:], data)
}

func (w *window) Slice(off, n int) []byte {
	return w.buf[off : off+n]
}

func (w *window) ZeroFill() {
	for i := range w.buf {
		w.buf[i] = 0
	}
}
