package region

import (
	"bytes"
	"io"
	"os"
)

// HeapRegion is a non-mapped, slice-backed Region. It is not durable —
// Force and Close are no-ops beyond TransferTo — and exists so unit tests
// can exercise the directory engine without touching the filesystem, and so
// construction-time validation of ErrWrongBufferKind has something to
// reject. IsMemoryMapped always reports false.
type HeapRegion struct {
	window
}

// NewHeap returns a HeapRegion of the given size, zero-initialized.
func NewHeap(size int) *HeapRegion {
	return &HeapRegion{window{buf: make([]byte, size)}}
}

func (h *HeapRegion) IsMemoryMapped() bool { return false }

func (h *HeapRegion) Force() error { return nil }

func (h *HeapRegion) TransferTo(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, bytes.NewReader(h.buf))
	return err
}

func (h *HeapRegion) Close() error { return nil }

var _ Region = (*HeapRegion)(nil)
