package region

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"golang.org/x/sys/unix"
)

// MmapRegion is the production Region: a fixed-size file, memory-mapped
// with golang.org/x/sys/unix, guarded by an advisory process lock. Unlike a
// growable WAL, the session directory never extends the file on its own —
// once full, the sector framer reports ErrOutOfSpace and the engine keeps
// the affected session in memory only (see record.Context.Persisted).
type MmapRegion struct {
	window

	path string
	file *os.File
	lock *flock.Flock
}

// Open creates (if needed) and memory-maps a fixed-size file at path. If
// the file already has a non-zero size, that size is used; otherwise (a new
// or empty file) it is truncated to size bytes.
func Open(path string, size int) (*MmapRegion, error) {
	lock, err := newFileLock(path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("region: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("region: stat %s: %w", path, err)
	}

	mapSize := size
	if info.Size() > 0 {
		mapSize = int(info.Size())
	} else if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("region: truncate %s: %w", path, err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, mapSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("region: mmap %s: %w", path, err)
	}

	return &MmapRegion{
		window: window{buf: data},
		path:   path,
		file:   f,
		lock:   lock,
	}, nil
}

func (m *MmapRegion) IsMemoryMapped() bool { return true }

// Force flushes dirty pages to stable storage synchronously, matching the
// engine's "encode -> checksum -> force" durability ordering.
func (m *MmapRegion) Force() error {
	if err := unix.Msync(m.buf, unix.MS_SYNC); err != nil {
		return fmt.Errorf("region: msync: %w", err)
	}
	return nil
}

// TransferTo snapshots the current backing file to path. It syncs first so
// the copy reflects the latest forced state.
func (m *MmapRegion) TransferTo(path string) error {
	if err := m.Force(); err != nil {
		return err
	}

	src, err := os.Open(m.path)
	if err != nil {
		return fmt.Errorf("region: open source for snapshot: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("region: open snapshot destination: %w", err)
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return fmt.Errorf("region: snapshot copy: %w", err)
	}
	return dst.Sync()
}

func (m *MmapRegion) Close() error {
	if m.buf != nil {
		_ = unix.Msync(m.buf, unix.MS_SYNC)
		if err := unix.Munmap(m.buf); err != nil {
			return fmt.Errorf("region: munmap: %w", err)
		}
		m.buf = nil
	}
	if m.file != nil {
		if err := m.file.Close(); err != nil {
			return fmt.Errorf("region: close file: %w", err)
		}
		m.file = nil
	}
	if m.lock != nil {
		if err := m.lock.Unlock(); err != nil {
			return fmt.Errorf("region: release lock: %w", err)
		}
		m.lock = nil
	}
	return nil
}

var _ Region = (*MmapRegion)(nil)
