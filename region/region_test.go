package region

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeapRegionGetPutRoundTrip(t *testing.T) {
	r := NewHeap(64)
	exerciseGetPut(t, r)
}

func TestHeapRegionIsNotMemoryMapped(t *testing.T) {
	r := NewHeap(16)
	assert.False(t, r.IsMemoryMapped())
}

func TestHeapRegionZeroFill(t *testing.T) {
	r := NewHeap(16)
	r.PutUint64(0, 0xdeadbeefdeadbeef)
	r.ZeroFill()
	assert.Zero(t, r.GetUint64(0))
}

func TestHeapRegionTransferTo(t *testing.T) {
	r := NewHeap(32)
	r.PutUint32(0, 12345)

	dst := filepath.Join(t.TempDir(), "snapshot.bin")
	assert.Nil(t, r.TransferTo(dst))

	copied, err := Open(dst, 32)
	assert.Nil(t, err)
	defer copied.Close()

	assert.Equal(t, uint32(12345), copied.GetUint32(0))
}

func TestMmapRegionOpenWriteForceReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.dat")

	r, err := Open(path, 4096)
	assert.Nil(t, err)
	exerciseGetPut(t, r)

	r.PutUint64(100, 0x0102030405060708)
	assert.Nil(t, r.Force())
	assert.Nil(t, r.Close())

	reopened, err := Open(path, 4096)
	assert.Nil(t, err)
	defer reopened.Close()

	assert.Equal(t, uint64(0x0102030405060708), reopened.GetUint64(100))
}

func TestMmapRegionIsMemoryMapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.dat")
	r, err := Open(path, 4096)
	assert.Nil(t, err)
	defer r.Close()

	assert.True(t, r.IsMemoryMapped())
}

func TestMmapRegionSecondOpenFailsLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "directory.dat")
	r, err := Open(path, 4096)
	assert.Nil(t, err)
	defer r.Close()

	_, err = Open(path, 4096)
	assert.NotNil(t, err)
}

func exerciseGetPut(t *testing.T, r Region) {
	t.Helper()

	r.PutUint16(0, 0xABCD)
	assert.Equal(t, uint16(0xABCD), r.GetUint16(0))

	r.PutUint32(2, 0x12345678)
	assert.Equal(t, uint32(0x12345678), r.GetUint32(2))

	r.PutInt32(6, -42)
	assert.Equal(t, int32(-42), r.GetInt32(6))

	r.PutBytes(10, []byte("hello"))
	assert.Equal(t, "hello", string(r.GetBytes(10, 5)))

	assert.Equal(t, "hello", string(r.Slice(10, 5)))
}
