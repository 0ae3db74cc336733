package sessiondir

import (
	"github.com/Nadia-Adaptive/sessiondir/codec"
)

type options struct {
	codec               codec.Codec
	sectorSize          int
	requireMappedRegion bool
}

// Option configures an Engine at construction time.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		codec:      codec.NewBinaryCodec(),
		sectorSize: defaultSectorSize,
	}
}

// WithCodec overrides the default record codec.
func WithCodec(c codec.Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithSectorSize overrides the default sector size. Must be a power of two
// larger than the checksum slot.
func WithSectorSize(size int) Option {
	return func(o *options) { o.sectorSize = size }
}

// WithRequireMappedRegion makes New fail with ErrWrongBufferKind unless the
// supplied region reports IsMemoryMapped() == true. Off by default so
// callers can freely unit test against region.HeapRegion.
func WithRequireMappedRegion() Option {
	return func(o *options) { o.requireMappedRegion = true }
}
