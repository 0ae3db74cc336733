package sessiondir

import "errors"

var (
	// ErrWrongBufferKind is returned by New when WithRequireMappedRegion is
	// set and the supplied region is not backed by an actual memory-mapped
	// file. Fatal: raised to the caller, never routed through the error
	// sink.
	ErrWrongBufferKind = errors.New("sessiondir: region is not memory-mapped")

	// ErrResetWithAuth is returned by Engine.Reset when the authenticated
	// set is non-empty. Fatal: raised to the caller.
	ErrResetWithAuth = errors.New("sessiondir: reset called with sessions still authenticated")

	// ErrUnknownSessionID is returned by Engine.UpdateSavedData when no
	// known session's record sits at the given file position.
	ErrUnknownSessionID = errors.New("sessiondir: unknown session id")
)
