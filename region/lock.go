package region

import (
	"fmt"

	"github.com/gofrs/flock"
)

// newFileLock returns an advisory exclusive lock alongside path, the same
// defensive pattern the teacher repo uses to guard a data directory against
// a second process opening it. Multi-process concurrent writers remain a
// documented non-goal of the engine itself; this lock only turns an
// accidental double-open into an early, clear error instead of silent
// corruption.
func newFileLock(path string) (*flock.Flock, error) {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("region: acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("region: %s is already open by another process", path)
	}
	return lock, nil
}
