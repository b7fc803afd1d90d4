package captions

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another session is already fixing the same
// media.
var ErrLocked = errors.New("captions: another session is fixing this media")

// RunLock is an exclusive advisory lock held for the duration of one
// interactive session.
type RunLock struct {
	lock *flock.Flock
}

// AcquireLock takes the lock at path without blocking.
func AcquireLock(path string) (*RunLock, error) {
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("captions: acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return &RunLock{lock: lock}, nil
}

// Path returns the lock file location.
func (l *RunLock) Path() string {
	if l == nil || l.lock == nil {
		return ""
	}
	return l.lock.Path()
}

// Release drops the lock. The lock file itself is left in place.
func (l *RunLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
