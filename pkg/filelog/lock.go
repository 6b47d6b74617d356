package filelog

import (
	"github.com/gofrs/flock"
)

// appendLock serialises appends to one log file across processes. The lock
// lives in a sibling "<log path>.lock" file so the log itself stays a plain
// append-only text file.
type appendLock struct {
	path  string
	flock *flock.Flock
}

func newAppendLock(logPath string) *appendLock {
	lockPath := logPath + ".lock"
	return &appendLock{
		path:  lockPath,
		flock: flock.New(lockPath),
	}
}

// withLock runs fn while holding the exclusive lock. The caller must have
// created the parent directory.
func (l *appendLock) withLock(fn func() error) error {
	if err := l.flock.Lock(); err != nil {
		return newIOError("lock", l.path, err)
	}
	fnErr := fn()
	if err := l.flock.Unlock(); err != nil && fnErr == nil {
		return newIOError("unlock", l.path, err)
	}
	return fnErr
}
