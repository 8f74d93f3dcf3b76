// Package runlock serializes freshen and compact runs that share a log file.
//
// The lock is an exclusive flock on a file next to the log file. It is
// released when the process exits, also on a crash.
package runlock

import (
	"context"
	"errors"
	"os"
	"syscall"
	"time"
)

// PollInterval is how often Wait retries a held lock.
const PollInterval = 200 * time.Millisecond

// FileLock provides exclusive file-based locking using flock.
type FileLock struct {
	path string
	file *os.File
}

// New creates a new file lock for the given path.
// The lock file will be created if it doesn't exist.
func New(path string) *FileLock {
	return &FileLock{path: path}
}

// PathFor returns the lock path guarding the given log file.
func PathFor(logfile string) string {
	return logfile + ".lock"
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.path
}

// TryLock acquires the lock without blocking. It reports false when another
// process holds it.
func (l *FileLock) TryLock() (bool, error) {
	if l.file != nil {
		return true, nil
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return false, err
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return false, nil
		}
		return false, err
	}

	l.file = f
	return true, nil
}

// Wait polls TryLock until the lock is acquired or ctx is done.
func (l *FileLock) Wait(ctx context.Context) error {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.TryLock()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Unlock releases the lock and closes the file.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	// Release lock
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		l.file.Close()
		l.file = nil
		return err
	}

	err := l.file.Close()
	l.file = nil
	return err
}
