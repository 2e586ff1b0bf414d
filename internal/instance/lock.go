package instance

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/gofrs/flock"
)

var (
	// ErrAlreadyRunning reports that another process holds the PID file lock.
	ErrAlreadyRunning = errors.New("another instance is already running")
	// ErrIO reports that the PID file could not be created, opened, or locked.
	ErrIO = errors.New("pid file io failure")
)

// Lock represents exclusive ownership of the daemon PID file. It is acquired
// once at startup and must be released on every exit path that follows a
// successful acquire.
type Lock struct {
	path string
	fl   *flock.Flock
	held bool
}

// Acquire creates or opens the PID file at path (owner read/write, group and
// other read) and takes a non-blocking exclusive advisory lock on it. A held
// lock surfaces as ErrAlreadyRunning without waiting; open or lock syscall
// failures surface as ErrIO. On success the current process ID is written
// into the file.
func Acquire(path string) (*Lock, error) {
	fl := flock.New(path,
		flock.SetFlag(os.O_CREATE|os.O_RDWR),
		flock.SetPermissions(0o644),
	)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: lock %s: %v", ErrIO, path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, path)
	}

	// We own the lock now, so rewriting the file cannot race another daemon.
	pid := strconv.Itoa(os.Getpid()) + "\n"
	if err := os.WriteFile(path, []byte(pid), 0o644); err != nil {
		_ = fl.Unlock()
		return nil, fmt.Errorf("%w: write pid to %s: %v", ErrIO, path, err)
	}

	return &Lock{path: path, fl: fl, held: true}, nil
}

// Path returns the locked PID file path.
func (l *Lock) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Release unlocks and closes the PID file, then removes it. Safe to call
// more than once; only the first call does work.
func (l *Lock) Release() error {
	if l == nil || !l.held {
		return nil
	}
	l.held = false

	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.path, err)
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", l.path, err)
	}
	return nil
}
