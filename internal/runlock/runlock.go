// Package runlock keeps two imagepuller processes from exporting into the
// same target directory at once. Lock files live under the state directory
// so the target only ever receives photos.
package runlock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrBusy reports that another process holds the lock for a target.
var ErrBusy = errors.New("another imagepuller run is exporting into this directory")

// Lock is an acquired per-target lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// PathFor returns the lock file used for targetDir.
func PathFor(lockDir, targetDir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(targetDir)))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for targetDir without blocking.
func Acquire(lockDir, targetDir string) (*Lock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := PathFor(lockDir, targetDir)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s (lock %s)", ErrBusy, targetDir, path)
	}
	return &Lock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks the target. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
