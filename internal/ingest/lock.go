package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	scerrors "github.com/depscout/depscout/internal/errors"
)

// Lock guards the index directory against concurrent writers using a
// cross-process file lock.
type Lock struct {
	fl *flock.Flock
}

// NewLock creates a lock for the index at indexPath. The lock file lives
// next to the index directory.
func NewLock(indexPath string) (*Lock, error) {
	dir := filepath.Dir(indexPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	return &Lock{fl: flock.New(indexPath + ".lock")}, nil
}

// TryAcquire attempts to take the lock without blocking. A held lock is a
// retryable error: another ingest run owns the index right now.
func (l *Lock) TryAcquire() error {
	acquired, err := l.fl.TryLock()
	if err != nil {
		return scerrors.New(scerrors.ErrCodeIndexLocked, "acquire index lock", err)
	}
	if !acquired {
		return scerrors.New(scerrors.ErrCodeIndexLocked,
			fmt.Sprintf("index locked by another process (%s)", l.fl.Path()), nil)
	}
	return nil
}

// Release releases the lock.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release index lock: %w", err)
	}
	return nil
}
