// Package lock serialises writers of a shared file. The lock is a sibling
// directory, "<file>.lock", created with mkdir so that only one process can
// hold it; an info.json inside names the holder.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rileyhilliard/healthdigest/internal/config"
	hderrors "github.com/rileyhilliard/healthdigest/internal/errors"
)

const (
	lockSuffix = ".lock"
	infoName   = "info.json"
)

// ErrLocked is returned by TryAcquire when the lock is held by another process.
var ErrLocked = errors.New("lock is held by another process")

// retryInterval is how long Acquire waits between attempts.
var retryInterval = 250 * time.Millisecond

// Lock represents an acquired lock on a file.
type Lock struct {
	Dir  string    // The lock directory path
	Info *LockInfo // Info about the lock holder (us)
}

// Dir returns the lock directory guarding target.
func Dir(target string) string {
	return target + lockSuffix
}

// Acquire takes the lock on target, waiting up to cfg.Timeout while another
// process holds it. Locks older than cfg.Stale are assumed abandoned and
// removed.
func Acquire(target string, cfg config.LockConfig, command string) (*Lock, error) {
	lockDir := Dir(target)
	startTime := time.Now()

	for {
		l, err := TryAcquire(target, cfg, command)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, ErrLocked) {
			return nil, err
		}

		if time.Since(startTime) > cfg.Timeout {
			return nil, hderrors.New(hderrors.ErrLock,
				fmt.Sprintf("Timed out waiting for lock after %s", cfg.Timeout),
				fmt.Sprintf("Lock held by: %s. Remove %s if that process is gone.", Holder(lockDir), lockDir))
		}
		time.Sleep(retryInterval)
	}
}

// TryAcquire makes a single attempt at the lock. It returns ErrLocked when
// another live holder has it.
func TryAcquire(target string, cfg config.LockConfig, command string) (*Lock, error) {
	lockDir := Dir(target)
	if err := os.MkdirAll(filepath.Dir(lockDir), 0o755); err != nil {
		return nil, hderrors.WrapWithCode(err, hderrors.ErrLock,
			"Failed to create lock parent directory",
			"Check permissions on "+filepath.Dir(lockDir))
	}

	if isLockStale(lockDir, cfg.Stale) {
		// Another waiter may remove it first; mkdir below settles who wins.
		_ = os.RemoveAll(lockDir)
	}

	// mkdir fails if the directory exists
	if err := os.Mkdir(lockDir, 0o755); err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, hderrors.WrapWithCode(err, hderrors.ErrLock,
			"Failed to create lock directory: "+lockDir,
			"Check permissions on "+filepath.Dir(lockDir))
	}

	info := NewLockInfo(command)
	if err := info.write(lockDir); err != nil {
		_ = os.RemoveAll(lockDir)
		return nil, hderrors.WrapWithCode(err, hderrors.ErrLock,
			"Failed to write lock info file",
			"Check disk space and permissions")
	}

	return &Lock{Dir: lockDir, Info: info}, nil
}

// Release removes the lock, allowing others to acquire it.
func (l *Lock) Release() error {
	if l == nil || l.Dir == "" {
		return nil // Nothing to release
	}
	return ForceRelease(l.Dir)
}

// ForceRelease forcibly removes a lock directory, regardless of who holds it.
func ForceRelease(lockDir string) error {
	if err := os.RemoveAll(lockDir); err != nil {
		return hderrors.WrapWithCode(err, hderrors.ErrLock,
			fmt.Sprintf("Failed to remove lock directory: %s", lockDir),
			"Check permissions and remove it by hand")
	}
	return nil
}

// Holder returns information about who holds the lock (if readable).
func Holder(lockDir string) string {
	data, err := os.ReadFile(filepath.Join(lockDir, infoName))
	if err != nil {
		return "unknown"
	}

	info, err := ParseLockInfo(data)
	if err != nil {
		// Fall back to raw content
		return strings.TrimSpace(string(data))
	}
	return info.String()
}

// isLockStale checks if the lock's info file is older than the stale threshold.
// A lock whose info can't be read is never stale: its holder may still be
// writing it.
func isLockStale(lockDir string, staleThreshold time.Duration) bool {
	if staleThreshold <= 0 {
		return false
	}

	info, err := ReadInfo(lockDir)
	if err != nil {
		return false
	}
	return info.Age() > staleThreshold
}
