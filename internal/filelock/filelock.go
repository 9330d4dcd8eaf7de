// Package filelock provides advisory file locking so that several tasklist
// processes sharing one data directory never interleave slot writes.
package filelock

import (
	"fmt"
	"os"
)

const lockFileMode = 0o600

// Lock acquires an exclusive advisory lock on the file at path, creating it
// if it does not exist. The returned function releases the lock and must be
// called once the slot write is done.
//
// Other callers block until the lock is released.
func Lock(path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock path derived from the data dir
	if err != nil {
		return nil, err
	}

	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}

// With runs fn while holding the lock at path. The lock is released even
// when fn fails; fn's error takes precedence over a release error.
func With(path string, fn func() error) error {
	unlock, err := Lock(path)
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	fnErr := fn()
	if err := unlock(); err != nil && fnErr == nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return fnErr
}
