package filelock

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializesHolders(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := Lock(path)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()

			mu.Lock()
			inside--
			mu.Unlock()
			assert.NoError(t, unlock())
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestLockRelock(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	unlock, err := Lock(path)
	require.NoError(t, err)
	require.NoError(t, unlock())

	unlock, err = Lock(path)
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestWithReleasesOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")
	boom := errors.New("boom")

	err := With(path, func() error { return boom })
	require.ErrorIs(t, err, boom)

	ran := false
	require.NoError(t, With(path, func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
}
