package locker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddu-connect/backend/internal/application/adapter"
)

func newRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLocker(client, time.Second)
	l.retryInterval = 5 * time.Millisecond
	return l, mr
}

// assertMutualExclusion runs workers on one key and checks they never overlap.
func assertMutualExclusion(t *testing.T, l adapter.AccountLocker) {
	t.Helper()

	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "CS2021001")
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			for {
				m := maxInside.Load()
				if n <= m || maxInside.CompareAndSwap(m, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
}

func TestMemoryLocker_MutualExclusion(t *testing.T) {
	assertMutualExclusion(t, NewMemoryLocker())
}

func TestMemoryLocker_IndependentKeys(t *testing.T) {
	l := NewMemoryLocker()

	unlockA, err := l.Lock(context.Background(), "A")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	unlockB, err := l.Lock(ctx, "B")
	require.NoError(t, err)
	unlockB()
}

func TestMemoryLocker_ContextCancelled(t *testing.T) {
	l := NewMemoryLocker()

	unlock, err := l.Lock(context.Background(), "A")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "A")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()

	l.mu.Lock()
	assert.Empty(t, l.locks)
	l.mu.Unlock()
}

func TestRedisLocker_MutualExclusion(t *testing.T) {
	l, _ := newRedisLocker(t)
	assertMutualExclusion(t, l)
}

func TestRedisLocker_ReleaseOnlyOwnLock(t *testing.T) {
	l, mr := newRedisLocker(t)

	unlock, err := l.Lock(context.Background(), "CS2021001")
	require.NoError(t, err)

	// Simulate expiry and takeover by another holder.
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set(keyPrefix+"CS2021001", "someone-else"))

	unlock()

	got, err := mr.Get(keyPrefix + "CS2021001")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLocker_Timeout(t *testing.T) {
	l, mr := newRedisLocker(t)
	l.maxWait = 30 * time.Millisecond
	require.NoError(t, mr.Set(keyPrefix+"CS2021001", "held"))

	_, err := l.Lock(context.Background(), "CS2021001")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestRedisLocker_KeyExpires(t *testing.T) {
	l, mr := newRedisLocker(t)

	_, err := l.Lock(context.Background(), "CS2021001")
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+"CS2021001"))

	mr.FastForward(2 * time.Second)
	assert.False(t, mr.Exists(keyPrefix+"CS2021001"))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0", "", 0)
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), "not a url", "", 0)
	assert.Error(t, err)
}
