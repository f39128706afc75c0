// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// UnlockFunc releases a lock acquired from an AccountLocker.
type UnlockFunc func()

// AccountLocker serializes operations on a single account.
type AccountLocker interface {
	// Lock blocks until the lock for key is held or ctx is done.
	Lock(ctx context.Context, key string) (UnlockFunc, error)
}
