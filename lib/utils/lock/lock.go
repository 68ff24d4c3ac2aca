package lock

import (
	"context"
	"sync"
	"time"
)

var locks sync.Map

// WithDelay runs fn under the in-process lock named by key. When the lock is
// held it retries until wait elapses or ctx is done, then gives up and
// returns false without running fn.
func WithDelay(ctx context.Context, key string, wait time.Duration, fn func() error) (acquired bool, err error) {
	timeout := time.After(wait)
	for {
		if _, held := locks.LoadOrStore(key, true); !held {
			break
		}
		select {
		case <-timeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		default:
			time.Sleep(50 * time.Millisecond)
		}
	}
	defer locks.Delete(key)
	return true, fn()
}
