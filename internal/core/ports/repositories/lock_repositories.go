package repositories

import (
	"context"
	"time"
)

// PostingLocker is an advisory lock keyed by document. Acquire returns a token
// that Release must present; a release with a stale token is a no-op.
type PostingLocker interface {
	// Acquire fails with apperrors.ErrLockHeld when someone else holds an unexpired
	// lock and with apperrors.ErrLockUnavailable when the backend cannot be reached.
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, error)
	Release(ctx context.Context, key, token string) error
}
