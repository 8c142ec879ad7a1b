package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
)

type heldLock struct {
	token     string
	expiresAt time.Time
}

// Locker is a process-local PostingLocker with TTL expiry.
type Locker struct {
	mu          sync.Mutex
	locks       map[string]heldLock
	unavailable bool
	now         func() time.Time
}

var _ portsrepo.PostingLocker = (*Locker)(nil)

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]heldLock), now: time.Now}
}

// SetUnavailable makes every Acquire fail with apperrors.ErrLockUnavailable.
func (l *Locker) SetUnavailable(down bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.unavailable = down
}

func (l *Locker) Acquire(_ context.Context, key string, ttl time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.unavailable {
		return "", apperrors.ErrLockUnavailable
	}
	now := l.now()
	if held, ok := l.locks[key]; ok && now.Before(held.expiresAt) {
		return "", apperrors.ErrLockHeld
	}
	token := uuid.NewString()
	l.locks[key] = heldLock{token: token, expiresAt: now.Add(ttl)}
	return token, nil
}

func (l *Locker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if held, ok := l.locks[key]; ok && held.token == token {
		delete(l.locks, key)
	}
	return nil
}
