// Package lock serializes mutating operations on the same order.
package lock

import (
	"context"
	"errors"
	"sync"
)

var ErrBusy = errors.New("resource is locked by another operation")

// Locker acquires a named lock without waiting. When the lock is held the
// call fails with ErrBusy; otherwise the returned func releases it.
type Locker interface {
	TryLock(ctx context.Context, key string) (unlock func(), err error)
}

// Local is an in-process Locker.
type Local struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLocal() *Local { return &Local{held: make(map[string]struct{})} }

func (l *Local) TryLock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[key]; ok {
		return nil, ErrBusy
	}
	l.held[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, nil
}
