package ports

import (
	"context"
	"errors"
	"time"
)

// ErrLockNotObtained otra instancia ya tiene el lock.
var ErrLockNotObtained = errors.New("lock not obtained")

// Lock lock adquirido; se libera con Release.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker serializa procesos entre instancias (reconciliación).
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// LocalLocker no coordina entre instancias; sirve para una sola instancia o tests.
type LocalLocker struct{}

type localLock struct{}

func (localLock) Release(context.Context) error { return nil }

func (LocalLocker) Obtain(context.Context, string, time.Duration) (Lock, error) {
	return localLock{}, nil
}
