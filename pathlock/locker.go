// Package pathlock serializes access to file locations.
//
// The range reader and writer in package stream do not coordinate callers
// that touch the same file. A Locker provides that coordination: locations
// are keyed by their resolved absolute path, so "~/data.bin", "file:///home/u/data.bin"
// and "/home/u/data.bin" share one lock. With WithFileLock the lock also
// excludes other processes that use the same convention.
//
//	locker := pathlock.New(pathlock.WithFileLock(true))
//	err := locker.Do(ctx, "/var/lib/app/data.bin", func() error {
//	    return stream.Write("/var/lib/app/data.bin", payload, offset)
//	})
package pathlock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/input-output-hk/catalyst-forge-libs/filesugar"
)

// LockSuffix is appended to a path to name its advisory lock file.
const LockSuffix = ".lock"

// ErrNotLocked is returned when the advisory file lock could not be taken.
var ErrNotLocked = errors.New("lock not acquired")

// UnlockFunc releases a lock. Calling it more than once is a no-op.
type UnlockFunc func() error

// Locker hands out exclusive locks keyed by location.
// The zero value is not usable; create one with New.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry

	fileLock   bool
	retryDelay time.Duration
	logger     *slog.Logger
}

type entry struct {
	sem  chan struct{}
	refs int
}

// New creates a Locker.
func New(opts ...Option) *Locker {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Locker{
		locks:      make(map[string]*entry),
		fileLock:   o.fileLock,
		retryDelay: o.retryDelay,
		logger:     o.logger,
	}
}

// Lock blocks until the caller holds location exclusively or ctx is done.
func (l *Locker) Lock(ctx context.Context, location string) (UnlockFunc, error) {
	key, err := Key(location)
	if err != nil {
		return nil, err
	}

	e := l.acquire(key)
	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e, false)
		return nil, fmt.Errorf("lock %q: %w", key, ctx.Err())
	}

	var fl *flock.Flock
	if l.fileLock {
		fl = flock.New(key + LockSuffix)
		ok, err := fl.TryLockContext(ctx, l.retryDelay)
		if err != nil || !ok {
			l.release(key, e, true)
			if err == nil {
				err = ErrNotLocked
			}
			return nil, fmt.Errorf("lock %q: %w", fl.Path(), err)
		}
	}

	if l.logger != nil {
		l.logger.Debug("acquired lock", "path", key, "file_lock", fl != nil)
	}

	var once sync.Once
	return func() error {
		var uerr error
		once.Do(func() {
			if fl != nil {
				if err := fl.Unlock(); err != nil {
					uerr = fmt.Errorf("unlock %q: %w", fl.Path(), err)
				}
			}
			l.release(key, e, true)
			if l.logger != nil {
				l.logger.Debug("released lock", "path", key)
			}
		})
		return uerr
	}, nil
}

// Do runs fn while holding the lock for location.
func (l *Locker) Do(ctx context.Context, location string, fn func() error) (err error) {
	unlock, err := l.Lock(ctx, location)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil {
			if err == nil {
				err = uerr
			} else if l.logger != nil {
				l.logger.Warn("failed to release lock", "location", location, "error", uerr)
			}
		}
	}()

	return fn()
}

// Held returns the number of locations that currently have holders or
// waiters.
func (l *Locker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// Key returns the lock key for location: its resolved absolute path.
func Key(location string) (string, error) {
	path, err := filesugar.ResolveLocation(location)
	if err != nil {
		return "", fmt.Errorf("lock %q: %w", location, err)
	}
	return filesugar.GetAbs(path)
}

func (l *Locker) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) release(key string, e *entry, held bool) {
	if held {
		<-e.sem
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}
