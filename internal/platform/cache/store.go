package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultMaxEntries = 10_000

type entry struct {
	value    any
	storedAt time.Time
}

// Store is an in-process TTL cache. Entries past their TTL stop being served
// by Get but stay readable through GetStale until the stale window closes, so
// callers can fall back to a last-known value when a dependency fails.
type Store struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	stale      time.Duration
	maxEntries int
	flight     singleflight.Group
	now        func() time.Time
}

type Option func(*Store)

// WithStaleRetention keeps expired entries readable for d after their TTL.
func WithStaleRetention(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.stale = d
		}
	}
}

func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: defaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || !s.fresh(e) {
		return nil, false
	}
	return e.value, true
}

// GetStale returns the last stored value for key even when it is past its TTL.
func (s *Store) GetStale(_ context.Context, key string) (any, time.Time, bool) {
	if key == "" {
		return nil, time.Time{}, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || s.expired(e) {
		return nil, time.Time{}, false
	}
	return e.value, e.storedAt, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.maxEntries {
		s.evictLocked()
	}
	s.entries[key] = entry{value: value, storedAt: s.now()}
}

func (s *Store) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the fresh value for key or runs loader once for all
// concurrent callers of the same key.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Load is the typed form of GetOrLoad.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	v, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache key %q holds %T", key, v)
	}
	return out, nil
}

func (s *Store) fresh(e entry) bool {
	if s.ttl <= 0 {
		return true
	}
	return s.now().Before(e.storedAt.Add(s.ttl))
}

func (s *Store) expired(e entry) bool {
	if s.ttl <= 0 {
		return false
	}
	return !s.now().Before(e.storedAt.Add(s.ttl + s.stale))
}

func (s *Store) evictLocked() {
	var oldestKey string
	var oldest time.Time
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
			continue
		}
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey, oldest = key, e.storedAt
		}
	}
	if len(s.entries) >= s.maxEntries && oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}
