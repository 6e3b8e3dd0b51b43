package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "team:list:9:281", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_StaleValueOutlivesTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(time.Minute, WithStaleRetention(10*time.Minute))
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "feed:match:3869685", 42)

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get(context.Background(), "feed:match:3869685"); ok {
		t.Fatalf("expected fresh lookup to miss after ttl")
	}
	v, storedAt, ok := store.GetStale(context.Background(), "feed:match:3869685")
	if !ok || v.(int) != 42 {
		t.Fatalf("expected stale value 42, got %v ok=%t", v, ok)
	}
	if !storedAt.Equal(now.Add(-2 * time.Minute)) {
		t.Fatalf("unexpected storedAt: %s", storedAt)
	}

	now = now.Add(10 * time.Minute)
	if _, _, ok := store.GetStale(context.Background(), "feed:match:3869685"); ok {
		t.Fatalf("expected stale window to close")
	}
}

func TestLoad_Typed(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	got, err := Load(context.Background(), store, "k", func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected length: got=%d want=2", len(got))
	}

	_, err = Load(context.Background(), store, "k", func(context.Context) (int, error) { return 1, nil })
	if err == nil {
		t.Fatalf("expected type mismatch error")
	}

	_, err = Load(context.Background(), store, "fails", func(context.Context) (int, error) { return 0, errUnexpectedValue })
	if !errors.Is(err, errUnexpectedValue) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestStore_EvictsWhenFull(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, WithMaxEntries(2))
	ctx := context.Background()
	store.Set(ctx, "a", 1)
	store.Set(ctx, "b", 2)
	store.Set(ctx, "c", 3)

	if got := store.Len(); got != 2 {
		t.Fatalf("unexpected size: got=%d want=2", got)
	}
	if _, ok := store.Get(ctx, "c"); !ok {
		t.Fatalf("expected newest entry to survive eviction")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
