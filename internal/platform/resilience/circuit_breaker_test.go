package resilience

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(threshold int) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: threshold,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	})
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b, now := newTestBreaker(2)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	*now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe to be rejected, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteClassifiesErrors(t *testing.T) {
	b, _ := newTestBreaker(1)
	errNotFound := errors.New("upstream 404")
	errTimeout := errors.New("timeout")

	transient := func(err error) bool { return errors.Is(err, errTimeout) }

	if err := b.Execute(func() error { return errNotFound }, transient); !errors.Is(err, errNotFound) {
		t.Fatalf("expected passthrough error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non-transient error must not open the breaker, got %s", state)
	}

	if err := b.Execute(func() error { return errTimeout }, transient); !errors.Is(err, errTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if err := b.Execute(func() error { return nil }, transient); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker to reject, got %v", err)
	}
}

func TestCircuitBreaker_DisabledAlwaysRuns(t *testing.T) {
	b := NewCircuitBreaker(CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})
	calls := 0
	for i := 0; i < 3; i++ {
		_ = b.Execute(func() error { calls++; return errors.New("boom") }, nil)
	}
	if calls != 3 {
		t.Fatalf("unexpected calls: got=%d want=3", calls)
	}
}
