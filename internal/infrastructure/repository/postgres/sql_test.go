package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

func TestIsBindParameterMismatch(t *testing.T) {
	t.Run("matches bind mismatch error", func(t *testing.T) {
		err := fakeErr("pq: bind message supplies 2 parameters, but prepared statement \"\" requires 1 (08P01)")
		if !isBindParameterMismatch(err) {
			t.Fatalf("expected true for bind mismatch error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation events does not exist")
		if isBindParameterMismatch(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUnnamedPreparedStatementMissing(t *testing.T) {
	t.Run("matches statement missing message", func(t *testing.T) {
		err := fakeErr("pq: unnamed prepared statement does not exist (26000)")
		if !isUnnamedPreparedStatementMissing(err) {
			t.Fatalf("expected true for statement missing error")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isRetryableStatementError(fakeErr("pq: relation matches does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsNotFoundWrapped(t *testing.T) {
	if !isNotFound(fmt.Errorf("get match: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
}

func TestNullConversions(t *testing.T) {
	if got := optString(nullString(opt.Present("Camp Nou"))); got.OrElse("") != "Camp Nou" {
		t.Fatalf("unexpected string round trip: %+v", got)
	}
	if got := optInt(nullInt(opt.Absent[int]())); got.IsPresent() {
		t.Fatalf("expected absent int")
	}
	if got := optFloat(nullFloat(opt.Present(0.0))); !got.IsPresent() || got.OrElse(1) != 0 {
		t.Fatalf("expected present zero, got %+v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
