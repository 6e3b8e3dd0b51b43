package match

import (
	"testing"
	"time"

	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

func finished(id string, day int, home, away string, hs, as int) Match {
	return Match{
		ID:            id,
		Date:          time.Date(2024, 8, day, 0, 0, 0, 0, time.UTC),
		HomeTeamID:    home,
		AwayTeamID:    away,
		HomeScore:     opt.Present(hs),
		AwayScore:     opt.Present(as),
		CompetitionID: "c1",
		SeasonID:      "s1",
	}
}

func TestMatchResultFor(t *testing.T) {
	t.Parallel()

	m := finished("m1", 10, "t1", "t2", 2, 1)
	if r, ok := m.ResultFor("t1"); !ok || r != ResultWin {
		t.Fatalf("unexpected home result: %v %v", r, ok)
	}
	if r, ok := m.ResultFor("t2"); !ok || r != ResultLoss {
		t.Fatalf("unexpected away result: %v %v", r, ok)
	}
	if _, ok := m.ResultFor("t3"); ok {
		t.Fatalf("non participant must not have a result")
	}
	if m.OpponentOf("t2") != "t1" || m.VenueOf("t2") != VenueAway {
		t.Fatalf("unexpected opponent or venue")
	}

	m.HomeScore = opt.Absent[int]()
	m.AwayScore = opt.Absent[int]()
	if m.Finished() {
		t.Fatalf("match without scores must not be finished")
	}
	if _, ok := m.ResultFor("t1"); ok {
		t.Fatalf("unfinished match must not have a result")
	}
}

func TestMatchValidate(t *testing.T) {
	t.Parallel()

	m := finished("m1", 10, "t1", "t2", 0, 0)
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.AwayScore = opt.Absent[int]()
	if err := m.Validate(); err == nil {
		t.Fatalf("expected error for a single score")
	}

	m = finished("m1", 10, "t1", "t1", 0, 0)
	if err := m.Validate(); err == nil {
		t.Fatalf("expected error for identical teams")
	}
}

func TestSortChronologicalAndFilter(t *testing.T) {
	t.Parallel()

	matches := []Match{
		finished("m3", 20, "t1", "t2", 0, 0),
		finished("m2", 10, "t2", "t3", 1, 0),
		finished("m1", 10, "t1", "t3", 1, 1),
	}
	SortChronological(matches)
	if matches[0].ID != "m1" || matches[1].ID != "m2" || matches[2].ID != "m3" {
		t.Fatalf("unexpected order: %s %s %s", matches[0].ID, matches[1].ID, matches[2].ID)
	}

	f := Filter{TeamID: "t1", OpponentID: "t3"}
	if !f.Matches(matches[0]) || f.Matches(matches[1]) {
		t.Fatalf("unexpected filter result")
	}
}
