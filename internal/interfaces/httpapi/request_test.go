package httpapi

import (
	"context"
	"net/url"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
)

func newBindingHandler() *Handler {
	return &Handler{validator: newValidator()}
}

func TestBindQuery_DecodesEmbeddedScopeAndOptionals(t *testing.T) {
	h := newBindingHandler()
	values := url.Values{
		"competition_id": {"eng-premier-league"},
		"season_id":      {"2024-2025"},
		"player1":        {"eng-ars-09"},
		"player2":        {"eng-liv-09"},
		"scale":          {"population"},
		"min_minutes":    {"180"},
	}

	q := radarQuery{Normalized: true}
	if err := h.bindQuery(context.Background(), values, &q); err != nil {
		t.Fatalf("bindQuery: %v", err)
	}
	if q.CompetitionID != "eng-premier-league" || q.SeasonID != "2024-2025" {
		t.Fatalf("scope not decoded: %+v", q.scopeQuery)
	}
	if !q.Normalized {
		t.Fatalf("expected normalized default to survive binding")
	}
	if v, ok := q.MinMinutes.Get(); !ok || v != 180 {
		t.Fatalf("expected min_minutes=180, got %v (present=%v)", v, ok)
	}
}

func TestBindQuery_ErrorsNameTheParameter(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		dst    any
		param  string
	}{
		{
			name:   "missing required",
			values: url.Values{},
			dst:    &playerQuery{},
			param:  "player_id",
		},
		{
			name:   "bad integer",
			values: url.Values{"player_id": {"p"}, "metric": {"goals"}, "window": {"five"}},
			dst:    &trendQuery{},
			param:  "window",
		},
		{
			name:   "out of range",
			values: url.Values{"player_id": {"p"}, "limit": {"500"}},
			dst:    &similarityQuery{},
			param:  "limit",
		},
		{
			name:   "bad enum",
			values: url.Values{"player1": {"a"}, "player2": {"b"}, "scale": {"log"}},
			dst:    &radarQuery{},
			param:  "scale",
		},
		{
			name:   "bad bool",
			values: url.Values{"player1": {"a"}, "player2": {"b"}, "normalized": {"maybe"}},
			dst:    &radarQuery{},
			param:  "normalized",
		},
		{
			name:   "team style without teams",
			values: url.Values{},
			dst:    &teamStyleQuery{},
			param:  "team1",
		},
	}

	h := newBindingHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.bindQuery(context.Background(), tt.values, tt.dst)
			if !errors.Is(err, analytics.ErrInvalidFilter) {
				t.Fatalf("expected invalid filter, got %v", err)
			}
			pe, ok := analytics.ParamOf(err)
			if !ok {
				t.Fatalf("expected parameter error, got %v", err)
			}
			if pe.Param != tt.param {
				t.Fatalf("expected param %q, got %q", tt.param, pe.Param)
			}
		})
	}
}

func TestBindQuery_TeamStyleAcceptsSingleTeam(t *testing.T) {
	h := newBindingHandler()
	var q teamStyleQuery
	if err := h.bindQuery(context.Background(), url.Values{"team_id": {"eng-ars"}}, &q); err != nil {
		t.Fatalf("bindQuery: %v", err)
	}
	if q.TeamID != "eng-ars" {
		t.Fatalf("expected team_id decoded, got %q", q.TeamID)
	}
}
