package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
)

func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerProfile")
	defer span.End()

	var q playerQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "player profile", err)
		return
	}
	profile, err := h.players.Profile(ctx, scope, q.PlayerID)
	if err != nil {
		h.fail(ctx, w, "player profile", err, "player_id", q.PlayerID)
		return
	}
	dto, err := playerProfileToDTO(profile)
	h.render(ctx, w, "player profile", dto, err)
}

func (h *Handler) GetPerformanceTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPerformanceTrend")
	defer span.End()

	var q trendQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "performance trend", err)
		return
	}
	m, err := analytics.ParseMetric("metric", q.Metric)
	if err != nil {
		h.fail(ctx, w, "performance trend", err)
		return
	}
	trend, err := h.players.PerformanceTrend(ctx, scope, q.PlayerID, m, q.Window)
	if err != nil {
		h.fail(ctx, w, "performance trend", err, "player_id", q.PlayerID, "metric", m)
		return
	}
	dto, err := performanceTrendToDTO(trend)
	h.render(ctx, w, "performance trend", dto, err)
}

func (h *Handler) GetEventMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventMap")
	defer span.End()

	var q eventMapQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "event map", err)
		return
	}
	events, err := h.players.EventMap(ctx, scope, q.PlayerID, q.MatchID, q.EventType)
	if err != nil {
		h.fail(ctx, w, "event map", err, "player_id", q.PlayerID, "match_id", q.MatchID)
		return
	}
	dto, err := eventMapToDTO(events)
	h.render(ctx, w, "event map", dto, err)
}
