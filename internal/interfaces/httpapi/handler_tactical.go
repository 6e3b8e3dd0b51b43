package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
)

func (h *Handler) GetPassNetwork(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPassNetwork")
	defer span.End()

	var q passNetworkQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "pass network", err)
		return
	}
	result, err := h.tactical.PassNetwork(ctx, scope, q.TeamID, q.MatchID)
	switch {
	case analytics.IsEmptyResult(err):
		// An empty network keeps the team/match context in its payload.
		h.logger.InfoContext(ctx, "pass network has no data", "team_id", q.TeamID, "match_id", q.MatchID, "reason", err.Error())
		dto, ferr := passNetworkToDTO(result, true)
		h.render(ctx, w, "pass network", dto, ferr)
		return
	case err != nil:
		h.fail(ctx, w, "pass network", err, "team_id", q.TeamID, "match_id", q.MatchID)
		return
	}
	dto, err := passNetworkToDTO(result, false)
	h.render(ctx, w, "pass network", dto, err)
}

func (h *Handler) GetDefensiveMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDefensiveMetrics")
	defer span.End()

	var q teamQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "defensive metrics", err)
		return
	}
	report, err := h.tactical.DefensiveMetrics(ctx, scope, q.TeamID)
	if err != nil {
		h.fail(ctx, w, "defensive metrics", err, "team_id", q.TeamID)
		return
	}
	dto, err := defensiveMetricsToDTO(report)
	h.render(ctx, w, "defensive metrics", dto, err)
}

func (h *Handler) GetOffensiveMetrics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOffensiveMetrics")
	defer span.End()

	var q teamQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "offensive metrics", err)
		return
	}
	report, err := h.tactical.OffensiveMetrics(ctx, scope, q.TeamID)
	if err != nil {
		h.fail(ctx, w, "offensive metrics", err, "team_id", q.TeamID)
		return
	}
	dto, err := offensiveMetricsToDTO(report)
	h.render(ctx, w, "offensive metrics", dto, err)
}
