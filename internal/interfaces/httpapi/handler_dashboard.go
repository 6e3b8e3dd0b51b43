package httpapi

import "net/http"

func (h *Handler) GetMatchSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchSummary")
	defer span.End()

	var q matchQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "match summary", err)
		return
	}
	summary, err := h.dashboard.Summary(ctx, scope, q.MatchID, q.TeamID)
	if err != nil {
		h.fail(ctx, w, "match summary", err, "match_id", q.MatchID)
		return
	}
	dto, err := matchSummaryToDTO(summary)
	h.render(ctx, w, "match summary", dto, err)
}

func (h *Handler) GetXGTimeline(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetXGTimeline")
	defer span.End()

	var q matchQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "xg timeline", err)
		return
	}
	timeline, err := h.dashboard.XGTimeline(ctx, scope, q.MatchID)
	if err != nil {
		h.fail(ctx, w, "xg timeline", err, "match_id", q.MatchID)
		return
	}
	dto, err := xgTimelineToDTO(timeline)
	h.render(ctx, w, "xg timeline", dto, err)
}

func (h *Handler) GetShotMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetShotMap")
	defer span.End()

	var q matchQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "shot map", err)
		return
	}
	shots, err := h.dashboard.ShotMap(ctx, scope, q.MatchID)
	if err != nil {
		h.fail(ctx, w, "shot map", err, "match_id", q.MatchID)
		return
	}
	dto, err := shotMapToDTO(shots)
	h.render(ctx, w, "shot map", dto, err)
}
