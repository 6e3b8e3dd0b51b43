package httpapi

import (
	"net/http"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.selectors.ListCompetitions(ctx)
	if err != nil {
		h.fail(ctx, w, "list competitions", err)
		return
	}
	h.render(ctx, w, "list competitions", competitionsToDTO(items), nil)
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	var q seasonsQuery
	if err := h.bindQuery(ctx, r.URL.Query(), &q); err != nil {
		h.fail(ctx, w, "list seasons", err)
		return
	}
	items, err := h.selectors.ListSeasons(ctx, q.CompetitionID)
	if err != nil {
		h.fail(ctx, w, "list seasons", err, "competition_id", q.CompetitionID)
		return
	}
	h.render(ctx, w, "list seasons", seasonsToDTO(items), nil)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	var q teamsQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "list teams", err)
		return
	}
	items, err := h.selectors.ListTeams(ctx, scope)
	if err != nil {
		h.fail(ctx, w, "list teams", err, "scope", scope.Key())
		return
	}
	h.render(ctx, w, "list teams", teamsToDTO(items), nil)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	var q matchesQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "list matches", err)
		return
	}
	items, err := h.selectors.ListMatches(ctx, scope, q.TeamID)
	if err != nil {
		h.fail(ctx, w, "list matches", err, "scope", scope.Key(), "team_id", q.TeamID)
		return
	}
	h.render(ctx, w, "list matches", matchOptionsToDTO(items), nil)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	var q playersQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "list players", err)
		return
	}
	items, err := h.selectors.ListPlayers(ctx, scope, q.TeamID)
	if err != nil {
		h.fail(ctx, w, "list players", err, "scope", scope.Key(), "team_id", q.TeamID)
		return
	}
	h.render(ctx, w, "list players", playersToDTO(items), nil)
}
