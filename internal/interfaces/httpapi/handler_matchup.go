package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-analytics/internal/usecase"
)

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHead")
	defer span.End()

	var q teamPairQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "head to head", err)
		return
	}
	h2h, err := h.matchups.HeadToHead(ctx, scope, q.Team1, q.Team2)
	if err != nil {
		h.fail(ctx, w, "head to head", err, "team1", q.Team1, "team2", q.Team2)
		return
	}
	dto, err := headToHeadToDTO(h2h)
	h.render(ctx, w, "head to head", dto, err)
}

func (h *Handler) GetTeamStyle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStyle")
	defer span.End()

	var q teamStyleQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "team style", err)
		return
	}

	var teams []usecase.TeamParam
	if q.Team1 != "" {
		teams = append(teams, usecase.TeamParam{Param: "team1", ID: q.Team1})
		if q.Team2 != "" {
			teams = append(teams, usecase.TeamParam{Param: "team2", ID: q.Team2})
		}
	} else {
		teams = append(teams, usecase.TeamParam{Param: "team_id", ID: q.TeamID})
	}

	styles, err := h.matchups.TeamStyle(ctx, scope, teams...)
	if err != nil {
		h.fail(ctx, w, "team style", err, "teams", len(teams))
		return
	}
	dto, err := teamStylesToDTO(styles)
	h.render(ctx, w, "team style", dto, err)
}

func (h *Handler) GetMatchupPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchupPrediction")
	defer span.End()

	var q teamPairQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "matchup prediction", err)
		return
	}
	pred, err := h.matchups.Predict(ctx, scope, q.Team1, q.Team2)
	if err != nil {
		h.fail(ctx, w, "matchup prediction", err, "team1", q.Team1, "team2", q.Team2)
		return
	}
	dto, err := matchupPredictionToDTO(pred)
	h.render(ctx, w, "matchup prediction", dto, err)
}
