package httpapi

import (
	"net/http"
	"time"
)

// route labels the request with its pattern and records its outcome.
func (h *Handler) route(pattern string, fn http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		info, ok := requestInfoFromContext(ctx)
		if !ok {
			info = &requestInfo{}
			ctx = withRequestInfo(ctx, info)
		}
		info.Route = pattern

		started := time.Now()
		rec := newStatusRecorder(w)
		fn(rec, r.WithContext(ctx))
		h.recorder.ObserveHTTP(pattern, r.Method, rec.status, time.Since(started))
	})
}

func (h *Handler) get(mux *http.ServeMux, path string, fn http.HandlerFunc) {
	mux.Handle("GET "+path, h.route(path, fn))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, opts RouterOptions) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if opts.MetricsEnabled && handler.recorder != nil {
		mux.Handle("GET /metrics", handler.recorder.Handler())
	}
	if !opts.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerSelectorRoutes(mux *http.ServeMux, handler *Handler) {
	handler.get(mux, "/core-selectors/competitions", handler.ListCompetitions)
	handler.get(mux, "/core-selectors/seasons", handler.ListSeasons)
	handler.get(mux, "/core-selectors/teams", handler.ListTeams)
	handler.get(mux, "/core-selectors/matches", handler.ListMatches)
	handler.get(mux, "/core-selectors/players", handler.ListPlayers)
}

func registerDashboardRoutes(mux *http.ServeMux, handler *Handler) {
	handler.get(mux, "/dashboard/summary", handler.GetMatchSummary)
	handler.get(mux, "/dashboard/xg-timeline", handler.GetXGTimeline)
	handler.get(mux, "/dashboard/shot-map", handler.GetShotMap)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	handler.get(mux, "/player-analysis/profile", handler.GetPlayerProfile)
	handler.get(mux, "/player-analysis/performance-trend", handler.GetPerformanceTrend)
	handler.get(mux, "/player-analysis/event-map", handler.GetEventMap)

	handler.get(mux, "/player-comparison/radar", handler.GetRadarChart)
	handler.get(mux, "/player-comparison/bar-chart", handler.GetBarChart)
	handler.get(mux, "/player-comparison/scatter-plot", handler.GetScatterPlot)
	handler.get(mux, "/player-comparison/similarity-map", handler.GetSimilarityMap)
}

func registerMatchupRoutes(mux *http.ServeMux, handler *Handler) {
	handler.get(mux, "/matchup-analysis/head-to-head", handler.GetHeadToHead)
	handler.get(mux, "/matchup-analysis/team-style", handler.GetTeamStyle)
	handler.get(mux, "/matchup-analysis/matchup-prediction", handler.GetMatchupPrediction)
}

func registerTacticalRoutes(mux *http.ServeMux, handler *Handler) {
	handler.get(mux, "/tactical-insights/pass-network", handler.GetPassNetwork)
	handler.get(mux, "/tactical-insights/defensive-metrics", handler.GetDefensiveMetrics)
	handler.get(mux, "/tactical-insights/offensive-metrics", handler.GetOffensiveMetrics)
}
