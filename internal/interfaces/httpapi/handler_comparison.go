package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/domain/comparison"
	"github.com/riskibarqy/match-analytics/internal/usecase"
)

func (h *Handler) GetRadarChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRadarChart")
	defer span.End()

	q := radarQuery{Normalized: true}
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "radar chart", err)
		return
	}
	ms, err := analytics.ParseMetricList("metrics", q.Metrics)
	if err != nil {
		h.fail(ctx, w, "radar chart", err)
		return
	}
	scale, err := comparison.ParseScale(q.Scale)
	if err != nil {
		h.fail(ctx, w, "radar chart", err)
		return
	}

	radar, err := h.comparison.Radar(ctx, scope, usecase.RadarQuery{
		Player1:    q.Player1,
		Player2:    q.Player2,
		Metrics:    ms,
		Normalized: q.Normalized,
		Scale:      scale,
		MinMinutes: q.MinMinutes,
	})
	if err != nil {
		h.fail(ctx, w, "radar chart", err, "player1", q.Player1, "player2", q.Player2)
		return
	}
	dto, err := radarToDTO(radar)
	h.render(ctx, w, "radar chart", dto, err)
}

func (h *Handler) GetBarChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBarChart")
	defer span.End()

	var q barQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "bar chart", err)
		return
	}
	m, err := analytics.ParseMetric("metric", q.Metric)
	if err != nil {
		h.fail(ctx, w, "bar chart", err)
		return
	}
	bar, err := h.comparison.Bar(ctx, scope, q.Player1, q.Player2, m)
	if err != nil {
		h.fail(ctx, w, "bar chart", err, "player1", q.Player1, "player2", q.Player2, "metric", m)
		return
	}
	dto, err := barChartToDTO(bar)
	h.render(ctx, w, "bar chart", dto, err)
}

func (h *Handler) GetScatterPlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScatterPlot")
	defer span.End()

	var q scatterQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "scatter plot", err)
		return
	}
	x, err := analytics.ParseMetric("x_metric", q.XMetric)
	if err != nil {
		h.fail(ctx, w, "scatter plot", err)
		return
	}
	y, err := analytics.ParseMetric("y_metric", q.YMetric)
	if err != nil {
		h.fail(ctx, w, "scatter plot", err)
		return
	}

	highlight := make([]string, 0, 2)
	for _, id := range []string{q.Player1, q.Player2} {
		if id != "" {
			highlight = append(highlight, id)
		}
	}
	scatter, err := h.comparison.Scatter(ctx, scope, usecase.ScatterQuery{
		XMetric:    x,
		YMetric:    y,
		Highlight:  highlight,
		MinMinutes: q.MinMinutes,
	})
	if err != nil {
		h.fail(ctx, w, "scatter plot", err, "x_metric", x, "y_metric", y)
		return
	}
	dto, err := scatterToDTO(scatter)
	h.render(ctx, w, "scatter plot", dto, err)
}

func (h *Handler) GetSimilarityMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSimilarityMap")
	defer span.End()

	var q similarityQuery
	scope, err := h.scopedQuery(ctx, r, &q)
	if err != nil {
		h.fail(ctx, w, "similarity map", err)
		return
	}
	result, err := h.comparison.Similar(ctx, scope, usecase.SimilarityQuery{
		PlayerID:   q.PlayerID,
		Limit:      q.Limit,
		MinMinutes: q.MinMinutes,
	})
	if err != nil {
		h.fail(ctx, w, "similarity map", err, "player_id", q.PlayerID)
		return
	}
	dto, err := similarityToDTO(result)
	h.render(ctx, w, "similarity map", dto, err)
}
