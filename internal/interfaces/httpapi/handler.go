package httpapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
	"github.com/riskibarqy/match-analytics/internal/platform/logging"
	"github.com/riskibarqy/match-analytics/internal/platform/metrics"
	"github.com/riskibarqy/match-analytics/internal/usecase"
)

// Services groups the use cases served over HTTP.
type Services struct {
	Selectors  *usecase.SelectorService
	Dashboard  *usecase.DashboardService
	Players    *usecase.PlayerAnalysisService
	Comparison *usecase.PlayerComparisonService
	Matchups   *usecase.MatchupService
	Tactical   *usecase.TacticalService
}

type Handler struct {
	selectors  *usecase.SelectorService
	dashboard  *usecase.DashboardService
	players    *usecase.PlayerAnalysisService
	comparison *usecase.PlayerComparisonService
	matchups   *usecase.MatchupService
	tactical   *usecase.TacticalService
	logger     *logging.Logger
	recorder   *metrics.Recorder
	validator  *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger, recorder *metrics.Recorder) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		selectors:  services.Selectors,
		dashboard:  services.Dashboard,
		players:    services.Players,
		comparison: services.Comparison,
		matchups:   services.Matchups,
		tactical:   services.Tactical,
		logger:     logger.Named("httpapi"),
		recorder:   recorder,
		validator:  newValidator(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	_ = writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// scopedQuery binds the request and resolves its registry scope.
func (h *Handler) scopedQuery(ctx context.Context, r *http.Request, dst interface{ scope() (analytics.Scope, error) }) (analytics.Scope, error) {
	if err := h.bindQuery(ctx, r.URL.Query(), dst); err != nil {
		return analytics.Scope{}, err
	}
	return dst.scope()
}

// fail renders a use case error. Empty results become an explicit no-data
// payload; everything else goes through mapError.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error, args ...any) {
	switch {
	case analytics.IsEmptyResult(err):
		h.logger.InfoContext(ctx, op+" has no data", append(args, "reason", err.Error())...)
		if werr := writeNoData(ctx, w, err); werr != nil {
			h.logger.ErrorContext(ctx, "write no data response failed", "error", werr)
		}
	case analytics.IsClientError(err):
		h.logger.WarnContext(ctx, op+" rejected", append(args, "error", err)...)
		writeError(ctx, w, err)
	case ctx.Err() != nil:
		h.logger.WarnContext(ctx, op+" cancelled", append(args, "error", err)...)
		writeError(ctx, w, err)
	default:
		if analytics.IsSchemaViolation(err) {
			h.recorder.SchemaViolation(routeFromContext(ctx))
		}
		h.logger.ErrorContext(ctx, op+" failed", append(args, "error", err)...)
		writeError(ctx, w, err)
	}
}

// render writes a formatted payload. A formatter error is a schema
// violation: it is logged, counted and replaced by a generic 500.
func (h *Handler) render(ctx context.Context, w http.ResponseWriter, op string, dto any, err error) {
	if err != nil {
		h.fail(ctx, w, op, err)
		return
	}
	if err := writeSuccess(ctx, w, http.StatusOK, dto); err != nil {
		h.recorder.SchemaViolation(routeFromContext(ctx))
		h.logger.ErrorContext(ctx, op+" encode failed", "error", err)
		writeInternalError(ctx, w)
	}
}
