package httpapi

import (
	"net/http"

	"github.com/riskibarqy/match-analytics/internal/platform/logging"
)

// RouterOptions toggles the optional system surfaces.
type RouterOptions struct {
	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	MetricsEnabled     bool
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts)
	registerSelectorRoutes(mux, handler)
	registerDashboardRoutes(mux, handler)
	registerPlayerRoutes(mux, handler)
	registerMatchupRoutes(mux, handler)
	registerTacticalRoutes(mux, handler)

	return RequestTracing(RequestID(RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "route", routeFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
