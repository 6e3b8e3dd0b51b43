package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/match-analytics/internal/domain/analytics"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "match-analytics"
	internalMessage  = "internal server error"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain   string `json:"domain"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
	// Public errors expose their message; the rest get Message or a
	// generic one.
	Public  bool
	Message string
}

// noDataDTO is the explicit payload for a valid request without usable data.
type noDataDTO struct {
	NoData  bool   `json:"no_data"`
	Message string `json:"message"`
}

var (
	encoderPool bytebufferpool.Pool
	// jsonAPI sorts map keys so metric maps encode deterministically.
	jsonAPI = sonic.Config{SortMapKeys: true}.Froze()
)

// writeJSON encodes the whole payload before touching the response so an
// encoding failure can still become a clean 500.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) error {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	buf := encoderPool.Get()
	defer encoderPool.Put(buf)

	if err := jsonAPI.NewEncoder(buf).Encode(payload); err != nil {
		return errors.Wrap(err, "encode response")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
	return nil
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) error {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	return writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

func writeNoData(ctx context.Context, w http.ResponseWriter, err error) error {
	ctx, span := startSpan(ctx, "httpapi.writeNoData")
	defer span.End()

	return writeSuccess(ctx, w, http.StatusOK, noDataDTO{NoData: true, Message: err.Error()})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	message := internalMessage
	if mapped.Message != "" {
		message = mapped.Message
	}
	location := ""
	if mapped.Public {
		message = err.Error()
		if pe, ok := analytics.ParamOf(err); ok {
			message = pe.Error()
			location = pe.Param
		}
	}

	_ = writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors: []googleErrorItem{
				{
					Domain:   errorDomain,
					Reason:   mapped.Reason,
					Message:  message,
					Location: location,
				},
			},
		},
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeError(ctx, w, errors.New(internalMessage))
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	switch {
	case errors.Is(err, analytics.ErrUnknownIdentifier):
		return mappedError{
			HTTPStatus: http.StatusNotFound,
			Reason:     "unknownIdentifier",
			Status:     "NOT_FOUND",
			Public:     true,
		}
	case errors.Is(err, analytics.ErrInvalidFilter):
		return mappedError{
			HTTPStatus: http.StatusBadRequest,
			Reason:     "invalidFilter",
			Status:     "INVALID_ARGUMENT",
			Public:     true,
		}
	case errors.Is(err, analytics.ErrDependencyUnavailable):
		return mappedError{
			HTTPStatus: http.StatusServiceUnavailable,
			Reason:     "dependencyUnavailable",
			Status:     "UNAVAILABLE",
			Message:    "upstream data source unavailable",
		}
	default:
		return mappedError{
			HTTPStatus: http.StatusInternalServerError,
			Reason:     "internalError",
			Status:     "INTERNAL",
		}
	}
}
