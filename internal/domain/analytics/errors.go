package analytics

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	ErrUnknownIdentifier      = errors.New("unknown identifier")
	ErrInvalidFilter          = errors.New("invalid filter")
	ErrInsufficientSampleSize = errors.New("insufficient sample size")
	ErrInvalidMetricValue     = errors.New("invalid metric value")
	ErrSchemaViolation        = errors.New("schema violation")
	ErrEmptyNetwork           = errors.New("empty network")
	ErrDependencyUnavailable  = errors.New("dependency unavailable")
)

// ParamError names the query parameter a client-facing failure refers to.
type ParamError struct {
	Param  string
	Reason string
}

func (e *ParamError) Error() string {
	if e.Param == "" {
		return e.Reason
	}
	return e.Param + ": " + e.Reason
}

// UnknownID reports an identifier that does not resolve in the active scope.
func UnknownID(param, kind, id string) error {
	return errors.Mark(&ParamError{
		Param:  param,
		Reason: fmt.Sprintf("unknown %s %q", kind, id),
	}, ErrUnknownIdentifier)
}

// InvalidParam reports a malformed or missing selector.
func InvalidParam(param, reason string) error {
	return errors.Mark(&ParamError{Param: param, Reason: reason}, ErrInvalidFilter)
}

// InsufficientSample reports a valid request that has no usable data.
func InsufficientSample(format string, args ...any) error {
	return errors.Wrapf(ErrInsufficientSampleSize, format, args...)
}

func InvalidValue(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidMetricValue, format, args...)
}

func Violation(format string, args ...any) error {
	return errors.Wrapf(ErrSchemaViolation, format, args...)
}

// ParamOf returns the offending parameter carried by err, if any.
func ParamOf(err error) (*ParamError, bool) {
	var pe *ParamError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsEmptyResult reports errors that render as an explicit "no data" payload.
func IsEmptyResult(err error) bool {
	return errors.Is(err, ErrInsufficientSampleSize) || errors.Is(err, ErrEmptyNetwork)
}

func IsSchemaViolation(err error) bool {
	return errors.Is(err, ErrSchemaViolation)
}

// IsClientError reports errors caused by the request itself.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownIdentifier) || errors.Is(err, ErrInvalidFilter)
}
