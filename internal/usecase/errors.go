package usecase

import "github.com/riskibarqy/match-analytics/internal/domain/analytics"

// Error classes returned by the analytics use cases. They are the domain
// taxonomy re-exported so transports only import this package.
var (
	ErrUnknownIdentifier      = analytics.ErrUnknownIdentifier
	ErrInvalidFilter          = analytics.ErrInvalidFilter
	ErrInsufficientSampleSize = analytics.ErrInsufficientSampleSize
	ErrEmptyNetwork           = analytics.ErrEmptyNetwork
	ErrInvalidMetricValue     = analytics.ErrInvalidMetricValue
	ErrSchemaViolation        = analytics.ErrSchemaViolation
	ErrDependencyUnavailable  = analytics.ErrDependencyUnavailable
)
