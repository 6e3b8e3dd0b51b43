package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/riskibarqy/match-analytics/internal/platform/opt"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isBindParameterMismatch and isUnnamedPreparedStatementMissing detect
// statement cache confusion behind transaction-mode poolers.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "requires")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "unnamed prepared statement does not exist") || strings.Contains(msg, "(26000)")
}

func isRetryableStatementError(err error) bool {
	return isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err)
}

func nullString[T ~string](v opt.Value[T]) sql.NullString {
	s, ok := v.Get()
	return sql.NullString{String: string(s), Valid: ok}
}

func nullInt(v opt.Value[int]) sql.NullInt64 {
	n, ok := v.Get()
	return sql.NullInt64{Int64: int64(n), Valid: ok}
}

func nullFloat(v opt.Value[float64]) sql.NullFloat64 {
	f, ok := v.Get()
	return sql.NullFloat64{Float64: f, Valid: ok}
}

func optString(v sql.NullString) opt.Value[string] {
	if !v.Valid {
		return opt.Absent[string]()
	}
	return opt.Present(v.String)
}

func optInt(v sql.NullInt64) opt.Value[int] {
	if !v.Valid {
		return opt.Absent[int]()
	}
	return opt.Present(int(v.Int64))
}

func optFloat(v sql.NullFloat64) opt.Value[float64] {
	if !v.Valid {
		return opt.Absent[float64]()
	}
	return opt.Present(v.Float64)
}
