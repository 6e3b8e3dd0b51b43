package httpapi

import "context"

type contextKey string

const requestInfoContextKey contextKey = "request_info"

// requestInfo is filled while a request travels down the middleware chain;
// outer middleware reads it after the handler returns.
type requestInfo struct {
	ID    string
	Route string
}

func withRequestInfo(ctx context.Context, info *requestInfo) context.Context {
	return context.WithValue(ctx, requestInfoContextKey, info)
}

func requestInfoFromContext(ctx context.Context) (*requestInfo, bool) {
	info, ok := ctx.Value(requestInfoContextKey).(*requestInfo)
	return info, ok && info != nil
}

func requestIDFromContext(ctx context.Context) string {
	if info, ok := requestInfoFromContext(ctx); ok {
		return info.ID
	}
	return ""
}

func routeFromContext(ctx context.Context) string {
	if info, ok := requestInfoFromContext(ctx); ok && info.Route != "" {
		return info.Route
	}
	return "unmatched"
}
