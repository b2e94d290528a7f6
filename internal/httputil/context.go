package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	requestIDKey contextKey = "requestID"
	localeKey    contextKey = "locale"
)

// WithRequestID adds the request id to the request context
func WithRequestID(r *http.Request, requestID string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDKey, requestID)
	return r.WithContext(ctx)
}

// GetRequestID retrieves the request id, returns empty string if not found
func GetRequestID(r *http.Request) string {
	requestID, _ := r.Context().Value(requestIDKey).(string)
	return requestID
}

// WithLocale stores the negotiated response locale
func WithLocale(r *http.Request, locale string) *http.Request {
	ctx := context.WithValue(r.Context(), localeKey, locale)
	return r.WithContext(ctx)
}

// GetLocale returns the negotiated locale, or the Accept-Language match when no
// middleware ran
func GetLocale(r *http.Request) string {
	if locale, ok := r.Context().Value(localeKey).(string); ok {
		return locale
	}
	return ResolveLocale(r.Header.Get("Accept-Language"))
}
