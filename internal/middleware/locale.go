package middleware

import (
	"net/http"

	"nicenote/internal/httputil"
)

// Locale negotiates the response language from Accept-Language once per request
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale := httputil.ResolveLocale(r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", locale)
		next.ServeHTTP(w, httputil.WithLocale(r, locale))
	})
}
