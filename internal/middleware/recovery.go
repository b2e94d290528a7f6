package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"nicenote/internal/httputil"
)

// Recovery middleware recovers from panics and returns a localized 500 error
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
						"method", r.Method,
						"request_id", httputil.GetRequestID(r),
						"stack", string(debug.Stack()),
					)

					httputil.RespondError(w, http.StatusInternalServerError,
						httputil.Localize(httputil.GetLocale(r), httputil.MsgInternalServerError))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
