package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"nicenote/internal/domain"
	"nicenote/internal/httputil"
)

// handleError converts domain errors to localized RFC 7807 responses
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var (
		conflictErr *domain.ConflictError
		notFoundErr *domain.NotFoundError
	)
	locale := httputil.GetLocale(r)

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFoundErr):
		httputil.RespondErrorWithExtras(w, http.StatusNotFound, httputil.Localize(locale, httputil.MsgNotFound),
			map[string]any{"resource": notFoundErr.Resource})
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, httputil.Localize(locale, httputil.MsgNotFound))
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(),
			map[string]any{"resourceType": conflictErr.ResourceType, "resourceId": conflictErr.ResourceID})
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", httputil.GetRequestID(r),
			"error", err,
		)
		httputil.RespondError(w, http.StatusInternalServerError, httputil.Localize(locale, httputil.MsgInternalServerError))
	}
}

// HandleCreateConflict answers a create conflict with 409 and the existing resource.
// Other errors go through handleError.
func HandleCreateConflict[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, fetchFn func(id string) (*T, error)) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) && conflictErr.ResourceID != "" {
		existing, fetchErr := fetchFn(conflictErr.ResourceID)
		if fetchErr != nil {
			handleError(w, r, logger, fetchErr)
			return
		}
		httputil.RespondJSON(w, http.StatusConflict, existing)
		return
	}

	handleError(w, r, logger, err)
}

// listResponse wraps collections as {"data": [...]}
type listResponse[T any] struct {
	Data []T `json:"data"`
}

func list[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Data: items}
}
