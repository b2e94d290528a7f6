package handler

import (
	"net/http"

	"nicenote/internal/httputil"
)

// HealthHandler reports liveness and search index write failures
type HealthHandler struct {
	indexFailures func() int64
}

// NewHealthHandler creates a health handler; indexFailures may be nil
func NewHealthHandler(indexFailures func() int64) *HealthHandler {
	return &HealthHandler{indexFailures: indexFailures}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok"}
	if h.indexFailures != nil {
		resp["indexWriteFailures"] = h.indexFailures()
	}
	httputil.RespondJSON(w, http.StatusOK, resp)
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Nicenote API is running",
	})
}
