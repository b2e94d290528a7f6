package handler

import (
	"log/slog"
	"net/http"

	models "nicenote/internal/domain/models/notebook"
	svc "nicenote/internal/domain/services/notebook"
	"nicenote/internal/httputil"
)

// TagHandler handles tag and note-tag HTTP requests
type TagHandler struct {
	tagService svc.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService svc.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// ListTags returns every tag
// GET /tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListTags(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, list(tags))
}

// GetTag retrieves a tag
// GET /tags/{id}
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	tag, err := h.tagService.GetTag(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tag)
}

// CreateTag creates a tag
// POST /tags
// Returns 409 with the existing tag when the name is taken
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req svc.CreateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), &req)
	if err != nil {
		HandleCreateConflict(w, r, h.logger, err, func(id string) (*models.Tag, error) {
			return h.tagService.GetTag(r.Context(), id)
		})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tag)
}

// UpdateTag renames or recolors a tag
// PATCH /tags/{id}
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req svc.UpdateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tag, err := h.tagService.UpdateTag(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tag)
}

// DeleteTag deletes a tag
// DELETE /tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	if err := h.tagService.DeleteTag(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w)
}

// ListNoteTags returns the tags on a note
// GET /notes/{id}/tags
func (h *TagHandler) ListNoteTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListNoteTags(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, list(tags))
}

// AddTagToNote attaches a tag to a note
// POST /notes/{id}/tags/{tagId}
func (h *TagHandler) AddTagToNote(w http.ResponseWriter, r *http.Request) {
	if err := h.tagService.AddTagToNote(r.Context(), r.PathValue("id"), r.PathValue("tagId")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w)
}

// RemoveTagFromNote detaches a tag from a note
// DELETE /notes/{id}/tags/{tagId}
func (h *TagHandler) RemoveTagFromNote(w http.ResponseWriter, r *http.Request) {
	if err := h.tagService.RemoveTagFromNote(r.Context(), r.PathValue("id"), r.PathValue("tagId")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w)
}
