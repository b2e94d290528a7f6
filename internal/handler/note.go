package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"nicenote/internal/config"
	models "nicenote/internal/domain/models/notebook"
	svc "nicenote/internal/domain/services/notebook"
	"nicenote/internal/httputil"
)

// NoteHandler handles note HTTP requests
type NoteHandler struct {
	noteService svc.NoteService
	logger      *slog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService svc.NoteService, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// ListNotes returns one keyset page
// GET /notes?cursor=&cursorId=&limit=&folderId=&tagId=
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	cursor, err := httputil.QueryTime(r, "cursor")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := httputil.QueryInt(r, "limit")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.noteService.ListNotes(r.Context(), &svc.ListNotesRequest{
		Cursor:   cursor,
		CursorID: httputil.QueryString(r, "cursorId"),
		Limit:    limit,
		FolderID: httputil.QueryString(r, "folderId"),
		TagID:    httputil.QueryString(r, "tagId"),
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, page)
}

// SearchNotes runs a full-text search
// GET /notes/search?q=&limit=
func (h *NoteHandler) SearchNotes(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.QueryInt(r, "limit")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	hits, err := h.noteService.SearchNotes(r.Context(), &svc.SearchNotesRequest{
		Query: r.URL.Query().Get("q"),
		Limit: limit,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, list(hits))
}

// GetNote retrieves a note by ID
// GET /notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.GetNote(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// CreateNote creates a note
// POST /notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req svc.CreateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// UpdateNote applies a partial update
// PATCH /notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var patch models.NotePatch
	if err := httputil.ParseJSON(w, r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), r.PathValue("id"), &patch)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote deletes a note
// DELETE /notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.DeleteNote(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w)
}

// ExportNote downloads a note as markdown
// GET /notes/{id}/export
func (h *NoteHandler) ExportNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := h.noteService.ExportNote(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.md"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// ImportNote creates a note from a raw markdown body
// POST /notes/import?folderId=&filename=
func (h *NoteHandler) ImportNote(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, config.MaxImportSize))
	if err != nil {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("document exceeds %d bytes", config.MaxImportSize))
		return
	}

	note, err := h.noteService.ImportNote(r.Context(), &svc.ImportNoteRequest{
		Markdown: body,
		Filename: r.URL.Query().Get("filename"),
		FolderID: httputil.QueryString(r, "folderId"),
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}
