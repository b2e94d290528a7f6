package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"nicenote/internal/handler"
	"nicenote/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Health *handler.HealthHandler
	Note   *handler.NoteHandler
	Folder *handler.FolderHandler
	Tag    *handler.TagHandler
}

// NewRouter registers every route and wraps the mux in the middleware chain.
// Order: CORS → Locale → RequestLogger → Recovery → Routes
func NewRouter(h *Handlers, corsOrigins string, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.Health.Root)
	mux.HandleFunc("GET /health", h.Health.Health)

	// Notes
	mux.HandleFunc("GET /notes", h.Note.ListNotes)
	mux.HandleFunc("POST /notes", h.Note.CreateNote)
	mux.HandleFunc("GET /notes/search", h.Note.SearchNotes) // Must come before {id} route
	mux.HandleFunc("POST /notes/import", h.Note.ImportNote)
	mux.HandleFunc("GET /notes/{id}", h.Note.GetNote)
	mux.HandleFunc("PATCH /notes/{id}", h.Note.UpdateNote)
	mux.HandleFunc("DELETE /notes/{id}", h.Note.DeleteNote)
	mux.HandleFunc("GET /notes/{id}/export", h.Note.ExportNote)

	// Note tags
	mux.HandleFunc("GET /notes/{id}/tags", h.Tag.ListNoteTags)
	mux.HandleFunc("POST /notes/{id}/tags/{tagId}", h.Tag.AddTagToNote)
	mux.HandleFunc("DELETE /notes/{id}/tags/{tagId}", h.Tag.RemoveTagFromNote)

	// Folders
	mux.HandleFunc("GET /folders", h.Folder.ListFolders)
	mux.HandleFunc("POST /folders", h.Folder.CreateFolder)
	mux.HandleFunc("GET /folders/{id}", h.Folder.GetFolder)
	mux.HandleFunc("PATCH /folders/{id}", h.Folder.UpdateFolder)
	mux.HandleFunc("DELETE /folders/{id}", h.Folder.DeleteFolder)

	// Tags
	mux.HandleFunc("GET /tags", h.Tag.ListTags)
	mux.HandleFunc("POST /tags", h.Tag.CreateTag)
	mux.HandleFunc("GET /tags/{id}", h.Tag.GetTag)
	mux.HandleFunc("PATCH /tags/{id}", h.Tag.UpdateTag)
	mux.HandleFunc("DELETE /tags/{id}", h.Tag.DeleteTag)

	// Apply middleware in reverse order (they wrap each other)
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)
	root = middleware.RequestLogger(logger)(root)
	root = middleware.Locale(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(corsOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Accept-Language", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(root)
}
