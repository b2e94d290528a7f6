package notebook

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_service.go -package=mocks nicenote/internal/domain/services/notebook NoteService

import (
	"context"
	"time"

	"nicenote/internal/domain/models/notebook"
)

// NoteService handles note business logic. It is the only writer of the notes table
// and of the search index.
type NoteService interface {
	// CreateNote creates a note and mirrors it into the search index
	CreateNote(ctx context.Context, req *CreateNoteRequest) (*notebook.Note, error)

	// GetNote retrieves a note by ID
	GetNote(ctx context.Context, id string) (*notebook.Note, error)

	// UpdateNote applies a partial update; at least one field must be present
	UpdateNote(ctx context.Context, id string, patch *notebook.NotePatch) (*notebook.Note, error)

	// DeleteNote deletes a note and its index row
	DeleteNote(ctx context.Context, id string) error

	// ListNotes returns one keyset page of notes
	ListNotes(ctx context.Context, req *ListNotesRequest) (*notebook.NotePage, error)

	// SearchNotes runs a full-text search over the index
	SearchNotes(ctx context.Context, req *SearchNotesRequest) ([]notebook.SearchHit, error)

	// ExportNote renders a note as markdown with YAML frontmatter
	ExportNote(ctx context.Context, id string) ([]byte, error)

	// ImportNote creates a note from a markdown document
	ImportNote(ctx context.Context, req *ImportNoteRequest) (*notebook.Note, error)
}

// CreateNoteRequest represents a note creation request
type CreateNoteRequest struct {
	Title    string  `json:"title"`
	Content  *string `json:"content"`
	FolderID *string `json:"folderId,omitempty"`
}

// ListNotesRequest represents a list request decoded from the query string
type ListNotesRequest struct {
	Cursor   *time.Time // updatedAt of the last row already seen
	CursorID *string    // id of the last row already seen
	Limit    int        // default 50, max 100
	FolderID *string
	TagID    *string
}

// SearchNotesRequest represents a search request
type SearchNotesRequest struct {
	Query string
	Limit int
}

// ImportNoteRequest carries a markdown document to import
type ImportNoteRequest struct {
	Markdown []byte
	Filename string  // used as the title when the document has none
	FolderID *string // overrides any folder named in frontmatter
}
