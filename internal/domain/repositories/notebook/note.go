package notebook

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_repository.go -package=mocks nicenote/internal/domain/repositories/notebook NoteRepository

import (
	"context"

	"nicenote/internal/domain/models/notebook"
)

// NoteRepository defines data access operations for notes
type NoteRepository interface {
	// Create inserts a note with caller-assigned ID and timestamps
	Create(ctx context.Context, note *notebook.Note) error

	// GetByID retrieves a note by ID
	GetByID(ctx context.Context, id string) (*notebook.Note, error)

	// Update writes title, content, summary, folder and updated_at of an existing note
	Update(ctx context.Context, note *notebook.Note) error

	// Delete deletes a note
	Delete(ctx context.Context, id string) error

	// List returns up to q.Fetch list items in (updated_at DESC, id DESC) order
	List(ctx context.Context, q *notebook.NoteListQuery) ([]notebook.NoteListItem, error)
}
