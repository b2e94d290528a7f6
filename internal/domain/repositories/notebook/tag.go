package notebook

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_tag_repository.go -package=mocks nicenote/internal/domain/repositories/notebook TagRepository

import (
	"context"

	"nicenote/internal/domain/models/notebook"
)

// TagRepository defines data access operations for tags and note/tag associations
type TagRepository interface {
	// Create creates a new tag; a duplicate name yields a *domain.ConflictError
	Create(ctx context.Context, tag *notebook.Tag) error

	// GetByID retrieves a tag by ID
	GetByID(ctx context.Context, id string) (*notebook.Tag, error)

	// GetByName retrieves a tag by its unique name
	GetByName(ctx context.Context, name string) (*notebook.Tag, error)

	// Update updates name and color
	Update(ctx context.Context, tag *notebook.Tag) error

	// Delete deletes a tag and its associations
	Delete(ctx context.Context, id string) error

	// List returns all tags ordered by name
	List(ctx context.Context) ([]notebook.Tag, error)

	// NoteIDs returns the ids of notes carrying the tag
	NoteIDs(ctx context.Context, tagID string) ([]string, error)

	// ListForNote returns the tags attached to a note, ordered by name
	ListForNote(ctx context.Context, noteID string) ([]notebook.Tag, error)

	// Attach links a tag to a note; attaching twice is a no-op
	Attach(ctx context.Context, noteID, tagID string) error

	// Detach unlinks a tag from a note; returns domain.ErrNotFound when not linked
	Detach(ctx context.Context, noteID, tagID string) error
}
