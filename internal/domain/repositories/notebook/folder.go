package notebook

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_folder_repository.go -package=mocks nicenote/internal/domain/repositories/notebook FolderRepository

import (
	"context"

	"nicenote/internal/domain/models/notebook"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *notebook.Folder) error

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id string) (*notebook.Folder, error)

	// Exists reports whether a folder exists
	Exists(ctx context.Context, id string) (bool, error)

	// Update updates name, parent, position and updated_at
	Update(ctx context.Context, folder *notebook.Folder) error

	// Delete deletes a folder and, through the schema, its descendants
	Delete(ctx context.Context, id string) error

	// List returns all folders ordered by position, then creation time
	List(ctx context.Context) ([]notebook.Folder, error)

	// IsDescendant reports whether candidateID is ancestorID or lies beneath it
	IsDescendant(ctx context.Context, ancestorID, candidateID string) (bool, error)
}
