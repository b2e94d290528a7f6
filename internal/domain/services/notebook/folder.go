package notebook

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_folder_service.go -package=mocks nicenote/internal/domain/services/notebook FolderService

import (
	"context"

	"nicenote/internal/domain/models/notebook"
)

// FolderService handles folder business logic
type FolderService interface {
	ListFolders(ctx context.Context) ([]notebook.Folder, error)
	GetFolder(ctx context.Context, id string) (*notebook.Folder, error)
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*notebook.Folder, error)
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*notebook.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId,omitempty"` // nil for root
	Position *int    `json:"position,omitempty"`
}

// UpdateFolderRequest represents a folder update (rename, move, reorder)
type UpdateFolderRequest struct {
	Name     *string                   `json:"name,omitempty"`
	ParentID notebook.Optional[string] `json:"parentId,omitzero"` // null moves to root
	Position *int                      `json:"position,omitempty"`
}
