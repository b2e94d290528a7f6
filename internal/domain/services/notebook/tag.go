package notebook

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_tag_service.go -package=mocks nicenote/internal/domain/services/notebook TagService

import (
	"context"

	"nicenote/internal/domain/models/notebook"
)

// TagService handles tags and their attachment to notes
type TagService interface {
	ListTags(ctx context.Context) ([]notebook.Tag, error)
	GetTag(ctx context.Context, id string) (*notebook.Tag, error)
	CreateTag(ctx context.Context, req *CreateTagRequest) (*notebook.Tag, error)
	UpdateTag(ctx context.Context, id string, req *UpdateTagRequest) (*notebook.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	ListNoteTags(ctx context.Context, noteID string) ([]notebook.Tag, error)
	AddTagToNote(ctx context.Context, noteID, tagID string) error
	RemoveTagFromNote(ctx context.Context, noteID, tagID string) error
}

// CreateTagRequest represents a tag creation request
type CreateTagRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

// UpdateTagRequest represents a tag update request
type UpdateTagRequest struct {
	Name  *string                   `json:"name,omitempty"`
	Color notebook.Optional[string] `json:"color,omitzero"` // null clears the color
}
