package notebook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nicenote/internal/config"
	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"
	notebookRepo "nicenote/internal/domain/repositories/notebook"
	svc "nicenote/internal/domain/services/notebook"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type folderService struct {
	folderRepo notebookRepo.FolderRepository
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(folderRepo notebookRepo.FolderRepository, logger *slog.Logger) svc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		logger:     logger,
	}
}

func (s *folderService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	return s.folderRepo.List(ctx)
}

func (s *folderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// CreateFolder creates a folder under an existing parent, or at root
func (s *folderService) CreateFolder(ctx context.Context, req *svc.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.ParentID = emptyToNil(req.ParentID)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.ParentID != nil {
		if err := s.requireFolder(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	}

	now := models.Timestamp(time.Now())
	folder := &models.Folder{
		ID:        uuid.NewString(),
		Name:      req.Name,
		ParentID:  req.ParentID,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// UpdateFolder renames, moves or reorders a folder
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *svc.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}
	if req.Position != nil {
		folder.Position = *req.Position
	}
	if req.ParentID.Present {
		parentID := emptyToNil(req.ParentID.Value)
		if parentID != nil {
			if err := s.validateNoCircularReference(ctx, id, *parentID); err != nil {
				return nil, err
			}
		}
		folder.ParentID = parentID
	}

	folder.UpdatedAt = models.Timestamp(time.Now())
	if folder.UpdatedAt.Before(folder.CreatedAt) {
		folder.UpdatedAt = folder.CreatedAt
	}

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// DeleteFolder deletes a folder and its descendants. Notes inside move to root.
func (s *folderService) DeleteFolder(ctx context.Context, id string) error {
	if err := s.folderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", id)
	return nil
}

func (s *folderService) requireFolder(ctx context.Context, id string) error {
	exists, err := s.folderRepo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewNotFound("folder", id)
	}
	return nil
}

// validateNoCircularReference ensures moving a folder won't create a cycle
func (s *folderService) validateNoCircularReference(ctx context.Context, folderID, newParentID string) error {
	if folderID == newParentID {
		return fmt.Errorf("%w: cannot move folder to be its own parent", domain.ErrValidation)
	}

	if err := s.requireFolder(ctx, newParentID); err != nil {
		return err
	}

	descendant, err := s.folderRepo.IsDescendant(ctx, folderID, newParentID)
	if err != nil {
		return err
	}
	if descendant {
		return fmt.Errorf("%w: cannot move folder into one of its descendants", domain.ErrValidation)
	}
	return nil
}

func (s *folderService) validateCreateRequest(req *svc.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.RuneLength(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Position, validation.Min(0)),
	)
}

func (s *folderService) validateUpdateRequest(req *svc.UpdateFolderRequest) error {
	// At least one field must be provided
	if req.Name == nil && !req.ParentID.Present && req.Position == nil {
		return fmt.Errorf("at least one of name, parentId, position is required")
	}

	var rules []*validation.FieldRules
	if req.Name != nil {
		rules = append(rules,
			validation.Field(&req.Name,
				validation.Required,
				validation.RuneLength(1, config.MaxFolderNameLength),
			),
		)
	}
	if req.Position != nil {
		rules = append(rules, validation.Field(&req.Position, validation.Min(0)))
	}

	return validation.ValidateStruct(req, rules...)
}
