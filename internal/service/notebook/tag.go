package notebook

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
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

var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type tagService struct {
	tagRepo  notebookRepo.TagRepository
	noteRepo notebookRepo.NoteRepository
	logger   *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(
	tagRepo notebookRepo.TagRepository,
	noteRepo notebookRepo.NoteRepository,
	logger *slog.Logger,
) svc.TagService {
	return &tagService{
		tagRepo:  tagRepo,
		noteRepo: noteRepo,
		logger:   logger,
	}
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

func (s *tagService) GetTag(ctx context.Context, id string) (*models.Tag, error) {
	return s.tagRepo.GetByID(ctx, id)
}

// CreateTag creates a tag. A duplicate name returns a ConflictError naming the existing tag.
func (s *tagService) CreateTag(ctx context.Context, req *svc.CreateTagRequest) (*models.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, config.MaxTagNameLength)),
		validation.Field(&req.Color, validation.Match(tagColorPattern).Error("color must be #RRGGBB")),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tag := &models.Tag{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Color:     req.Color,
		CreatedAt: models.Timestamp(time.Now()),
	}

	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

// UpdateTag renames a tag or changes its color; a null color clears it
func (s *tagService) UpdateTag(ctx context.Context, id string, req *svc.UpdateTagRequest) (*models.Tag, error) {
	if req.Name == nil && !req.Color.Present {
		return nil, &domain.ValidationError{Message: "at least one of name, color is required"}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	err := validation.Errors{
		"name":  validation.Validate(req.Name, validation.NilOrNotEmpty, validation.RuneLength(1, config.MaxTagNameLength)),
		"color": validation.Validate(req.Color.Value, validation.Match(tagColorPattern).Error("color must be #RRGGBB")),
	}.Filter()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		tag.Name = *req.Name
	}
	if req.Color.Present {
		tag.Color = req.Color.Value
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag updated", "id", tag.ID, "name", tag.Name)
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id string) error {
	if err := s.tagRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("tag deleted", "id", id)
	return nil
}

// ListNoteTags returns the tags on a note; an unknown note is a not-found error
func (s *tagService) ListNoteTags(ctx context.Context, noteID string) ([]models.Tag, error) {
	if _, err := s.noteRepo.GetByID(ctx, noteID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListForNote(ctx, noteID)
}

// AddTagToNote attaches a tag; attaching an already attached tag succeeds
func (s *tagService) AddTagToNote(ctx context.Context, noteID, tagID string) error {
	if _, err := s.noteRepo.GetByID(ctx, noteID); err != nil {
		return err
	}
	if _, err := s.tagRepo.GetByID(ctx, tagID); err != nil {
		return err
	}
	if err := s.tagRepo.Attach(ctx, noteID, tagID); err != nil {
		return err
	}
	s.logger.Debug("tag attached", "note_id", noteID, "tag_id", tagID)
	return nil
}

// RemoveTagFromNote detaches a tag; a missing association is a not-found error
func (s *tagService) RemoveTagFromNote(ctx context.Context, noteID, tagID string) error {
	if err := s.tagRepo.Detach(ctx, noteID, tagID); err != nil {
		return err
	}
	s.logger.Debug("tag detached", "note_id", noteID, "tag_id", tagID)
	return nil
}
