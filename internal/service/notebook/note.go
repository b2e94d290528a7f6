package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"nicenote/internal/config"
	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"
	"nicenote/internal/domain/repositories"
	notebookRepo "nicenote/internal/domain/repositories/notebook"
	svc "nicenote/internal/domain/services/notebook"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// noteService implements the NoteService interface
type noteService struct {
	noteRepo   notebookRepo.NoteRepository
	folderRepo notebookRepo.FolderRepository
	tagRepo    notebookRepo.TagRepository
	txManager  repositories.TransactionManager
	index      *IndexSynchronizer
	analyzer   svc.ContentAnalyzer
	logger     *slog.Logger
	now        func() time.Time
}

// NewNoteService creates a new note service
func NewNoteService(
	noteRepo notebookRepo.NoteRepository,
	folderRepo notebookRepo.FolderRepository,
	tagRepo notebookRepo.TagRepository,
	txManager repositories.TransactionManager,
	index *IndexSynchronizer,
	analyzer svc.ContentAnalyzer,
	logger *slog.Logger,
) svc.NoteService {
	return &noteService{
		noteRepo:   noteRepo,
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
		txManager:  txManager,
		index:      index,
		analyzer:   analyzer,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateNote creates a note and its index row in one transaction
func (s *noteService) CreateNote(ctx context.Context, req *svc.CreateNoteRequest) (*models.Note, error) {
	return s.createNote(ctx, req, nil)
}

// createNote runs then, when set, in the transaction that inserts the note, so a
// failure there leaves no note behind.
func (s *noteService) createNote(ctx context.Context, req *svc.CreateNoteRequest, then func(txCtx context.Context, note *models.Note) error) (*models.Note, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = models.DefaultNoteTitle
	}
	content := ""
	if req.Content != nil {
		content = *req.Content
	}

	if err := validateNoteFields(&title, &content); err != nil {
		return nil, err
	}

	folderID, err := s.resolveFolder(ctx, req.FolderID)
	if err != nil {
		return nil, err
	}

	now := models.Timestamp(s.now())
	note := &models.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   &content,
		Summary:   s.analyzer.Summary(content),
		FolderID:  folderID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.noteRepo.Create(txCtx, note); err != nil {
			return err
		}
		s.index.OnCreate(txCtx, note)
		if then != nil {
			return then(txCtx, note)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("note created",
		"id", note.ID,
		"folder_id", folderID,
	)

	return note, nil
}

// GetNote retrieves a note
func (s *noteService) GetNote(ctx context.Context, id string) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, id)
}

// UpdateNote applies a partial update. A content change re-derives the summary; the
// timestamp advances once per call and never falls behind createdAt.
func (s *noteService) UpdateNote(ctx context.Context, id string, patch *models.NotePatch) (*models.Note, error) {
	if patch == nil || patch.IsEmpty() {
		return nil, &domain.ValidationError{Message: "at least one of title, content, folderId is required"}
	}

	var title *string
	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			t = models.DefaultNoteTitle
		}
		title = &t
	}
	var content *string
	if patch.Content.Present {
		content = patch.Content.Value
	}
	if err := validateNoteFields(title, content); err != nil {
		return nil, err
	}

	var folderID *string
	if patch.FolderID.Present {
		resolved, err := s.resolveFolder(ctx, patch.FolderID.Value)
		if err != nil {
			return nil, err
		}
		folderID = resolved
	}

	var note *models.Note
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		current, err := s.noteRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		var changes IndexChanges
		if title != nil {
			changes.Title = current.Title != *title
			current.Title = *title
		}
		if patch.Content.Present {
			changes.Content = deref(current.Content) != deref(content)
			current.Content = content
			current.Summary = s.analyzer.Summary(deref(content))
		}
		if patch.FolderID.Present {
			current.FolderID = folderID
		}

		current.UpdatedAt = nextUpdatedAt(current, s.now())

		if err := s.noteRepo.Update(txCtx, current); err != nil {
			return err
		}
		s.index.OnUpdate(txCtx, current, changes)

		note = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("note updated",
		"id", note.ID,
		"fields", patch.Fields(),
	)

	return note, nil
}

// DeleteNote deletes a note and its index row
func (s *noteService) DeleteNote(ctx context.Context, id string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.noteRepo.Delete(txCtx, id); err != nil {
			return err
		}
		s.index.OnDelete(txCtx, id)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("note deleted", "id", id)
	return nil
}

// ListNotes returns one page in (updatedAt DESC, id DESC) order. A tag filter is
// resolved to note ids first; a tag with no notes short-circuits to an empty page.
func (s *noteService) ListNotes(ctx context.Context, req *svc.ListNotesRequest) (*models.NotePage, error) {
	if req.CursorID != nil && req.Cursor == nil {
		return nil, &domain.ValidationError{Message: "cursorId requires cursor"}
	}

	limit := req.Limit
	switch {
	case limit == 0:
		limit = models.DefaultListLimit
	case limit < 1:
		limit = 1
	case limit > models.MaxListLimit:
		limit = models.MaxListLimit
	}

	q := &models.NoteListQuery{
		FolderID: emptyToNil(req.FolderID),
		Fetch:    limit + 1,
	}
	if req.Cursor != nil {
		cursor := models.Timestamp(*req.Cursor)
		q.CursorUpdatedAt = &cursor
		q.CursorID = req.CursorID
	}

	if tagID := emptyToNil(req.TagID); tagID != nil {
		ids, err := s.tagRepo.NoteIDs(ctx, *tagID)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return models.EmptyNotePage(), nil
		}
		q.NoteIDs = ids
	}

	rows, err := s.noteRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return models.NewNotePage(rows, limit), nil
}

// SearchNotes runs a full-text search
func (s *noteService) SearchNotes(ctx context.Context, req *svc.SearchNotesRequest) ([]models.SearchHit, error) {
	return s.index.Search(ctx, &models.SearchOptions{
		Query: req.Query,
		Limit: req.Limit,
	})
}

// ExportNote renders the note as markdown with a YAML header
func (s *noteService) ExportNote(ctx context.Context, id string) ([]byte, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.ListForNote(ctx, id)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	return renderMarkdown(&noteFrontmatter{
		ID:        note.ID,
		Title:     note.Title,
		FolderID:  note.FolderID,
		Tags:      names,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}, deref(note.Content))
}

// ImportNote creates a note from a markdown document. The title comes from the
// frontmatter, else the first "# " heading, else the file name. Tags named in the
// frontmatter are attached when a tag of that name exists.
func (s *noteService) ImportNote(ctx context.Context, req *svc.ImportNoteRequest) (*models.Note, error) {
	if len(req.Markdown) > config.MaxImportSize {
		return nil, &domain.ValidationError{Message: fmt.Sprintf("document exceeds %d bytes", config.MaxImportSize)}
	}

	fm, body, err := splitFrontmatter(req.Markdown)
	if err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	heading, rest := takeHeading(body)
	title := strings.TrimSpace(fm.Title)
	switch {
	case title != "":
		if heading == title {
			body = rest
		}
	case heading != "":
		title = heading
		body = rest
	case req.Filename != "":
		base := filepath.Base(req.Filename)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	folderID := req.FolderID
	if folderID == nil {
		folderID = fm.FolderID
	}

	content := strings.TrimRight(body, "\r\n")
	note, err := s.createNote(ctx, &svc.CreateNoteRequest{
		Title:    title,
		Content:  &content,
		FolderID: folderID,
	}, func(txCtx context.Context, note *models.Note) error {
		for _, name := range fm.Tags {
			tag, err := s.tagRepo.GetByName(txCtx, strings.TrimSpace(name))
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Debug("import skipped unknown tag", "note_id", note.ID, "tag", name)
				continue
			}
			if err != nil {
				return err
			}
			if err := s.tagRepo.Attach(txCtx, note.ID, tag.ID); err != nil {
				return fmt.Errorf("attach tag %s: %w", tag.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("note imported",
		"id", note.ID,
		"filename", req.Filename,
		"tags", len(fm.Tags),
	)

	return note, nil
}

// resolveFolder normalizes an empty id to root and checks that a named folder exists
func (s *noteService) resolveFolder(ctx context.Context, folderID *string) (*string, error) {
	folderID = emptyToNil(folderID)
	if folderID == nil {
		return nil, nil
	}
	exists, err := s.folderRepo.Exists(ctx, *folderID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFound("folder", *folderID)
	}
	return folderID, nil
}

// nextUpdatedAt returns the new updated_at for note: now, but never earlier than the
// note's current timestamps.
func nextUpdatedAt(note *models.Note, now time.Time) time.Time {
	next := models.Timestamp(now)
	if next.Before(note.UpdatedAt) {
		next = note.UpdatedAt
	}
	if next.Before(note.CreatedAt) {
		next = note.CreatedAt
	}
	return next
}

func validateNoteFields(title, content *string) error {
	err := validation.Errors{
		"title":   validation.Validate(title, validation.RuneLength(1, config.MaxNoteTitleLength)),
		"content": validation.Validate(content, validation.RuneLength(0, config.MaxNoteContentLength)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
