package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"
	"nicenote/internal/domain/repositories"
	notebookRepo "nicenote/internal/domain/repositories/notebook"
	svc "nicenote/internal/domain/services/notebook"
)

// IndexChanges tells the synchronizer which searchable fields an update touched.
type IndexChanges struct {
	Title   bool
	Content bool
}

// IndexSynchronizer mirrors note writes into the search index. Mirrors run inside a
// savepoint of the caller's transaction: a failed mirror is rolled back, logged and
// counted while the note write itself still commits. The reconciler repairs the drift.
type IndexSynchronizer struct {
	index     notebookRepo.SearchIndexRepository
	txManager repositories.TransactionManager
	analyzer  svc.ContentAnalyzer
	defaults  models.SearchOptions
	logger    *slog.Logger
	failures  atomic.Int64
}

// NewIndexSynchronizer creates a synchronizer. defaults supplies highlight markers and
// snippet size for searches that leave them unset.
func NewIndexSynchronizer(
	index notebookRepo.SearchIndexRepository,
	txManager repositories.TransactionManager,
	analyzer svc.ContentAnalyzer,
	defaults models.SearchOptions,
	logger *slog.Logger,
) *IndexSynchronizer {
	return &IndexSynchronizer{
		index:     index,
		txManager: txManager,
		analyzer:  analyzer,
		defaults:  defaults,
		logger:    logger,
	}
}

// OnCreate indexes a freshly created note
func (s *IndexSynchronizer) OnCreate(ctx context.Context, note *models.Note) {
	s.mirror(ctx, "create", note.ID, func(ctx context.Context) error {
		return s.index.Upsert(ctx, s.entry(note))
	})
}

// OnUpdate refreshes the fields an update changed. A missing row is rebuilt in full.
func (s *IndexSynchronizer) OnUpdate(ctx context.Context, note *models.Note, changes IndexChanges) {
	s.mirror(ctx, "update", note.ID, func(ctx context.Context) error {
		var err error
		switch {
		case changes.Title && changes.Content:
			return s.index.Upsert(ctx, s.entry(note))
		case changes.Content:
			err = s.index.UpdateContent(ctx, note.ID, s.analyzer.PlainText(deref(note.Content)), note.Summary, note.UpdatedAt)
		case changes.Title:
			err = s.index.UpdateTitle(ctx, note.ID, note.Title, note.UpdatedAt)
		default:
			err = s.index.Touch(ctx, note.ID, note.UpdatedAt)
		}
		if errors.Is(err, domain.ErrNotFound) {
			return s.index.Upsert(ctx, s.entry(note))
		}
		return err
	})
}

// OnDelete removes the note's index row
func (s *IndexSynchronizer) OnDelete(ctx context.Context, id string) {
	s.mirror(ctx, "delete", id, func(ctx context.Context) error {
		return s.index.Delete(ctx, id)
	})
}

// Reindex writes the full row for note outside any savepoint and reports failure
func (s *IndexSynchronizer) Reindex(ctx context.Context, note *models.Note) error {
	return s.index.Upsert(ctx, s.entry(note))
}

// Failures returns the number of mirror writes that failed since startup
func (s *IndexSynchronizer) Failures() int64 {
	return s.failures.Load()
}

// Search sanitizes the query and runs it against the index. A query with no usable
// terms matches nothing.
func (s *IndexSynchronizer) Search(ctx context.Context, opts *models.SearchOptions) ([]models.SearchHit, error) {
	resolved := *opts
	if resolved.HighlightStart == "" {
		resolved.HighlightStart = s.defaults.HighlightStart
	}
	if resolved.HighlightStop == "" {
		resolved.HighlightStop = s.defaults.HighlightStop
	}
	if resolved.SnippetWords == 0 {
		resolved.SnippetWords = s.defaults.SnippetWords
	}
	resolved.ApplyDefaults()

	if err := resolved.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	tsquery := SanitizeQuery(resolved.Query)
	if tsquery == "" {
		return []models.SearchHit{}, nil
	}

	hits, err := s.index.Search(ctx, tsquery, &resolved)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return hits, nil
}

func (s *IndexSynchronizer) mirror(ctx context.Context, op, id string, fn repositories.TxFn) {
	if err := s.txManager.ExecSavepoint(ctx, fn); err != nil {
		total := s.failures.Add(1)
		s.logger.Error("search index write failed",
			"op", op,
			"note_id", id,
			"failures", total,
			"error", err,
		)
	}
}

func (s *IndexSynchronizer) entry(note *models.Note) *models.SearchIndexEntry {
	return &models.SearchIndexEntry{
		ID:              note.ID,
		Title:           note.Title,
		Content:         s.analyzer.PlainText(deref(note.Content)),
		Summary:         note.Summary,
		SourceUpdatedAt: note.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
