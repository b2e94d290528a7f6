package notebook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"
	notebookRepo "nicenote/internal/domain/repositories/notebook"
)

// DefaultReconcileBatch bounds how many drifted notes one pass re-indexes.
const DefaultReconcileBatch = 500

// Reconciler repairs the search index against the notes table.
type Reconciler struct {
	notes     notebookRepo.NoteRepository
	index     notebookRepo.SearchIndexRepository
	sync      *IndexSynchronizer
	batchSize int
	logger    *slog.Logger
}

// NewReconciler creates a reconciler working in batches of DefaultReconcileBatch
func NewReconciler(
	notes notebookRepo.NoteRepository,
	index notebookRepo.SearchIndexRepository,
	sync *IndexSynchronizer,
	logger *slog.Logger,
) *Reconciler {
	return &Reconciler{
		notes:     notes,
		index:     index,
		sync:      sync,
		batchSize: DefaultReconcileBatch,
		logger:    logger,
	}
}

// Reconcile removes orphaned index rows, then re-indexes notes whose row is missing or
// stale. Failures on individual notes are counted, not returned.
func (r *Reconciler) Reconcile(ctx context.Context) (*models.ReconcileReport, error) {
	report := &models.ReconcileReport{}

	removed, err := r.index.DeleteOrphans(ctx)
	if err != nil {
		return nil, err
	}
	report.OrphansRemoved = removed

	ids, err := r.index.ListDrifted(ctx, r.batchSize)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		note, err := r.notes.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err == nil {
			err = r.sync.Reindex(ctx, note)
		}
		if err != nil {
			report.Failed++
			r.logger.Warn("reindex failed", "note_id", id, "error", err)
			continue
		}
		report.Reindexed++
	}

	return report, nil
}

// Run reconciles once immediately and then every interval until ctx ends.
// A failed pass is logged and retried on the next tick.
func (r *Reconciler) Run(ctx context.Context, interval time.Duration) error {
	r.logger.Info("search index reconciler started", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		r.pass(ctx)

		select {
		case <-ctx.Done():
			r.logger.Info("search index reconciler stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (r *Reconciler) pass(ctx context.Context) {
	report, err := r.Reconcile(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Error("search index reconcile failed", "error", err)
		}
		return
	}
	if report.OrphansRemoved > 0 || report.Reindexed > 0 || report.Failed > 0 {
		r.logger.Info("search index reconciled",
			"orphans_removed", report.OrphansRemoved,
			"reindexed", report.Reindexed,
			"failed", report.Failed,
		)
	}
}

// Rebuild empties the index and re-indexes every note, walking the notes table one
// keyset page at a time.
func (r *Reconciler) Rebuild(ctx context.Context) (*models.ReconcileReport, error) {
	if err := r.index.Truncate(ctx); err != nil {
		return nil, err
	}

	report := &models.ReconcileReport{}
	q := &models.NoteListQuery{Fetch: r.batchSize + 1}

	for {
		rows, err := r.notes.List(ctx, q)
		if err != nil {
			return report, fmt.Errorf("list notes for rebuild: %w", err)
		}
		page := models.NewNotePage(rows, r.batchSize)

		for _, item := range page.Data {
			note, err := r.notes.GetByID(ctx, item.ID)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err == nil {
				err = r.sync.Reindex(ctx, note)
			}
			if err != nil {
				report.Failed++
				r.logger.Warn("reindex failed", "note_id", item.ID, "error", err)
				continue
			}
			report.Reindexed++
		}

		next := page.Next()
		if next == nil {
			break
		}
		q.CursorUpdatedAt = &next.UpdatedAt
		q.CursorID = &next.ID
	}

	r.logger.Info("search index rebuilt", "reindexed", report.Reindexed, "failed", report.Failed)
	return report, nil
}
