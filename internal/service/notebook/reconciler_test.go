package notebook

import (
	"context"
	"errors"
	"testing"
	"time"

	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"

	"go.uber.org/mock/gomock"
)

func TestReconciler_Reconcile(t *testing.T) {
	f := newFixture(t)
	r := NewReconciler(f.notes, f.index, f.sync, discardLogger())

	f.index.EXPECT().DeleteOrphans(gomock.Any()).Return(int64(2), nil)
	f.index.EXPECT().ListDrifted(gomock.Any(), DefaultReconcileBatch).Return([]string{"n1", "gone", "bad"}, nil)
	f.notes.EXPECT().GetByID(gomock.Any(), "n1").Return(existingNote(), nil)
	f.notes.EXPECT().GetByID(gomock.Any(), "gone").Return(nil, domain.NewNotFound("note", "gone"))
	f.notes.EXPECT().GetByID(gomock.Any(), "bad").Return(&models.Note{ID: "bad", Title: "b"}, nil)
	f.index.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *models.SearchIndexEntry) error {
		if e.ID == "bad" {
			return errors.New("write failed")
		}
		if !e.SourceUpdatedAt.Equal(t0) {
			t.Errorf("SourceUpdatedAt = %v, want %v", e.SourceUpdatedAt, t0)
		}
		return nil
	}).Times(2)

	report, err := r.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	want := models.ReconcileReport{OrphansRemoved: 2, Reindexed: 1, Failed: 1}
	if *report != want {
		t.Errorf("report = %+v, want %+v", *report, want)
	}
}

func TestReconciler_ReconcileOrphanError(t *testing.T) {
	f := newFixture(t)
	r := NewReconciler(f.notes, f.index, f.sync, discardLogger())

	f.index.EXPECT().DeleteOrphans(gomock.Any()).Return(int64(0), errors.New("db down"))

	if _, err := r.Reconcile(context.Background()); err == nil {
		t.Fatal("Reconcile() expected error")
	}
}

func TestReconciler_Rebuild(t *testing.T) {
	f := newFixture(t)
	r := NewReconciler(f.notes, f.index, f.sync, discardLogger())
	r.batchSize = 2

	rows := []models.NoteListItem{
		{ID: "c", UpdatedAt: t1},
		{ID: "b", UpdatedAt: t1},
		{ID: "a", UpdatedAt: t0},
	}

	f.index.EXPECT().Truncate(gomock.Any()).Return(nil)
	gomock.InOrder(
		f.notes.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q *models.NoteListQuery) ([]models.NoteListItem, error) {
			if q.CursorUpdatedAt != nil || q.Fetch != 3 {
				t.Errorf("first page query = %+v", q)
			}
			return rows, nil
		}),
		f.notes.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q *models.NoteListQuery) ([]models.NoteListItem, error) {
			if q.CursorUpdatedAt == nil || !q.CursorUpdatedAt.Equal(t1) || *q.CursorID != "b" {
				t.Errorf("second page cursor = %v/%v, want %v/b", q.CursorUpdatedAt, q.CursorID, t1)
			}
			return rows[2:], nil
		}),
	)
	f.notes.EXPECT().GetByID(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id string) (*models.Note, error) {
		return &models.Note{ID: id, Title: id, UpdatedAt: t0}, nil
	}).Times(3)
	f.index.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	report, err := r.Rebuild(context.Background())
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}
	if report.Reindexed != 3 || report.Failed != 0 {
		t.Errorf("report = %+v, want 3 reindexed", *report)
	}
}

func TestReconciler_RunStopsWithContext(t *testing.T) {
	f := newFixture(t)
	r := NewReconciler(f.notes, f.index, f.sync, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	f.index.EXPECT().DeleteOrphans(gomock.Any()).DoAndReturn(func(context.Context) (int64, error) {
		cancel()
		return 0, nil
	})
	f.index.EXPECT().ListDrifted(gomock.Any(), gomock.Any()).Return(nil, nil)

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, time.Hour) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
