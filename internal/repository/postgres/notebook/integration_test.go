package notebook_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	models "nicenote/internal/domain/models/notebook"
	notebookRepo "nicenote/internal/domain/repositories/notebook"
	svc "nicenote/internal/domain/services/notebook"
	"nicenote/internal/repository/postgres"
	pgnotebook "nicenote/internal/repository/postgres/notebook"
	"nicenote/internal/service/notebook"
)

type stack struct {
	notes      notebookRepo.NoteRepository
	tags       notebookRepo.TagRepository
	index      notebookRepo.SearchIndexRepository
	service    svc.NoteService
	reconciler *notebook.Reconciler
}

// newStack migrates a throwaway table prefix and wires repositories and services
// against it. Skipped unless TEST_DATABASE_URL is set.
func newStack(t *testing.T) *stack {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pool, err := postgres.CreateConnectionPool(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	prefix := "it_" + uuid.NewString()[:8] + "_"
	m, err := postgres.NewMigrator(pool, prefix, logger)
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := m.Up(); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	tables := postgres.NewTableNames(prefix)
	t.Cleanup(func() {
		for range 2 {
			if err := m.Down(); err != nil {
				t.Errorf("migrate down: %v", err)
			}
		}
		m.Close()
		if _, err := pool.Exec(context.Background(), "DROP TABLE IF EXISTS "+tables.SchemaMigrations); err != nil {
			t.Errorf("drop migrations table: %v", err)
		}
	})

	cfg := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	s := &stack{
		notes: pgnotebook.NewNoteRepository(cfg),
		tags:  pgnotebook.NewTagRepository(cfg),
		index: pgnotebook.NewSearchIndexRepository(cfg),
	}
	txManager := postgres.NewTransactionManager(pool, logger)
	analyzer := notebook.NewContentAnalyzer()
	sync := notebook.NewIndexSynchronizer(s.index, txManager, analyzer, models.SearchOptions{}, logger)

	s.service = notebook.NewNoteService(s.notes, pgnotebook.NewFolderRepository(cfg), s.tags, txManager, sync, analyzer, logger)
	s.reconciler = notebook.NewReconciler(s.notes, s.index, sync, logger)
	return s
}

func TestIntegration_KeysetPagesPartitionNotes(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	base := models.Timestamp(time.Now().Add(-time.Hour))
	want := map[string]bool{}
	for i := range 7 {
		// pairs of notes share a timestamp so the id tie-break is exercised
		at := base.Add(time.Duration(i/2) * time.Second)
		note := &models.Note{ID: fmt.Sprintf("note-%02d", i), Title: "n", CreatedAt: at, UpdatedAt: at}
		if err := s.notes.Create(ctx, note); err != nil {
			t.Fatalf("create: %v", err)
		}
		want[note.ID] = true
	}

	seen := map[string]bool{}
	var prev *models.NoteListItem
	req := &svc.ListNotesRequest{Limit: 2}
	for pages := 0; ; pages++ {
		if pages > 10 {
			t.Fatal("pagination did not terminate")
		}
		page, err := s.service.ListNotes(ctx, req)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for i := range page.Data {
			item := page.Data[i]
			if seen[item.ID] {
				t.Fatalf("note %s returned twice", item.ID)
			}
			seen[item.ID] = true
			if prev != nil && (item.UpdatedAt.After(prev.UpdatedAt) ||
				(item.UpdatedAt.Equal(prev.UpdatedAt) && item.ID > prev.ID)) {
				t.Errorf("%s out of order after %s", item.ID, prev.ID)
			}
			prev = &item
		}
		next := page.Next()
		if next == nil {
			break
		}
		req.Cursor, req.CursorID = &next.UpdatedAt, &next.ID
	}

	if len(seen) != len(want) {
		t.Errorf("saw %d notes, want %d", len(seen), len(want))
	}
}

func TestIntegration_SearchFollowsWrites(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	content := "Bring the **quarterly** numbers"
	note, err := s.service.CreateNote(ctx, &svc.CreateNoteRequest{Title: "Planning", Content: &content})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	hits, err := s.service.SearchNotes(ctx, &svc.SearchNotesRequest{Query: "quarter"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != note.ID || !strings.Contains(hits[0].Snippet, "<mark>") {
		t.Fatalf("hits = %+v", hits)
	}

	if _, err := s.service.UpdateNote(ctx, note.ID, &models.NotePatch{Content: models.Some("annual review")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if hits, _ := s.service.SearchNotes(ctx, &svc.SearchNotesRequest{Query: "quarterly"}); len(hits) != 0 {
		t.Errorf("stale content still matches: %+v", hits)
	}
	if hits, _ := s.service.SearchNotes(ctx, &svc.SearchNotesRequest{Query: "annual"}); len(hits) != 1 {
		t.Errorf("updated content not found: %+v", hits)
	}

	if err := s.service.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if hits, _ := s.service.SearchNotes(ctx, &svc.SearchNotesRequest{Query: "planning"}); len(hits) != 0 {
		t.Errorf("deleted note still matches: %+v", hits)
	}
}

func TestIntegration_ReconcileRepairsDrift(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	// written behind the synchronizer's back
	at := models.Timestamp(time.Now())
	body := "lighthouse keeper"
	if err := s.notes.Create(ctx, &models.Note{ID: "unindexed", Title: "Log", Content: &body, CreatedAt: at, UpdatedAt: at}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.index.Upsert(ctx, &models.SearchIndexEntry{ID: "ghost", Title: "ghost", SourceUpdatedAt: at}); err != nil {
		t.Fatalf("upsert orphan: %v", err)
	}

	report, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.OrphansRemoved != 1 || report.Reindexed != 1 || report.Failed != 0 {
		t.Errorf("report = %+v", report)
	}

	hits, err := s.service.SearchNotes(ctx, &svc.SearchNotesRequest{Query: "lighthouse"})
	if err != nil || len(hits) != 1 {
		t.Errorf("hits = %+v, err = %v", hits, err)
	}
}

func TestIntegration_TagFilter(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	a, _ := s.service.CreateNote(ctx, &svc.CreateNoteRequest{Title: "a"})
	if _, err := s.service.CreateNote(ctx, &svc.CreateNoteRequest{Title: "b"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	tag := &models.Tag{ID: uuid.NewString(), Name: "work", CreatedAt: models.Timestamp(time.Now())}
	if err := s.tags.Create(ctx, tag); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	empty := &models.Tag{ID: uuid.NewString(), Name: "empty", CreatedAt: tag.CreatedAt}
	if err := s.tags.Create(ctx, empty); err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if err := s.tags.Attach(ctx, a.ID, tag.ID); err != nil {
		t.Fatalf("attach: %v", err)
	}

	page, err := s.service.ListNotes(ctx, &svc.ListNotesRequest{TagID: &tag.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != a.ID {
		t.Errorf("tagged page = %+v", page.Data)
	}

	page, err = s.service.ListNotes(ctx, &svc.ListNotesRequest{TagID: &empty.ID})
	if err != nil || len(page.Data) != 0 || page.NextCursor != nil {
		t.Errorf("empty tag page = %+v, err = %v", page, err)
	}
}
