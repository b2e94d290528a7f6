package notebook

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"
	svc "nicenote/internal/domain/services/notebook"

	"go.uber.org/mock/gomock"
)

func TestNoteService_CreateNote(t *testing.T) {
	t.Run("defaults title and content", func(t *testing.T) {
		f := newFixture(t)

		f.notes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *models.Note) error {
			if n.Title != models.DefaultNoteTitle {
				t.Errorf("title = %q, want %q", n.Title, models.DefaultNoteTitle)
			}
			if n.Content == nil || *n.Content != "" {
				t.Errorf("content = %v, want empty string", n.Content)
			}
			if n.Summary != nil {
				t.Errorf("summary = %q, want nil", *n.Summary)
			}
			if !n.CreatedAt.Equal(t1) || !n.UpdatedAt.Equal(n.CreatedAt) {
				t.Errorf("timestamps = %v/%v, want both %v", n.CreatedAt, n.UpdatedAt, t1)
			}
			return nil
		})
		f.index.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *models.SearchIndexEntry) error {
			if e.Title != models.DefaultNoteTitle || e.Content != "" || !e.SourceUpdatedAt.Equal(t1) {
				t.Errorf("unexpected index entry %+v", e)
			}
			return nil
		})

		note, err := f.svc.CreateNote(context.Background(), &svc.CreateNoteRequest{Title: "   "})
		if err != nil {
			t.Fatalf("CreateNote() error = %v", err)
		}
		if note.ID == "" {
			t.Error("CreateNote() returned note without id")
		}
	})

	t.Run("derives summary from content", func(t *testing.T) {
		f := newFixture(t)
		f.notes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.index.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *models.SearchIndexEntry) error {
			if e.Content != "Plan\nBuy milk" {
				t.Errorf("indexed content = %q", e.Content)
			}
			return nil
		})

		note, err := f.svc.CreateNote(context.Background(), &svc.CreateNoteRequest{
			Title:   "Groceries",
			Content: ptr("# Plan\n\nBuy **milk**"),
		})
		if err != nil {
			t.Fatalf("CreateNote() error = %v", err)
		}
		if note.Summary == nil || *note.Summary != "Plan Buy milk" {
			t.Errorf("summary = %v, want %q", note.Summary, "Plan Buy milk")
		}
	})

	t.Run("unknown folder", func(t *testing.T) {
		f := newFixture(t)
		f.folders.EXPECT().Exists(gomock.Any(), "missing").Return(false, nil)

		_, err := f.svc.CreateNote(context.Background(), &svc.CreateNoteRequest{FolderID: ptr("missing")})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("CreateNote() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("title too long", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.CreateNote(context.Background(), &svc.CreateNoteRequest{Title: strings.Repeat("é", 501)})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("CreateNote() error = %v, want ErrValidation", err)
		}
	})

	t.Run("index failure does not fail the write", func(t *testing.T) {
		f := newFixture(t)
		f.notes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		f.index.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("index unavailable"))

		if _, err := f.svc.CreateNote(context.Background(), &svc.CreateNoteRequest{Title: "x"}); err != nil {
			t.Fatalf("CreateNote() error = %v", err)
		}
		if got := f.sync.Failures(); got != 1 {
			t.Errorf("Failures() = %d, want 1", got)
		}
	})
}

func existingNote() *models.Note {
	return &models.Note{
		ID:        "n1",
		Title:     "Old",
		Content:   ptr("old body"),
		Summary:   ptr("old body"),
		CreatedAt: t0,
		UpdatedAt: t0,
	}
}

func TestNoteService_UpdateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("empty patch", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.UpdateNote(ctx, "n1", &models.NotePatch{})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("UpdateNote() error = %v, want ErrValidation", err)
		}
	})

	t.Run("content change re-derives summary", func(t *testing.T) {
		f := newFixture(t)
		f.notes.EXPECT().GetByID(gomock.Any(), "n1").Return(existingNote(), nil)
		f.notes.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.index.EXPECT().UpdateContent(gomock.Any(), "n1", "new body", gomock.Any(), t1).Return(nil)

		note, err := f.svc.UpdateNote(ctx, "n1", &models.NotePatch{Content: models.Some("new *body*")})
		if err != nil {
			t.Fatalf("UpdateNote() error = %v", err)
		}
		if note.Summary == nil || *note.Summary != "new body" {
			t.Errorf("summary = %v, want %q", note.Summary, "new body")
		}
		if !note.UpdatedAt.Equal(t1) {
			t.Errorf("updatedAt = %v, want %v", note.UpdatedAt, t1)
		}
	})

	t.Run("folder move keeps summary and touches index", func(t *testing.T) {
		f := newFixture(t)
		f.folders.EXPECT().Exists(gomock.Any(), "f1").Return(true, nil)
		f.notes.EXPECT().GetByID(gomock.Any(), "n1").Return(existingNote(), nil)
		f.notes.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.index.EXPECT().Touch(gomock.Any(), "n1", t1).Return(nil)

		note, err := f.svc.UpdateNote(ctx, "n1", &models.NotePatch{FolderID: models.Some("f1")})
		if err != nil {
			t.Fatalf("UpdateNote() error = %v", err)
		}
		if note.Summary == nil || *note.Summary != "old body" {
			t.Errorf("summary = %v, want unchanged", note.Summary)
		}
		if note.FolderID == nil || *note.FolderID != "f1" {
			t.Errorf("folderId = %v, want f1", note.FolderID)
		}
	})

	t.Run("null folder moves to root", func(t *testing.T) {
		f := newFixture(t)
		current := existingNote()
		current.FolderID = ptr("f1")
		f.notes.EXPECT().GetByID(gomock.Any(), "n1").Return(current, nil)
		f.notes.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.index.EXPECT().Touch(gomock.Any(), "n1", t1).Return(nil)

		note, err := f.svc.UpdateNote(ctx, "n1", &models.NotePatch{FolderID: models.Null[string]()})
		if err != nil {
			t.Fatalf("UpdateNote() error = %v", err)
		}
		if note.FolderID != nil {
			t.Errorf("folderId = %v, want nil", *note.FolderID)
		}
	})

	t.Run("clock behind createdAt", func(t *testing.T) {
		f := newFixture(t)
		f.svc.now = func() time.Time { return t0.Add(-time.Minute) }
		f.notes.EXPECT().GetByID(gomock.Any(), "n1").Return(existingNote(), nil)
		f.notes.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.index.EXPECT().UpdateTitle(gomock.Any(), "n1", "New", t0).Return(nil)

		note, err := f.svc.UpdateNote(ctx, "n1", &models.NotePatch{Title: ptr("New")})
		if err != nil {
			t.Fatalf("UpdateNote() error = %v", err)
		}
		if note.UpdatedAt.Before(note.CreatedAt) {
			t.Errorf("updatedAt %v precedes createdAt %v", note.UpdatedAt, note.CreatedAt)
		}
	})

	t.Run("missing index row is rebuilt", func(t *testing.T) {
		f := newFixture(t)
		f.notes.EXPECT().GetByID(gomock.Any(), "n1").Return(existingNote(), nil)
		f.notes.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		f.index.EXPECT().UpdateTitle(gomock.Any(), "n1", "New", t1).Return(domain.ErrNotFound)
		f.index.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *models.SearchIndexEntry) error {
			if e.Title != "New" || e.Content != "old body" {
				t.Errorf("unexpected rebuilt entry %+v", e)
			}
			return nil
		})

		if _, err := f.svc.UpdateNote(ctx, "n1", &models.NotePatch{Title: ptr("New")}); err != nil {
			t.Fatalf("UpdateNote() error = %v", err)
		}
		if f.sync.Failures() != 0 {
			t.Errorf("Failures() = %d, want 0", f.sync.Failures())
		}
	})

	t.Run("note not found", func(t *testing.T) {
		f := newFixture(t)
		f.notes.EXPECT().GetByID(gomock.Any(), "n1").Return(nil, domain.NewNotFound("note", "n1"))

		_, err := f.svc.UpdateNote(ctx, "n1", &models.NotePatch{Title: ptr("x")})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("UpdateNote() error = %v, want ErrNotFound", err)
		}
	})
}

func TestNoteService_DeleteNote(t *testing.T) {
	t.Run("deletes note then index row", func(t *testing.T) {
		f := newFixture(t)
		gomock.InOrder(
			f.notes.EXPECT().Delete(gomock.Any(), "n1").Return(nil),
			f.index.EXPECT().Delete(gomock.Any(), "n1").Return(nil),
		)
		if err := f.svc.DeleteNote(context.Background(), "n1"); err != nil {
			t.Fatalf("DeleteNote() error = %v", err)
		}
	})

	t.Run("missing note leaves index alone", func(t *testing.T) {
		f := newFixture(t)
		f.notes.EXPECT().Delete(gomock.Any(), "n1").Return(domain.NewNotFound("note", "n1"))
		if err := f.svc.DeleteNote(context.Background(), "n1"); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("DeleteNote() error = %v, want ErrNotFound", err)
		}
	})
}

func listRows(n int) []models.NoteListItem {
	rows := make([]models.NoteListItem, n)
	for i := range rows {
		rows[i] = models.NoteListItem{ID: string(rune('a' + i%26)), UpdatedAt: t1.Add(-time.Duration(i) * time.Second)}
	}
	return rows
}

func TestNoteService_ListNotes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		req       svc.ListNotesRequest
		wantFetch int
	}{
		{name: "default limit", req: svc.ListNotesRequest{}, wantFetch: models.DefaultListLimit + 1},
		{name: "clamped limit", req: svc.ListNotesRequest{Limit: 500}, wantFetch: models.MaxListLimit + 1},
		{name: "negative limit", req: svc.ListNotesRequest{Limit: -3}, wantFetch: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.notes.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q *models.NoteListQuery) ([]models.NoteListItem, error) {
				if q.Fetch != tt.wantFetch {
					t.Errorf("Fetch = %d, want %d", q.Fetch, tt.wantFetch)
				}
				return nil, nil
			})
			page, err := f.svc.ListNotes(ctx, &tt.req)
			if err != nil {
				t.Fatalf("ListNotes() error = %v", err)
			}
			if page.Data == nil || page.NextCursor != nil {
				t.Errorf("page = %+v, want empty last page", page)
			}
		})
	}

	t.Run("full page sets cursor from last row", func(t *testing.T) {
		f := newFixture(t)
		rows := listRows(3)
		f.notes.EXPECT().List(gomock.Any(), gomock.Any()).Return(rows, nil)

		page, err := f.svc.ListNotes(ctx, &svc.ListNotesRequest{Limit: 2})
		if err != nil {
			t.Fatalf("ListNotes() error = %v", err)
		}
		if len(page.Data) != 2 {
			t.Fatalf("len(Data) = %d, want 2", len(page.Data))
		}
		if page.NextCursorID == nil || *page.NextCursorID != rows[1].ID || !page.NextCursor.Equal(rows[1].UpdatedAt) {
			t.Errorf("cursor = %v/%v, want %v/%s", page.NextCursor, page.NextCursorID, rows[1].UpdatedAt, rows[1].ID)
		}
	})

	t.Run("cursor id without cursor", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.ListNotes(ctx, &svc.ListNotesRequest{CursorID: ptr("n1")})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("ListNotes() error = %v, want ErrValidation", err)
		}
	})

	t.Run("tag with no notes short-circuits", func(t *testing.T) {
		f := newFixture(t)
		f.tags.EXPECT().NoteIDs(gomock.Any(), "t1").Return([]string{}, nil)

		page, err := f.svc.ListNotes(ctx, &svc.ListNotesRequest{TagID: ptr("t1")})
		if err != nil {
			t.Fatalf("ListNotes() error = %v", err)
		}
		if len(page.Data) != 0 || page.NextCursor != nil || page.NextCursorID != nil {
			t.Errorf("page = %+v, want empty", page)
		}
	})

	t.Run("filters are passed through", func(t *testing.T) {
		f := newFixture(t)
		cursor := t0.Add(123456789 * time.Nanosecond)
		f.tags.EXPECT().NoteIDs(gomock.Any(), "t1").Return([]string{"n1", "n2"}, nil)
		f.notes.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, q *models.NoteListQuery) ([]models.NoteListItem, error) {
			if q.FolderID == nil || *q.FolderID != "f1" {
				t.Errorf("FolderID = %v, want f1", q.FolderID)
			}
			if len(q.NoteIDs) != 2 {
				t.Errorf("NoteIDs = %v", q.NoteIDs)
			}
			if !q.CursorUpdatedAt.Equal(cursor.Truncate(time.Microsecond)) || *q.CursorID != "n9" {
				t.Errorf("cursor = %v/%v", q.CursorUpdatedAt, q.CursorID)
			}
			return nil, nil
		})

		_, err := f.svc.ListNotes(ctx, &svc.ListNotesRequest{
			Cursor:   &cursor,
			CursorID: ptr("n9"),
			FolderID: ptr("f1"),
			TagID:    ptr("t1"),
		})
		if err != nil {
			t.Fatalf("ListNotes() error = %v", err)
		}
	})
}

func TestNoteService_SearchNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("query without terms matches nothing", func(t *testing.T) {
		f := newFixture(t)
		hits, err := f.svc.SearchNotes(ctx, &svc.SearchNotesRequest{Query: `"' `})
		if err != nil {
			t.Fatalf("SearchNotes() error = %v", err)
		}
		if len(hits) != 0 {
			t.Errorf("hits = %v, want none", hits)
		}
	})

	t.Run("sanitized query with defaults", func(t *testing.T) {
		f := newFixture(t)
		f.index.EXPECT().Search(gomock.Any(), "hello & wor:*", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, opts *models.SearchOptions) ([]models.SearchHit, error) {
				if opts.Limit != models.DefaultSearchLimit || opts.HighlightStart != "<mark>" || opts.SnippetWords != 32 {
					t.Errorf("opts = %+v", opts)
				}
				return []models.SearchHit{{ID: "n1"}}, nil
			})

		hits, err := f.svc.SearchNotes(ctx, &svc.SearchNotesRequest{Query: `"Hello" wor`})
		if err != nil {
			t.Fatalf("SearchNotes() error = %v", err)
		}
		if len(hits) != 1 {
			t.Errorf("len(hits) = %d, want 1", len(hits))
		}
	})

	t.Run("limit above maximum", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.SearchNotes(ctx, &svc.SearchNotesRequest{Query: "x", Limit: 51})
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("SearchNotes() error = %v, want ErrValidation", err)
		}
	})
}

func TestNoteService_ExportImport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	note := existingNote()
	note.Title = "Trip"
	note.Content = ptr("Pack **boots**.")
	f.notes.EXPECT().GetByID(gomock.Any(), "n1").Return(note, nil)
	f.tags.EXPECT().ListForNote(gomock.Any(), "n1").Return([]models.Tag{{ID: "t1", Name: "travel"}, {ID: "t2", Name: "gone"}}, nil)

	exported, err := f.svc.ExportNote(ctx, "n1")
	if err != nil {
		t.Fatalf("ExportNote() error = %v", err)
	}
	if !strings.HasPrefix(string(exported), "---\nid: n1\ntitle: Trip\n") {
		t.Errorf("export header = %q", exported)
	}
	if !strings.Contains(string(exported), "---\n\n# Trip\n\nPack **boots**.\n") {
		t.Errorf("export body = %q", exported)
	}

	f.notes.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *models.Note) error {
		if n.Title != "Trip" || *n.Content != "Pack **boots**." {
			t.Errorf("imported note = %q / %q", n.Title, *n.Content)
		}
		return nil
	})
	f.index.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	f.tags.EXPECT().GetByName(gomock.Any(), "travel").Return(&models.Tag{ID: "t1", Name: "travel"}, nil)
	f.tags.EXPECT().GetByName(gomock.Any(), "gone").Return(nil, domain.NewNotFound("tag", "gone"))
	f.tags.EXPECT().Attach(gomock.Any(), gomock.Any(), "t1").Return(nil)

	if _, err := f.svc.ImportNote(ctx, &svc.ImportNoteRequest{Markdown: exported}); err != nil {
		t.Fatalf("ImportNote() error = %v", err)
	}
}

func TestNoteService_ImportAttachFailureFailsCreate(t *testing.T) {
	f := newFixture(t)
	markdown := []byte("---\ntitle: Trip\ntags: [travel]\n---\n\nbody\n")

	f.notes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.index.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)
	f.tags.EXPECT().GetByName(gomock.Any(), "travel").Return(&models.Tag{ID: "t1", Name: "travel"}, nil)
	f.tags.EXPECT().Attach(gomock.Any(), gomock.Any(), "t1").DoAndReturn(func(context.Context, string, string) error {
		if !f.inTx {
			t.Error("tag attached outside the create transaction")
		}
		return errors.New("connection reset")
	})

	note, err := f.svc.ImportNote(context.Background(), &svc.ImportNoteRequest{Markdown: markdown})
	if err == nil {
		t.Fatalf("ImportNote() = %+v, want error", note)
	}
	if !strings.Contains(err.Error(), "attach tag travel") {
		t.Errorf("error = %v", err)
	}
}

func TestNoteService_ImportTitleSources(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		filename string
		want     string
	}{
		{name: "first heading", markdown: "# Heading\n\nbody", want: "Heading"},
		{name: "file name", markdown: "just text", filename: "notes/ideas.md", want: "ideas"},
		{name: "untitled", markdown: "just text", want: models.DefaultNoteTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.notes.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
			f.index.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil)

			note, err := f.svc.ImportNote(context.Background(), &svc.ImportNoteRequest{
				Markdown: []byte(tt.markdown),
				Filename: tt.filename,
			})
			if err != nil {
				t.Fatalf("ImportNote() error = %v", err)
			}
			if note.Title != tt.want {
				t.Errorf("title = %q, want %q", note.Title, tt.want)
			}
		})
	}
}
