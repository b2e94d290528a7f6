package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	models "nicenote/internal/domain/models/notebook"
)

func TestListNotes_EncodesCursor(t *testing.T) {
	at := time.Date(2025, 4, 2, 8, 30, 0, 123000, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/notes" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if q.Get("cursor") != "2025-04-02T08:30:00.000123Z" || q.Get("cursorId") != "n-5" {
			t.Errorf("cursor params = %v", q)
		}
		if q.Get("tagId") != "t-1" || q.Has("folderId") {
			t.Errorf("filter params = %v", q)
		}
		w.Write([]byte(`{"data":[{"id":"n-6","title":"x"}],"nextCursor":null,"nextCursorId":null}`))
	}))
	defer srv.Close()

	tag := "t-1"
	page, err := New(srv.URL).ListNotes(context.Background(), ListQuery{
		Cursor: &models.ListCursor{UpdatedAt: at, ID: "n-5"},
		TagID:  &tag,
	})
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(page.Data) != 1 || page.Next() != nil {
		t.Errorf("page = %+v", page)
	}
}

func TestSaveNote_SendsOnlyPresentFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/notes/n-1" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"content":null}` {
			t.Errorf("body = %s", body)
		}
		json.NewEncoder(w).Encode(models.Note{ID: "n-1", Title: "kept"})
	}))
	defer srv.Close()

	note, err := New(srv.URL).SaveNote(context.Background(), "n-1", models.NotePatch{Content: models.Null[string]()})
	if err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	if note.Title != "kept" {
		t.Errorf("title = %s", note.Title)
	}
}

func TestProblemResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept-Language") != "zh" {
			t.Errorf("accept-language = %q", r.Header.Get("Accept-Language"))
		}
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"type":"about:blank","title":"Not Found","status":404,"detail":"未找到"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithLanguage("zh")).GetNote(context.Background(), "gone")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Detail != "未找到" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestSearchNotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "go & rust" || r.URL.Query().Get("limit") != "3" {
			t.Errorf("query = %v", r.URL.Query())
		}
		w.Write([]byte(`{"data":[{"id":"n-1","title":"go","snippet":"<mark>go</mark>"}]}`))
	}))
	defer srv.Close()

	hits, err := New(srv.URL+"/").SearchNotes(context.Background(), "go & rust", 3)
	if err != nil {
		t.Fatalf("SearchNotes: %v", err)
	}
	if len(hits) != 1 || hits[0].Snippet != "<mark>go</mark>" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestDeleteNote_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	if err := New(srv.URL).DeleteNote(context.Background(), "n-1"); err == nil {
		t.Fatal("expected error from closed server")
	}
}
