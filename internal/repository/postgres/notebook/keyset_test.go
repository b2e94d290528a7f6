package notebook

import (
	"reflect"
	"testing"
	"time"

	models "nicenote/internal/domain/models/notebook"
)

func TestBuildListQuery(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	id := "note-b"
	folder := "folder-1"

	tests := []struct {
		name     string
		query    *models.NoteListQuery
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "first page without filters",
			query:    &models.NoteListQuery{Fetch: 21},
			wantSQL:  "SELECT id, title, summary, folder_id, created_at, updated_at FROM notes ORDER BY updated_at DESC, id DESC LIMIT $1",
			wantArgs: []any{21},
		},
		{
			name:     "two-key cursor",
			query:    &models.NoteListQuery{CursorUpdatedAt: &ts, CursorID: &id, Fetch: 3},
			wantSQL:  "SELECT id, title, summary, folder_id, created_at, updated_at FROM notes WHERE (updated_at < $1 OR (updated_at = $1 AND id < $2)) ORDER BY updated_at DESC, id DESC LIMIT $3",
			wantArgs: []any{ts, id, 3},
		},
		{
			name:     "timestamp-only cursor",
			query:    &models.NoteListQuery{CursorUpdatedAt: &ts, Fetch: 3},
			wantSQL:  "SELECT id, title, summary, folder_id, created_at, updated_at FROM notes WHERE updated_at < $1 ORDER BY updated_at DESC, id DESC LIMIT $2",
			wantArgs: []any{ts, 3},
		},
		{
			name:     "cursor id without timestamp is ignored",
			query:    &models.NoteListQuery{CursorID: &id, Fetch: 3},
			wantSQL:  "SELECT id, title, summary, folder_id, created_at, updated_at FROM notes ORDER BY updated_at DESC, id DESC LIMIT $1",
			wantArgs: []any{3},
		},
		{
			name: "cursor with folder and tag filters",
			query: &models.NoteListQuery{
				CursorUpdatedAt: &ts,
				CursorID:        &id,
				FolderID:        &folder,
				NoteIDs:         []string{"a", "b"},
				Fetch:           11,
			},
			wantSQL:  "SELECT id, title, summary, folder_id, created_at, updated_at FROM notes WHERE (updated_at < $1 OR (updated_at = $1 AND id < $2)) AND folder_id = $3 AND id = ANY($4) ORDER BY updated_at DESC, id DESC LIMIT $5",
			wantArgs: []any{ts, id, folder, []string{"a", "b"}, 11},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSQL, gotArgs := buildListQuery("notes", tt.query)
			if gotSQL != tt.wantSQL {
				t.Errorf("sql mismatch\n got: %s\nwant: %s", gotSQL, tt.wantSQL)
			}
			if !reflect.DeepEqual(gotArgs, tt.wantArgs) {
				t.Errorf("args = %#v, want %#v", gotArgs, tt.wantArgs)
			}
		})
	}
}
