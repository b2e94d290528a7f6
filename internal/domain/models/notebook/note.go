package notebook

import (
	"time"
)

// DefaultNoteTitle is used when a note is created without a title.
const DefaultNoteTitle = "Untitled"

// Note is the primary note record.
type Note struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   *string   `json:"content" db:"content"` // Markdown, NULL allowed
	Summary   *string   `json:"summary" db:"summary"` // Derived from content, never set by callers
	FolderID  *string   `json:"folderId" db:"folder_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ListItem projects the note without its content, as returned by list endpoints.
func (n *Note) ListItem() NoteListItem {
	return NoteListItem{
		ID:        n.ID,
		Title:     n.Title,
		Summary:   n.Summary,
		FolderID:  n.FolderID,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NoteListItem is the list projection of a note.
type NoteListItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   *string   `json:"summary"`
	FolderID  *string   `json:"folderId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Timestamp returns t in UTC truncated to the microsecond resolution Postgres stores,
// so values handed to clients round-trip exactly through cursors.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
