package notebook

import (
	"time"
)

// Default list pagination values
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListCursor identifies the last row of a page in (updated_at DESC, id DESC) order.
// A cursor is only meaningful against the same filters it was produced under.
type ListCursor struct {
	UpdatedAt time.Time
	ID        string
}

// NoteListQuery is the storage-level list request.
type NoteListQuery struct {
	// CursorUpdatedAt and CursorID bound the page from above. CursorID without
	// CursorUpdatedAt is ignored.
	CursorUpdatedAt *time.Time
	CursorID        *string

	// FolderID restricts results to one folder
	FolderID *string

	// NoteIDs restricts results to a resolved id set (tag filter); nil means no restriction
	NoteIDs []string

	// Fetch is the number of rows to read (page size + 1)
	Fetch int
}

// NotePage is one page of the note list.
type NotePage struct {
	Data         []NoteListItem `json:"data"`
	NextCursor   *time.Time     `json:"nextCursor"`
	NextCursorID *string        `json:"nextCursorId"`
}

// Next returns the cursor for the following page, or nil on the last page.
func (p *NotePage) Next() *ListCursor {
	if p.NextCursor == nil || p.NextCursorID == nil {
		return nil
	}
	return &ListCursor{UpdatedAt: *p.NextCursor, ID: *p.NextCursorID}
}

// EmptyNotePage returns a page with no rows and no continuation.
func EmptyNotePage() *NotePage {
	return &NotePage{Data: []NoteListItem{}}
}

// NewNotePage builds a page from up to limit+1 fetched rows. When more than limit rows
// were fetched the extra row is dropped and the cursor is taken from the last row kept.
func NewNotePage(rows []NoteListItem, limit int) *NotePage {
	if rows == nil {
		rows = []NoteListItem{}
	}
	if len(rows) <= limit {
		return &NotePage{Data: rows}
	}

	data := rows[:limit]
	last := data[len(data)-1]
	updatedAt := last.UpdatedAt
	id := last.ID

	return &NotePage{
		Data:         data,
		NextCursor:   &updatedAt,
		NextCursorID: &id,
	}
}
