package notebook

import (
	"fmt"
	"strings"

	models "nicenote/internal/domain/models/notebook"
)

// buildListQuery renders the keyset page query over the notes table.
//
// Rows are ordered by (updated_at DESC, id DESC). With both cursor halves the bound is
// the two-key predicate `updated_at < c OR (updated_at = c AND id < cid)`, which keeps
// rows sharing c's timestamp reachable; with only a timestamp it degrades to
// `updated_at < c`. Folder and tag filters are ANDed on.
func buildListQuery(notesTable string, q *models.NoteListQuery) (string, []any) {
	var conditions []string
	var args []any
	param := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.CursorUpdatedAt != nil {
		if q.CursorID != nil {
			c := param(*q.CursorUpdatedAt)
			cid := param(*q.CursorID)
			conditions = append(conditions,
				fmt.Sprintf("(updated_at < %s OR (updated_at = %s AND id < %s))", c, c, cid))
		} else {
			conditions = append(conditions, fmt.Sprintf("updated_at < %s", param(*q.CursorUpdatedAt)))
		}
	}

	if q.FolderID != nil {
		conditions = append(conditions, fmt.Sprintf("folder_id = %s", param(*q.FolderID)))
	}

	if q.NoteIDs != nil {
		conditions = append(conditions, fmt.Sprintf("id = ANY(%s)", param(q.NoteIDs)))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT id, title, summary, folder_id, created_at, updated_at FROM %s", notesTable)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY updated_at DESC, id DESC")
	fmt.Fprintf(&sb, " LIMIT %s", param(q.Fetch))

	return sb.String(), args
}
