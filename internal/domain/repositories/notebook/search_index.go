package notebook

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_search_index_repository.go -package=mocks nicenote/internal/domain/repositories/notebook SearchIndexRepository

import (
	"context"
	"time"

	"nicenote/internal/domain/models/notebook"
)

// SearchIndexRepository maintains the derived full-text index table.
// Rows are written only as a consequence of note writes.
type SearchIndexRepository interface {
	// Upsert inserts or replaces the row for entry.ID
	Upsert(ctx context.Context, entry *notebook.SearchIndexEntry) error

	// UpdateTitle replaces the indexed title
	UpdateTitle(ctx context.Context, id, title string, sourceUpdatedAt time.Time) error

	// UpdateContent replaces indexed content and summary
	UpdateContent(ctx context.Context, id, content string, summary *string, sourceUpdatedAt time.Time) error

	// Touch records that the source note changed without searchable fields changing
	Touch(ctx context.Context, id string, sourceUpdatedAt time.Time) error

	// Delete removes the row for id; a missing row is not an error
	Delete(ctx context.Context, id string) error

	// Search runs a sanitized tsquery and joins hits back to the notes table
	Search(ctx context.Context, tsquery string, opts *notebook.SearchOptions) ([]notebook.SearchHit, error)

	// DeleteOrphans removes rows whose note no longer exists
	DeleteOrphans(ctx context.Context) (int64, error)

	// ListDrifted returns ids of notes whose row is missing or stale, at most limit
	ListDrifted(ctx context.Context, limit int) ([]string, error)

	// Truncate removes every row
	Truncate(ctx context.Context) error
}
