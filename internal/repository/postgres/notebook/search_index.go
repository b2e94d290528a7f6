package notebook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"
	notebookRepo "nicenote/internal/domain/repositories/notebook"
	"nicenote/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSearchIndexRepository implements SearchIndexRepository over a table with a
// generated, weighted tsvector column (title A, content B, summary C).
type PostgresSearchIndexRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewSearchIndexRepository creates a new search index repository
func NewSearchIndexRepository(config *postgres.RepositoryConfig) notebookRepo.SearchIndexRepository {
	return &PostgresSearchIndexRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert inserts or replaces an index row
func (r *PostgresSearchIndexRepository) Upsert(ctx context.Context, entry *models.SearchIndexEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, content, summary, source_updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    content = EXCLUDED.content,
		    summary = EXCLUDED.summary,
		    source_updated_at = EXCLUDED.source_updated_at
	`, r.tables.NotesSearch)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, entry.ID, entry.Title, entry.Content, entry.Summary, entry.SourceUpdatedAt); err != nil {
		return fmt.Errorf("upsert search entry: %w", err)
	}

	return nil
}

// UpdateTitle replaces the indexed title
func (r *PostgresSearchIndexRepository) UpdateTitle(ctx context.Context, id, title string, sourceUpdatedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET title = $1, source_updated_at = $2 WHERE id = $3
	`, r.tables.NotesSearch)
	return r.exec(ctx, "update search title", id, query, title, sourceUpdatedAt, id)
}

// UpdateContent replaces indexed content and summary
func (r *PostgresSearchIndexRepository) UpdateContent(ctx context.Context, id, content string, summary *string, sourceUpdatedAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET content = $1, summary = $2, source_updated_at = $3 WHERE id = $4
	`, r.tables.NotesSearch)
	return r.exec(ctx, "update search content", id, query, content, summary, sourceUpdatedAt, id)
}

// Touch moves source_updated_at forward
func (r *PostgresSearchIndexRepository) Touch(ctx context.Context, id string, sourceUpdatedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET source_updated_at = $1 WHERE id = $2`, r.tables.NotesSearch)
	return r.exec(ctx, "touch search entry", id, query, sourceUpdatedAt, id)
}

// Delete removes the row for id
func (r *PostgresSearchIndexRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.NotesSearch)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete search entry: %w", err)
	}

	return nil
}

// Search matches tsquery against the index and joins hits back to notes, so an index
// row whose note is gone never surfaces.
func (r *PostgresSearchIndexRepository) Search(ctx context.Context, tsquery string, opts *models.SearchOptions) ([]models.SearchHit, error) {
	query := fmt.Sprintf(`
		WITH q AS (SELECT to_tsquery('simple', $1) AS query)
		SELECT n.id, n.title, n.folder_id, n.created_at, n.updated_at, n.summary,
		       ts_headline('simple',
		                   CASE WHEN to_tsvector('simple', s.content) @@ q.query THEN s.content ELSE s.title END,
		                   q.query, $2) AS snippet,
		       ts_rank(s.document, q.query) AS rank
		FROM %s s
		JOIN %s n ON n.id = s.id
		CROSS JOIN q
		WHERE s.document @@ q.query
		ORDER BY rank DESC, n.updated_at DESC, n.id DESC
		LIMIT $3
	`, r.tables.NotesSearch, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, tsquery, headlineOptions(opts), opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("full-text search query failed: %w", err)
	}

	hits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SearchHit, error) {
		var hit models.SearchHit
		err := row.Scan(
			&hit.ID,
			&hit.Title,
			&hit.FolderID,
			&hit.CreatedAt,
			&hit.UpdatedAt,
			&hit.Summary,
			&hit.Snippet,
			&hit.Rank,
		)
		return hit, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan search result: %w", err)
	}

	if hits == nil {
		hits = []models.SearchHit{}
	}

	return hits, nil
}

// DeleteOrphans removes index rows whose note no longer exists
func (r *PostgresSearchIndexRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s s
		WHERE NOT EXISTS (SELECT 1 FROM %s n WHERE n.id = s.id)
	`, r.tables.NotesSearch, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete orphaned search entries: %w", err)
	}

	return result.RowsAffected(), nil
}

// ListDrifted returns notes whose index row is missing or older than the note
func (r *PostgresSearchIndexRepository) ListDrifted(ctx context.Context, limit int) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT n.id
		FROM %s n
		LEFT JOIN %s s ON s.id = n.id
		WHERE s.id IS NULL OR s.source_updated_at <> n.updated_at
		ORDER BY n.updated_at DESC, n.id DESC
		LIMIT $1
	`, r.tables.Notes, r.tables.NotesSearch)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list drifted search entries: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan drifted search entries: %w", err)
	}

	return ids, nil
}

// Truncate removes every index row
func (r *PostgresSearchIndexRepository) Truncate(ctx context.Context) error {
	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, fmt.Sprintf(`TRUNCATE %s`, r.tables.NotesSearch)); err != nil {
		return fmt.Errorf("truncate search index: %w", err)
	}
	return nil
}

// exec runs a single-row update and reports a missing row as ErrNotFound
func (r *PostgresSearchIndexRepository) exec(ctx context.Context, op, id, query string, args ...any) error {
	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("search entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// headlineOptions renders ts_headline options. MinWords must stay below MaxWords.
func headlineOptions(opts *models.SearchOptions) string {
	maxWords := opts.SnippetWords
	minWords := maxWords / 4
	if minWords < 1 {
		minWords = 1
	}
	if maxWords <= minWords {
		maxWords = minWords + 1
	}

	return fmt.Sprintf(`StartSel=%s, StopSel=%s, MaxWords=%d, MinWords=%d, MaxFragments=1`,
		quoteOption(opts.HighlightStart), quoteOption(opts.HighlightStop), maxWords, minWords)
}

// quoteOption double-quotes a ts_headline option value
func quoteOption(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
