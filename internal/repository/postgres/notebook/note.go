package notebook

import (
	"context"
	"fmt"
	"log/slog"

	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"
	notebookRepo "nicenote/internal/domain/repositories/notebook"
	"nicenote/internal/repository/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *postgres.RepositoryConfig) notebookRepo.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts a note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, content, summary, folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		note.ID,
		note.Title,
		note.Content,
		note.Summary,
		note.FolderID,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NewNotFound("folder", deref(note.FolderID))
		}
		if postgres.IsPgDuplicateError(err) {
			return fmt.Errorf("note %s: %w", note.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

// GetByID retrieves a note by ID
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := fmt.Sprintf(`
		SELECT id, title, content, summary, folder_id, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	note, err := scanNote(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NewNotFound("note", id)
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	return note, nil
}

// Update writes the mutable fields of a note
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, summary = $3, folder_id = $4, updated_at = $5
		WHERE id = $6
		RETURNING created_at, updated_at
	`, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		note.Title,
		note.Content,
		note.Summary,
		note.FolderID,
		note.UpdatedAt,
		note.ID,
	).Scan(&note.CreatedAt, &note.UpdatedAt)

	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return domain.NewNotFound("note", note.ID)
		}
		if postgres.IsPgForeignKeyError(err) {
			return domain.NewNotFound("folder", deref(note.FolderID))
		}
		return fmt.Errorf("update note: %w", err)
	}

	return nil
}

// Delete deletes a note; note_tags rows go with it through ON DELETE CASCADE
func (r *PostgresNoteRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("note", id)
	}

	return nil
}

// List returns one keyset page worth of rows (q.Fetch, normally limit+1)
func (r *PostgresNoteRepository) List(ctx context.Context, q *models.NoteListQuery) ([]models.NoteListItem, error) {
	query, args := buildListQuery(r.tables.Notes, q)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.NoteListItem, error) {
		var item models.NoteListItem
		err := row.Scan(
			&item.ID,
			&item.Title,
			&item.Summary,
			&item.FolderID,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan notes: %w", err)
	}

	// Return empty slice instead of nil
	if items == nil {
		items = []models.NoteListItem{}
	}

	return items, nil
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.Summary,
		&note.FolderID,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
